package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/mlnotes/internal/config"
	"github.com/born-ml/mlnotes/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "train.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("epochs: 3\nsynthetic: true\n"), 0o644))

	t.Setenv(config.EnvEpochs, "5")

	cfg, err := loadConfig(cfgPath, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Epochs, "environment wins over file")
	assert.True(t, cfg.Synthetic)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFlagsExplicitZero(t *testing.T) {
	opts, err := parseFlags([]string{"-synthetic", "-epochs", "0", "-val", "0", "-seed", "0"})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.ApplyOverrides(opts.overrides)

	assert.Equal(t, 0, cfg.Epochs)
	assert.Equal(t, 0.0, cfg.ValFraction)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.True(t, cfg.Synthetic)
	assert.NoError(t, cfg.Validate())
}

func TestParseFlagsUnsetKeepsConfig(t *testing.T) {
	opts, err := parseFlags([]string{"-data", "train.csv", "-lr", "0.5"})
	require.NoError(t, err)

	assert.Nil(t, opts.overrides.Epochs)
	assert.Nil(t, opts.overrides.Seed)
	assert.Equal(t, ".env", opts.envPath)

	cfg := config.Default()
	cfg.ApplyOverrides(opts.overrides)

	assert.Equal(t, config.Default().Epochs, cfg.Epochs)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, "train.csv", cfg.Data)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlags([]string{"-epochs", "many"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-synthetic", "extra"})
	assert.ErrorContains(t, err, "unexpected arguments")
}

func TestLoadDatasetSynthetic(t *testing.T) {
	cfg := config.Default()
	cfg.Synthetic = true
	cfg.Samples = 20

	ds, err := loadDataset(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, 20, ds.NumSamples())
	assert.Equal(t, syntheticFeatures, ds.NumFeatures())
	assert.Equal(t, syntheticClasses, ds.NumClasses())
}

func TestLoadDatasetCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,1,2\n1,3,4\n"), 0o644))

	cfg := config.Default()
	cfg.Data = path

	ds, err := loadDataset(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.NumSamples())
	assert.Equal(t, 2, ds.NumFeatures())
}

func TestRender(t *testing.T) {
	model := nn.NewTwoLayerNet(4, 3, 2, rand.New(rand.NewSource(1)))

	summary := renderSummary(config.Default(), model, 8, 2)
	assert.Contains(t, summary, "train=8 val=2")
	assert.Contains(t, summary, "23")

	report := renderReport("Train Accuracy: 0.5\nVal Accuracy: 1\n")
	assert.Contains(t, report, "Train Accuracy: 0.5")
	assert.Contains(t, report, "Val Accuracy: 1")
}
