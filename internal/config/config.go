// Package config loads the settings of a two-layer network training run.
//
// Values are layered: Default, then an optional YAML file, then a .env file
// and MLNOTES_* environment variables, then command line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvEpochs       = "MLNOTES_EPOCHS"
	EnvLearningRate = "MLNOTES_LR"
	EnvBatchSize    = "MLNOTES_BATCH_SIZE"
	EnvHiddenDim    = "MLNOTES_HIDDEN_DIM"
	EnvSeed         = "MLNOTES_SEED"
)

// Train captures the knobs for a training run.
type Train struct {
	HiddenDim    int     `yaml:"hidden_dim"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	BatchSize    int     `yaml:"batch_size"`
	Seed         int64   `yaml:"seed"`
	ValFraction  float64 `yaml:"val_fraction"`

	// Exactly one data source must be set.
	Data      string `yaml:"data"`      // CSV file, label in the first column
	Images    string `yaml:"images"`    // IDX images, paired with Labels
	Labels    string `yaml:"labels"`    // IDX labels
	Synthetic bool   `yaml:"synthetic"` // generated blobs

	CSVHeader bool    `yaml:"csv_header"`
	CSVScale  float64 `yaml:"csv_scale"`
	Samples   int     `yaml:"samples"` // 0 = all rows of a file; synthetic needs > 0
}

// Overrides captures CLI supplied values.
//
// Nil numeric fields and empty data sources leave the config as is, so an
// explicit zero (for example epochs=0) is applied.
type Overrides struct {
	HiddenDim    *int
	Epochs       *int
	LearningRate *float64
	BatchSize    *int
	Seed         *int64
	ValFraction  *float64
	Samples      *int

	Data      string
	Images    string
	Labels    string
	Synthetic bool
}

// Default returns the tutorial's defaults.
func Default() *Train {
	return &Train{
		HiddenDim:    128,
		Epochs:       10,
		LearningRate: 1e-3,
		BatchSize:    16,
		Seed:         1,
		ValFraction:  0.2,
		Samples:      1000,
	}
}

// Load reads a Config from YAML on top of Default.
// Unknown keys are rejected.
func Load(path string) (*Train, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads environment variables from path. Missing files are ignored.
// Variables already set in the process environment win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv updates c from the MLNOTES_* environment variables that are set.
func (c *Train) ApplyEnv() error {
	if err := envInt(EnvEpochs, &c.Epochs); err != nil {
		return err
	}
	if err := envInt(EnvBatchSize, &c.BatchSize); err != nil {
		return err
	}
	if err := envInt(EnvHiddenDim, &c.HiddenDim); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvLearningRate); ok {
		lr, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLearningRate, err)
		}
		c.LearningRate = lr
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// ApplyOverrides updates c using every override that is set.
// Setting a data source replaces the configured one.
func (c *Train) ApplyOverrides(o Overrides) {
	setIfPresent(&c.HiddenDim, o.HiddenDim)
	setIfPresent(&c.Epochs, o.Epochs)
	setIfPresent(&c.LearningRate, o.LearningRate)
	setIfPresent(&c.BatchSize, o.BatchSize)
	setIfPresent(&c.Seed, o.Seed)
	setIfPresent(&c.ValFraction, o.ValFraction)
	setIfPresent(&c.Samples, o.Samples)
	switch {
	case o.Data != "":
		c.Data, c.Images, c.Labels, c.Synthetic = o.Data, "", "", false
	case o.Images != "" || o.Labels != "":
		c.Data, c.Images, c.Labels, c.Synthetic = "", o.Images, o.Labels, false
	case o.Synthetic:
		c.Data, c.Images, c.Labels, c.Synthetic = "", "", "", true
	}
}

// Validate verifies the config is runnable.
func (c *Train) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.HiddenDim <= 0 {
		return fmt.Errorf("hidden_dim must be > 0 (got %d)", c.HiddenDim)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("epochs must be >= 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.ValFraction < 0 || c.ValFraction >= 1 {
		return fmt.Errorf("val_fraction must be in [0, 1) (got %g)", c.ValFraction)
	}
	if c.Samples < 0 {
		return fmt.Errorf("samples must be >= 0 (got %d)", c.Samples)
	}
	if c.Synthetic && c.Samples == 0 {
		return errors.New("samples must be > 0 for synthetic data")
	}

	sources := 0
	if c.Data != "" {
		sources++
	}
	if c.Images != "" || c.Labels != "" {
		if c.Images == "" || c.Labels == "" {
			return errors.New("images and labels must be provided together")
		}
		sources++
	}
	if c.Synthetic {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of data, images/labels or synthetic must be set (got %d)", sources)
	}
	return nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
