// Command twolayer trains the affine → ReLU → affine → sigmoid network with
// plain mini-batch gradient descent and reports train/validation accuracy.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/born-ml/mlnotes/internal/config"
	"github.com/born-ml/mlnotes/internal/dataset"
	"github.com/born-ml/mlnotes/internal/nn"
	"github.com/born-ml/mlnotes/internal/trainer"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	cfgPath   string
	envPath   string
	verbose   bool
	overrides config.Overrides
}

// parseFlags parses args. Only flags that appear in args become overrides,
// so "-epochs 0" is honored.
func parseFlags(args []string) (*cliOptions, error) {
	fs := flag.NewFlagSet("twolayer", flag.ContinueOnError)

	opts := &cliOptions{}
	fs.StringVar(&opts.cfgPath, "config", "", "Path to YAML training config (optional)")
	fs.StringVar(&opts.envPath, "env", ".env", "Path to .env file with MLNOTES_* variables")
	fs.BoolVar(&opts.verbose, "v", false, "Log per-epoch loss")

	o := &opts.overrides
	fs.StringVar(&o.Data, "data", "", "CSV file with the label in the first column")
	fs.StringVar(&o.Images, "images", "", "IDX image file (use with -labels)")
	fs.StringVar(&o.Labels, "labels", "", "IDX label file (use with -images)")
	fs.BoolVar(&o.Synthetic, "synthetic", false, "Use generated data instead of files")

	samples := fs.Int("samples", 0, "Max samples to load, or synthetic sample count")
	epochs := fs.Int("epochs", 0, "Number of training epochs")
	lr := fs.Float64("lr", 0, "Learning rate")
	batchSize := fs.Int("batch", 0, "Batch size")
	hidden := fs.Int("hidden", 0, "Hidden layer width")
	seed := fs.Int64("seed", 0, "PRNG seed")
	valFraction := fs.Float64("val", 0, "Fraction of samples held out for validation")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			o.Samples = samples
		case "epochs":
			o.Epochs = epochs
		case "lr":
			o.LearningRate = lr
		case "batch":
			o.BatchSize = batchSize
		case "hidden":
			o.HiddenDim = hidden
		case "seed":
			o.Seed = seed
		case "val":
			o.ValFraction = valFraction
		}
	})

	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(opts.cfgPath, opts.envPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyOverrides(opts.overrides)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	ds, err := loadDataset(cfg, rng)
	if err != nil {
		log.Fatalf("failed to load data: %v", err)
	}
	train, val := ds.Split(cfg.ValFraction)

	model := nn.NewTwoLayerNet(ds.NumFeatures(), cfg.HiddenDim, ds.NumClasses(), rng)

	fmt.Println(renderSummary(cfg, model, train.NumSamples(), val.NumSamples()))

	var report bytes.Buffer
	err = trainer.Train(model, train.X, train.Labels, val.X, val.Labels, trainer.Options{
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
		BatchSize:    cfg.BatchSize,
		Out:          &report,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	fmt.Println(renderReport(report.String()))
}

// loadConfig layers the YAML file (if any) and the environment over the defaults.
func loadConfig(cfgPath, envPath string) (*config.Train, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.LoadDotEnv(envPath); err != nil {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDataset builds the dataset selected by cfg.
func loadDataset(cfg *config.Train, rng *rand.Rand) (*dataset.Dataset, error) {
	switch {
	case cfg.Data != "":
		return dataset.LoadCSV(cfg.Data, dataset.CSVOptions{
			Header:     cfg.CSVHeader,
			Scale:      cfg.CSVScale,
			MaxSamples: cfg.Samples,
		})
	case cfg.Images != "":
		return dataset.LoadIDX(cfg.Images, cfg.Labels, cfg.Samples)
	default:
		return dataset.Synthetic(cfg.Samples, syntheticFeatures, syntheticClasses, rng), nil
	}
}

const (
	syntheticFeatures = 8
	syntheticClasses  = 4
)
