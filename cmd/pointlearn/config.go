package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	AlgoKMeans     = "kmeans"
	AlgoDivisive   = "divisive"
	AlgoPerceptron = "perceptron"
)

// Config drives one CLI run. Non-positive sample or cluster counts are not
// rejected here; they fall back to 1 with a warning.
type Config struct {
	Algorithm     string        `yaml:"algorithm" validate:"required,oneof=kmeans divisive perceptron"`
	Samples       int           `yaml:"samples"`
	Clusters      int           `yaml:"clusters"`
	Width         float64       `yaml:"width" validate:"gt=0"`
	Height        float64       `yaml:"height" validate:"gt=0"`
	Seed          int64         `yaml:"seed"`
	Pace          time.Duration `yaml:"pace" validate:"gte=0"`
	MaxIterations int           `yaml:"max_iterations" validate:"gte=0"`
	Out           string        `yaml:"out"`
	Format        string        `yaml:"format" validate:"oneof=png html"`
	EveryStep     bool          `yaml:"every_step"`
	Dev           bool          `yaml:"dev"`
}

func DefaultConfig() Config {
	return Config{
		Algorithm: AlgoKMeans,
		Samples:   1000,
		Clusters:  5,
		Width:     800,
		Height:    600,
		Format:    "png",
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	return validate.Struct(c)
}

// loadYAML decodes r over cfg, so keys missing from the document keep their
// current values.
func loadYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// parseConfig builds the run configuration from defaults, then the file named
// by -config, then any flag given explicitly.
func parseConfig(args []string) (Config, error) {
	fs := flag.NewFlagSet("pointlearn", flag.ContinueOnError)
	flags := DefaultConfig()
	configPath := fs.String("config", "", "YAML config file")
	fs.StringVar(&flags.Algorithm, "algo", flags.Algorithm, "algorithm: kmeans, divisive or perceptron")
	fs.IntVar(&flags.Samples, "samples", flags.Samples, "number of samples (per class for perceptron)")
	fs.IntVar(&flags.Clusters, "clusters", flags.Clusters, "number of clusters for kmeans")
	fs.Float64Var(&flags.Width, "width", flags.Width, "canvas width")
	fs.Float64Var(&flags.Height, "height", flags.Height, "canvas height")
	fs.Int64Var(&flags.Seed, "seed", flags.Seed, "random seed, 0 for time based")
	fs.DurationVar(&flags.Pace, "pace", flags.Pace, "delay between steps")
	fs.IntVar(&flags.MaxIterations, "max-iterations", flags.MaxIterations, "step limit, 0 for the algorithm default")
	fs.StringVar(&flags.Out, "out", flags.Out, "output directory for rendered snapshots, empty to skip")
	fs.StringVar(&flags.Format, "format", flags.Format, "snapshot format: png or html")
	fs.BoolVar(&flags.EveryStep, "every-step", flags.EveryStep, "render a snapshot after every step")
	fs.BoolVar(&flags.Dev, "dev", flags.Dev, "development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()
		if err := loadYAML(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", *configPath, err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algo":
			cfg.Algorithm = flags.Algorithm
		case "samples":
			cfg.Samples = flags.Samples
		case "clusters":
			cfg.Clusters = flags.Clusters
		case "width":
			cfg.Width = flags.Width
		case "height":
			cfg.Height = flags.Height
		case "seed":
			cfg.Seed = flags.Seed
		case "pace":
			cfg.Pace = flags.Pace
		case "max-iterations":
			cfg.MaxIterations = flags.MaxIterations
		case "out":
			cfg.Out = flags.Out
		case "format":
			cfg.Format = flags.Format
		case "every-step":
			cfg.EveryStep = flags.EveryStep
		case "dev":
			cfg.Dev = flags.Dev
		}
	})
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
