// Package cli parses the subcommand flags and drives the trainers.
package cli

import (
	"flag"
	"io"

	"signalpredictor/config"

	"github.com/pkg/errors"
)

// TransformerOptions is the parsed transformer subcommand.
type TransformerOptions struct {
	Train   bool
	Repl    bool
	PlotLog string
	Config  config.Config
}

// runFlags registers the flags shared by both subcommands. The returned
// func must run after Parse.
func runFlags(fs *flag.FlagSet, o *config.Overrides) (*string, func()) {
	path := fs.String("config", "", "YAML configuration file")
	fs.StringVar(&o.Device, "device", "", "auto, cpu or cuda")
	seed := fs.Int64("seed", 0, "random seed")
	fs.StringVar(&o.LogLevel, "log-level", "", "log level")
	fs.StringVar(&o.LogFormat, "log-format", "", "text or json")
	fs.IntVar(&o.Epochs, "epochs", 0, "number of epochs")
	return path, func() {
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "seed" {
				o.Seed = seed
			}
		})
	}
}

// ParseMLP reads the mlp subcommand flags into a validated configuration.
func ParseMLP(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("mlp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o config.Overrides
	path, parsed := runFlags(fs, &o)
	fs.StringVar(&o.TrainPath, "train-csv", "", "training CSV")
	fs.StringVar(&o.TestPath, "test-csv", "", "test CSV")
	fs.IntVar(&o.Hidden, "hidden", 0, "hidden layer width")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	parsed()

	cfg, err := config.Load(*path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyMLP(o)
	if err := cfg.MLP.Validate(); err != nil {
		return cfg, errors.Wrap(err, "mlp config")
	}
	if err := cfg.Run.Validate(); err != nil {
		return cfg, errors.Wrap(err, "run config")
	}
	return cfg, nil
}

// ParseTransformer reads the transformer subcommand flags.
func ParseTransformer(args []string, stderr io.Writer) (*TransformerOptions, error) {
	fs := flag.NewFlagSet("transformer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o config.Overrides
	opts := &TransformerOptions{}
	path, parsed := runFlags(fs, &o)
	fs.BoolVar(&opts.Train, "train", false, "train the model")
	fs.BoolVar(&opts.Repl, "repl", false, "start an inference REPL")
	fs.StringVar(&o.SeriesPath, "series", "", "CSV series to train on instead of the sine wave")
	fs.StringVar(&o.PlotPath, "plot", "", "validation plot image")
	fs.BoolVar(&o.ShowPlot, "show-plot", false, "show the validation plot in a window")
	fs.StringVar(&opts.PlotLog, "plot-log", "", "JSON lines file receiving every plotted point")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	parsed()

	cfg, err := config.Load(*path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyTransformer(o)
	if err := cfg.Transformer.Validate(); err != nil {
		return nil, errors.Wrap(err, "transformer config")
	}
	if err := cfg.Run.Validate(); err != nil {
		return nil, errors.Wrap(err, "run config")
	}
	opts.Config = cfg
	return opts, nil
}
