package cli

import (
	"fmt"
	"io"

	"signalpredictor/config"
	"signalpredictor/device"
	"signalpredictor/ml"
	"signalpredictor/plot"
	"signalpredictor/util"

	"github.com/sirupsen/logrus"
	"github.com/wangkuiyi/gotorch/nn/initializer"
)

func setup(run config.Run) (device.Device, error) {
	if err := util.InitLogger(run.LogLevel, run.LogFormat); err != nil {
		return device.Device{}, err
	}
	dev, err := device.Select(run.Device)
	if err != nil {
		return dev, err
	}
	initializer.ManualSeed(run.Seed)
	util.Logger.WithFields(logrus.Fields{
		"device": dev.Kind,
		"host":   dev.Description,
		"seed":   run.Seed,
	}).Info("device selected")
	return dev, nil
}

// RunMLP trains and evaluates the signal classifier.
func RunMLP(args []string, stderr io.Writer) error {
	cfg, err := ParseMLP(args, stderr)
	if err != nil {
		return err
	}
	dev, err := setup(cfg.Run)
	if err != nil {
		return err
	}
	_, err = ml.NewMLPTrainer(cfg.MLP, dev).Train()
	return err
}

// RunTransformer trains the forecaster when --train is set and then serves
// the REPL when --repl is set. Without either flag it does nothing.
func RunTransformer(args []string, in io.Reader, out, stderr io.Writer) error {
	opts, err := ParseTransformer(args, stderr)
	if err != nil {
		return err
	}
	if !opts.Train && !opts.Repl {
		return nil
	}
	cfg := opts.Config
	dev, err := setup(cfg.Run)
	if err != nil {
		return err
	}

	var trainer *ml.TransformerTrainer
	if opts.Train {
		if opts.PlotLog != "" {
			closePlot, err := util.InitPlotLogger(opts.PlotLog, "validation")
			if err != nil {
				return err
			}
			defer closePlot()
		}
		sink := plot.NewImageSink(cfg.Transformer.PlotPath, cfg.Transformer.ShowPlot)
		trainer = ml.NewTransformerTrainer(cfg.Transformer, dev, sink, cfg.Run.Seed)
		if _, err := trainer.Train(); err != nil {
			return err
		}
	}

	if opts.Repl {
		if trainer == nil {
			fmt.Fprintln(out, "no trained model available; run with --train --repl")
			return nil
		}
		p, err := trainer.Predictor()
		if err != nil {
			return err
		}
		return (&REPL{Model: p, In: in, Out: out}).Run()
	}
	return nil
}
