package config

import (
	"github.com/pkg/errors"
)

// Overrides captures CLI supplied values. Zero values leave the loaded
// configuration untouched; Seed is a pointer so that an explicit 0 applies.
type Overrides struct {
	TrainPath  string
	TestPath   string
	Hidden     int
	Epochs     int
	SeriesPath string
	PlotPath   string
	ShowPlot   bool
	Device     string
	Seed       *int64
	LogLevel   string
	LogFormat  string
}

// ApplyMLP updates the MLP and run sections using any non-zero override.
func (c *Config) ApplyMLP(o Overrides) {
	if o.TrainPath != "" {
		c.MLP.TrainPath = o.TrainPath
	}
	if o.TestPath != "" {
		c.MLP.TestPath = o.TestPath
	}
	if o.Hidden > 0 {
		c.MLP.HiddenNeurons = o.Hidden
	}
	if o.Epochs > 0 {
		c.MLP.Epochs = o.Epochs
	}
	c.applyRun(o)
}

// ApplyTransformer updates the transformer and run sections using any
// non-zero override.
func (c *Config) ApplyTransformer(o Overrides) {
	if o.Epochs > 0 {
		c.Transformer.Epochs = o.Epochs
	}
	if o.SeriesPath != "" {
		c.Transformer.Series.Path = o.SeriesPath
	}
	if o.PlotPath != "" {
		c.Transformer.PlotPath = o.PlotPath
	}
	if o.ShowPlot {
		c.Transformer.ShowPlot = true
	}
	c.applyRun(o)
}

func (c *Config) applyRun(o Overrides) {
	if o.Device != "" {
		c.Run.Device = o.Device
	}
	if o.Seed != nil {
		c.Run.Seed = *o.Seed
	}
	if o.LogLevel != "" {
		c.Run.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Run.LogFormat = o.LogFormat
	}
}

// Validate verifies the MLP section is runnable.
func (m MLP) Validate() error {
	if m.HiddenNeurons <= 0 {
		return errors.Errorf("hidden_neurons must be > 0 (got %d)", m.HiddenNeurons)
	}
	if m.Epochs <= 0 {
		return errors.Errorf("epochs must be > 0 (got %d)", m.Epochs)
	}
	if m.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %g)", m.LearningRate)
	}
	if m.ReportEvery <= 0 {
		return errors.Errorf("report_every must be > 0 (got %d)", m.ReportEvery)
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		return errors.Errorf("threshold must be in (0, 1) (got %g)", m.Threshold)
	}
	if m.TrainPath == "" || m.TestPath == "" {
		return errors.New("train_path and test_path must be set")
	}
	return nil
}

// ValidateModel verifies the fields that shape the network.
func (t Transformer) ValidateModel() error {
	if err := positive(
		field{"d_model", t.DModel},
		field{"nhead", t.NHead},
		field{"num_layers", t.NumLayers},
		field{"dim_feedforward", t.DimFeedforward},
		field{"input_window", t.InputWindow},
		field{"forecast_horizon", t.ForecastHorizon},
	); err != nil {
		return err
	}
	if t.DModel%t.NHead != 0 {
		return errors.Errorf("d_model (%d) must be divisible by nhead (%d)", t.DModel, t.NHead)
	}
	if t.Dropout < 0 || t.Dropout >= 1 {
		return errors.Errorf("dropout must be in [0, 1) (got %g)", t.Dropout)
	}
	return nil
}

// Validate verifies the transformer section is runnable.
func (t Transformer) Validate() error {
	if err := t.ValidateModel(); err != nil {
		return err
	}
	if err := positive(field{"epochs", t.Epochs}, field{"batch_size", t.BatchSize}); err != nil {
		return err
	}
	if t.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %g)", t.LearningRate)
	}
	if t.TrainFraction <= 0 || t.TrainFraction >= 1 {
		return errors.Errorf("train_fraction must be in (0, 1) (got %g)", t.TrainFraction)
	}
	if t.Series.Path == "" && t.Series.Length <= 0 {
		return errors.Errorf("series length must be > 0 (got %d)", t.Series.Length)
	}
	return nil
}

type field struct {
	name  string
	value int
}

func positive(fields ...field) error {
	for _, f := range fields {
		if f.value <= 0 {
			return errors.Errorf("%s must be > 0 (got %d)", f.name, f.value)
		}
	}
	return nil
}

// Validate verifies the run section.
func (r Run) Validate() error {
	switch r.Device {
	case "auto", "cpu", "cuda":
	default:
		return errors.Errorf("device must be auto, cpu or cuda (got %q)", r.Device)
	}
	return nil
}
