package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MLP holds the hyperparameters of the tabular signal classifier.
type MLP struct {
	HiddenNeurons int     `yaml:"hidden_neurons"`
	Epochs        int     `yaml:"epochs"`
	LearningRate  float64 `yaml:"learning_rate"`
	ReportEvery   int     `yaml:"report_every"`
	Threshold     float64 `yaml:"threshold"`
	TrainPath     string  `yaml:"train_path"`
	TestPath      string  `yaml:"test_path"`
}

// Series describes the synthetic sine series, or a CSV to load instead.
type Series struct {
	Length    int     `yaml:"length"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
	Noise     float64 `yaml:"noise"`
	Path      string  `yaml:"path"`
}

// Transformer holds the hyperparameters of the price forecaster.
type Transformer struct {
	DModel          int     `yaml:"d_model"`
	NHead           int     `yaml:"nhead"`
	NumLayers       int     `yaml:"num_layers"`
	DimFeedforward  int     `yaml:"dim_feedforward"`
	Dropout         float64 `yaml:"dropout"`
	InputWindow     int     `yaml:"input_window"`
	ForecastHorizon int     `yaml:"forecast_horizon"`
	Epochs          int     `yaml:"epochs"`
	BatchSize       int     `yaml:"batch_size"`
	LearningRate    float64 `yaml:"learning_rate"`
	TrainFraction   float64 `yaml:"train_fraction"`
	Series          Series  `yaml:"series"`
	PlotPath        string  `yaml:"plot_path"`
	ShowPlot        bool    `yaml:"show_plot"`
}

// Run holds process-wide settings read once at startup.
type Run struct {
	Device    string `yaml:"device"`
	Seed      int64  `yaml:"seed"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Config is the whole configuration file.
type Config struct {
	MLP         MLP         `yaml:"mlp"`
	Transformer Transformer `yaml:"transformer"`
	Run         Run         `yaml:"run"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MLP: MLP{
			HiddenNeurons: 16,
			Epochs:        100,
			LearningRate:  0.01,
			ReportEvery:   10,
			Threshold:     0.5,
			TrainPath:     "./data/train.csv",
			TestPath:      "./data/test.csv",
		},
		Transformer: Transformer{
			DModel:          64,
			NHead:           4,
			NumLayers:       2,
			DimFeedforward:  128,
			Dropout:         0.1,
			InputWindow:     30,
			ForecastHorizon: 1,
			Epochs:          20,
			BatchSize:       32,
			LearningRate:    0.001,
			TrainFraction:   0.8,
			Series: Series{
				Length:    2000,
				Frequency: 0.01,
				Amplitude: 1.0,
				Noise:     0.1,
			},
			PlotPath: "validation.png",
		},
		Run: Run{
			Device:    "auto",
			Seed:      42,
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}
