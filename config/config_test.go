package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.MLP.Validate())
	require.NoError(t, cfg.Transformer.Validate())
	require.NoError(t, cfg.Run.Validate())
	assert.Equal(t, 0.01, cfg.MLP.LearningRate)
	assert.Equal(t, 0.001, cfg.Transformer.LearningRate)
	assert.Equal(t, 32, cfg.Transformer.BatchSize)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	body := `
transformer:
  d_model: 32
  nhead: 8
  series:
    length: 500
run:
  device: cpu
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Transformer.DModel)
	assert.Equal(t, 8, cfg.Transformer.NHead)
	assert.Equal(t, 500, cfg.Transformer.Series.Length)
	assert.Equal(t, 0.01, cfg.Transformer.Series.Frequency)
	assert.Equal(t, "cpu", cfg.Run.Device)
	assert.Equal(t, 100, cfg.MLP.Epochs)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mlp:\n  layers: 3\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	seed := int64(7)
	cfg.ApplyMLP(Overrides{TrainPath: "a.csv", Epochs: 5, Seed: &seed})
	assert.Equal(t, "a.csv", cfg.MLP.TrainPath)
	assert.Equal(t, "./data/test.csv", cfg.MLP.TestPath)
	assert.Equal(t, 5, cfg.MLP.Epochs)
	assert.Equal(t, int64(7), cfg.Run.Seed)

	cfg.ApplyTransformer(Overrides{Epochs: 3, ShowPlot: true, Device: "cpu"})
	assert.Equal(t, 3, cfg.Transformer.Epochs)
	assert.True(t, cfg.Transformer.ShowPlot)
	assert.Equal(t, "cpu", cfg.Run.Device)
	assert.Equal(t, 5, cfg.MLP.Epochs)
	assert.Equal(t, int64(7), cfg.Run.Seed)
}

func TestApplyExplicitZeroSeed(t *testing.T) {
	cfg := Default()
	cfg.Run.Seed = 42
	zero := int64(0)
	cfg.ApplyTransformer(Overrides{Seed: &zero})
	assert.Equal(t, int64(0), cfg.Run.Seed)
}

func TestTransformerValidate(t *testing.T) {
	cases := map[string]func(*Transformer){
		"heads do not divide d_model": func(c *Transformer) { c.NHead = 5 },
		"dropout one":                 func(c *Transformer) { c.Dropout = 1 },
		"zero window":                 func(c *Transformer) { c.InputWindow = 0 },
		"fraction one":                func(c *Transformer) { c.TrainFraction = 1 },
		"no series":                   func(c *Transformer) { c.Series.Length = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default().Transformer
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default().Transformer
	cfg.Series.Length = 0
	cfg.Series.Path = "series.csv"
	assert.NoError(t, cfg.Validate())
}

func TestTransformerValidateModelIgnoresTrainingFields(t *testing.T) {
	cfg := Default().Transformer
	cfg.Epochs = 0
	cfg.BatchSize = 0
	cfg.LearningRate = 0
	cfg.Series.Length = 0
	assert.NoError(t, cfg.ValidateModel())
	assert.Error(t, cfg.Validate())

	cfg = Default().Transformer
	cfg.ForecastHorizon = 0
	assert.Error(t, cfg.ValidateModel())
	cfg = Default().Transformer
	cfg.NHead = 3
	assert.Error(t, cfg.ValidateModel())
}

func TestValidateErrorsCarryStack(t *testing.T) {
	m := Default().MLP
	m.HiddenNeurons = 0
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%+v", err), "config.MLP.Validate")

	r := Default().Run
	r.Device = "tpu"
	err = r.Validate()
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%+v", err), "config.Run.Validate")
}

func TestMLPAndRunValidate(t *testing.T) {
	m := Default().MLP
	m.Threshold = 1
	assert.Error(t, m.Validate())

	r := Default().Run
	r.Device = "tpu"
	assert.Error(t, r.Validate())
}
