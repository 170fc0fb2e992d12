package data

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SineConfig describes a noisy sine series.
type SineConfig struct {
	Length    int
	Frequency float64
	Amplitude float64
	Noise     float64 // standard deviation of the additive gaussian noise
	Seed      int64
}

// SineWave returns amplitude*sin(2*pi*frequency*x) + N(0, noise) for
// x = 0..Length-1.
func SineWave(cfg SineConfig) []float64 {
	if cfg.Length <= 0 {
		return nil
	}
	xs := make([]float64, cfg.Length)
	if cfg.Length > 1 {
		floats.Span(xs, 0, float64(cfg.Length-1))
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	out := make([]float64, cfg.Length)
	for i, x := range xs {
		out[i] = cfg.Amplitude*math.Sin(2*math.Pi*cfg.Frequency*x) + rng.NormFloat64()*cfg.Noise
	}
	return out
}

// LoadSeries reads the first column of a CSV file as a series.
func LoadSeries(path string) ([]float64, error) {
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, t.Data), nil
}

// Windows slides over series and emits one sample per start position:
// input series[i:i+window] and target series[i+window:i+window+horizon].
func Windows(series []float64, window, horizon int) (x, y [][]float32, err error) {
	if window <= 0 || horizon <= 0 {
		return nil, nil, errors.Errorf("data: window (%d) and horizon (%d) must be > 0", window, horizon)
	}
	n := len(series) - window - horizon + 1
	if n <= 0 {
		return [][]float32{}, [][]float32{}, nil
	}
	x = make([][]float32, n)
	y = make([][]float32, n)
	for i := 0; i < n; i++ {
		x[i] = toFloat32(series[i : i+window])
		y[i] = toFloat32(series[i+window : i+window+horizon])
	}
	return x, y, nil
}
