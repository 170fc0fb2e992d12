package data

import (
	"github.com/pkg/errors"
)

// Split is a train/validation partition of features and targets. Rows are
// kept in source order.
type Split struct {
	TrainX, TrainY [][]float32
	ValidX, ValidY [][]float32
}

// SplitPositional keeps the first int(len(x)*trainFraction) samples for
// training and the remainder for validation.
func SplitPositional(x, y [][]float32, trainFraction float64) (*Split, error) {
	if len(x) != len(y) {
		return nil, errors.Errorf("data: %d inputs but %d targets", len(x), len(y))
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, errors.Errorf("data: train fraction %g outside (0, 1)", trainFraction)
	}
	cut := int(float64(len(x)) * trainFraction)
	return &Split{
		TrainX: x[:cut],
		TrainY: y[:cut],
		ValidX: x[cut:],
		ValidY: y[cut:],
	}, nil
}

// FeatureCount is the width of an input row.
func (s *Split) FeatureCount() int {
	return width(s.TrainX)
}

// TargetCount is the width of a target row.
func (s *Split) TargetCount() int {
	return width(s.TrainY)
}

// Validate checks the split can feed a model: non-empty partitions,
// rectangular rows and matching widths between partitions.
func (s *Split) Validate() error {
	if len(s.TrainX) == 0 {
		return errors.Wrap(ErrNotEnoughData, "empty training partition")
	}
	if len(s.ValidX) == 0 {
		return errors.Wrap(ErrNotEnoughData, "empty validation partition")
	}
	if len(s.TrainX) != len(s.TrainY) || len(s.ValidX) != len(s.ValidY) {
		return errors.New("data: inputs and targets have different lengths")
	}
	fw, tw := s.FeatureCount(), s.TargetCount()
	parts := []struct {
		name  string
		rows  [][]float32
		width int
	}{
		{"train inputs", s.TrainX, fw},
		{"train targets", s.TrainY, tw},
		{"valid inputs", s.ValidX, fw},
		{"valid targets", s.ValidY, tw},
	}
	for _, p := range parts {
		if err := rectangular(p.rows, p.width); err != nil {
			return errors.Wrap(err, p.name)
		}
	}
	return nil
}

// Gather returns rows reordered by idx. The row slices are shared.
func Gather(rows [][]float32, idx []int) [][]float32 {
	out := make([][]float32, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func width(rows [][]float32) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

func rectangular(rows [][]float32, want int) error {
	for i, r := range rows {
		if len(r) != want {
			return errors.Wrapf(ErrRagged, "row %d has %d values, want %d", i, len(r), want)
		}
	}
	return nil
}
