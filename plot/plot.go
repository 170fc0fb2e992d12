// Package plot draws the forecaster's validation series.
package plot

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Sink receives the ground truth and prediction series after evaluation.
type Sink interface {
	Render(actual, predicted []float64) error
}

// NopSink discards the series.
type NopSink struct{}

func (NopSink) Render(actual, predicted []float64) error {
	return checkLengths(actual, predicted)
}

func checkLengths(actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return errors.Errorf("plot: %d actual values but %d predictions", len(actual), len(predicted))
	}
	return nil
}

// projection maps step/value pairs into a pixel rectangle. Larger values
// go up.
type projection struct {
	area       image.Rectangle
	n          int
	minV, maxV float64
}

func newProjection(area image.Rectangle, series ...[]float64) projection {
	p := projection{area: area}
	first := true
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		if len(s) > p.n {
			p.n = len(s)
		}
		lo, hi := floats.Min(s), floats.Max(s)
		if first || lo < p.minV {
			p.minV = lo
		}
		if first || hi > p.maxV {
			p.maxV = hi
		}
		first = false
	}
	if p.maxV == p.minV {
		p.minV -= 0.5
		p.maxV += 0.5
	}
	return p
}

func (p projection) point(step int, v float64) image.Point {
	x := p.area.Min.X
	if p.n > 1 {
		x += step * (p.area.Dx() - 1) / (p.n - 1)
	}
	frac := (v - p.minV) / (p.maxV - p.minV)
	y := p.area.Max.Y - 1 - int(frac*float64(p.area.Dy()-1)+0.5)
	return image.Pt(x, y)
}
