package plot

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"signalpredictor/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectionCorners(t *testing.T) {
	area := image.Rect(10, 10, 110, 60)
	p := newProjection(area, []float64{-1, 0, 1}, []float64{0.5, 0.5, 0.5})

	assert.Equal(t, image.Pt(10, 59), p.point(0, -1))
	assert.Equal(t, image.Pt(109, 10), p.point(2, 1))
	mid := p.point(1, 0)
	assert.Equal(t, 59, mid.X)
	assert.InDelta(t, 35, mid.Y, 1)
}

func TestProjectionFlatSeries(t *testing.T) {
	p := newProjection(image.Rect(0, 0, 100, 100), []float64{2, 2})
	pt := p.point(0, 2)
	assert.True(t, pt.In(image.Rect(0, 0, 100, 100)))
}

func TestNopSinkLengths(t *testing.T) {
	assert.NoError(t, NopSink{}.Render([]float64{1, 2}, []float64{1, 2}))
	assert.Error(t, NopSink{}.Render([]float64{1, 2}, []float64{1}))
}

func TestImageSinkRejects(t *testing.T) {
	s := NewImageSink(filepath.Join(t.TempDir(), "out.png"), false)
	assert.Error(t, s.Render([]float64{1}, nil))

	s.Width = 50
	assert.Error(t, s.Render([]float64{1}, []float64{1}))
}

func TestImageSinkWritesFileAndPoints(t *testing.T) {
	dir := t.TempDir()
	closePlot, err := util.InitPlotLogger(filepath.Join(dir, "points.jsonl"), "test")
	require.NoError(t, err)
	defer func() { util.PlotLogger = nil }()

	out := filepath.Join(dir, "out.png")
	s := NewImageSink(out, false)
	require.NoError(t, s.Render([]float64{0, 1, 0, -1}, []float64{0.1, 0.9, 0.1, -0.8}))
	require.NoError(t, closePlot())

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	points, err := os.ReadFile(filepath.Join(dir, "points.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(points), `"predicted":0.9`)
	assert.Contains(t, string(points), `"step":3`)
}
