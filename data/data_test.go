package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableWithHeader(t *testing.T) {
	src := "time,momentum,mentions,label\n1,0.5,10,0\n2, 1.5 ,20,1\n"
	tab, err := ReadTable(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"time", "momentum", "mentions", "label"}, tab.Header)

	features, labels, err := tab.Split()
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0.5, 10}, {2, 1.5, 20}}, features)
	assert.Equal(t, [][]float32{{0}, {1}}, labels)
}

func TestReadTableWithoutHeader(t *testing.T) {
	tab, err := ReadTable(strings.NewReader("1,2,0\n3,4,1\n5,6,1\n"))
	require.NoError(t, err)
	assert.Nil(t, tab.Header)
	rows, cols := tab.Data.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
}

func TestReadTableErrors(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b,label\n"))
	assert.True(t, errors.Is(err, ErrEmptyTable))

	_, err = ReadTable(strings.NewReader("1,2,0\n3,4\n"))
	assert.True(t, errors.Is(err, ErrRagged))

	_, err = ReadTable(strings.NewReader("1,2,0\n3,x,1\n"))
	assert.Error(t, err)

	tab, err := ReadTable(strings.NewReader("1\n2\n"))
	require.NoError(t, err)
	_, _, err = tab.Split()
	assert.True(t, errors.Is(err, ErrNotEnoughData))
}

func TestPrepareTabular(t *testing.T) {
	dir := t.TempDir()
	train := writeCSV(t, dir, "train.csv", 100)
	test := writeCSV(t, dir, "test.csv", 20)

	s, err := PrepareTabular(train, test)
	require.NoError(t, err)
	assert.Len(t, s.TrainX, 100)
	assert.Len(t, s.ValidX, 20)
	assert.Equal(t, 3, s.FeatureCount())
	assert.Equal(t, 1, s.TargetCount())
}

func TestPrepareTabularMissingFile(t *testing.T) {
	dir := t.TempDir()
	train := writeCSV(t, dir, "train.csv", 10)
	_, err := PrepareTabular(train, filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestPrepareTabularFeatureMismatch(t *testing.T) {
	dir := t.TempDir()
	train := writeCSV(t, dir, "train.csv", 10)
	test := filepath.Join(dir, "test.csv")
	require.NoError(t, os.WriteFile(test, []byte("1,2,1\n3,4,0\n"), 0o644))
	_, err := PrepareTabular(train, test)
	assert.True(t, errors.Is(err, ErrRagged))
}

func TestWindowsCountAndContents(t *testing.T) {
	series := []float64{0, 1, 2, 3, 4, 5, 6}
	for _, tc := range []struct{ w, h, want int }{
		{3, 1, 4},
		{2, 2, 4},
		{6, 1, 1},
		{6, 2, 0},
		{10, 1, 0},
	} {
		x, y, err := Windows(series, tc.w, tc.h)
		require.NoError(t, err)
		assert.Len(t, x, tc.want, "w=%d h=%d", tc.w, tc.h)
		assert.Len(t, y, tc.want, "w=%d h=%d", tc.w, tc.h)
		for i := range x {
			require.Len(t, x[i], tc.w)
			require.Len(t, y[i], tc.h)
			assert.Equal(t, float32(i), x[i][0])
			assert.Equal(t, float32(i+tc.w), y[i][0])
			assert.Equal(t, x[i][tc.w-1]+1, y[i][0])
		}
	}

	_, _, err := Windows(series, 0, 1)
	assert.Error(t, err)
}

func TestSplitPositionalPartitions(t *testing.T) {
	x, y, err := Windows(SineWave(SineConfig{Length: 2000, Frequency: 0.01, Amplitude: 1, Noise: 0.1, Seed: 42}), 30, 1)
	require.NoError(t, err)
	require.Len(t, x, 1970)

	s, err := SplitPositional(x, y, 0.8)
	require.NoError(t, err)
	assert.Len(t, s.TrainX, 1576)
	assert.Len(t, s.ValidX, 394)
	assert.Equal(t, x, append(append([][]float32{}, s.TrainX...), s.ValidX...))
	assert.Equal(t, y, append(append([][]float32{}, s.TrainY...), s.ValidY...))
	require.NoError(t, s.Validate())

	_, err = SplitPositional(x, y[:10], 0.8)
	assert.Error(t, err)
	_, err = SplitPositional(x, y, 1)
	assert.Error(t, err)
}

func TestSplitValidate(t *testing.T) {
	s := &Split{TrainX: [][]float32{{1}}, TrainY: [][]float32{{1}}}
	assert.True(t, errors.Is(s.Validate(), ErrNotEnoughData))

	s.ValidX = [][]float32{{1, 2}}
	s.ValidY = [][]float32{{1}}
	assert.True(t, errors.Is(s.Validate(), ErrRagged))
}

func TestSplitValidateReportsFirstRaggedPartition(t *testing.T) {
	s := &Split{
		TrainX: [][]float32{{1, 2}, {1}},
		TrainY: [][]float32{{1}, {1}},
		ValidX: [][]float32{{1, 2}, {1, 2, 3}},
		ValidY: [][]float32{{1}, {1, 2}},
	}
	for i := 0; i < 20; i++ {
		err := s.Validate()
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "train inputs: row 1"), err.Error())
	}

	s.TrainX[1] = []float32{1, 2}
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "valid inputs: row 1"), err.Error())
}

func TestSineWaveDeterministic(t *testing.T) {
	cfg := SineConfig{Length: 50, Frequency: 0.1, Amplitude: 2, Noise: 0.1, Seed: 3}
	a, b := SineWave(cfg), SineWave(cfg)
	assert.Equal(t, a, b)
	assert.Len(t, a, 50)

	clean := SineWave(SineConfig{Length: 5, Frequency: 0.25, Amplitude: 2})
	assert.InDelta(t, 0, clean[0], 1e-12)
	assert.InDelta(t, 2, clean[1], 1e-12)
	assert.InDelta(t, -2, clean[3], 1e-12)

	assert.Nil(t, SineWave(SineConfig{}))
	assert.Len(t, SineWave(SineConfig{Length: 1}), 1)
}

func TestLoadSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("price\n1.5\n2.5\n3.5\n"), 0o644))
	s, err := LoadSeries(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, s)
}

func TestGather(t *testing.T) {
	rows := [][]float32{{0}, {1}, {2}}
	assert.Equal(t, [][]float32{{2}, {0}, {1}}, Gather(rows, []int{2, 0, 1}))
}

func writeCSV(t *testing.T, dir, name string, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,momentum,mentions,label\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,%.2f,%d,%d\n", i%10, float64(i%7)/2, 10+i%40, i%2)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}
