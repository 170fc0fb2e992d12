package data

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyTable    = errors.New("data: table has no rows")
	ErrRagged        = errors.New("data: rows have different column counts")
	ErrNotEnoughData = errors.New("data: not enough data")
)

// Table is a numeric CSV loaded into a dense matrix. Header is nil when the
// source had none.
type Table struct {
	Header []string
	Data   *mat.Dense
}

// LoadTable reads the CSV file at path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open table")
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return t, nil
}

// ReadTable parses comma separated numeric rows. A first row that does not
// parse as numbers is taken as the header.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		header []string
		values []float64
		cols   int
		rows   int
	)
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		parsed, perr := parseRow(record)
		if perr != nil {
			if line == 1 {
				header = trimAll(record)
				cols = len(record)
				continue
			}
			return nil, errors.Wrapf(perr, "line %d", line)
		}
		if cols == 0 {
			cols = len(parsed)
		}
		if len(parsed) != cols {
			return nil, errors.Wrapf(ErrRagged, "line %d has %d columns, want %d", line, len(parsed), cols)
		}
		values = append(values, parsed...)
		rows++
	}
	if rows == 0 {
		return nil, ErrEmptyTable
	}
	return &Table{Header: header, Data: mat.NewDense(rows, cols, values)}, nil
}

func parseRow(record []string) ([]float64, error) {
	out := make([]float64, len(record))
	for i, cell := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
		out[i] = v
	}
	return out, nil
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, s := range record {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// Split returns the feature columns and the last column as one-element
// label rows.
func (t *Table) Split() (features, labels [][]float32, err error) {
	rows, cols := t.Data.Dims()
	if cols < 2 {
		return nil, nil, errors.Wrapf(ErrNotEnoughData, "need a feature and a label column, got %d columns", cols)
	}
	features = make([][]float32, rows)
	labels = make([][]float32, rows)
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, t.Data)
		features[i] = toFloat32(row[:cols-1])
		labels[i] = []float32{float32(row[cols-1])}
	}
	return features, labels, nil
}

// PrepareTabular loads the two pre-split sources of the signal classifier.
func PrepareTabular(trainPath, testPath string) (*Split, error) {
	train, err := LoadTable(trainPath)
	if err != nil {
		return nil, err
	}
	test, err := LoadTable(testPath)
	if err != nil {
		return nil, err
	}

	s := &Split{}
	if s.TrainX, s.TrainY, err = train.Split(); err != nil {
		return nil, errors.Wrap(err, trainPath)
	}
	if s.ValidX, s.ValidY, err = test.Split(); err != nil {
		return nil, errors.Wrap(err, testPath)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func toFloat32(xs []float64) []float32 {
	out := make([]float32, len(xs))
	for i, v := range xs {
		out[i] = float32(v)
	}
	return out
}
