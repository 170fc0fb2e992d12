package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"signalpredictor/util"

	"github.com/pkg/errors"
)

// Forecaster is what the REPL needs from a trained model.
type Forecaster interface {
	Window() int
	Predict(window []float64) ([]float64, error)
}

// REPL reads one window per line and prints its forecast. quit, exit or
// end of input stop it.
type REPL struct {
	Model Forecaster
	In    io.Reader
	Out   io.Writer
}

func (r *REPL) Run() error {
	fmt.Fprintf(r.Out, "enter %d comma or space separated values, or quit\n", r.Model.Window())
	sc := bufio.NewScanner(r.In)
	for {
		fmt.Fprint(r.Out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(r.Out)
			return errors.Wrap(sc.Err(), "read input")
		}
		line := strings.TrimSpace(sc.Text())
		util.Debug(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		window, err := parseWindow(line)
		if err == nil {
			var pred []float64
			if pred, err = r.Model.Predict(window); err == nil {
				fmt.Fprintln(r.Out, formatValues(pred))
				continue
			}
		}
		fmt.Fprintf(r.Out, "error: %v\n", err)
	}
}

func parseWindow(line string) ([]float64, error) {
	fields := strings.FieldsFunc(line, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t'
	})
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Errorf("value %d: %q is not a number", i+1, f)
		}
		out[i] = v
	}
	return out, nil
}

func formatValues(vs []float64) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strings.Join(s, ", ")
}
