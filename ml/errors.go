package ml

import (
	"fmt"

	torch "github.com/wangkuiyi/gotorch"
)

// ShapeError reports a tensor whose shape disagrees with the model
// configuration.
type ShapeError struct {
	Op   string
	Want []int64
	Got  []int64
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("ml: %s: shape mismatch: want %v, got %v", e.Op, e.Want, e.Got)
}

// checkShape compares got against want; a negative entry in want matches
// any size.
func checkShape(op string, got []int64, want ...int64) error {
	if len(got) != len(want) {
		return &ShapeError{Op: op, Want: want, Got: got}
	}
	for i := range want {
		if want[i] >= 0 && got[i] != want[i] {
			return &ShapeError{Op: op, Want: want, Got: got}
		}
	}
	return nil
}

func checkTensor(op string, t torch.Tensor, want ...int64) error {
	return checkShape(op, t.Shape(), want...)
}

func checkRows(op string, rows [][]float32, width int64) error {
	for _, r := range rows {
		if int64(len(r)) != width {
			return &ShapeError{Op: op, Want: []int64{-1, width}, Got: []int64{int64(len(rows)), int64(len(r))}}
		}
	}
	return nil
}
