package ml

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Evaluation is the test-set result of the signal classifier.
type Evaluation struct {
	Accuracy float64
}

// SequenceEvaluation is the validation-set result of the forecaster. Actual
// and Predicted are flattened in sample order.
type SequenceEvaluation struct {
	MSE       float64
	Actual    []float64
	Predicted []float64
}

// accuracy is the fraction of rows where every thresholded output equals
// its label.
func accuracy(probs [][]float64, labels [][]float32, threshold float64) float64 {
	if len(probs) == 0 {
		return 0
	}
	hits := make([]float64, len(probs))
	for i, row := range probs {
		hit := 1.0
		for j, p := range row {
			class := 0.0
			if p > threshold {
				class = 1
			}
			if class != float64(labels[i][j]) {
				hit = 0
				break
			}
		}
		hits[i] = hit
	}
	return stat.Mean(hits, nil)
}

// meanSquaredError over two equal-length series.
func meanSquaredError(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	d := make([]float64, len(actual))
	floats.SubTo(d, predicted, actual)
	return floats.Dot(d, d) / float64(len(d))
}
