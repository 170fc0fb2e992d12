package ml

import (
	"signalpredictor/device"
	"signalpredictor/util"

	"github.com/sirupsen/logrus"
)

// PredictorInput is one row of classifier features.
type PredictorInput struct {
	Time     float64
	Momentum float64
	Mentions float64
}

// ExampleInput is the input of the inference run after training.
var ExampleInput = PredictorInput{Time: 3, Momentum: 2.5, Mentions: 35}

func (in PredictorInput) row() []float32 {
	return []float32{float32(in.Time), float32(in.Momentum), float32(in.Mentions)}
}

func (in PredictorInput) fields() logrus.Fields {
	return logrus.Fields{"time": in.Time, "momentum": in.Momentum, "mentions": in.Mentions}
}

// MLPPredictor runs single-row inference on a trained classifier.
type MLPPredictor struct {
	net    *MLPModule
	device device.Device
}

// Predict returns the signal probability for in.
func (p *MLPPredictor) Predict(in PredictorInput) (float64, error) {
	row := in.row()
	if err := checkRows("predict", [][]float32{row}, p.net.Features); err != nil {
		return 0, err
	}
	util.Logger.WithFields(in.fields()).Info("predicting trade")
	out := detached(p.net.Forward(FromRows([][]float32{row}, p.device.Torch)))
	pred := ToRows(out)[0][0]
	util.Logger.WithField("prediction", pred).Info("predicted trade")
	return pred, nil
}

// SeriesPredictor runs single-window inference on a trained forecaster.
type SeriesPredictor struct {
	model *Transformer
}

// Window is the number of values Predict expects.
func (p *SeriesPredictor) Window() int {
	return int(p.model.Window())
}

// Predict forecasts the next horizon values after window. Dropout is off
// for the call and the model's mode is restored afterwards.
func (p *SeriesPredictor) Predict(window []float64) ([]float64, error) {
	row := toFloat32(window)
	if err := checkRows("predict", [][]float32{row}, p.model.Window()); err != nil {
		return nil, err
	}
	was := p.model.IsTraining()
	p.model.Train(false)
	defer p.model.Train(was)

	out := detached(p.model.Forward(FromRows([][]float32{row}, p.model.device.Torch)))
	pred := ToRows(out)[0]
	util.Logger.WithField("prediction", pred).Debug("forecast")
	return pred, nil
}
