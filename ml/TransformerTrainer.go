package ml

import (
	"math/rand"

	"signalpredictor/config"
	"signalpredictor/data"
	"signalpredictor/device"
	"signalpredictor/plot"
	"signalpredictor/util"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	torch "github.com/wangkuiyi/gotorch"
)

// TransformerTrainer trains the price forecaster on windows of a scalar
// series with shuffled mini-batches, MSE and Adam.
type TransformerTrainer struct {
	machine
	cfg    config.Transformer
	device device.Device
	sink   plot.Sink
	seed   int64
	rng    *rand.Rand

	data   *data.Split
	model  *Transformer
	opt    torch.Optimizer
	validX torch.Tensor
	validY torch.Tensor
	epoch  int
}

// EpochResult is the loss pair reported after each epoch.
type EpochResult struct {
	Epoch     int
	TrainLoss float64
	ValidLoss float64
}

// TransformerReport summarises a complete Train run.
type TransformerReport struct {
	Epochs     []EpochResult
	Evaluation SequenceEvaluation
}

// NewTransformerTrainer returns a trainer whose shuffling and dropout are
// driven by seed. sink receives the validation series; nil discards them.
func NewTransformerTrainer(cfg config.Transformer, dev device.Device, sink plot.Sink, seed int64) *TransformerTrainer {
	if sink == nil {
		sink = plot.NopSink{}
	}
	return &TransformerTrainer{
		cfg:    cfg,
		device: dev,
		sink:   sink,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// PrepareData loads the configured series, or generates the sine wave
// when no path is set, and windows it.
func (t *TransformerTrainer) PrepareData() error {
	if err := t.check(opPrepareData); err != nil {
		return err
	}
	s := t.cfg.Series
	if s.Path != "" {
		series, err := data.LoadSeries(s.Path)
		if err != nil {
			return errors.Wrap(err, "load series")
		}
		return t.UseSeries(series)
	}
	return t.UseSeries(data.SineWave(data.SineConfig{
		Length:    s.Length,
		Frequency: s.Frequency,
		Amplitude: s.Amplitude,
		Noise:     s.Noise,
		Seed:      t.seed,
	}))
}

// UseSeries windows series and splits it positionally.
func (t *TransformerTrainer) UseSeries(series []float64) error {
	if err := t.check(opPrepareData); err != nil {
		return err
	}
	x, y, err := data.Windows(series, t.cfg.InputWindow, t.cfg.ForecastHorizon)
	if err != nil {
		return err
	}
	s, err := data.SplitPositional(x, y, t.cfg.TrainFraction)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return errors.Wrapf(err, "series of length %d", len(series))
	}
	t.data = s
	util.Logger.WithFields(logrus.Fields{
		"train_x": []int{len(s.TrainX), s.FeatureCount()},
		"train_y": []int{len(s.TrainY), s.TargetCount()},
		"valid_x": []int{len(s.ValidX), s.FeatureCount()},
		"valid_y": []int{len(s.ValidY), s.TargetCount()},
	}).Info("series split")
	t.advance(DataPrepared)
	return nil
}

// BuildModel creates the forecaster and its optimizer on the device.
func (t *TransformerTrainer) BuildModel() error {
	if err := t.check(opBuildModel); err != nil {
		return err
	}
	m, err := NewTransformer(t.cfg, t.device, t.seed)
	if err != nil {
		return err
	}
	t.model = m
	t.opt = torch.Adam(t.cfg.LearningRate, 0.9, 0.999, 0)
	t.opt.AddParameters(m.Parameters())

	t.validX = FromRows(t.data.ValidX, t.device.Torch)
	t.validY = FromRows(t.data.ValidY, t.device.Torch)
	if err := checkTensor("build model", t.validX, -1, m.Window()); err != nil {
		return err
	}
	t.advance(ModelBuilt)
	return nil
}

// RunEpoch visits every training sample once in a fresh random order,
// then measures the validation loss with dropout off. The train loss is
// the mean of the batch losses.
func (t *TransformerTrainer) RunEpoch() (EpochResult, error) {
	if err := t.check(opRunEpoch); err != nil {
		return EpochResult{}, err
	}
	t.model.Train(true)

	n := len(t.data.TrainX)
	perm := t.rng.Perm(n)
	var total float64
	batches := 0
	for start := 0; start < n; start += t.cfg.BatchSize {
		end := start + t.cfg.BatchSize
		if end > n {
			end = n
		}
		idx := perm[start:end]
		x := FromRows(data.Gather(t.data.TrainX, idx), t.device.Torch)
		y := FromRows(data.Gather(t.data.TrainY, idx), t.device.Torch)

		t.opt.ZeroGrad()
		loss := mse(t.model.Forward(x), y)
		loss.Backward()
		t.opt.Step()

		total += scalar(loss)
		batches++
	}

	t.epoch++
	r := EpochResult{
		Epoch:     t.epoch,
		TrainLoss: total / float64(batches),
		ValidLoss: t.validLoss(),
	}
	util.Logger.WithFields(logrus.Fields{
		"epoch":      r.Epoch,
		"epochs":     t.cfg.Epochs,
		"train_loss": r.TrainLoss,
		"valid_loss": r.ValidLoss,
	}).Info("epoch")
	t.advance(Training)
	return r, nil
}

func (t *TransformerTrainer) validLoss() float64 {
	t.model.Train(false)
	defer t.model.Train(true)
	out := detached(t.model.Forward(t.validX))
	return scalar(mse(out, t.validY))
}

// Evaluate predicts the whole validation set with dropout off.
func (t *TransformerTrainer) Evaluate() (SequenceEvaluation, error) {
	if err := t.check(opEvaluate); err != nil {
		return SequenceEvaluation{}, err
	}
	t.model.Train(false)
	out := detached(t.model.Forward(t.validX))
	ev := SequenceEvaluation{
		Actual:    Flatten(t.data.ValidY),
		Predicted: Flatten(ToRows(out)),
	}
	ev.MSE = meanSquaredError(ev.Actual, ev.Predicted)
	util.Logger.WithFields(logrus.Fields{
		"mse":     ev.MSE,
		"samples": len(t.data.ValidX),
	}).Info("validation evaluated")
	t.advance(Evaluated)
	return ev, nil
}

// Predictor hands out single-window inference over the trained model.
func (t *TransformerTrainer) Predictor() (*SeriesPredictor, error) {
	if err := t.check(opPredictor); err != nil {
		return nil, err
	}
	t.model.Train(false)
	t.advance(Inferred)
	return &SeriesPredictor{model: t.model}, nil
}

// Train runs data preparation, every epoch and the evaluation, then hands
// the validation series to the sink.
func (t *TransformerTrainer) Train() (*TransformerReport, error) {
	if err := t.PrepareData(); err != nil {
		return nil, err
	}
	if err := t.BuildModel(); err != nil {
		return nil, err
	}
	util.Logger.WithFields(logrus.Fields{
		"d_model":          t.cfg.DModel,
		"nhead":            t.cfg.NHead,
		"num_layers":       t.cfg.NumLayers,
		"dim_feedforward":  t.cfg.DimFeedforward,
		"dropout":          t.cfg.Dropout,
		"input_window":     t.cfg.InputWindow,
		"forecast_horizon": t.cfg.ForecastHorizon,
		"epochs":           t.cfg.Epochs,
		"batch_size":       t.cfg.BatchSize,
		"learning_rate":    t.cfg.LearningRate,
		"device":           t.device.Kind,
	}).Info("training with hyperparameters")

	r := &TransformerReport{}
	for i := 0; i < t.cfg.Epochs; i++ {
		e, err := t.RunEpoch()
		if err != nil {
			return nil, err
		}
		r.Epochs = append(r.Epochs, e)
	}

	var err error
	if r.Evaluation, err = t.Evaluate(); err != nil {
		return nil, err
	}
	if err := t.sink.Render(r.Evaluation.Actual, r.Evaluation.Predicted); err != nil {
		return nil, errors.Wrap(err, "render validation plot")
	}
	return r, nil
}
