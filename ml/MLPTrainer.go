package ml

import (
	"signalpredictor/config"
	"signalpredictor/data"
	"signalpredictor/device"
	"signalpredictor/util"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	torch "github.com/wangkuiyi/gotorch"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

// MLPTrainer trains the signal classifier full-batch with Adam and BCE.
type MLPTrainer struct {
	machine
	cfg    config.MLP
	device device.Device

	data   *data.Split
	net    *MLPModule
	opt    torch.Optimizer
	trainX torch.Tensor
	trainY torch.Tensor
	epoch  int
}

// MLPReport summarises a complete Train run.
type MLPReport struct {
	FinalLoss         float64
	Evaluation        Evaluation
	ExamplePrediction float64
}

func NewMLPTrainer(cfg config.MLP, dev device.Device) *MLPTrainer {
	return &MLPTrainer{cfg: cfg, device: dev}
}

// PrepareData loads the train and test CSVs.
func (t *MLPTrainer) PrepareData() error {
	if err := t.check(opPrepareData); err != nil {
		return err
	}
	s, err := data.PrepareTabular(t.cfg.TrainPath, t.cfg.TestPath)
	if err != nil {
		return errors.Wrap(err, "prepare tabular data")
	}
	return t.UseData(s)
}

// UseData installs an already loaded split in place of PrepareData.
func (t *MLPTrainer) UseData(s *data.Split) error {
	if err := t.check(opPrepareData); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	t.data = s
	util.Logger.WithFields(logrus.Fields{
		"train_rows": len(s.TrainX),
		"test_rows":  len(s.ValidX),
		"features":   s.FeatureCount(),
	}).Info("tabular data prepared")
	t.advance(DataPrepared)
	return nil
}

// BuildModel sizes the classifier from the prepared features.
func (t *MLPTrainer) BuildModel() error {
	if err := t.check(opBuildModel); err != nil {
		return err
	}
	features := int64(t.data.FeatureCount())
	t.net = NewMLP(features, int64(t.cfg.HiddenNeurons), int64(t.data.TargetCount()))
	t.net.To(t.device.Torch)

	t.opt = torch.Adam(t.cfg.LearningRate, 0.9, 0.999, 0)
	t.opt.AddParameters(t.net.Parameters())

	t.trainX = FromRows(t.data.TrainX, t.device.Torch)
	t.trainY = FromRows(t.data.TrainY, t.device.Torch)
	if err := checkTensor("build model", t.trainX, -1, features); err != nil {
		return err
	}
	t.advance(ModelBuilt)
	return nil
}

// RunEpoch makes one optimizer step over the whole training set and
// returns its loss.
func (t *MLPTrainer) RunEpoch() (float64, error) {
	if err := t.check(opRunEpoch); err != nil {
		return 0, err
	}
	out := t.net.Forward(t.trainX)
	loss := F.BinaryCrossEntropy(out, t.trainY, torch.Tensor{}, "mean")
	t.opt.ZeroGrad()
	loss.Backward()
	t.opt.Step()

	l := scalar(loss)
	t.epoch++
	if t.epoch%t.cfg.ReportEvery == 0 {
		util.Logger.WithFields(logrus.Fields{
			"epoch":  t.epoch,
			"epochs": t.cfg.Epochs,
			"loss":   l,
		}).Info("epoch")
	}
	t.advance(Training)
	return l, nil
}

// Evaluate scores the held-out rows with gradients off.
func (t *MLPTrainer) Evaluate() (Evaluation, error) {
	if err := t.check(opEvaluate); err != nil {
		return Evaluation{}, err
	}
	out := detached(t.net.Forward(FromRows(t.data.ValidX, t.device.Torch)))
	ev := Evaluation{Accuracy: accuracy(ToRows(out), t.data.ValidY, t.cfg.Threshold)}
	util.Logger.WithField("accuracy", ev.Accuracy).Info("test accuracy")
	t.advance(Evaluated)
	return ev, nil
}

// Predictor hands out single-row inference over the trained model.
func (t *MLPTrainer) Predictor() (*MLPPredictor, error) {
	if err := t.check(opPredictor); err != nil {
		return nil, err
	}
	t.advance(Inferred)
	return &MLPPredictor{net: t.net, device: t.device}, nil
}

// Train runs every stage in order: data, model, all epochs, evaluation
// and the example inference.
func (t *MLPTrainer) Train() (*MLPReport, error) {
	if err := t.PrepareData(); err != nil {
		return nil, err
	}
	if err := t.BuildModel(); err != nil {
		return nil, err
	}
	util.Logger.WithFields(logrus.Fields{
		"hidden_neurons": t.cfg.HiddenNeurons,
		"epochs":         t.cfg.Epochs,
		"learning_rate":  t.cfg.LearningRate,
		"device":         t.device.Kind,
	}).Info("training with hyperparameters")

	r := &MLPReport{}
	for i := 0; i < t.cfg.Epochs; i++ {
		l, err := t.RunEpoch()
		if err != nil {
			return nil, err
		}
		r.FinalLoss = l
	}

	var err error
	if r.Evaluation, err = t.Evaluate(); err != nil {
		return nil, err
	}
	p, err := t.Predictor()
	if err != nil {
		return nil, err
	}
	if r.ExamplePrediction, err = p.Predict(ExampleInput); err != nil {
		return nil, errors.Wrap(err, "example inference")
	}
	return r, nil
}
