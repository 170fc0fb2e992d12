package ml

import (
	"math/rand"

	"signalpredictor/config"
	"signalpredictor/device"

	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
)

// PriceTransformer is the encoder-only forecaster:
// embed -> + positional offset -> encoder blocks -> last step -> head.
type PriceTransformer struct {
	nn.Module
	Embedding          *nn.LinearModule
	PositionalEncoding torch.Tensor // [1, window, d_model], learned, starts at zero
	Blocks             []*EncoderBlock
	Head               *nn.LinearModule
}

func newPriceTransformer(cfg config.Transformer) *PriceTransformer {
	d, w := int64(cfg.DModel), int64(cfg.InputWindow)
	r := &PriceTransformer{
		Embedding:          nn.Linear(1, d, true),
		PositionalEncoding: torch.Full([]int64{1, w, d}, 0, true),
		Head:               nn.Linear(d, int64(cfg.ForecastHorizon), true),
	}
	for i := 0; i < cfg.NumLayers; i++ {
		r.Blocks = append(r.Blocks, newEncoderBlock(d, int64(cfg.NHead), int64(cfg.DimFeedforward)))
	}
	r.Init(r)
	return r
}

// Transformer binds a PriceTransformer to its device and dropout source.
type Transformer struct {
	Net *PriceTransformer

	window, dModel int64
	horizon        int64
	dropoutP       float64
	device         device.Device
	rng            *rand.Rand
}

// NewTransformer builds a forecaster on dev. Only the model dimensions of
// cfg are checked. The dropout masks are drawn from a source seeded with
// seed.
func NewTransformer(cfg config.Transformer, dev device.Device, seed int64) (*Transformer, error) {
	if err := cfg.ValidateModel(); err != nil {
		return nil, err
	}
	t := &Transformer{
		Net:      newPriceTransformer(cfg),
		window:   int64(cfg.InputWindow),
		dModel:   int64(cfg.DModel),
		horizon:  int64(cfg.ForecastHorizon),
		dropoutP: cfg.Dropout,
		device:   dev,
		rng:      rand.New(rand.NewSource(seed)),
	}
	t.Net.To(dev.Torch)
	return t, nil
}

// Train switches dropout on or off.
func (t *Transformer) Train(on bool) {
	t.Net.Train(on)
}

// IsTraining reports whether dropout is active.
func (t *Transformer) IsTraining() bool {
	return t.Net.IsTraining()
}

// Window is the input length the model was built for.
func (t *Transformer) Window() int64 {
	return t.window
}

// Horizon is the number of steps predicted per sample.
func (t *Transformer) Horizon() int64 {
	return t.horizon
}

// Forward maps x of shape [batch, window] to [batch, horizon]. Callers
// check the shape first.
func (t *Transformer) Forward(x torch.Tensor) torch.Tensor {
	drop := dropout{p: t.dropoutP, rng: t.rng, device: t.device.Torch, active: t.IsTraining()}
	pos := t.Net.PositionalEncoding.View(t.window, t.dModel)
	lastStep := rowIndex(t.window-1, t.device.Torch)

	batch := x.Shape()[0]
	last := make([]torch.Tensor, batch)
	for i := int64(0); i < batch; i++ {
		sample := x.IndexSelect(0, rowIndex(i, t.device.Torch)).View(t.window, 1)
		h := torch.Add(t.Net.Embedding.Forward(sample), pos, 1)
		for _, b := range t.Net.Blocks {
			h = b.forward(h, drop)
		}
		last[i] = h.IndexSelect(0, lastStep).View(t.dModel)
	}
	return t.Net.Head.Forward(torch.Stack(last, 0))
}

// Parameters lists every trainable tensor.
func (t *Transformer) Parameters() []torch.Tensor {
	return t.Net.Parameters()
}
