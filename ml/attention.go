package ml

import (
	"math"

	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
)

// AttentionHead projects a [window, d] sequence into one head of width
// d/nhead and back to d.
type AttentionHead struct {
	nn.Module
	Query, Key, Value *nn.LinearModule
	Out               *nn.LinearModule
	Scale             float32
}

func newAttentionHead(dModel, headDim int64) *AttentionHead {
	r := &AttentionHead{
		Query: nn.Linear(dModel, headDim, true),
		Key:   nn.Linear(dModel, headDim, true),
		Value: nn.Linear(dModel, headDim, true),
		Out:   nn.Linear(headDim, dModel, true),
		Scale: float32(1 / math.Sqrt(float64(headDim))),
	}
	r.Init(r)
	return r
}

func (h *AttentionHead) forward(x torch.Tensor, drop dropout) torch.Tensor {
	q := h.Query.Forward(x)
	k := h.Key.Forward(x)
	v := h.Value.Forward(x)
	scores := scale(torch.MM(q, torch.Transpose(k, 0, 1)), h.Scale)
	weights := drop.apply(softmax(scores, 1))
	return h.Out.Forward(torch.MM(weights, v))
}

// SelfAttention is multi-head attention. The per-head output projections
// are summed, which equals one projection of the concatenated heads.
type SelfAttention struct {
	nn.Module
	Heads []*AttentionHead
}

func newSelfAttention(dModel, nhead int64) *SelfAttention {
	r := &SelfAttention{}
	for i := int64(0); i < nhead; i++ {
		r.Heads = append(r.Heads, newAttentionHead(dModel, dModel/nhead))
	}
	r.Init(r)
	return r
}

func (a *SelfAttention) forward(x torch.Tensor, drop dropout) torch.Tensor {
	out := a.Heads[0].forward(x, drop)
	for _, h := range a.Heads[1:] {
		out = torch.Add(out, h.forward(x, drop), 1)
	}
	return out
}

// EncoderBlock is attention and a position-wise feed-forward layer, each
// wrapped in a residual connection followed by layer normalisation.
type EncoderBlock struct {
	nn.Module
	Attention *SelfAttention
	FF1, FF2  *nn.LinearModule

	Norm1Gain, Norm1Bias torch.Tensor
	Norm2Gain, Norm2Bias torch.Tensor
}

func newEncoderBlock(dModel, nhead, dimFeedforward int64) *EncoderBlock {
	r := &EncoderBlock{
		Attention: newSelfAttention(dModel, nhead),
		FF1:       nn.Linear(dModel, dimFeedforward, true),
		FF2:       nn.Linear(dimFeedforward, dModel, true),
		Norm1Gain: torch.Ones([]int64{dModel}, true),
		Norm1Bias: torch.Full([]int64{dModel}, 0, true),
		Norm2Gain: torch.Ones([]int64{dModel}, true),
		Norm2Bias: torch.Full([]int64{dModel}, 0, true),
	}
	r.Init(r)
	return r
}

func (b *EncoderBlock) forward(x torch.Tensor, drop dropout) torch.Tensor {
	x = layerNorm(torch.Add(x, drop.apply(b.Attention.forward(x, drop)), 1), b.Norm1Gain, b.Norm1Bias)
	ff := drop.apply(torch.Relu(b.FF1.Forward(x)))
	return layerNorm(torch.Add(x, drop.apply(b.FF2.Forward(ff)), 1), b.Norm2Gain, b.Norm2Bias)
}
