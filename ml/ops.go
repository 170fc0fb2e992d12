package ml

import (
	"math/rand"

	torch "github.com/wangkuiyi/gotorch"
	F "github.com/wangkuiyi/gotorch/nn/functional"
)

const layerNormEps = 1e-5

// scale returns c*t as t - (1-c)*t, which keeps the result on t's device.
func scale(t torch.Tensor, c float32) torch.Tensor {
	return torch.Sub(t, t, 1-c)
}

// softmax normalises along dim. With z = logsoftmax(t) <= 0,
// exp(z) == sigmoid(z) / sigmoid(-z), and sigmoid(-z) >= 0.5.
func softmax(t torch.Tensor, dim int64) torch.Tensor {
	z := torch.LogSoftmax(t, dim)
	return torch.Div(torch.Sigmoid(z), torch.Sigmoid(scale(z, -1)))
}

// layerNorm normalises each row of a [n, d] tensor over its d features,
// then applies gain and bias. Batch normalisation of the transposed [d, n]
// tensor in training mode, without running statistics, uses exactly those
// per-row statistics.
func layerNorm(x, gain, bias torch.Tensor) torch.Tensor {
	none := torch.Tensor{}
	n := F.BatchNorm(torch.Transpose(x, 0, 1), none, none, none, none, true, 0, layerNormEps)
	return torch.Add(torch.Mul(torch.Transpose(n, 0, 1), gain), bias, 1)
}

// rowIndex is a one-element index for IndexSelect along dim 0.
func rowIndex(i int64, device torch.Device) torch.Tensor {
	return torch.NewTensor([]int64{i}).To(device, torch.Long)
}

// mse is the mean squared error over all elements.
func mse(pred, target torch.Tensor) torch.Tensor {
	d := torch.Sub(pred, target, 1)
	return torch.Mean(torch.Mul(d, d))
}

// dropout zeroes each element with probability p and scales survivors by
// 1/(1-p). The mask is drawn from rng on the host.
type dropout struct {
	p      float64
	rng    *rand.Rand
	device torch.Device
	active bool
}

func (d dropout) apply(x torch.Tensor) torch.Tensor {
	if !d.active || d.p <= 0 {
		return x
	}
	shape := x.Shape()
	n := int64(1)
	for _, s := range shape {
		n *= s
	}
	keep := float32(1 / (1 - d.p))
	mask := make([]float32, n)
	for i := range mask {
		if d.rng.Float64() >= d.p {
			mask[i] = keep
		}
	}
	m := torch.NewTensor(mask).View(shape...)
	return torch.Mul(x, m.To(d.device, x.Dtype()))
}
