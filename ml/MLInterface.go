package ml

import (
	torch "github.com/wangkuiyi/gotorch"
)

// Model is a differentiable function from an input batch to an output
// batch whose parameters an optimizer can update.
type Model interface {
	Forward(x torch.Tensor) torch.Tensor
	Parameters() []torch.Tensor
}

var (
	_ Model = (*MLPModule)(nil)
	_ Model = (*Transformer)(nil)
)
