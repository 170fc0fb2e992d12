package ml

import (
	torch "github.com/wangkuiyi/gotorch"
	"github.com/wangkuiyi/gotorch/nn"
)

// MLPModule is the three layer signal classifier:
// relu(FC1) -> relu(FC2) -> sigmoid(FC3).
type MLPModule struct {
	nn.Module
	FC1, FC2, FC3 *nn.LinearModule
	Features      int64
}

// NewMLP builds the classifier for featureCount inputs. outputSize is 1
// for the binary signal head.
func NewMLP(featureCount, hidden, outputSize int64) *MLPModule {
	r := &MLPModule{
		FC1:      nn.Linear(featureCount, hidden, true),
		FC2:      nn.Linear(hidden, hidden, true),
		FC3:      nn.Linear(hidden, outputSize, true),
		Features: featureCount,
	}
	r.Init(r)
	return r
}

// Forward maps [batch, features] to [batch, outputSize] probabilities.
func (m *MLPModule) Forward(x torch.Tensor) torch.Tensor {
	x = torch.Relu(m.FC1.Forward(x))
	x = torch.Relu(m.FC2.Forward(x))
	return torch.Sigmoid(m.FC3.Forward(x))
}
