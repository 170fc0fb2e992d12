package ml

import (
	torch "github.com/wangkuiyi/gotorch"
)

var cpu = torch.NewDevice("cpu")

// FromRows copies a non-empty rectangular batch into a [len(rows), width]
// float tensor on device.
func FromRows(rows [][]float32, device torch.Device) torch.Tensor {
	t := torch.NewTensor(rows)
	return t.To(device, t.Dtype())
}

// ToRows copies a 2-d tensor back to host memory.
func ToRows(t torch.Tensor) [][]float64 {
	t = detached(t).To(cpu, t.Dtype())
	shape := t.Shape()
	out := make([][]float64, shape[0])
	for i := range out {
		out[i] = make([]float64, shape[1])
		for j := range out[i] {
			out[i][j] = float64(t.Index(int64(i), int64(j)).Item().(float32))
		}
	}
	return out
}

// detached cuts t out of the autograd graph.
func detached(t torch.Tensor) torch.Tensor {
	return t.Detach()
}

// Flatten concatenates rows in order.
func Flatten[T float32 | float64](rows [][]T) []float64 {
	var out []float64
	for _, r := range rows {
		for _, v := range r {
			out = append(out, float64(v))
		}
	}
	return out
}

func scalar(t torch.Tensor) float64 {
	return float64(t.Item().(float32))
}

func toFloat32(xs []float64) []float32 {
	out := make([]float32, len(xs))
	for i, v := range xs {
		out[i] = float32(v)
	}
	return out
}
