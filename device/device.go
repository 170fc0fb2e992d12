// Package device selects where tensors and model parameters live. The
// selection is a value handed to model and trainer constructors, so runs
// with different targets can share a process.
package device

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"
	torch "github.com/wangkuiyi/gotorch"
)

// Kind is the class of compute device.
type Kind string

const (
	CPU  Kind = "cpu"
	CUDA Kind = "cuda"
)

// Device is a resolved placement target.
type Device struct {
	Torch       torch.Device
	Kind        Kind
	Description string
}

// Select resolves a preference of "auto", "cpu" or "cuda".
func Select(preference string) (Device, error) {
	kind, err := resolve(preference, torch.IsCUDAAvailable())
	if err != nil {
		return Device{}, err
	}
	d := Device{Torch: torch.NewDevice(string(kind)), Kind: kind}
	if kind == CUDA {
		d.Description = describeCUDA(0)
	} else {
		d.Description = describeCPU()
	}
	return d, nil
}

// IsCUDA reports whether tensors are placed on an accelerator.
func (d Device) IsCUDA() bool {
	return d.Kind == CUDA
}

func (d Device) String() string {
	return fmt.Sprintf("%s (%s)", d.Kind, d.Description)
}

func resolve(preference string, cudaAvailable bool) (Kind, error) {
	switch preference {
	case "", "auto":
		if cudaAvailable {
			return CUDA, nil
		}
		return CPU, nil
	case "cpu":
		return CPU, nil
	case "cuda":
		if !cudaAvailable {
			return "", errors.New("device: cuda requested but not available")
		}
		return CUDA, nil
	}
	return "", errors.Errorf("device: unknown preference %q", preference)
}

func describeCPU() string {
	desc := fmt.Sprintf("%s, %d cores", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores)
	if cpuid.CPU.Supports(cpuid.AVX2) {
		desc += ", avx2"
	}
	return desc
}
