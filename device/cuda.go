//go:build cuda

package device

import (
	"fmt"

	"gorgonia.org/cu"
)

func describeCUDA(ordinal int) string {
	dev, err := cu.GetDevice(ordinal)
	if err != nil {
		return fmt.Sprintf("cuda:%d", ordinal)
	}
	name, err := dev.Name()
	if err != nil {
		name = fmt.Sprintf("cuda:%d", ordinal)
	}
	mem, err := dev.TotalMem()
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s, %d MiB", name, mem>>20)
}
