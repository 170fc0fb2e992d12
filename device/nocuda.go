//go:build !cuda

package device

import "fmt"

func describeCUDA(ordinal int) string {
	return fmt.Sprintf("cuda:%d", ordinal)
}
