package cpu

import (
	"fmt"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// Sum reduces all elements to a scalar (0-D) buffer.
func (cpu *Backend) Sum(x *buffer.Buffer) *buffer.Buffer {
	result, err := buffer.New(buffer.Shape{}, x.DType())
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create result buffer: %v", err))
	}

	switch x.DType() {
	case buffer.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		result.AsFloat32()[0] = sum
	case buffer.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
