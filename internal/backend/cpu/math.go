package cpu

import (
	"fmt"
	"math"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// Exp computes element-wise exponential: exp(x).
func (cpu *Backend) Exp(x *buffer.Buffer) *buffer.Buffer {
	return unaryOp("exp", x, math.Exp)
}

// Log computes element-wise natural logarithm: ln(x).
// Panics on non-positive values: the chain rule 1/x is undefined there.
func (cpu *Backend) Log(x *buffer.Buffer) *buffer.Buffer {
	return unaryOp("log", x, func(v float64) float64 {
		if v <= 0 {
			panic(fmt.Sprintf("log: non-positive value: %f", v))
		}
		return math.Log(v)
	})
}

// Sigmoid computes element-wise sigmoid: 1 / (1 + exp(-x)).
func (cpu *Backend) Sigmoid(x *buffer.Buffer) *buffer.Buffer {
	return unaryOp("sigmoid", x, func(v float64) float64 {
		return 1.0 / (1.0 + math.Exp(-v))
	})
}

// Relu computes element-wise max(x, 0).
func (cpu *Backend) Relu(x *buffer.Buffer) *buffer.Buffer {
	return unaryOp("relu", x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Pow computes element-wise a^b with broadcasting.
func (cpu *Backend) Pow(a, b *buffer.Buffer) *buffer.Buffer {
	return binaryOp("pow", a, b,
		func(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) },
		func(x, y float64) float64 { return math.Pow(x, y) })
}

// unaryOp applies an element-wise unary kernel.
// Panics on unsupported dtypes.
func unaryOp(name string, x *buffer.Buffer, f func(float64) float64) *buffer.Buffer {
	result, err := buffer.New(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result buffer: %v", name, err))
	}

	switch x.DType() {
	case buffer.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(f(float64(v)))
		}
	case buffer.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = f(v)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}

	return result
}
