package cpu

import (
	"fmt"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *Backend) Add(a, b *buffer.Buffer) *buffer.Buffer {
	return binaryOp("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *Backend) Sub(a, b *buffer.Buffer) *buffer.Buffer {
	return binaryOp("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *Backend) Mul(a, b *buffer.Buffer) *buffer.Buffer {
	return binaryOp("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *Backend) Div(a, b *buffer.Buffer) *buffer.Buffer {
	return binaryOp("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binaryOp applies an element-wise binary kernel with broadcasting.
// Panics on incompatible shapes, dtype mismatch, or unsupported dtypes.
func binaryOp(
	name string,
	a, b *buffer.Buffer,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *buffer.Buffer {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := buffer.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := buffer.New(outShape, a.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result buffer: %v", name, err))
	}

	switch a.DType() {
	case buffer.Float32:
		aData, bData, dst := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		if !needsBroadcast {
			for i := range dst {
				dst[i] = f32(aData[i], bData[i])
			}
			return result
		}
		forEachBroadcast(outShape, a.Shape(), b.Shape(), func(out, ai, bi int) {
			dst[out] = f32(aData[ai], bData[bi])
		})

	case buffer.Float64:
		aData, bData, dst := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		if !needsBroadcast {
			for i := range dst {
				dst[i] = f64(aData[i], bData[i])
			}
			return result
		}
		forEachBroadcast(outShape, a.Shape(), b.Shape(), func(out, ai, bi int) {
			dst[out] = f64(aData[ai], bData[bi])
		})

	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, a.DType()))
	}

	return result
}

// forEachBroadcast walks every element of the broadcast output shape and
// invokes fn with the flat output index and the flat source indices into
// a and b under NumPy broadcasting rules.
func forEachBroadcast(outShape, aShape, bShape buffer.Shape, fn func(out, ai, bi int)) {
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()
	coords := make([]int, len(outShape))

	total := outShape.NumElements()
	for out := 0; out < total; out++ {
		rem := out
		for d := len(outShape) - 1; d >= 0; d-- {
			coords[d] = rem % outShape[d]
			rem /= outShape[d]
		}

		fn(out, broadcastIndex(coords, outShape, aShape, aStrides),
			broadcastIndex(coords, outShape, bShape, bStrides))
	}
}

// broadcastIndex maps output coordinates to a flat index into a source shape,
// collapsing size-1 and missing dimensions.
func broadcastIndex(coords []int, outShape, srcShape buffer.Shape, srcStrides []int) int {
	idx := 0
	offset := len(outShape) - len(srcShape)
	for d := 0; d < len(srcShape); d++ {
		c := coords[d+offset]
		if srcShape[d] == 1 {
			c = 0
		}
		idx += c * srcStrides[d]
	}
	return idx
}
