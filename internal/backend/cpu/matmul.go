package cpu

import (
	"fmt"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// MatMul performs matrix multiplication.
// For 2D buffers: (M, K) @ (K, N) -> (M, N).
// Naive O(n³) implementation; the operator set only needs correctness here.
func (cpu *Backend) MatMul(a, b *buffer.Buffer) *buffer.Buffer {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D buffers supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	result, err := buffer.New(buffer.Shape{m, n}, a.DType())
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result buffer: %v", err))
	}

	switch a.DType() {
	case buffer.Float32:
		matmulFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case buffer.Float64:
		matmulFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulFloat32 performs naive matrix multiplication for float32.
// C[i,j] = sum_k A[i,k] * B[k,j]
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

func matmulFloat64(c, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float64(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// Transpose returns the transpose of a 2D buffer.
func (cpu *Backend) Transpose(a *buffer.Buffer) *buffer.Buffer {
	shape := a.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D buffers supported, got %dD", len(shape)))
	}

	rows, cols := shape[0], shape[1]

	result, err := buffer.New(buffer.Shape{cols, rows}, a.DType())
	if err != nil {
		panic(fmt.Sprintf("transpose: failed to create result buffer: %v", err))
	}

	switch a.DType() {
	case buffer.Float32:
		src := a.AsFloat32()
		dst := result.AsFloat32()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[j*rows+i] = src[i*cols+j]
			}
		}
	case buffer.Float64:
		src := a.AsFloat64()
		dst := result.AsFloat64()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[j*rows+i] = src[i*cols+j]
			}
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", a.DType()))
	}

	return result
}
