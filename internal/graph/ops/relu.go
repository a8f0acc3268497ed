package ops

import (
	"fmt"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// ReluOp applies the rectified linear unit: output = max(x, 0).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 where x > 0, else 0: the output gradient is zeroed
//     at every position where x <= 0.
type ReluOp struct{}

// NewReluOp creates a new ReluOp.
func NewReluOp() *ReluOp {
	return &ReluOp{}
}

// Name returns "Relu".
func (op *ReluOp) Name() string { return "Relu" }

// Arity returns 1.
func (op *ReluOp) Arity() int { return 1 }

// Forward computes max(x, 0).
func (op *ReluOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Relu(inputs[0])
}

// Backward multiplies the output gradient by a 0/1 mask built from x.
func (op *ReluOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	mask := reluMask(inputs[0])
	return []*buffer.Buffer{b.Mul(outputGrad, mask)}
}

// reluMask creates a binary mask with 1 where the input is positive.
func reluMask(input *buffer.Buffer) *buffer.Buffer {
	mask, err := buffer.New(input.Shape(), input.DType())
	if err != nil {
		panic(fmt.Sprintf("relu: failed to create mask: %v", err))
	}

	switch input.DType() {
	case buffer.Float32:
		inputData := input.AsFloat32()
		maskData := mask.AsFloat32()
		for i, val := range inputData {
			if val > 0 {
				maskData[i] = 1.0
			}
		}

	case buffer.Float64:
		inputData := input.AsFloat64()
		maskData := mask.AsFloat64()
		for i, val := range inputData {
			if val > 0 {
				maskData[i] = 1.0
			}
		}

	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s (only float32/float64 supported)", input.DType()))
	}

	return mask
}
