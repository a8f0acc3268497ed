package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// MulOp performs element-wise multiplication: output = x * y.
//
// Backward pass:
//   - d(x*y)/dx = y, so grad_x = outputGrad * y
//   - d(x*y)/dy = x, so grad_y = outputGrad * x
type MulOp struct{}

// NewMulOp creates a new MulOp.
func NewMulOp() *MulOp {
	return &MulOp{}
}

// Name returns "Mul".
func (op *MulOp) Name() string { return "Mul" }

// Arity returns 2.
func (op *MulOp) Arity() int { return 2 }

// Forward computes x * y.
func (op *MulOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Mul(inputs[0], inputs[1])
}

// Backward computes the cross-scaled gradients.
func (op *MulOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	x, y := inputs[0], inputs[1]
	return []*buffer.Buffer{
		b.Mul(outputGrad, y),
		b.Mul(outputGrad, x),
	}
}
