package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// ExpOp computes the element-wise exponential: output = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x), so grad_x = exp(x) * outputGrad
//
// The exponential is recomputed from the parent rather than read from a
// stored output, keeping the backward rule a pure function of the parents.
type ExpOp struct{}

// NewExpOp creates a new ExpOp.
func NewExpOp() *ExpOp {
	return &ExpOp{}
}

// Name returns "Exp".
func (op *ExpOp) Name() string { return "Exp" }

// Arity returns 1.
func (op *ExpOp) Arity() int { return 1 }

// Forward computes exp(x).
func (op *ExpOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Exp(inputs[0])
}

// Backward computes exp(x) * outputGrad.
func (op *ExpOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	return []*buffer.Buffer{b.Mul(b.Exp(inputs[0]), outputGrad)}
}
