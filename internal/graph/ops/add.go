package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// AddOp performs element-wise addition: output = x + y.
//
// Backward pass:
//   - d(x+y)/dx = 1 and d(x+y)/dy = 1: the gradient passes through
//     unchanged to both parents.
type AddOp struct{}

// NewAddOp creates a new AddOp.
func NewAddOp() *AddOp {
	return &AddOp{}
}

// Name returns "Add".
func (op *AddOp) Name() string { return "Add" }

// Arity returns 2.
func (op *AddOp) Arity() int { return 2 }

// Forward computes x + y.
func (op *AddOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Add(inputs[0], inputs[1])
}

// Backward passes the output gradient through to both parents.
func (op *AddOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	return []*buffer.Buffer{outputGrad, outputGrad}
}
