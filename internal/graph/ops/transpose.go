package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// TransposeOp transposes a 2D parent: output = x^T.
//
// Backward pass:
//   - grad_x = outputGrad^T
//
// This is the graph-visible transpose; Value.TransposeInPlace is the
// non-differentiable storage utility.
type TransposeOp struct{}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp() *TransposeOp {
	return &TransposeOp{}
}

// Name returns "Transpose".
func (op *TransposeOp) Name() string { return "Transpose" }

// Arity returns 1.
func (op *TransposeOp) Arity() int { return 1 }

// Forward computes x^T.
func (op *TransposeOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Transpose(inputs[0])
}

// Backward transposes the output gradient back to the parent's shape.
func (op *TransposeOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	return []*buffer.Buffer{b.Transpose(outputGrad)}
}
