package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// SumOp reduces all elements of its parent to a scalar: output = Σ x.
//
// Backward pass:
//   - d(Σx)/dx_i = 1, so grad_x = ones(shape(x)) * outputGrad
type SumOp struct{}

// NewSumOp creates a new SumOp.
func NewSumOp() *SumOp {
	return &SumOp{}
}

// Name returns "Sum".
func (op *SumOp) Name() string { return "Sum" }

// Arity returns 1.
func (op *SumOp) Arity() int { return 1 }

// Forward computes the scalar sum of all elements.
func (op *SumOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Sum(inputs[0])
}

// Backward broadcasts the scalar output gradient to the parent's shape.
func (op *SumOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	x := inputs[0]
	ones := buffer.Ones(x.Shape(), x.DType())
	return []*buffer.Buffer{b.Mul(ones, outputGrad)}
}
