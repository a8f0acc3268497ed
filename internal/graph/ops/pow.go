package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// PowOp computes the element-wise power: output = x^p, with the exponent
// treated as a second parent.
//
// Backward pass:
//   - d(x^p)/dx = p * x^(p-1), so grad_x = p * x^(p-1) * outputGrad
//   - The gradient with respect to the exponent is not computed (it would
//     need x^p * ln(x), undefined for x <= 0); the backward rule returns
//     nil for that slot and the engine skips it.
type PowOp struct{}

// NewPowOp creates a new PowOp.
func NewPowOp() *PowOp {
	return &PowOp{}
}

// Name returns "Pow".
func (op *PowOp) Name() string { return "Pow" }

// Arity returns 2.
func (op *PowOp) Arity() int { return 2 }

// Forward computes x^p element-wise.
func (op *PowOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Pow(inputs[0], inputs[1])
}

// Backward computes the gradient for the base; nil for the exponent.
func (op *PowOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	x, p := inputs[0], inputs[1]

	// p * x^(p-1) * outputGrad
	pMinusOne := b.Sub(p, buffer.Ones(p.Shape(), p.DType()))
	gradX := b.Mul(b.Mul(p, b.Pow(x, pMinusOne)), outputGrad)

	return []*buffer.Buffer{gradX, nil}
}
