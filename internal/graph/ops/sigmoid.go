package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// SigmoidOp computes the logistic function: output = 1 / (1 + exp(-x)).
//
// Backward pass:
//   - dσ/dx = σ(x) * (1 - σ(x)), so grad_x = σ(x) * (1 - σ(x)) * outputGrad
//
// σ(x) is recomputed from the parent during backward instead of being read
// from the stored output, so the node never depends on its own result buffer.
type SigmoidOp struct{}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp() *SigmoidOp {
	return &SigmoidOp{}
}

// Name returns "Sigmoid".
func (op *SigmoidOp) Name() string { return "Sigmoid" }

// Arity returns 1.
func (op *SigmoidOp) Arity() int { return 1 }

// Forward computes 1 / (1 + exp(-x)).
func (op *SigmoidOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Sigmoid(inputs[0])
}

// Backward computes σ(x) * (1 - σ(x)) * outputGrad.
func (op *SigmoidOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	x := inputs[0]

	s := b.Sigmoid(x)
	oneMinusS := b.Sub(buffer.Ones(s.Shape(), s.DType()), s)

	return []*buffer.Buffer{b.Mul(b.Mul(s, oneMinusS), outputGrad)}
}
