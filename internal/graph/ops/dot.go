package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// DotOp performs matrix multiplication: output = x @ y,
// x:(A,B), y:(B,C) -> output:(A,C).
//
// Backward pass (matrix-calculus adjoints, recomputed from the parents):
//   - grad_x = outputGrad @ y^T, shape (A,B)
//   - grad_y = x^T @ outputGrad, shape (B,C); already y's shape, so no
//     further transpose is needed
type DotOp struct{}

// NewDotOp creates a new DotOp.
func NewDotOp() *DotOp {
	return &DotOp{}
}

// Name returns "Dot".
func (op *DotOp) Name() string { return "Dot" }

// Arity returns 2.
func (op *DotOp) Arity() int { return 2 }

// Forward computes x @ y.
func (op *DotOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.MatMul(inputs[0], inputs[1])
}

// Backward computes the adjoints for both matrix operands.
func (op *DotOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	x, y := inputs[0], inputs[1]

	// grad_x = outputGrad @ y^T
	gradX := b.MatMul(outputGrad, b.Transpose(y))

	// grad_y = x^T @ outputGrad
	gradY := b.MatMul(b.Transpose(x), outputGrad)

	return []*buffer.Buffer{gradX, gradY}
}
