package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// LogOp computes the element-wise natural logarithm: output = ln(x).
//
// Backward pass:
//   - d(ln(x))/dx = 1/x, so grad_x = outputGrad / x
//
// Input values must be positive; the backend kernel rejects the rest.
type LogOp struct{}

// NewLogOp creates a new LogOp.
func NewLogOp() *LogOp {
	return &LogOp{}
}

// Name returns "Log".
func (op *LogOp) Name() string { return "Log" }

// Arity returns 1.
func (op *LogOp) Arity() int { return 1 }

// Forward computes ln(x).
func (op *LogOp) Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer {
	return b.Log(inputs[0])
}

// Backward computes outputGrad / x.
func (op *LogOp) Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer {
	return []*buffer.Buffer{b.Div(outputGrad, inputs[0])}
}
