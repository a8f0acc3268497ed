// Package ops defines the operator contract and implementations for the
// fusion autodiff graph.
//
// Each operator pairs a forward rule with its chain-rule backward rule.
// Backward is a pure function of the parent buffers captured at apply time
// and the single incoming output gradient; operators carry no mutable state.
//
// Supported operators:
//   - SumOp: reduce-sum to a scalar
//   - AddOp: element-wise addition (gradient passes through to both parents)
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - DotOp: matrix product (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - ReluOp: max(x, 0) (gradient zeroed where x <= 0)
//   - LogOp: natural logarithm (grad/x)
//   - PowOp: element-wise power (gradient for the base only)
//   - ExpOp: exponential (exp(x)*grad)
//   - SigmoidOp: logistic function (recomputed from x, never from the output)
//   - TransposeOp: 2D transpose (gradient transposed back)
package ops

import "github.com/fusion-ml/fusion/internal/buffer"

// Operator is a differentiable operation in the computation graph.
type Operator interface {
	// Name returns the operator's name for diagnostics and graph dumps.
	Name() string

	// Arity returns the number of parent buffers the operator expects.
	Arity() int

	// Forward computes the output buffer from the parent buffers.
	Forward(b buffer.Backend, inputs ...*buffer.Buffer) *buffer.Buffer

	// Backward computes one gradient buffer per parent given the output
	// gradient, ordered identically to inputs. A nil entry means the
	// operator contributes no gradient to that parent.
	Backward(b buffer.Backend, inputs []*buffer.Buffer, outputGrad *buffer.Buffer) []*buffer.Buffer
}
