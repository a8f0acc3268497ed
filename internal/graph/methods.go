package graph

import (
	"github.com/fusion-ml/fusion/internal/buffer"
	"github.com/fusion-ml/fusion/internal/graph/ops"
)

// Derived numeric methods. Each is a convenience wrapper over Apply with the
// corresponding operator; shape or dtype misuse panics inside the backend
// kernels, which treat it as a programming error.

// Add returns v + other element-wise.
func (v *Value) Add(other *Value) *Value {
	return mustApply(v.backend, ops.NewAddOp(), v, other)
}

// Sub returns v - other, built as v + (-other).
func (v *Value) Sub(other *Value) *Value {
	return v.Add(other.Neg())
}

// Mul returns v * other element-wise.
func (v *Value) Mul(other *Value) *Value {
	return mustApply(v.backend, ops.NewMulOp(), v, other)
}

// Div returns v / other, built as v * (1/other) with the reciprocal taken
// as a fresh constant leaf. No gradient flows to the denominator.
func (v *Value) Div(other *Value) *Value {
	recip := &Value{
		buf:     v.backend.Div(buffer.Ones(other.Shape(), other.ElementType()), other.buf),
		backend: v.backend,
	}
	return v.Mul(recip)
}

// Dot returns the matrix product v @ other.
func (v *Value) Dot(other *Value) *Value {
	return mustApply(v.backend, ops.NewDotOp(), v, other)
}

// Sum reduces all elements to a scalar.
func (v *Value) Sum() *Value {
	return mustApply(v.backend, ops.NewSumOp(), v)
}

// Mean returns the arithmetic mean of all elements, built as sum * (1/n).
func (v *Value) Mean() *Value {
	n := v.buf.NumElements()
	scale := &Value{
		buf:     buffer.Full(buffer.Shape{}, v.ElementType(), 1.0/float64(n)),
		backend: v.backend,
	}
	return v.Sum().Mul(scale)
}

// Log returns the element-wise natural logarithm.
func (v *Value) Log() *Value {
	return mustApply(v.backend, ops.NewLogOp(), v)
}

// Pow returns v^p element-wise with the exponent as a second parent.
// The exponent receives no gradient.
func (v *Value) Pow(p *Value) *Value {
	return mustApply(v.backend, ops.NewPowOp(), v, p)
}

// PowScalar returns v^p for a constant exponent.
func (v *Value) PowScalar(p float64) *Value {
	exp := &Value{
		buf:     buffer.Full(buffer.Shape{}, v.ElementType(), p),
		backend: v.backend,
	}
	return v.Pow(exp)
}

// Exp returns the element-wise exponential.
func (v *Value) Exp() *Value {
	return mustApply(v.backend, ops.NewExpOp(), v)
}

// Sigmoid returns the element-wise logistic function.
func (v *Value) Sigmoid() *Value {
	return mustApply(v.backend, ops.NewSigmoidOp(), v)
}

// Relu returns element-wise max(v, 0).
func (v *Value) Relu() *Value {
	return mustApply(v.backend, ops.NewReluOp(), v)
}

// Neg returns -v, built as v * (-1).
func (v *Value) Neg() *Value {
	minusOne := &Value{
		buf:     buffer.Full(buffer.Shape{}, v.ElementType(), -1),
		backend: v.backend,
	}
	return v.Mul(minusOne)
}

// Transpose returns v^T as a graph node: gradients flow back through it.
func (v *Value) Transpose() *Value {
	return mustApply(v.backend, ops.NewTransposeOp(), v)
}

// TransposeInPlace transposes the underlying 2D buffer in place and returns
// the receiver. It creates no graph node and is invisible to autodiff: use
// Transpose inside differentiated expressions.
func (v *Value) TransposeInPlace() *Value {
	v.buf.TransposeInPlace()
	return v
}
