// Package graph implements the reverse-mode autodiff core: Values linked by
// Provenance records into a DAG, a topological sort over that DAG, and a
// single-shot backward pass with gradient accumulation.
//
// Usage:
//
//	backend := cpu.New()
//	a, _ := graph.FromSlice(backend, []float32{2, 3}, buffer.Shape{2})
//	b, _ := graph.FromSlice(backend, []float32{4, 5}, buffer.Shape{2})
//	c := a.Mul(b).Sum()
//	if err := c.Backward(); err != nil { ... }
//	fmt.Println(a.Grad()) // [4 5]
package graph

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// Value is one node of the computation graph: a numeric buffer, an optional
// accumulated gradient, and an optional provenance record linking it to the
// operator application that produced it. A Value with nil provenance is a
// leaf (a graph input).
//
// The buffer is exclusively owned by its Value. Parent references inside
// Provenance are shared: the same Value may feed any number of downstream
// applications, which is why gradients are accumulated rather than assigned.
type Value struct {
	buf     *buffer.Buffer
	grad    *Value
	prov    *Provenance
	backend buffer.Backend
}

// New creates a leaf Value over an existing buffer.
// Returns ErrNonNumeric if the buffer's element type cannot carry gradients.
// Float16 is storage-only; Cast it to float32 or float64 first.
func New(buf *buffer.Buffer, b buffer.Backend) (*Value, error) {
	if !differentiable(buf.DType()) {
		return nil, errors.Wrapf(ErrNonNumeric, "element type %s", buf.DType())
	}
	return &Value{buf: buf, backend: b}, nil
}

// differentiable reports whether gradients can be computed over the element
// type. The kernels compute in float32/float64 only.
func differentiable(dt buffer.DataType) bool {
	return dt == buffer.Float32 || dt == buffer.Float64
}

// FromScalar creates a 0-D leaf Value holding a single number.
func FromScalar[T buffer.Float](b buffer.Backend, value T) *Value {
	return &Value{buf: buffer.FromScalar(value), backend: b}
}

// FromSlice creates a leaf Value from a flat slice and a shape.
func FromSlice[T buffer.Float](b buffer.Backend, data []T, shape buffer.Shape) (*Value, error) {
	buf, err := buffer.FromSlice(data, shape)
	if err != nil {
		return nil, err
	}
	return &Value{buf: buf, backend: b}, nil
}

// FromMatrix creates a 2D leaf Value from nested rows.
// All rows must have the same length.
func FromMatrix[T buffer.Float](b buffer.Backend, rows [][]T) (*Value, error) {
	if len(rows) == 0 {
		return nil, errors.New("matrix requires at least one row")
	}

	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Errorf("ragged matrix: row 0 has %d columns, row %d has %d", cols, i, len(row))
		}
		flat = append(flat, row...)
	}

	return FromSlice(b, flat, buffer.Shape{len(rows), cols})
}

// Shape returns the shape of the underlying buffer.
func (v *Value) Shape() buffer.Shape {
	return v.buf.Shape()
}

// ElementType returns the element type of the underlying buffer.
func (v *Value) ElementType() buffer.DataType {
	return v.buf.DType()
}

// Buffer returns the underlying numeric buffer.
func (v *Value) Buffer() *buffer.Buffer {
	return v.buf
}

// Grad returns the accumulated gradient, or nil if backward has not
// contributed one yet.
func (v *Value) Grad() *Value {
	return v.grad
}

// Provenance returns the provenance record, or nil for leaves and for
// nodes already consumed by a backward pass.
func (v *Value) Provenance() *Provenance {
	return v.prov
}

// Backend returns the numeric backend this Value computes through.
func (v *Value) Backend() buffer.Backend {
	return v.backend
}

// IsLeaf reports whether the Value has no provenance.
func (v *Value) IsLeaf() bool {
	return v.prov == nil
}

// String returns a debug representation exposing shape and element type,
// and the same for the gradient when present.
func (v *Value) String() string {
	if v.grad != nil {
		return fmt.Sprintf("Value[%s]%v grad=Value[%s]%v",
			v.buf.DType(), v.buf.Shape(), v.grad.buf.DType(), v.grad.buf.Shape())
	}
	return fmt.Sprintf("Value[%s]%v", v.buf.DType(), v.buf.Shape())
}
