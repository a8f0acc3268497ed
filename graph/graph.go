// Copyright 2026 Fusion ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph is the public surface of the fusion autodiff engine.
//
// It re-exports the internal graph core: Values composed into a DAG by
// operator application, differentiated by a single backward traversal.
//
// Example:
//
//	import (
//	    "github.com/fusion-ml/fusion/backend/cpu"
//	    "github.com/fusion-ml/fusion/buffer"
//	    "github.com/fusion-ml/fusion/graph"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    a, _ := graph.FromSlice(backend, []float32{2, 3}, buffer.Shape{2})
//	    b, _ := graph.FromSlice(backend, []float32{4, 5}, buffer.Shape{2})
//	    c := a.Mul(b).Sum()
//	    _ = c.Backward()
//	    fmt.Println(a.Grad()) // gradient [4 5]
//	}
package graph

import (
	"io"

	"github.com/fusion-ml/fusion/internal/buffer"
	"github.com/fusion-ml/fusion/internal/graph"
	"github.com/fusion-ml/fusion/internal/graph/ops"
)

// Value is one node of the computation graph.
type Value = graph.Value

// Provenance records the operator and parents that produced a Value.
type Provenance = graph.Provenance

// Operator is the forward/backward contract implemented by every operator.
type Operator = ops.Operator

// BackwardOptions configures a backward pass.
type BackwardOptions = graph.BackwardOptions

// Sentinel errors surfaced by construction and traversal.
var (
	ErrNonNumeric        = graph.ErrNonNumeric
	ErrMissingProvenance = graph.ErrMissingProvenance
	ErrArity             = graph.ErrArity
)

// New creates a leaf Value over an existing buffer.
func New(buf *buffer.Buffer, b buffer.Backend) (*Value, error) {
	return graph.New(buf, b)
}

// FromScalar creates a 0-D leaf Value holding a single number.
func FromScalar[T buffer.Float](b buffer.Backend, value T) *Value {
	return graph.FromScalar(b, value)
}

// FromSlice creates a leaf Value from a flat slice and a shape.
func FromSlice[T buffer.Float](b buffer.Backend, data []T, shape buffer.Shape) (*Value, error) {
	return graph.FromSlice(b, data, shape)
}

// FromMatrix creates a 2D leaf Value from nested rows.
func FromMatrix[T buffer.Float](b buffer.Backend, rows [][]T) (*Value, error) {
	return graph.FromMatrix(b, rows)
}

// Apply constructs a new Value by applying an operator to parent Values.
func Apply(b buffer.Backend, op Operator, parents ...*Value) (*Value, error) {
	return graph.Apply(b, op, parents...)
}

// TopologicalOrder returns the provenance-bearing nodes reachable from root,
// ancestors first, root last.
func TopologicalOrder(root *Value) []*Value {
	return graph.TopologicalOrder(root)
}

// WriteDOT renders the graph reachable from root as Graphviz DOT.
func WriteDOT(w io.Writer, root *Value) error {
	return graph.WriteDOT(w, root)
}
