package graph

import (
	"io"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/fusion-ml/fusion/internal/buffer"
)

// BackwardOptions configures a backward pass. The zero value is a plain
// backward with no side channels.
type BackwardOptions struct {
	// DumpGraph, when non-nil, receives the Graphviz DOT form of the
	// still-intact graph before traversal mutates it.
	DumpGraph io.Writer
}

// Backward runs a backward pass with default options.
func (v *Value) Backward() error {
	return v.BackwardWith(BackwardOptions{})
}

// BackwardWith computes gradients for every ancestor of v reachable through
// provenance links, accumulating contributions where a Value feeds multiple
// operator applications.
//
// The gradient seed is a buffer of ones shaped like v: for a scalar root this
// is d(root)/d(root) = 1; for a multi-element root the pass computes the
// gradient of the sum of the root's elements, which is supported behavior.
//
// Each visited node's provenance is released as its gradients are
// distributed, so a graph can be traversed exactly once: a second call on
// the same root fails with ErrMissingProvenance.
func (v *Value) BackwardWith(opts BackwardOptions) error {
	if v.prov == nil {
		return errors.Wrapf(ErrMissingProvenance, "backward on %s (leaf, or already traversed)", v)
	}

	if opts.DumpGraph != nil {
		if err := WriteDOT(opts.DumpGraph, v); err != nil {
			return errors.Wrap(err, "dump graph")
		}
	}

	v.grad = &Value{
		buf:     buffer.Ones(v.buf.Shape(), v.buf.DType()),
		backend: v.backend,
	}

	order := TopologicalOrder(v)
	klog.V(2).Infof("backward: traversing %d nodes from %s", len(order), v)

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		if node.prov == nil {
			// The sort only emits provenance-bearing nodes; losing it
			// mid-pass means the graph was mutated underneath us.
			return errors.Wrapf(ErrMissingProvenance, "node %s reached during traversal", node)
		}

		if node.grad == nil {
			// No gradient reached this node: every operator it fed returned
			// nil for its slot. Nothing to distribute, but the node is still
			// consumed by the pass.
			node.prov = nil
			continue
		}

		parents := node.prov.parents
		parentBufs := make([]*buffer.Buffer, len(parents))
		for j, p := range parents {
			parentBufs[j] = p.buf
		}

		grads := node.prov.op.Backward(node.backend, parentBufs, node.grad.buf)
		klog.V(3).Infof("backward: %s distributed %d gradients", node.prov.op.Name(), len(grads))

		for j, g := range grads {
			if g == nil {
				continue // operator contributes no gradient to this parent
			}
			parent := parents[j]
			if parent.grad == nil {
				parent.grad = &Value{buf: g, backend: parent.backend}
			} else {
				parent.grad = &Value{
					buf:     parent.backend.Add(parent.grad.buf, g),
					backend: parent.backend,
				}
			}
		}

		node.prov = nil
	}

	return nil
}
