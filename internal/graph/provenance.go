package graph

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fusion-ml/fusion/internal/buffer"
	"github.com/fusion-ml/fusion/internal/graph/ops"
)

// Provenance records which operator produced a Value and the ordered parent
// Values it closed over. It exists from apply time until the backward pass
// for the node has distributed gradients, after which it is released: a
// graph is backward-traversable exactly once.
type Provenance struct {
	op      ops.Operator
	parents []*Value
}

// Op returns the operator that produced the child Value.
func (p *Provenance) Op() ops.Operator {
	return p.op
}

// Parents returns the ordered parent Values. The slice must be treated as
// read-only; it is the graph's edge list.
func (p *Provenance) Parents() []*Value {
	return p.parents
}

// Apply constructs a new Value by running the operator's forward rule over
// the parents' buffers and attaching a Provenance record. This is the single
// point where a graph edge is created: append-only, so the forward graph
// stays acyclic by construction.
func Apply(b buffer.Backend, op ops.Operator, parents ...*Value) (*Value, error) {
	if len(parents) != op.Arity() {
		return nil, errors.Wrapf(ErrArity, "%s expects %d parents, got %d", op.Name(), op.Arity(), len(parents))
	}

	var verr error
	for i, p := range parents {
		if p == nil {
			verr = multierr.Append(verr, errors.Errorf("%s: parent %d is nil", op.Name(), i))
			continue
		}
		if !differentiable(p.ElementType()) {
			verr = multierr.Append(verr, errors.Wrapf(ErrNonNumeric, "%s: parent %d has element type %s", op.Name(), i, p.ElementType()))
		}
	}
	if verr != nil {
		return nil, verr
	}

	bufs := make([]*buffer.Buffer, len(parents))
	for i, p := range parents {
		bufs[i] = p.buf
	}

	out := op.Forward(b, bufs...)

	return &Value{
		buf:     out,
		backend: b,
		prov: &Provenance{
			op:      op,
			parents: parents,
		},
	}, nil
}

// mustApply is the panic-on-error form used by the derived numeric methods,
// where an arity or type failure is a programming error.
func mustApply(b buffer.Backend, op ops.Operator, parents ...*Value) *Value {
	v, err := Apply(b, op, parents...)
	if err != nil {
		panic(err)
	}
	return v
}
