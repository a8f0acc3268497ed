package graph_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusion-ml/fusion/internal/backend/cpu"
	"github.com/fusion-ml/fusion/internal/buffer"
	"github.com/fusion-ml/fusion/internal/graph"
	"github.com/fusion-ml/fusion/internal/graph/ops"
)

func leaf(t *testing.T, backend buffer.Backend, data []float32, shape buffer.Shape) *graph.Value {
	t.Helper()
	v, err := graph.FromSlice(backend, data, shape)
	require.NoError(t, err)
	return v
}

// c = sum(a * b) must yield a.grad == b's data and b.grad == a's data.
func TestBackwardMulSum(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{2, 3}, buffer.Shape{2})
	b := leaf(t, backend, []float32{4, 5}, buffer.Shape{2})

	c := a.Mul(b).Sum()
	require.NoError(t, c.Backward())

	require.NotNil(t, a.Grad())
	require.NotNil(t, b.Grad())
	assert.Equal(t, []float32{4, 5}, a.Grad().Buffer().AsFloat32())
	assert.Equal(t, []float32{2, 3}, b.Grad().Buffer().AsFloat32())
}

// y = x * x with the same Value in both argument positions must accumulate
// to d(x²)/dx = 2x.
func TestBackwardSquareAccumulates(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, float32(2))

	y := x.Mul(x)
	require.NoError(t, y.Backward())

	require.NotNil(t, x.Grad())
	assert.Equal(t, float32(4), x.Grad().Buffer().AsFloat32()[0])
}

// Accumulation law: v used on two paths receives the sum of both
// contributions. y = v*v + v*c gives dy/dv = 2v + c.
func TestGradientAccumulationAcrossPaths(t *testing.T) {
	backend := cpu.New()
	v := graph.FromScalar(backend, 3.0)
	c := graph.FromScalar(backend, 10.0)

	y := v.Mul(v).Add(v.Mul(c))
	require.NoError(t, y.Backward())

	require.NotNil(t, v.Grad())
	assert.InDelta(t, 2*3.0+10.0, v.Grad().Buffer().AsFloat64()[0], 1e-12)

	require.NotNil(t, c.Grad())
	assert.InDelta(t, 3.0, c.Grad().Buffer().AsFloat64()[0], 1e-12)
}

func TestTopologicalOrderValidity(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{1, 2}, buffer.Shape{2})
	b := leaf(t, backend, []float32{3, 4}, buffer.Shape{2})

	// Diamond: a feeds both sides.
	left := a.Mul(b)
	right := a.Exp()
	root := left.Add(right).Sum()

	order := graph.TopologicalOrder(root)
	require.NotEmpty(t, order)
	assert.Same(t, root, order[len(order)-1], "root must come last")

	position := make(map[*graph.Value]int, len(order))
	for i, node := range order {
		position[node] = i
	}

	for i, node := range order {
		require.NotNil(t, node.Provenance())
		for _, parent := range node.Provenance().Parents() {
			if parent.IsLeaf() {
				continue // leaves are not emitted
			}
			pos, ok := position[parent]
			require.True(t, ok, "parent of an emitted node must be emitted")
			assert.Less(t, pos, i, "every node must appear strictly after its parents")
		}
	}
}

func TestTopologicalOrderDeterministic(t *testing.T) {
	backend := cpu.New()

	build := func() *graph.Value {
		a := leaf(t, backend, []float32{1, 2}, buffer.Shape{2})
		b := leaf(t, backend, []float32{3, 4}, buffer.Shape{2})
		return a.Mul(b).Add(a.Exp()).Sum()
	}

	names := func(order []*graph.Value) []string {
		out := make([]string, len(order))
		for i, node := range order {
			out[i] = node.Provenance().Op().Name()
		}
		return out
	}

	first := names(graph.TopologicalOrder(build()))
	second := names(graph.TopologicalOrder(build()))
	assert.Empty(t, cmp.Diff(first, second), "same graph shape must sort identically")
}

func TestBackwardConsumesProvenance(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{2, 3}, buffer.Shape{2})
	b := leaf(t, backend, []float32{4, 5}, buffer.Shape{2})

	product := a.Mul(b)
	root := product.Sum()
	require.NoError(t, root.Backward())

	assert.Nil(t, root.Provenance(), "visited provenance must be released")
	assert.Nil(t, product.Provenance())

	err := root.Backward()
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMissingProvenance, "second backward must fail, not silently recompute")
}

func TestBackwardOnLeafFails(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 1.0)

	err := x.Backward()
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMissingProvenance)
}

func TestBackwardMultiElementRootSeedsOnes(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{1, 2, 3}, buffer.Shape{3})
	b := leaf(t, backend, []float32{4, 5, 6}, buffer.Shape{3})

	// Root stays a 3-element vector: the pass differentiates the sum of its
	// elements, so a.grad == b's data.
	y := a.Mul(b)
	require.NoError(t, y.Backward())

	assert.Equal(t, []float32{1, 1, 1}, y.Grad().Buffer().AsFloat32())
	assert.Equal(t, []float32{4, 5, 6}, a.Grad().Buffer().AsFloat32())
}

func TestConstructionRejectsNonNumeric(t *testing.T) {
	backend := cpu.New()

	intBuf, err := buffer.New(buffer.Shape{2}, buffer.Int32)
	require.NoError(t, err)

	_, err = graph.New(intBuf, backend)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrNonNumeric)

	boolBuf, err := buffer.New(buffer.Shape{2}, buffer.Bool)
	require.NoError(t, err)

	_, err = graph.New(boolBuf, backend)
	assert.ErrorIs(t, err, graph.ErrNonNumeric)

	halfBuf, err := buffer.FromFloat16Bits([]uint16{0x3C00}, buffer.Shape{1})
	require.NoError(t, err)

	_, err = graph.New(halfBuf, backend)
	assert.ErrorIs(t, err, graph.ErrNonNumeric, "float16 is storage-only; Cast before building a graph")
}

func TestApplyArityMismatch(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 1.0)

	_, err := graph.Apply(backend, ops.NewAddOp(), x)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrArity)
	assert.Contains(t, err.Error(), "Add")
}

func TestApplyNilParent(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 1.0)

	_, err := graph.Apply(backend, ops.NewAddOp(), x, nil)
	require.Error(t, err)
}

func TestDotGradientShapes(t *testing.T) {
	backend := cpu.New()

	// x:(2,3), y:(3,4) -> out:(2,4); grad_y must be (3,4), not x's shape.
	x := leaf(t, backend, make([]float32, 6), buffer.Shape{2, 3})
	y := leaf(t, backend, make([]float32, 12), buffer.Shape{3, 4})

	root := x.Dot(y).Sum()
	require.NoError(t, root.Backward())

	assert.Equal(t, buffer.Shape{2, 3}, x.Grad().Shape())
	assert.Equal(t, buffer.Shape{3, 4}, y.Grad().Shape())
}

func TestAddMulGradientShapesMatchParents(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{1, 2, 3, 4}, buffer.Shape{2, 2})
	b := leaf(t, backend, []float32{5, 6, 7, 8}, buffer.Shape{2, 2})

	root := a.Add(b).Mul(a).Sum()
	require.NoError(t, root.Backward())

	assert.Equal(t, buffer.Shape{2, 2}, a.Grad().Shape())
	assert.Equal(t, buffer.Shape{2, 2}, b.Grad().Shape())
}

func TestPowExponentReceivesNoGradient(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 2.0)
	p := graph.FromScalar(backend, 3.0)

	y := x.Pow(p)
	require.NoError(t, y.Backward())

	// d(x³)/dx = 3x² = 12
	require.NotNil(t, x.Grad())
	assert.InDelta(t, 12.0, x.Grad().Buffer().AsFloat64()[0], 1e-9)
	assert.Nil(t, p.Grad(), "exponent gradient is a documented limitation")
}

// A computed node that only feeds gradient-free operator slots ends the pass
// with a nil gradient; the walk must skip it instead of dereferencing it.
func TestBackwardSkipsGradientFreeNodes(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 2.0)
	p := graph.FromScalar(backend, 1.0).Exp() // e, as a computed exponent

	y := x.Pow(p)
	require.NoError(t, y.Backward())

	// d(x^e)/dx = e * x^(e-1)
	require.NotNil(t, x.Grad())
	assert.InDelta(t, math.E*math.Pow(2, math.E-1), x.Grad().Buffer().AsFloat64()[0], 1e-9)

	assert.Nil(t, p.Grad(), "exponent receives no gradient")
	assert.Nil(t, p.Provenance(), "skipped nodes are still consumed")
}

func TestDivGradientFlowsToNumeratorOnly(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 6.0)
	y := graph.FromScalar(backend, 2.0)

	q := x.Div(y)
	assert.InDelta(t, 3.0, q.Buffer().AsFloat64()[0], 1e-12)

	require.NoError(t, q.Backward())
	assert.InDelta(t, 0.5, x.Grad().Buffer().AsFloat64()[0], 1e-12)
	assert.Nil(t, y.Grad(), "the reciprocal is taken as a constant leaf")
}

func TestNegAndSub(t *testing.T) {
	backend := cpu.New()
	a := graph.FromScalar(backend, 5.0)
	b := graph.FromScalar(backend, 3.0)

	d := a.Sub(b)
	assert.InDelta(t, 2.0, d.Buffer().AsFloat64()[0], 1e-12)

	require.NoError(t, d.Backward())
	assert.InDelta(t, 1.0, a.Grad().Buffer().AsFloat64()[0], 1e-12)
	assert.InDelta(t, -1.0, b.Grad().Buffer().AsFloat64()[0], 1e-12)
}

func TestMeanValue(t *testing.T) {
	backend := cpu.New()
	v := leaf(t, backend, []float32{2, 4, 6, 8}, buffer.Shape{4})

	m := v.Mean()
	assert.InDelta(t, 5.0, float64(m.Buffer().AsFloat32()[0]), 1e-6)
}

func TestTransposeInPlaceBypassesGraph(t *testing.T) {
	backend := cpu.New()
	m := leaf(t, backend, []float32{1, 2, 3, 4, 5, 6}, buffer.Shape{2, 3})

	same := m.TransposeInPlace()
	assert.Same(t, m, same, "in-place transpose returns the receiver")
	assert.Equal(t, buffer.Shape{3, 2}, m.Shape())
	assert.True(t, m.IsLeaf(), "no provenance is attached")
}

func TestGraphTransposeIsDifferentiable(t *testing.T) {
	backend := cpu.New()
	m := leaf(t, backend, []float32{1, 2, 3, 4, 5, 6}, buffer.Shape{2, 3})

	tr := m.Transpose()
	assert.Equal(t, buffer.Shape{3, 2}, tr.Shape())
	assert.NotNil(t, tr.Provenance())

	require.NoError(t, tr.Sum().Backward())
	assert.Equal(t, buffer.Shape{2, 3}, m.Grad().Shape())
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, m.Grad().Buffer().AsFloat32())
}

func TestFromMatrix(t *testing.T) {
	backend := cpu.New()

	m, err := graph.FromMatrix(backend, [][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, buffer.Shape{2, 3}, m.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, m.Buffer().AsFloat32())

	_, err = graph.FromMatrix(backend, [][]float32{{1, 2}, {3}})
	require.Error(t, err, "ragged rows must be rejected")

	_, err = graph.FromMatrix(backend, [][]float32{})
	require.Error(t, err)
}

func TestValueString(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{2, 3}, buffer.Shape{2})
	b := leaf(t, backend, []float32{4, 5}, buffer.Shape{2})

	assert.Equal(t, "Value[float32][2]", a.String())

	require.NoError(t, a.Mul(b).Sum().Backward())
	assert.Equal(t, "Value[float32][2] grad=Value[float32][2]", a.String())
}

func TestWriteDOT(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{2, 3}, buffer.Shape{2})
	b := leaf(t, backend, []float32{4, 5}, buffer.Shape{2})
	root := a.Mul(b).Sum()

	var sb strings.Builder
	require.NoError(t, graph.WriteDOT(&sb, root))

	dot := sb.String()
	assert.True(t, strings.HasPrefix(dot, "digraph fusion {"))
	assert.Contains(t, dot, "Mul")
	assert.Contains(t, dot, "Sum")
	assert.Contains(t, dot, "leaf float32[2]")

	// The dump is read-only: the graph is still traversable.
	require.NoError(t, root.Backward())
	assert.Equal(t, []float32{4, 5}, a.Grad().Buffer().AsFloat32())
}

func TestBackwardWithDumpGraph(t *testing.T) {
	backend := cpu.New()
	a := leaf(t, backend, []float32{2, 3}, buffer.Shape{2})
	root := a.Exp().Sum()

	var sb strings.Builder
	require.NoError(t, root.BackwardWith(graph.BackwardOptions{DumpGraph: &sb}))

	assert.Contains(t, sb.String(), "Exp")
	require.NotNil(t, a.Grad(), "dump must not interfere with the pass itself")
}

func TestErrorsCarryContext(t *testing.T) {
	backend := cpu.New()
	x := graph.FromScalar(backend, 1.0)

	err := x.Backward()
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrMissingProvenance))
	assert.Contains(t, err.Error(), "Value[float64]")
}
