package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusion-ml/fusion/backend/cpu"
	"github.com/fusion-ml/fusion/buffer"
	"github.com/fusion-ml/fusion/graph"
)

// The public facade must support the full construct-compose-backward cycle.
func TestPublicSurface(t *testing.T) {
	backend := cpu.New()

	a, err := graph.FromSlice(backend, []float32{2, 3}, buffer.Shape{2})
	require.NoError(t, err)
	b, err := graph.FromSlice(backend, []float32{4, 5}, buffer.Shape{2})
	require.NoError(t, err)

	c := a.Mul(b).Sum()
	require.NoError(t, c.Backward())

	assert.Equal(t, []float32{4, 5}, a.Grad().Buffer().AsFloat32())
	assert.Equal(t, []float32{2, 3}, b.Grad().Buffer().AsFloat32())
}

func TestPublicErrors(t *testing.T) {
	backend := cpu.New()

	intBuf, err := buffer.New(buffer.Shape{1}, buffer.Int32)
	require.NoError(t, err)

	_, err = graph.New(intBuf, backend)
	assert.ErrorIs(t, err, graph.ErrNonNumeric)

	x := graph.FromScalar(backend, 1.0)
	assert.ErrorIs(t, x.Backward(), graph.ErrMissingProvenance)
}
