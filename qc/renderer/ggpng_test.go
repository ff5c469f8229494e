package renderer

import (
	"testing"

	"github.com/kegliz/feynmansim/qc/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBellCircuitProducesNonEmptyImage(t *testing.T) {
	c, err := builder.New(2).H(0).CX(0, 1).Build()
	require.NoError(t, err)

	r := NewRenderer(40)
	img, err := r.Render(c)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Greater(t, bounds.Dx(), 0)
	assert.Greater(t, bounds.Dy(), 0)
}

func TestRenderWithCutHighlightsCrossingGate(t *testing.T) {
	c, err := builder.New(4).H(0).H(1).H(2).H(3).CZ(1, 2).Build()
	require.NoError(t, err)

	r := NewRenderer(40)
	img, err := r.RenderWithCut(c, 2)
	require.NoError(t, err)
	assert.NotNil(t, img)
}
