package rotsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layerOf(codes ...Code) Layer {
	return Layer{Cols: len(codes), Rows: 1, Codes: codes}
}

func TestSelectRewritesCoveredPixels(t *testing.T) {
	l := layerOf(Code{Class: 1}, Code{Class: 5}, Code{Class: 111})
	got, err := Select(l,
		Case{When: MaskOf(3, 1, 1, 0, 0), Then: Set(Code{Class: 1, Continuous: true})},
		Case{When: MaskOf(3, 1, 0, 1, 0), Then: drain},
	)
	require.NoError(t, err)
	assert.Equal(t, []Code{{Class: 1, Continuous: true}, {Class: 5, Drained: true}, {Class: 111}}, got.Codes)
	assert.Equal(t, Code{Class: 1}, l.Codes[0], "input layer must not change")
}

func TestSelectRejectsOverlap(t *testing.T) {
	l := layerOf(Code{Class: 1}, Code{Class: 5})
	_, err := Select(l,
		Case{When: MaskOf(2, 1, 1, 1), Then: Keep},
		Case{When: MaskOf(2, 1, 0, 1), Then: Keep},
	)
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestSelectRejectsMisalignedMask(t *testing.T) {
	_, err := Select(layerOf(Code{Class: 1}), Case{When: NewMask(2, 1), Then: Keep})
	assert.ErrorIs(t, err, ErrGridMisaligned)
}

func TestCheckDisjoint(t *testing.T) {
	assert.NoError(t, CheckDisjoint(MaskOf(3, 1, 1, 0, 0), MaskOf(3, 1, 0, 1, 1)))
	assert.ErrorIs(t, CheckDisjoint(MaskOf(3, 1, 1, 0, 1), MaskOf(3, 1, 0, 0, 1)), ErrOverlap)
	assert.ErrorIs(t, CheckDisjoint(NewMask(3, 1), NewMask(1, 3)), ErrGridMisaligned)
}
