package rotsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainageRestricted(t *testing.T) {
	relevant := NewClassSet(TileRelevantClasses...)
	base := GridOf(5, 1, 1, 1, 111, 61, 225)
	drainage := GridOf(5, 1, 1, 0, 1, 1, 255)
	drainage.HasNoData = true
	drainage.NoData = 255
	got, err := DrainageRestricted(base, drainage, relevant)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 0, 1, 0}, got.Bits)

	_, err = DrainageRestricted(base, GridOf(1, 5), relevant)
	assert.ErrorIs(t, err, ErrGridMisaligned)
}

func TestStackDrainage(t *testing.T) {
	relevant := NewClassSet(TileRelevantClasses...)
	base := GridOf(4, 1, 1, 225, 111, 5)
	acc := layerOf(Code{Class: 1, Continuous: true}, Code{Class: 225, Continuous: true}, Code{Class: 111}, Code{Class: 5})
	got, err := StackDrainage(acc, base, GridOf(4, 1, 1, 1, 1, 0), relevant)
	require.NoError(t, err)
	assert.Equal(t, []int32{1501, 1725, 111, 5}, got.Encode().Pix)
}

func TestStackDrainageRejectsDoubleOffset(t *testing.T) {
	relevant := NewClassSet(TileRelevantClasses...)
	acc := layerOf(Code{Class: 1, Drained: true})
	_, err := StackDrainage(acc, GridOf(1, 1, 1), GridOf(1, 1, 1), relevant)
	assert.ErrorIs(t, err, ErrAlreadyDrained)
}
