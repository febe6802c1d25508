package rotsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtentOf(t *testing.T) {
	ref := GeoRef{Transform: [6]float64{-1000, 30, 0, 2000, 0, -30}}
	span, err := ExtentOf(ref, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, [4]float64{-1000, -700, 1880, 2000}, span)

	g := NewGrid(10, 4)
	g.Ref = ref
	wkt, err := g.ExtentWkt()
	require.NoError(t, err)
	assert.Equal(t, "POLYGON((-1000.000000 1880.000000, -1000.000000 2000.000000, -700.000000 2000.000000, -700.000000 1880.000000, -1000.000000 1880.000000))", wkt)

	x, y := ref.Resolution()
	assert.Equal(t, 30.0, x)
	assert.Equal(t, 30.0, y)

	_, err = ExtentOf(GeoRef{Transform: [6]float64{0, 30, 1, 0, 0, -30}}, 1, 1)
	assert.ErrorIs(t, err, ErrRotatedTransform)
}

func TestGeoRefMatches(t *testing.T) {
	a := GeoRef{Transform: [6]float64{0, 30, 0, 0, 0, -30}, Projection: "P"}
	b := a
	b.Transform[0] += GEO_TRANSFORM_TOLERANCE / 2
	assert.True(t, a.Matches(b))
	assert.True(t, a.Matches(GeoRef{}))

	b.Transform[0] = 30
	assert.False(t, a.Matches(b))

	c := a
	c.Projection = "Q"
	assert.False(t, a.Matches(c))
}

func TestGridStripSharesPixels(t *testing.T) {
	g := GridOf(2, 3, 1, 2, 3, 4, 5, 6)
	g.Ref = GeoRef{Projection: "P"}
	s := g.Strip(1, 3)
	assert.Equal(t, 2, s.Rows)
	assert.Equal(t, []int32{3, 4, 5, 6}, s.Pix)
	assert.True(t, s.Ref.IsZero())
	s.Pix[0] = 9
	assert.Equal(t, int32(9), g.At(0, 1))
}
