package rotsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCode(t *testing.T) {
	p := NewPipeline()
	assert.True(t, p.ValidCode(Code{Class: 111}))
	assert.True(t, p.ValidCode(Code{Class: 111, Drained: true}))
	assert.True(t, p.ValidCode(Code{Class: CODE_SOYBEANS, Continuous: true}))
	assert.True(t, p.ValidCode(Code{Class: 239, Continuous: true, Drained: true}))
	assert.False(t, p.ValidCode(Code{Class: 111, Continuous: true}))
	assert.False(t, p.ValidCode(Code{Class: 500}))
}

func TestHistogramAndSummary(t *testing.T) {
	g := GridOf(4, 2, 0, 0, 501, 1501, 725, 111, 1111, 611)
	g.HasNoData = true
	g.NoData = 0
	h := Histogram(g)
	assert.Equal(t, map[int32]int64{501: 1, 1501: 1, 725: 1, 111: 1, 1111: 1, 611: 1}, h)
	assert.Equal(t, []int32{111, 501, 611, 725, 1111, 1501}, HistogramKeys(h))

	s := NewPipeline().Summarize(h)
	assert.Equal(t, Summary{Total: 6, Rotation: 2, Continuous: 3, Drained: 2, Invalid: 1}, s)
}

func TestSummaryString(t *testing.T) {
	s := Summary{Total: 1234567, Rotation: 1000000, Continuous: 234567}
	assert.Equal(t, "pixels 1,234,567: rotation 1,000,000, continuous 234,567, tile drained 0, invalid 0", s.String())
}

func TestSplitDrained(t *testing.T) {
	g := GridOf(5, 1, 0, 1, 501, 1001, 1725)
	g.HasNoData = true
	nonTile, tile := SplitDrained(g)
	assert.Equal(t, []int32{0, 1, 501, 0, 0}, nonTile.Pix)
	assert.Equal(t, []int32{0, 0, 0, 1001, 1725}, tile.Pix)
	assert.True(t, tile.HasNoData)
	assert.Equal(t, OUTPUT_NODATA, nonTile.NoData)
}
