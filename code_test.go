package rotsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeEncodeDecode(t *testing.T) {
	cases := []struct {
		code Code
		want int32
	}{
		{Code{Class: 111}, 111},
		{Code{Class: CODE_CORN, Continuous: true}, 501},
		{Code{Class: CODE_WHEAT, Continuous: true}, 522},
		{Code{Class: 225, Continuous: true}, 725},
		{Code{Class: 61, Drained: true}, 1061},
		{Code{Class: 241, Continuous: true, Drained: true}, 1741},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.code.Encode())
		got, err := Decode(c.want)
		require.NoError(t, err)
		assert.Equal(t, c.code, got)
	}
}

func TestDecodeRejectsOutOfRange(t *testing.T) {
	for _, v := range []int32{-1, 2000, 4096} {
		_, err := Decode(v)
		assert.ErrorIs(t, err, ErrInvalidCode, "value %d", v)
	}
}

func TestCodeLabel(t *testing.T) {
	assert.Equal(t, "continuous Corn, tile drained", Code{Class: 1, Continuous: true, Drained: true}.Label())
	assert.Equal(t, "Open Water", Code{Class: 111}.Label())
	assert.Equal(t, "class 176", Code{Class: 176}.Label())
}

func TestLayerFrom(t *testing.T) {
	base := GridOf(3, 1, 1, 255, 499)
	base.HasNoData = true
	base.NoData = 255
	l, err := LayerFrom(base)
	require.NoError(t, err)
	assert.Equal(t, []Code{{Class: 1}, {Class: 0}, {Class: 499}}, l.Codes)

	_, err = LayerFrom(GridOf(1, 1, 500))
	assert.ErrorIs(t, err, ErrClassOutOfRange)
	_, err = LayerFrom(GridOf(1, 1, -3))
	assert.ErrorIs(t, err, ErrClassOutOfRange)
}

func TestLegend(t *testing.T) {
	var values []int32
	for _, e := range Legend(DefaultCrops(), DefaultDoubleCrops()) {
		values = append(values, e.Value)
		assert.Equal(t, e.Value, e.Code.Encode())
	}
	assert.Equal(t, []int32{
		501, 502, 505, 522, 526, 725, 738, 739, 741,
		1501, 1502, 1505, 1522, 1526, 1725, 1738, 1739, 1741,
	}, values)
}
