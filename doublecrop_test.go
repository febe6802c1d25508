package rotsep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wheatCorn() DoubleCrop {
	for _, dc := range DefaultDoubleCrops() {
		if dc.Class == 225 {
			return dc
		}
	}
	panic("no wheat/corn double crop")
}

func TestResolveDoubleCropOutcomes(t *testing.T) {
	dc := wheatCorn()
	cases := []struct {
		name          string
		first, second uint8
		want          int32
	}{
		{"both", 1, 1, 725},
		{"first only", 1, 0, 522},
		{"second only", 0, 1, 501},
		{"neither", 0, 0, 225},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			acc := layerOf(Code{Class: 225})
			got, err := ResolveDoubleCrop(acc, dc, MaskOf(1, 1, c.first), MaskOf(1, 1, c.second))
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Codes[0].Encode())
		})
	}
}

func TestResolveDoubleCropLeavesOtherClasses(t *testing.T) {
	acc := layerOf(Code{Class: 26}, Code{Class: 1, Continuous: true}, Code{Class: 225})
	got, err := ResolveDoubleCrop(acc, wheatCorn(), MaskOf(3, 1, 1, 1, 1), MaskOf(3, 1, 1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int32{26, 501, 725}, got.Encode().Pix)
}

func TestResolveDoubleCrops(t *testing.T) {
	// 26 小麦/大豆、225 小麦/玉米、238 小麦/棉花、239 大豆/棉花、241 玉米/大豆
	acc := layerOf(Code{Class: 26}, Code{Class: 225}, Code{Class: 238}, Code{Class: 239}, Code{Class: 241}, Code{Class: 61})
	ind := map[string]Mask{
		CROP_WHEAT:    MaskOf(6, 1, 1, 0, 1, 1, 1, 1),
		CROP_SOYBEANS: MaskOf(6, 1, 1, 1, 1, 1, 0, 1),
		CROP_CORN:     MaskOf(6, 1, 1, 1, 1, 1, 1, 1),
		CROP_COTTON:   MaskOf(6, 1, 0, 0, 0, 0, 0, 1),
	}
	got, err := ResolveDoubleCrops(acc, ind, DefaultDoubleCrops())
	require.NoError(t, err)
	assert.Equal(t, []int32{526, 501, 522, 505, 501, 61}, got.Encode().Pix)
}

func TestResolveDoubleCropsMissingIndicator(t *testing.T) {
	_, err := ResolveDoubleCrops(layerOf(Code{Class: 26}), map[string]Mask{CROP_WHEAT: NewMask(1, 1)}, DefaultDoubleCrops())
	assert.ErrorIs(t, err, ErrMissingFrequency)
}

// 单作物编码后的像元带连作标记，不会再与一年两熟地类相等
func TestDoubleCropUnreachableAfterSingleCrop(t *testing.T) {
	crops := DefaultCrops()
	crops[0].Classes = NewClassSet(append([]int32{225}, WheatClasses...)...)
	p := NewPipeline(WithCrops(crops))
	in := Inputs{
		Base: GridOf(1, 1, 225),
		Frequency: map[string]Grid{
			CROP_WHEAT:    GridOf(1, 1, 16),
			CROP_COTTON:   GridOf(1, 1, 0),
			CROP_SOYBEANS: GridOf(1, 1, 0),
			CROP_CORN:     GridOf(1, 1, 16),
		},
		Drainage: GridOf(1, 1, 0),
	}
	st, err := p.Stages(in)
	require.NoError(t, err)
	assert.Equal(t, int32(522), st.SingleCrop.Codes[0].Encode())
	assert.Equal(t, int32(522), st.Final.Codes[0].Encode())
}
