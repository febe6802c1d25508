package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGbkRoundTrip(t *testing.T) {
	gbk, err := Utf8StrToGbk("县名")
	require.NoError(t, err)
	assert.NotEqual(t, "县名", gbk)
	assert.Len(t, gbk, 4)

	back, err := GbkStrToUtf8(gbk)
	require.NoError(t, err)
	assert.Equal(t, "县名", back)

	ascii, err := Utf8StrToGbk("NAME")
	require.NoError(t, err)
	assert.Equal(t, "NAME", ascii)
}

func TestStrToInts(t *testing.T) {
	assert.Equal(t, []int{501, 1725, 61}, StrToInts("501, 1725,x,61", ","))
	assert.Empty(t, StrToInts("", ","))
}
