package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataWorkedExample(t *testing.T) {
	src := `[[xFD, xA0, 15], [2, 'H', 'W'], [1, '1'], ['H','e','l','l','o',' ','W','o','r','l','d']]`
	got, err := ParseData(src)
	require.NoError(t, err)

	want := []byte{
		4, 3, 3, 2, 11,
		253, 160, 15,
		2, 72, 87,
		1, 49,
		72, 101, 108, 108, 111, 32, 87, 111, 114, 108, 100,
	}
	assert.Equal(t, want, got)
}

func TestParseDataStrings(t *testing.T) {
	got, err := ParseData(`["Hello", "World"]`)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 5, 5, 'H', 'e', 'l', 'l', 'o', 'W', 'o', 'r', 'l', 'd'}, got)
}

func TestParseDataRejectsEmptyArray(t *testing.T) {
	_, err := ParseData(`[[]]`)
	assert.Error(t, err)
}

func TestParseDataRejectsEmptyString(t *testing.T) {
	_, err := ParseData(`[""]`)
	assert.Error(t, err)
}

func TestParseDataRejectsMissingBrackets(t *testing.T) {
	_, err := ParseData(`1, 2, 3`)
	assert.Error(t, err)
}

func TestParseDataRejectsOversizeEntry(t *testing.T) {
	big := make([]string, MaxDataArrayLen+1)
	for i := range big {
		big[i] = "0"
	}
	_, err := ParseData("[[" + strings.Join(big, ",") + "]]")
	assert.Error(t, err)
}
