package tape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Name: "hello", Version: "1.0"}
	encoded, err := EncodeHeader(h)
	require.NoError(t, err)

	decoded, n, err := DecodeHeader(encoded)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
	assert.Equal(t, len(encoded), n)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{Name: "prog", Version: "1"}
	ops := []byte{0xFF}
	region := []byte{1, 2, 3, 4, 5}

	blob, err := Encode(h, ops, region)
	require.NoError(t, err)

	tp, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, h, tp.Header)
	assert.Equal(t, ops, tp.Ops)
	assert.Equal(t, region, tp.StringsData)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode([]byte{0, 0, 1, 0, 0})
	assert.Error(t, err)
}

func TestEncodeRejectsOversizeName(t *testing.T) {
	long := make([]byte, MaxNameLen+1)
	_, err := EncodeHeader(Header{Name: string(long)})
	assert.Error(t, err)
}
