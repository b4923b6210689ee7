package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	b64 := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	ext, data, err := DecodeBase64Image(b64)
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, raw, data)
}

func TestDecodeBase64Image_Jpeg(t *testing.T) {
	b64 := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8})
	ext, _, err := DecodeBase64Image(b64)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", ext)
}

func TestDecodeBase64Image_UnsupportedType(t *testing.T) {
	b64 := "data:image/gif;base64," + base64.StdEncoding.EncodeToString([]byte{1})
	_, _, err := DecodeBase64Image(b64)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestDecodeBase64Image_Malformed(t *testing.T) {
	for _, s := range []string{"", "hello", "data:image/png;base64,", "data:image/png;base64,?not base64?"} {
		_, _, err := DecodeBase64Image(s)
		assert.Error(t, err, "input=%q", s)
	}
}
