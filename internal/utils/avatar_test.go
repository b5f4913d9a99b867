package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResizeAvatar(t *testing.T) {
	for _, dims := range [][2]int{{640, 320}, {120, 480}, {300, 300}} {
		out, err := ResizeAvatar(pngFixture(t, dims[0], dims[1]), 200)
		require.NoError(t, err)

		img, format, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 200, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	}
}

func TestResizeAvatar_Rejects(t *testing.T) {
	_, err := ResizeAvatar([]byte("definitely not an image"), 200)
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	// a PNG signature followed by garbage
	broken := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	_, err = ResizeAvatar(broken, 200)
	assert.ErrorIs(t, err, ErrUndecodableImage)
}

func TestResizeAvatar_TooLarge(t *testing.T) {
	for _, dims := range [][2]int{{MaxAvatarDimension + 1, 1}, {1, 12000}} {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, dims[0], dims[1]))))

		_, err := ResizeAvatar(buf.Bytes(), 200)
		assert.ErrorIs(t, err, ErrImageTooLarge)
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, MaxAvatarDimension, 1))))
	_, err := ResizeAvatar(buf.Bytes(), 16)
	assert.NoError(t, err)
}

func TestEncodeAvatar(t *testing.T) {
	encoded, err := EncodeAvatar(pngFixture(t, 50, 80), 64)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 64, cfg.Height)
}
