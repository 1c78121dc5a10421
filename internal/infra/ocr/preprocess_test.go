package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreprocess_RejectsGarbage(t *testing.T) {
	_, err := preprocess([]byte("not an image"), 0, 0)
	assert.Error(t, err)
}

func TestPreprocess_ProducesGrayscalePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}

	out, err := preprocess(encodePNG(t, src), 0, 0)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	_, ok := decoded.(*image.Gray)
	assert.True(t, ok)
}

func TestPreprocess_DownscalesWideImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))

	out, err := preprocess(encodePNG(t, src), 50, 0)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, decoded.Bounds().Dx())
	assert.Equal(t, 25, decoded.Bounds().Dy())
}

func TestPreprocess_BinarizeSplitsBlackAndWhite(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 30})
	src.SetGray(1, 0, color.Gray{Y: 220})

	out, err := preprocess(encodePNG(t, src), 0, 128)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	gray, ok := decoded.(*image.Gray)
	require.True(t, ok)
	assert.Equal(t, uint8(0), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), gray.GrayAt(1, 0).Y)
}

func TestContrastStretch_UsesFullRange(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 100})
	src.SetGray(1, 0, color.Gray{Y: 150})

	gray := toContrastStretchedGray(src)
	assert.Equal(t, uint8(0), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), gray.GrayAt(1, 0).Y)
}
