package transcode

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"github.com/tuanng/mediahost/pkg/apperror"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestRender_DownscalesLongerEdge(t *testing.T) {
	tr := NewImageTranscoder()
	src := encodeJPEG(t, 2000, 1000)

	res, err := tr.Render(src, 960)
	require.NoError(t, err)
	assert.Equal(t, 960, res.Width)
	assert.Equal(t, 480, res.Height)

	res, err = tr.Render(src, 640)
	require.NoError(t, err)
	assert.Equal(t, 640, res.Width)
	assert.Equal(t, 320, res.Height)

	// reported dimensions must match the written output
	decoded, err := webp.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, res.Width, decoded.Bounds().Dx())
	assert.Equal(t, res.Height, decoded.Bounds().Dy())
}

func TestRender_PortraitUsesLongerEdge(t *testing.T) {
	tr := NewImageTranscoder()
	src := encodeJPEG(t, 500, 1000)

	res, err := tr.Render(src, 640)
	require.NoError(t, err)
	assert.Equal(t, 640, res.Height)
	assert.Equal(t, 320, res.Width)
}

func TestRender_NeverUpscales(t *testing.T) {
	tr := NewImageTranscoder()
	src := encodeJPEG(t, 100, 100)

	res, err := tr.Render(src, 960)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 100, res.Height)
}

func TestRender_PassThroughKeepsDimensions(t *testing.T) {
	tr := NewImageTranscoder()
	src := encodeJPEG(t, 2000, 1000)

	res, err := tr.Render(src, 0)
	require.NoError(t, err)
	assert.Equal(t, 2000, res.Width)
	assert.Equal(t, 1000, res.Height)
}

func TestRender_PreservesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	// fully transparent top-left corner
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.NRGBA{})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	tr := NewImageTranscoder()
	res, err := tr.Render(buf.Bytes(), 960)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 100, res.Height)

	decoded, err := webp.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	_, _, _, a := decoded.At(2, 2).RGBA()
	assert.Zero(t, a, "transparent corner pixel must stay transparent")
	_, _, _, a = decoded.At(50, 50).RGBA()
	assert.NotZero(t, a)
}

func TestRender_DecodeFailure(t *testing.T) {
	tr := NewImageTranscoder()
	_, err := tr.Render([]byte("definitely not an image"), 640)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrTranscode))
}
