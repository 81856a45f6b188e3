package transcode

import (
	"bytes"
	"image"

	// register decoders for the supported raster containers
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/tuanng/mediahost/pkg/apperror"
)

const webpQuality = 85

type ImageResult struct {
	Data   []byte
	Width  int
	Height int
}

type ImageTranscoder struct{}

func NewImageTranscoder() *ImageTranscoder {
	return &ImageTranscoder{}
}

// Render decodes a raster image, downscales the longer edge to maxDimension
// when it exceeds it (never upscales; maxDimension 0 skips resizing
// entirely), and re-encodes to WebP at quality 85. Decoding and re-encoding
// drops EXIF and every other metadata block; pixel data is carried through
// 8-bit NRGBA, so alpha survives. Returned dimensions are those of the
// written output.
func (t *ImageTranscoder) Render(data []byte, maxDimension int) (*ImageResult, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.NewTranscode("failed to decode image", err)
	}

	img := imaging.Clone(src)
	if maxDimension > 0 {
		// Fit keeps aspect ratio and returns the image unchanged when it
		// already fits inside the box.
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, apperror.NewTranscode("failed to encode webp", err)
	}

	bounds := img.Bounds()
	return &ImageResult{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
