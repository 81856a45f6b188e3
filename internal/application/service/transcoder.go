package service

import (
	"context"

	"github.com/tuanng/mediahost/internal/transcode"
)

type ImageTranscoder interface {
	Render(data []byte, maxDimension int) (*transcode.ImageResult, error)
}

type AudioTranscoder interface {
	Render(ctx context.Context, data []byte) (*transcode.AudioResult, error)
}
