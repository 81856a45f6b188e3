package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

type AudioResult struct {
	Data            []byte
	DurationSeconds float64
}

// AudioTranscoder shells out to ffmpeg to normalize any whitelisted audio
// input into MP3, and to ffprobe for the duration. A hung external process
// is cut off by the wall-clock timeout and treated as a transcode failure.
type AudioTranscoder struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
	logger      logger.Logger
}

func NewAudioTranscoder(ffmpegPath, ffprobePath string, timeout time.Duration, log logger.Logger) *AudioTranscoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &AudioTranscoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
		logger:      log,
	}
}

func (t *AudioTranscoder) Render(ctx context.Context, data []byte) (*AudioResult, error) {
	dir, err := os.MkdirTemp("", "mediahost-audio-")
	if err != nil {
		return nil, apperror.NewInternal("failed to create temp dir", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out.mp3")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, apperror.NewInternal("failed to write temp input", err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.ffmpegPath,
		"-y", "-v", "error",
		"-i", in,
		"-vn", "-acodec", "libmp3lame", "-q:a", "3",
		out,
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.logger.Warn("ffmpeg transcode failed", zap.String("stderr", stderr.String()))
		return nil, apperror.NewTranscode(fmt.Sprintf("ffmpeg failed: %s", strings.TrimSpace(stderr.String())), err)
	}

	encoded, err := os.ReadFile(out)
	if err != nil {
		return nil, apperror.NewTranscode("ffmpeg produced no output file", err)
	}

	duration, err := t.probeDuration(ctx, out)
	if err != nil {
		return nil, err
	}

	return &AudioResult{Data: encoded, DurationSeconds: duration}, nil
}

func (t *AudioTranscoder) probeDuration(ctx context.Context, path string) (float64, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=nw=1:nk=1",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, apperror.NewTranscode(fmt.Sprintf("ffprobe failed: %s", strings.TrimSpace(stderr.String())), err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, apperror.NewTranscode("ffprobe returned unparseable duration", err)
	}
	return duration, nil
}
