package media

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/tuanng/mediahost/pkg/apperror"
)

const publicIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const PublicIDLength = 24

// NewPublicID returns a fresh URL-safe identifier, 24 lowercase
// alphanumeric characters. It doubles as the storage-key namespace root.
func NewPublicID() string {
	id, err := gonanoid.Generate(publicIDAlphabet, PublicIDLength)
	if err != nil {
		// crypto/rand failure, nothing sensible to do
		panic(err)
	}
	return id
}

var audioMimeTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/flac":  true,
	"audio/ogg":   true,
	"audio/aac":   true,
}

// Classify maps a sniffed or declared MIME type to a media kind. Pure and
// total: anything outside the allowed set rejects with ErrUnsupportedMedia.
func Classify(mimeType string) (Kind, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}

	switch {
	case strings.HasPrefix(mt, "image/"):
		return KindImage, nil
	case mt == "application/zip" || mt == "application/x-zip-compressed":
		return KindArchive, nil
	case audioMimeTypes[mt]:
		return KindAudio, nil
	case mt == "video/mp4":
		return KindVideo, nil
	}
	return "", apperror.NewUnsupportedMedia(mimeType)
}

// TypePrefix is the first storage-key segment for a kind:
// i (image), au (audio), v (video), a (archive).
func TypePrefix(kind Kind) string {
	switch kind {
	case KindImage:
		return "i"
	case KindAudio:
		return "au"
	case KindVideo:
		return "v"
	case KindArchive:
		return "a"
	}
	return "x"
}

// StorageKey builds the deterministic object key for one variant:
// {typePrefix}/{publicId}/{variant}.{format}. It is a pure function, no
// lookup needed, so storage and metadata can be reasoned about
// independently.
func StorageKey(kind Kind, publicID, variant, format string) string {
	return TypePrefix(kind) + "/" + publicID + "/" + variant + "." + format
}

// StoragePrefix is the key prefix every variant of a media item lives
// under. Deleting this prefix removes all of its blobs.
func StoragePrefix(kind Kind, publicID string) string {
	return TypePrefix(kind) + "/" + publicID + "/"
}

// FormatFor is the output file format per kind: images are re-encoded to
// webp, audio to mp3; video and archives keep their container.
func FormatFor(kind Kind) string {
	switch kind {
	case KindImage:
		return "webp"
	case KindAudio:
		return "mp3"
	case KindVideo:
		return "mp4"
	case KindArchive:
		return "zip"
	}
	return "bin"
}

// ExtFromFilename extracts a lowercased extension, nil when there is none.
func ExtFromFilename(filename string) *string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return nil
	}
	ext := strings.ToLower(filename[i+1:])
	return &ext
}
