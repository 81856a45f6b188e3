package media

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanng/mediahost/pkg/apperror"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		mime string
		want Kind
	}{
		{"image/jpeg", KindImage},
		{"image/png", KindImage},
		{"image/webp", KindImage},
		{"IMAGE/GIF", KindImage},
		{"image/png; charset=binary", KindImage},
		{"application/zip", KindArchive},
		{"application/x-zip-compressed", KindArchive},
		{"audio/mpeg", KindAudio},
		{"audio/mp3", KindAudio},
		{"audio/wav", KindAudio},
		{"audio/flac", KindAudio},
		{"audio/ogg", KindAudio},
		{"audio/aac", KindAudio},
		{"video/mp4", KindVideo},
	}

	for _, tc := range cases {
		got, err := Classify(tc.mime)
		require.NoError(t, err, tc.mime)
		assert.Equal(t, tc.want, got, tc.mime)
	}
}

func TestClassify_Rejected(t *testing.T) {
	for _, mime := range []string{"application/pdf", "video/webm", "text/html", "", "application/octet-stream"} {
		_, err := Classify(mime)
		require.Error(t, err, mime)
		assert.True(t, errors.Is(err, apperror.ErrUnsupportedMedia), mime)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first, err := Classify("audio/mpeg")
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := Classify("audio/mpeg")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "i/ab12cd34ef56gh78ij90kl12/960.webp",
		StorageKey(KindImage, "ab12cd34ef56gh78ij90kl12", "960", "webp"))
	assert.Equal(t, "au/ab12cd34ef56gh78ij90kl12/original.mp3",
		StorageKey(KindAudio, "ab12cd34ef56gh78ij90kl12", "original", "mp3"))
	assert.Equal(t, "v/ab12cd34ef56gh78ij90kl12/original.mp4",
		StorageKey(KindVideo, "ab12cd34ef56gh78ij90kl12", "original", "mp4"))
	assert.Equal(t, "a/ab12cd34ef56gh78ij90kl12/original.zip",
		StorageKey(KindArchive, "ab12cd34ef56gh78ij90kl12", "original", "zip"))

	// pure function of its inputs, no state
	k1 := StorageKey(KindImage, "abc", "640", "webp")
	k2 := StorageKey(KindImage, "abc", "640", "webp")
	assert.Equal(t, k1, k2)
}

func TestStoragePrefix(t *testing.T) {
	assert.Equal(t, "i/abc123/", StoragePrefix(KindImage, "abc123"))
	assert.Equal(t, "a/abc123/", StoragePrefix(KindArchive, "abc123"))
}

func TestNewPublicID(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9a-z]{24}$`)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewPublicID()
		assert.True(t, shape.MatchString(id), id)
		assert.False(t, seen[id], "public id collision: %s", id)
		seen[id] = true
	}
}

func TestExtFromFilename(t *testing.T) {
	ext := ExtFromFilename("Photo.JPG")
	require.NotNil(t, ext)
	assert.Equal(t, "jpg", *ext)

	assert.Nil(t, ExtFromFilename("noextension"))
	assert.Nil(t, ExtFromFilename("trailingdot."))
}
