package blob_storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutExistsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore("https://media.example.com/")

	key := "i/abc123/960.webp"
	payload := []byte("webp bytes")
	require.NoError(t, store.Put(ctx, key, payload, "image/webp"))

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.(*FSStore).ReadBlob(key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// overwriting with identical content is a no-op
	require.NoError(t, store.Put(ctx, key, payload, "image/webp"))
	got, err = store.(*FSStore).ReadBlob(key)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFSStore_PublicURL(t *testing.T) {
	// trailing slash on the base URL is stripped
	store := NewMemStore("https://media.example.com/")
	assert.Equal(t, "https://media.example.com/i/abc/960.webp", store.PublicURL("i/abc/960.webp"))

	store = NewMemStore("https://media.example.com")
	assert.Equal(t, "https://media.example.com/i/abc/960.webp", store.PublicURL("i/abc/960.webp"))
}

func TestFSStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore("https://media.example.com")

	require.NoError(t, store.Put(ctx, "i/abc/640.webp", []byte("a"), "image/webp"))
	require.NoError(t, store.Put(ctx, "i/abc/960.webp", []byte("b"), "image/webp"))
	require.NoError(t, store.Put(ctx, "i/abc/original.webp", []byte("c"), "image/webp"))
	require.NoError(t, store.Put(ctx, "i/other/960.webp", []byte("d"), "image/webp"))

	count, err := store.DeletePrefix(ctx, "i/abc/")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ok, err := store.Exists(ctx, "i/abc/960.webp")
	require.NoError(t, err)
	assert.False(t, ok)

	// neighbour under a different prefix survives
	ok, err = store.Exists(ctx, "i/other/960.webp")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFSStore_DeletePrefixEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore("https://media.example.com")

	count, err := store.DeletePrefix(ctx, "i/never-existed/")
	require.NoError(t, err)
	assert.Zero(t, count)

	// calling again is still safe
	count, err = store.DeletePrefix(ctx, "i/never-existed/")
	require.NoError(t, err)
	assert.Zero(t, count)
}
