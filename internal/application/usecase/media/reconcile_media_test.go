package media

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanng/mediahost/adapters/blob_storage"
	"github.com/tuanng/mediahost/adapters/event"
	"github.com/tuanng/mediahost/pkg/logger"
)

func TestReconcile_PurgesOrphanedPrefix(t *testing.T) {
	ctx := context.Background()
	publicID := "ab12cd34ef56gh78ij90kl12"
	store := blob_storage.NewMemStore("https://m.test")
	require.NoError(t, store.Put(ctx, "i/"+publicID+"/640.webp", []byte("blob"), "image/webp"))
	require.NoError(t, store.Put(ctx, "i/"+publicID+"/960.webp", []byte("blob"), "image/webp"))

	uc := NewReconcileFailedIngestUseCase(store, logger.NewNop())
	err := uc.Execute(ctx, event.MediaEventPayload{
		EventType:     event.MediaEventTypeIngestFailed,
		PublicID:      publicID,
		OwnerID:       uuid.New(),
		Kind:          "image",
		StoragePrefix: "i/" + publicID + "/",
	})
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "i/"+publicID+"/640.webp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReconcile_IgnoresOtherEventTypes(t *testing.T) {
	ctx := context.Background()
	publicID := "ab12cd34ef56gh78ij90kl12"
	store := blob_storage.NewMemStore("https://m.test")
	require.NoError(t, store.Put(ctx, "i/"+publicID+"/640.webp", []byte("blob"), "image/webp"))

	uc := NewReconcileFailedIngestUseCase(store, logger.NewNop())
	err := uc.Execute(ctx, event.MediaEventPayload{
		EventType:     event.MediaEventTypeIngested,
		PublicID:      publicID,
		StoragePrefix: "i/" + publicID + "/",
	})
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "i/"+publicID+"/640.webp")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReconcile_RejectsSuspiciousPrefix(t *testing.T) {
	ctx := context.Background()
	store := blob_storage.NewMemStore("https://m.test")
	require.NoError(t, store.Put(ctx, "i/keepme0000000000000000aa/640.webp", []byte("blob"), "image/webp"))

	uc := NewReconcileFailedIngestUseCase(store, logger.NewNop())

	for _, prefix := range []string{"", "i/", "i/ab12cd34ef56gh78ij90kl12"} {
		err := uc.Execute(ctx, event.MediaEventPayload{
			EventType:     event.MediaEventTypeIngestFailed,
			PublicID:      "ab12cd34ef56gh78ij90kl12",
			StoragePrefix: prefix,
		})
		require.NoError(t, err)
	}

	ok, err := store.Exists(ctx, "i/keepme0000000000000000aa/640.webp")
	require.NoError(t, err)
	assert.True(t, ok, "suspicious prefixes must not purge anything")
}
