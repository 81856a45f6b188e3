package media

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanng/mediahost/adapters/blob_storage"
	"github.com/tuanng/mediahost/internal/application/service"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

type fakeMediaRepo struct {
	byID map[int64]*media.Media
}

func (f *fakeMediaRepo) FindByID(_ context.Context, id int64, _ uuid.UUID) (*media.Media, error) {
	if m, ok := f.byID[id]; ok {
		return m, nil
	}
	return nil, apperror.NewNotFound("media", strconv.FormatInt(id, 10))
}

func (f *fakeMediaRepo) FindByPublicID(_ context.Context, publicID string) (*media.Media, error) {
	for _, m := range f.byID {
		if m.PublicID == publicID {
			return m, nil
		}
	}
	return nil, apperror.NewNotFound("media", publicID)
}

func (f *fakeMediaRepo) ListByOwner(_ context.Context, _ uuid.UUID, _, _ int) ([]*media.Media, error) {
	return nil, nil
}

func (f *fakeMediaRepo) UpdateMeta(_ context.Context, _ int64, _ uuid.UUID, _, _, _ *string) error {
	return nil
}

func (f *fakeMediaRepo) Delete(_ context.Context, id int64, _ uuid.UUID) (*media.Media, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("media", strconv.FormatInt(id, 10))
	}
	delete(f.byID, id)
	return m, nil
}

func TestDelete_PurgesEveryRendition(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	publicID := "ab12cd34ef56gh78ij90kl12"

	store := blob_storage.NewMemStore("https://m.test")
	for _, key := range []string{
		"i/" + publicID + "/640.webp",
		"i/" + publicID + "/960.webp",
		"i/" + publicID + "/original.webp",
	} {
		require.NoError(t, store.Put(ctx, key, []byte("blob"), "image/webp"))
	}
	// a neighbour that must survive the purge
	require.NoError(t, store.Put(ctx, "i/zz99zz99zz99zz99zz99zz99/640.webp", []byte("blob"), "image/webp"))

	repo := &fakeMediaRepo{byID: map[int64]*media.Media{
		7: {ID: 7, PublicID: publicID, OwnerUserID: ownerID, Kind: media.KindImage},
	}}
	uc := NewDeleteMediaUseCase(repo, store, nil, nil, logger.NewNop())

	require.NoError(t, uc.Execute(ctx, DeleteMediaInput{OwnerID: ownerID, MediaID: 7}))

	for _, key := range []string{
		"i/" + publicID + "/640.webp",
		"i/" + publicID + "/960.webp",
		"i/" + publicID + "/original.webp",
	} {
		ok, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	ok, err := store.Exists(ctx, "i/zz99zz99zz99zz99zz99zz99/640.webp")
	require.NoError(t, err)
	assert.True(t, ok, "unrelated media must not be touched")
}

func TestDelete_SecondCallReportsNotFound(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := &fakeMediaRepo{byID: map[int64]*media.Media{
		7: {ID: 7, PublicID: "ab12cd34ef56gh78ij90kl12", OwnerUserID: ownerID, Kind: media.KindImage},
	}}
	uc := NewDeleteMediaUseCase(repo, blob_storage.NewMemStore("https://m.test"), nil, nil, logger.NewNop())

	require.NoError(t, uc.Execute(ctx, DeleteMediaInput{OwnerID: ownerID, MediaID: 7}))

	err := uc.Execute(ctx, DeleteMediaInput{OwnerID: ownerID, MediaID: 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

type deletePrefixFailingStore struct {
	service.BlobStore
}

func (s *deletePrefixFailingStore) DeletePrefix(context.Context, string) (int, error) {
	return 0, errors.New("bucket unreachable")
}

func TestDelete_StorageFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	repo := &fakeMediaRepo{byID: map[int64]*media.Media{
		7: {ID: 7, PublicID: "ab12cd34ef56gh78ij90kl12", OwnerUserID: ownerID, Kind: media.KindImage},
	}}
	store := &deletePrefixFailingStore{BlobStore: blob_storage.NewMemStore("https://m.test")}
	uc := NewDeleteMediaUseCase(repo, store, nil, nil, logger.NewNop())

	// rows are the source of truth; the blob purge error is only logged
	require.NoError(t, uc.Execute(ctx, DeleteMediaInput{OwnerID: ownerID, MediaID: 7}))
	assert.Empty(t, repo.byID)
}
