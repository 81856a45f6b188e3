package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanng/mediahost/internal/domain/collection"
	"github.com/tuanng/mediahost/pkg/apperror"
)

type fakeCollectionRepo struct {
	collection.Repository
	created []*collection.Collection
}

func (f *fakeCollectionRepo) Create(_ context.Context, c *collection.Collection) error {
	c.ID = int64(len(f.created) + 1)
	f.created = append(f.created, c)
	return nil
}

func TestCreateCollection(t *testing.T) {
	repo := &fakeCollectionRepo{}
	uc := NewCreateCollectionUseCase(repo)

	out, err := uc.Execute(context.Background(), CreateCollectionInput{
		OwnerID: uuid.New(),
		Title:   "  Trip Photos  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Trip Photos", out.Collection.Title)
	assert.Equal(t, collection.KindStack, out.Collection.Kind)
	assert.Len(t, out.Collection.PublicID, 24)
	assert.NotZero(t, out.Collection.ID)
}

func TestCreateCollection_RequiresTitle(t *testing.T) {
	uc := NewCreateCollectionUseCase(&fakeCollectionRepo{})

	_, err := uc.Execute(context.Background(), CreateCollectionInput{
		OwnerID: uuid.New(),
		Title:   "   ",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}
