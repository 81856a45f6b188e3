package collection

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/internal/domain/collection"
)

// DeleteCollectionUseCase removes a collection and its item rows. The
// media inside it stay untouched; a collection is only an ordering.
type DeleteCollectionUseCase struct {
	collectionRepo collection.Repository
}

func NewDeleteCollectionUseCase(r collection.Repository) *DeleteCollectionUseCase {
	return &DeleteCollectionUseCase{collectionRepo: r}
}

type DeleteCollectionInput struct {
	OwnerID      uuid.UUID
	CollectionID int64
}

func (uc *DeleteCollectionUseCase) Execute(ctx context.Context, input DeleteCollectionInput) error {
	return uc.collectionRepo.Delete(ctx, input.CollectionID, input.OwnerID)
}
