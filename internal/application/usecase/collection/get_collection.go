package collection

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/internal/domain/collection"
)

// GetCollectionUseCase loads a collection with its media ordered by
// position, assets included.
type GetCollectionUseCase struct {
	collectionRepo collection.Repository
}

func NewGetCollectionUseCase(r collection.Repository) *GetCollectionUseCase {
	return &GetCollectionUseCase{collectionRepo: r}
}

type GetCollectionInput struct {
	OwnerID      uuid.UUID
	CollectionID int64
}

type GetCollectionOutput struct {
	Collection *collection.WithMedia
}

func (uc *GetCollectionUseCase) Execute(ctx context.Context, input GetCollectionInput) (*GetCollectionOutput, error) {
	c, err := uc.collectionRepo.GetWithMedia(ctx, input.CollectionID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &GetCollectionOutput{Collection: c}, nil
}

// GetDefaultCollectionUseCase resolves the owner's default stack, the
// oldest one they have. Owners who never uploaded have none.
type GetDefaultCollectionUseCase struct {
	collectionRepo collection.Repository
}

func NewGetDefaultCollectionUseCase(r collection.Repository) *GetDefaultCollectionUseCase {
	return &GetDefaultCollectionUseCase{collectionRepo: r}
}

type GetDefaultCollectionInput struct {
	OwnerID uuid.UUID
}

type GetDefaultCollectionOutput struct {
	// Collection is nil when the owner has no stack yet.
	Collection *collection.Collection
}

func (uc *GetDefaultCollectionUseCase) Execute(ctx context.Context, input GetDefaultCollectionInput) (*GetDefaultCollectionOutput, error) {
	c, err := uc.collectionRepo.FindDefault(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &GetDefaultCollectionOutput{Collection: c}, nil
}
