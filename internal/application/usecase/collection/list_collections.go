package collection

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/internal/domain/collection"
)

type ListCollectionsUseCase struct {
	collectionRepo collection.Repository
}

func NewListCollectionsUseCase(r collection.Repository) *ListCollectionsUseCase {
	return &ListCollectionsUseCase{collectionRepo: r}
}

type ListCollectionsInput struct {
	OwnerID uuid.UUID
}

type ListCollectionsOutput struct {
	Collections []*collection.Collection
}

func (uc *ListCollectionsUseCase) Execute(ctx context.Context, input ListCollectionsInput) (*ListCollectionsOutput, error) {
	cols, err := uc.collectionRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ListCollectionsOutput{Collections: cols}, nil
}
