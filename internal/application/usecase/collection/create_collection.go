package collection

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/internal/domain/collection"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/apperror"
)

type CreateCollectionUseCase struct {
	collectionRepo collection.Repository
}

func NewCreateCollectionUseCase(r collection.Repository) *CreateCollectionUseCase {
	return &CreateCollectionUseCase{collectionRepo: r}
}

type CreateCollectionInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description *string
}

type CreateCollectionOutput struct {
	Collection *collection.Collection
}

func (uc *CreateCollectionUseCase) Execute(ctx context.Context, input CreateCollectionInput) (*CreateCollectionOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.NewInvalidInput("title is required", nil)
	}

	c := &collection.Collection{
		PublicID:    media.NewPublicID(),
		OwnerUserID: input.OwnerID,
		Kind:        collection.KindStack,
		Title:       title,
		Description: input.Description,
	}

	if err := uc.collectionRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return &CreateCollectionOutput{Collection: c}, nil
}
