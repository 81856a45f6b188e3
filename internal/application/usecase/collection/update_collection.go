package collection

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/internal/domain/collection"
	"github.com/tuanng/mediahost/pkg/apperror"
)

type UpdateCollectionUseCase struct {
	collectionRepo collection.Repository
}

func NewUpdateCollectionUseCase(r collection.Repository) *UpdateCollectionUseCase {
	return &UpdateCollectionUseCase{collectionRepo: r}
}

type UpdateCollectionInput struct {
	OwnerID      uuid.UUID
	CollectionID int64
	Title        string
	Description  *string
}

func (uc *UpdateCollectionUseCase) Execute(ctx context.Context, input UpdateCollectionInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return apperror.NewInvalidInput("title is required", nil)
	}
	return uc.collectionRepo.Update(ctx, input.CollectionID, input.OwnerID, title, input.Description)
}
