package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/adapters/persistence"
	"github.com/tuanng/mediahost/internal/domain/media"
)

// Get by public id

type GetMediaUseCase struct {
	mediaRepo media.Repository
	cache     *persistence.MediaCache
}

func NewGetMediaUseCase(r media.Repository, cache *persistence.MediaCache) *GetMediaUseCase {
	return &GetMediaUseCase{mediaRepo: r, cache: cache}
}

type GetMediaInput struct{ PublicID string }
type GetMediaOutput struct{ Media *media.Media }

func (uc *GetMediaUseCase) Execute(ctx context.Context, in GetMediaInput) (*GetMediaOutput, error) {
	if m := uc.cache.Get(ctx, in.PublicID); m != nil {
		return &GetMediaOutput{Media: m}, nil
	}

	m, err := uc.mediaRepo.FindByPublicID(ctx, in.PublicID)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, m)
	return &GetMediaOutput{Media: m}, nil
}

// List by owner

type ListMediaUseCase struct {
	mediaRepo media.Repository
}

func NewListMediaUseCase(r media.Repository) *ListMediaUseCase {
	return &ListMediaUseCase{mediaRepo: r}
}

type ListMediaInput struct {
	OwnerID uuid.UUID
	Limit   int
	Offset  int
}
type ListMediaOutput struct{ Media []*media.Media }

func (uc *ListMediaUseCase) Execute(ctx context.Context, in ListMediaInput) (*ListMediaOutput, error) {
	if in.Limit <= 0 {
		in.Limit = 30
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	medias, err := uc.mediaRepo.ListByOwner(ctx, in.OwnerID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("list media failed: %w", err)
	}
	return &ListMediaOutput{Media: medias}, nil
}

// Update metadata

type UpdateMediaUseCase struct {
	mediaRepo media.Repository
	cache     *persistence.MediaCache
}

func NewUpdateMediaUseCase(r media.Repository, cache *persistence.MediaCache) *UpdateMediaUseCase {
	return &UpdateMediaUseCase{mediaRepo: r, cache: cache}
}

type UpdateMediaInput struct {
	OwnerID uuid.UUID
	MediaID int64
	Title   *string
	Caption *string
	AltText *string
}

func (uc *UpdateMediaUseCase) Execute(ctx context.Context, in UpdateMediaInput) error {
	m, err := uc.mediaRepo.FindByID(ctx, in.MediaID, in.OwnerID)
	if err != nil {
		return err
	}
	if err := uc.mediaRepo.UpdateMeta(ctx, in.MediaID, in.OwnerID, in.Title, in.Caption, in.AltText); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx, m.PublicID)
	return nil
}
