package http

import (
	"time"

	"github.com/tuanng/mediahost/internal/domain/collection"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/internal/domain/user"
)

// Media DTOs

type AssetDTO struct {
	Variant    string `json:"variant"`
	Format     string `json:"format"`
	URL        string `json:"url"`
	Bytes      int64  `json:"bytes"`
	Width      *int   `json:"width,omitempty"`
	Height     *int   `json:"height,omitempty"`
	DurationMs *int64 `json:"duration_ms,omitempty"`
}

type MediaDTO struct {
	ID               int64      `json:"id"`
	PublicID         string     `json:"public_id"`
	Kind             string     `json:"kind"`
	OriginalFilename string     `json:"original_filename"`
	MimeType         string     `json:"mime_type"`
	Bytes            int64      `json:"bytes"`
	Width            *int       `json:"width,omitempty"`
	Height           *int       `json:"height,omitempty"`
	DurationMs       *int64     `json:"duration_ms,omitempty"`
	Title            *string    `json:"title"`
	Caption          *string    `json:"caption"`
	AltText          *string    `json:"alt_text"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	Assets           []AssetDTO `json:"assets"`
}

type UpdateMediaRequest struct {
	Title   *string `json:"title"`
	Caption *string `json:"caption"`
	AltText *string `json:"alt_text"`
}

func ToMediaDTO(m *media.Media, publicURL func(key string) string) MediaDTO {
	dto := MediaDTO{
		ID:               m.ID,
		PublicID:         m.PublicID,
		Kind:             string(m.Kind),
		OriginalFilename: m.OriginalFilename,
		MimeType:         m.MimeType,
		Bytes:            m.Bytes,
		Width:            m.Width,
		Height:           m.Height,
		DurationMs:       m.DurationMs,
		Title:            m.Title,
		Caption:          m.Caption,
		AltText:          m.AltText,
		Status:           string(m.Status),
		CreatedAt:        m.CreatedAt,
	}
	dto.Assets = make([]AssetDTO, len(m.Assets))
	for i, a := range m.Assets {
		dto.Assets[i] = AssetDTO{
			Variant:    a.Variant,
			Format:     a.Format,
			URL:        publicURL(a.Path),
			Bytes:      a.Bytes,
			Width:      a.Width,
			Height:     a.Height,
			DurationMs: a.DurationMs,
		}
	}
	return dto
}

// Collection DTOs

type CreateCollectionRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCollectionRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type CollectionDTO struct {
	ID          int64     `json:"id"`
	PublicID    string    `json:"public_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CollectionWithMediaDTO struct {
	CollectionDTO
	Media []MediaDTO `json:"media"`
}

func ToCollectionDTO(c *collection.Collection) CollectionDTO {
	return CollectionDTO{
		ID:          c.ID,
		PublicID:    c.PublicID,
		Kind:        c.Kind,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCollectionWithMediaDTO(c *collection.WithMedia, publicURL func(key string) string) CollectionWithMediaDTO {
	dto := CollectionWithMediaDTO{CollectionDTO: ToCollectionDTO(&c.Collection)}
	dto.Media = make([]MediaDTO, len(c.Media))
	for i, m := range c.Media {
		dto.Media[i] = ToMediaDTO(m, publicURL)
	}
	return dto
}

// Auth DTOs

type OAuthExchangeRequest struct {
	Provider    string  `json:"provider" binding:"required"`
	ProviderID  string  `json:"provider_id" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

type UserDTO struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
