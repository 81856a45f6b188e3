package collection

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tuanng/mediahost/internal/domain/media"
)

// KindStack is the only collection kind in use; the owner's oldest stack
// collection acts as their default.
const KindStack = "stack"

const DefaultTitle = "My Uploads"

type Collection struct {
	ID          int64     `json:"id"`
	PublicID    string    `json:"public_id"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Item struct {
	ID           int64 `json:"id"`
	CollectionID int64 `json:"collection_id"`
	MediaID      int64 `json:"media_id"`
	Position     int   `json:"position"`
}

// WithMedia is a collection together with its ordered media (assets
// included), as served to listing UIs.
type WithMedia struct {
	Collection
	Media []*media.Media `json:"media"`
}

type Repository interface {
	Create(ctx context.Context, c *Collection) error
	FindByID(ctx context.Context, id int64, ownerID uuid.UUID) (*Collection, error)
	// FindDefault returns the owner's oldest stack collection, or nil when
	// they have none yet.
	FindDefault(ctx context.Context, ownerID uuid.UUID) (*Collection, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Collection, error)
	GetWithMedia(ctx context.Context, id int64, ownerID uuid.UUID) (*WithMedia, error)
	Update(ctx context.Context, id int64, ownerID uuid.UUID, title string, description *string) error
	Delete(ctx context.Context, id int64, ownerID uuid.UUID) error
}
