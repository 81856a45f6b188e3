package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `json:"id"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"provider_id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// OAuthProfile is the stable tuple the identity-provider integration hands
// over after it has completed the code exchange.
type OAuthProfile struct {
	Provider    string
	ProviderID  string
	Email       string
	DisplayName *string
	AvatarURL   *string
}

type Repository interface {
	FindOrCreateFromOAuth(ctx context.Context, profile OAuthProfile) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
