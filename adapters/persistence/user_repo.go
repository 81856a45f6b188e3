package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanng/mediahost/internal/domain/user"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

const userColumns = `id, provider, provider_id, email, display_name, avatar_url, status, created_at`

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, log logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: log}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID, &u.Provider, &u.ProviderID, &u.Email, &u.DisplayName, &u.AvatarURL,
		&u.Status, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", "")
		}
		return nil, apperror.NewInternal("failed to scan user row", err)
	}
	return u, nil
}

// FindOrCreateFromOAuth upserts on (provider, provider_id) and refreshes
// the profile fields on every login.
func (r *postgresUserRepo) FindOrCreateFromOAuth(ctx context.Context, profile user.OAuthProfile) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, provider, provider_id, email, display_name, avatar_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'active')
		 ON CONFLICT (provider, provider_id) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url
		 RETURNING `+userColumns,
		uuid.New(), profile.Provider, profile.ProviderID, profile.Email,
		profile.DisplayName, profile.AvatarURL,
	)
	return scanUser(row)
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND status = 'active'`,
		id,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("user", id.String())
		}
		return nil, err
	}
	return u, nil
}
