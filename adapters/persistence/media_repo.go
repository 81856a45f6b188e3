package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const mediaColumns = `id, public_id, owner_user_id, type, original_filename, original_ext,
	mime_type, bytes, sha256, width, height, duration_ms,
	title, caption, alt_text, status, created_at, updated_at`

const assetColumns = `id, media_id, variant, format, path, bytes, sha256,
	width, height, duration_ms, status, created_at`

type postgresMediaRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresMediaRepo(db *pgxpool.Pool, log logger.Logger) media.Repository {
	return &postgresMediaRepo{db: db, logger: log}
}

func scanMedia(row pgx.Row) (*media.Media, error) {
	m := &media.Media{}
	err := row.Scan(
		&m.ID, &m.PublicID, &m.OwnerUserID, &m.Kind, &m.OriginalFilename, &m.OriginalExt,
		&m.MimeType, &m.Bytes, &m.SHA256, &m.Width, &m.Height, &m.DurationMs,
		&m.Title, &m.Caption, &m.AltText, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("media", "")
		}
		return nil, apperror.NewInternal("failed to scan media row", err)
	}
	return m, nil
}

func scanAsset(row pgx.Row) (*media.Asset, error) {
	a := &media.Asset{}
	err := row.Scan(
		&a.ID, &a.MediaID, &a.Variant, &a.Format, &a.Path, &a.Bytes, &a.SHA256,
		&a.Width, &a.Height, &a.DurationMs, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to scan media asset row", err)
	}
	return a, nil
}

func (r *postgresMediaRepo) loadAssets(ctx context.Context, q querier, m *media.Media) error {
	rows, err := q.Query(ctx,
		`SELECT `+assetColumns+` FROM media_asset WHERE media_id = $1 ORDER BY variant, format`,
		m.ID,
	)
	if err != nil {
		return apperror.NewInternal("failed to query media assets", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return err
		}
		m.Assets = append(m.Assets, a)
	}
	if err := rows.Err(); err != nil {
		return apperror.NewInternal("error iterating media asset rows", err)
	}
	return nil
}

// querier lets the asset loader run against either the pool or an open
// transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *postgresMediaRepo) FindByID(ctx context.Context, id int64, ownerID uuid.UUID) (*media.Media, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE id = $1 AND owner_user_id = $2 AND status != 'deleted'`,
		id, ownerID,
	)
	m, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("media", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	if err := r.loadAssets(ctx, r.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMediaRepo) FindByPublicID(ctx context.Context, publicID string) (*media.Media, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE public_id = $1 AND status != 'deleted'`,
		publicID,
	)
	m, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("media", publicID)
		}
		return nil, err
	}
	if err := r.loadAssets(ctx, r.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMediaRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*media.Media, error) {
	builder := psql.Select(mediaColumns).
		From("media").
		Where(sq.Eq{"owner_user_id": ownerID}).
		Where(sq.NotEq{"status": media.StatusDeleted}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list media query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query media by owner", err)
	}
	defer rows.Close()

	medias := make([]*media.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		medias = append(medias, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating media rows", err)
	}

	for _, m := range medias {
		if err := r.loadAssets(ctx, r.db, m); err != nil {
			return nil, err
		}
	}
	return medias, nil
}

func (r *postgresMediaRepo) UpdateMeta(ctx context.Context, id int64, ownerID uuid.UUID, title, caption, altText *string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE media SET title = $3, caption = $4, alt_text = $5, updated_at = NOW()
		 WHERE id = $1 AND owner_user_id = $2 AND status != 'deleted'`,
		id, ownerID, title, caption, altText,
	)
	if err != nil {
		return apperror.NewInternal("failed to update media", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("media", strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *postgresMediaRepo) Delete(ctx context.Context, id int64, ownerID uuid.UUID) (*media.Media, error) {
	// returns enough of the row to compute the storage prefix afterwards
	row := r.db.QueryRow(ctx,
		`DELETE FROM media WHERE id = $1 AND owner_user_id = $2
		 RETURNING `+mediaColumns,
		id, ownerID,
	)
	m, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("media", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to delete media: %w", err)
	}
	return m, nil
}
