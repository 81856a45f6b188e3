package persistence

import (
	"context"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanng/mediahost/internal/domain/collection"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

const collectionColumns = `id, public_id, owner_user_id, kind, title, description, created_at, updated_at`

type postgresCollectionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCollectionRepo(db *pgxpool.Pool, log logger.Logger) collection.Repository {
	return &postgresCollectionRepo{db: db, logger: log}
}

func scanCollection(row pgx.Row) (*collection.Collection, error) {
	c := &collection.Collection{}
	err := row.Scan(
		&c.ID, &c.PublicID, &c.OwnerUserID, &c.Kind, &c.Title, &c.Description,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("collection", "")
		}
		return nil, apperror.NewInternal("failed to scan collection row", err)
	}
	return c, nil
}

func (r *postgresCollectionRepo) Create(ctx context.Context, c *collection.Collection) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO collection (public_id, owner_user_id, kind, title, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		c.PublicID, c.OwnerUserID, c.Kind, c.Title, c.Description,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return apperror.NewInternal("failed to insert collection", err)
	}
	return nil
}

func (r *postgresCollectionRepo) FindByID(ctx context.Context, id int64, ownerID uuid.UUID) (*collection.Collection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+collectionColumns+` FROM collection WHERE id = $1 AND owner_user_id = $2`,
		id, ownerID,
	)
	c, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("collection", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCollectionRepo) FindDefault(ctx context.Context, ownerID uuid.UUID) (*collection.Collection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+collectionColumns+` FROM collection
		 WHERE owner_user_id = $1 AND kind = $2
		 ORDER BY created_at ASC LIMIT 1`,
		ownerID, collection.KindStack,
	)
	c, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCollectionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*collection.Collection, error) {
	builder := psql.Select(collectionColumns).
		From("collection").
		Where(sq.Eq{"owner_user_id": ownerID}).
		OrderBy("created_at ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list collections query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query collections", err)
	}
	defer rows.Close()

	collections := make([]*collection.Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating collection rows", err)
	}
	return collections, nil
}

func (r *postgresCollectionRepo) GetWithMedia(ctx context.Context, id int64, ownerID uuid.UUID) (*collection.WithMedia, error) {
	c, err := r.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+prefixColumns("m", mediaColumns)+`
		 FROM collection_item ci
		 JOIN media m ON ci.media_id = m.id
		 WHERE ci.collection_id = $1 AND m.status != 'deleted'
		 ORDER BY ci.position ASC`,
		id,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to query collection media", err)
	}
	defer rows.Close()

	out := &collection.WithMedia{Collection: *c, Media: make([]*media.Media, 0)}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		out.Media = append(out.Media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating collection media rows", err)
	}

	for _, m := range out.Media {
		rows, err := r.db.Query(ctx,
			`SELECT `+assetColumns+` FROM media_asset WHERE media_id = $1 ORDER BY variant, format`,
			m.ID,
		)
		if err != nil {
			return nil, apperror.NewInternal("failed to query collection media assets", err)
		}
		for rows.Next() {
			a, err := scanAsset(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			m.Assets = append(m.Assets, a)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, apperror.NewInternal("error iterating collection media asset rows", err)
		}
		rows.Close()
	}
	return out, nil
}

func (r *postgresCollectionRepo) Update(ctx context.Context, id int64, ownerID uuid.UUID, title string, description *string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE collection SET title = $3, description = $4, updated_at = NOW()
		 WHERE id = $1 AND owner_user_id = $2`,
		id, ownerID, title, description,
	)
	if err != nil {
		return apperror.NewInternal("failed to update collection", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("collection", strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *postgresCollectionRepo) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	// items cascade; the media rows themselves survive
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM collection WHERE id = $1 AND owner_user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return apperror.NewInternal("failed to delete collection", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("collection", strconv.FormatInt(id, 10))
	}
	return nil
}
