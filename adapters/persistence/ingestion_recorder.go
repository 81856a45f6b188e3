package persistence

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tuanng/mediahost/internal/domain/collection"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

// positionGap leaves room between collection items for manual reordering.
const positionGap = 10

type postgresIngestionRecorder struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresIngestionRecorder(db *pgxpool.Pool, log logger.Logger) media.Recorder {
	return &postgresIngestionRecorder{db: db, logger: log}
}

// RecordIngestion writes the media row, every asset row, and the collection
// link in one transaction. The blob writes have already happened; nothing
// here touches storage, so the transaction stays short.
func (r *postgresIngestionRecorder) RecordIngestion(ctx context.Context, rec media.IngestionRecord) (*media.Media, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to open ingestion transaction", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO media (
			public_id, owner_user_id, type,
			original_filename, original_ext, mime_type,
			bytes, sha256, width, height, duration_ms,
			title, caption, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+mediaColumns,
		rec.PublicID, rec.OwnerUserID, rec.Kind,
		rec.OriginalFilename, media.ExtFromFilename(rec.OriginalFilename), rec.MimeType,
		rec.Bytes, rec.SHA256, rec.Width, rec.Height, rec.DurationMs,
		rec.Title, rec.Caption, media.StatusReady,
	)
	m, err := scanMedia(row)
	if err != nil {
		return nil, apperror.NewInternal("failed to insert media row", err)
	}

	for _, a := range rec.Assets {
		_, err := tx.Exec(ctx,
			`INSERT INTO media_asset (
				media_id, variant, format, path,
				bytes, sha256, width, height, duration_ms, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			m.ID, a.Variant, a.Format, a.Path,
			a.Bytes, a.SHA256, a.Width, a.Height, a.DurationMs, media.AssetStatusReady,
		)
		if err != nil {
			return nil, apperror.NewInternal("failed to insert media asset row", err)
		}
	}

	collectionID, err := r.resolveCollection(ctx, tx, rec.OwnerUserID, rec.CollectionID)
	if err != nil {
		return nil, err
	}

	var position int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + $2 FROM collection_item WHERE collection_id = $1`,
		collectionID, positionGap,
	).Scan(&position)
	if err != nil {
		return nil, apperror.NewInternal("failed to compute collection position", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO collection_item (collection_id, media_id, position) VALUES ($1, $2, $3)`,
		collectionID, m.ID, position,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to link media into collection", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewInternal("failed to commit ingestion", err)
	}

	for _, a := range rec.Assets {
		m.Assets = append(m.Assets, &media.Asset{
			MediaID:    m.ID,
			Variant:    a.Variant,
			Format:     a.Format,
			Path:       a.Path,
			Bytes:      a.Bytes,
			SHA256:     a.SHA256,
			Width:      a.Width,
			Height:     a.Height,
			DurationMs: a.DurationMs,
			Status:     media.AssetStatusReady,
		})
	}

	r.logger.Info("Recorded media ingestion",
		zap.Int64("media_id", m.ID),
		zap.String("public_id", m.PublicID),
		zap.Int("assets", len(rec.Assets)),
	)
	return m, nil
}

// resolveCollection verifies an explicit collection belongs to the owner,
// or finds/creates the owner's default collection. Concurrent uploads can
// race on the lazy create; a duplicate default is benign since the oldest
// one keeps winning the lookup.
func (r *postgresIngestionRecorder) resolveCollection(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, explicit *int64) (int64, error) {
	if explicit != nil {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM collection WHERE id = $1 AND owner_user_id = $2`,
			*explicit, ownerID,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, apperror.NewNotFound("collection", strconv.FormatInt(*explicit, 10))
			}
			return 0, apperror.NewInternal("failed to resolve collection", err)
		}
		return id, nil
	}

	var id int64
	err := tx.QueryRow(ctx,
		`SELECT id FROM collection
		 WHERE owner_user_id = $1 AND kind = $2
		 ORDER BY created_at ASC LIMIT 1`,
		ownerID, collection.KindStack,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.NewInternal("failed to look up default collection", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO collection (public_id, owner_user_id, kind, title)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		media.NewPublicID(), ownerID, collection.KindStack, collection.DefaultTitle,
	).Scan(&id)
	if err != nil {
		return 0, apperror.NewInternal("failed to create default collection", err)
	}
	return id, nil
}
