package media

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tuanng/mediahost/adapters/event"
	"github.com/tuanng/mediahost/internal/application/service"
	"github.com/tuanng/mediahost/pkg/logger"
)

// ReconcileFailedIngestUseCase is the worker-side sweep for blobs orphaned
// by an aborted ingestion: the inline cleanup is best-effort, so the worker
// replays the prefix purge off the ingest_failed event.
type ReconcileFailedIngestUseCase struct {
	store  service.BlobStore
	logger logger.Logger
}

func NewReconcileFailedIngestUseCase(store service.BlobStore, log logger.Logger) *ReconcileFailedIngestUseCase {
	return &ReconcileFailedIngestUseCase{store: store, logger: log}
}

func (uc *ReconcileFailedIngestUseCase) Execute(ctx context.Context, payload event.MediaEventPayload) error {
	if payload.EventType != event.MediaEventTypeIngestFailed {
		return nil
	}

	l := uc.logger.With(
		zap.String("public_id", payload.PublicID),
		zap.String("prefix", payload.StoragePrefix),
	)

	// the prefix always ends in "/"; a bare or malformed one would sweep
	// far more than a single media item
	if payload.StoragePrefix == "" || !strings.HasSuffix(payload.StoragePrefix, "/") ||
		!strings.Contains(payload.StoragePrefix, payload.PublicID) {
		l.Warn("Skipping ingest_failed event with suspicious storage prefix")
		return nil
	}

	count, err := uc.store.DeletePrefix(ctx, payload.StoragePrefix)
	if err != nil {
		return err
	}
	if count > 0 {
		l.Info("Reconciled orphaned blobs", zap.Int("deleted", count))
	}
	return nil
}
