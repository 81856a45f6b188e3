package media

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuanng/mediahost/adapters/event"
	"github.com/tuanng/mediahost/adapters/persistence"
	"github.com/tuanng/mediahost/internal/application/service"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/pkg/logger"
)

type DeleteMediaUseCase struct {
	mediaRepo   media.Repository
	store       service.BlobStore
	cache       *persistence.MediaCache
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewDeleteMediaUseCase(
	r media.Repository,
	store service.BlobStore,
	cache *persistence.MediaCache,
	k *event.KafkaProducerClient,
	log logger.Logger,
) *DeleteMediaUseCase {
	return &DeleteMediaUseCase{
		mediaRepo:   r,
		store:       store,
		cache:       cache,
		kafkaClient: k,
		logger:      log,
	}
}

type DeleteMediaInput struct {
	OwnerID uuid.UUID
	MediaID int64
}

// Execute removes the media row first (assets and collection items cascade
// with it), then purges the storage prefix. The relational delete is the
// source of truth: a storage hiccup afterwards is logged, not surfaced.
// Deleting the same id twice is safe; the second call reports not found.
func (uc *DeleteMediaUseCase) Execute(ctx context.Context, input DeleteMediaInput) error {
	m, err := uc.mediaRepo.Delete(ctx, input.MediaID, input.OwnerID)
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, m.PublicID)

	prefix := media.StoragePrefix(m.Kind, m.PublicID)
	count, err := uc.store.DeletePrefix(ctx, prefix)
	if err != nil {
		uc.logger.Warn("Failed to delete media blobs, rows already removed",
			zap.Int64("media_id", m.ID),
			zap.String("prefix", prefix),
			zap.Error(err),
		)
	} else {
		uc.logger.Info("Media deleted",
			zap.Int64("media_id", m.ID),
			zap.String("public_id", m.PublicID),
			zap.Int("objects_deleted", count),
		)
	}

	if uc.kafkaClient != nil {
		payload := event.MediaEventPayload{
			EventType:     event.MediaEventTypeDeleted,
			MediaID:       m.ID,
			PublicID:      m.PublicID,
			OwnerID:       input.OwnerID,
			Kind:          string(m.Kind),
			StoragePrefix: prefix,
		}
		go func() {
			if err := uc.kafkaClient.PublishMediaEvent(context.Background(), payload); err != nil {
				uc.logger.Error("Failed to publish Kafka 'media.deleted' event", err,
					zap.String("public_id", payload.PublicID))
			}
		}()
	}

	return nil
}
