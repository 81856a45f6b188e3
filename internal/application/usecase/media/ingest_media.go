package media

import (
	"context"
	"crypto/sha256"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tuanng/mediahost/adapters/event"
	"github.com/tuanng/mediahost/internal/application/service"
	"github.com/tuanng/mediahost/internal/domain/media"
	"github.com/tuanng/mediahost/internal/transcode"
	"github.com/tuanng/mediahost/pkg/apperror"
	"github.com/tuanng/mediahost/pkg/logger"
)

type IngestMediaUseCase struct {
	recorder    media.Recorder
	store       service.BlobStore
	images      service.ImageTranscoder
	audio       service.AudioTranscoder
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewIngestMediaUseCase(
	rec media.Recorder,
	store service.BlobStore,
	images service.ImageTranscoder,
	audio service.AudioTranscoder,
	k *event.KafkaProducerClient,
	log logger.Logger,
) *IngestMediaUseCase {
	return &IngestMediaUseCase{
		recorder:    rec,
		store:       store,
		images:      images,
		audio:       audio,
		kafkaClient: k,
		logger:      log,
	}
}

type IngestMediaInput struct {
	OwnerID      uuid.UUID
	Filename     string
	MimeType     string
	Data         []byte
	CollectionID *int64
	Title        *string
	Caption      *string
}

type IngestMediaOutput struct {
	MediaID  int64
	PublicID string
	Kind     media.Kind
	URL      string
}

var tracer = otel.Tracer("media_usecase")

// Execute runs the full ingestion pipeline: classify, plan, render each
// variant, store each blob, then record all metadata in one transaction.
// Any transcode or storage failure aborts the whole upload; blobs already
// written for this public id are purged best-effort and nothing is
// recorded.
func (uc *IngestMediaUseCase) Execute(ctx context.Context, input IngestMediaInput) (*IngestMediaOutput, error) {

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if len(input.Data) == 0 {
		return nil, apperror.NewInvalidInput("uploaded file is empty", nil)
	}

	kind, err := media.Classify(input.MimeType)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	publicID := media.NewPublicID()
	l := uc.logger.With(zap.String("public_id", publicID), zap.String("kind", string(kind)))

	span.SetAttributes(
		attribute.String("public_id", publicID),
		attribute.String("kind", string(kind)),
	)

	assets, width, height, durationMs, err := uc.produceVariants(ctx, kind, publicID, input)
	if err != nil {
		span.RecordError(err)
		uc.cleanupAborted(kind, publicID, input.OwnerID, l)
		return nil, err
	}

	digest := sha256.Sum256(input.Data)
	rec := media.IngestionRecord{
		PublicID:         publicID,
		OwnerUserID:      input.OwnerID,
		Kind:             kind,
		OriginalFilename: input.Filename,
		MimeType:         input.MimeType,
		Bytes:            int64(len(input.Data)),
		SHA256:           digest[:],
		Width:            width,
		Height:           height,
		DurationMs:       durationMs,
		Title:            input.Title,
		Caption:          input.Caption,
		CollectionID:     input.CollectionID,
		Assets:           assets,
	}

	m, err := uc.recorder.RecordIngestion(ctx, rec)
	if err != nil {
		span.RecordError(err)
		// blobs are already durable; they become orphans reconciled
		// out-of-band, never a rolled-back storage write
		l.Error("Failed to record ingestion, blobs orphaned", err)
		uc.publish(event.MediaEventPayload{
			EventType:     event.MediaEventTypeIngestFailed,
			PublicID:      publicID,
			OwnerID:       input.OwnerID,
			Kind:          string(kind),
			StoragePrefix: media.StoragePrefix(kind, publicID),
		})
		return nil, err
	}

	uc.publish(event.MediaEventPayload{
		EventType:     event.MediaEventTypeIngested,
		MediaID:       m.ID,
		PublicID:      publicID,
		OwnerID:       input.OwnerID,
		Kind:          string(kind),
		StoragePrefix: media.StoragePrefix(kind, publicID),
	})

	l.Info("Media ingested", zap.Int64("media_id", m.ID), zap.Int("assets", len(assets)))

	return &IngestMediaOutput{
		MediaID:  m.ID,
		PublicID: publicID,
		Kind:     kind,
		URL:      uc.store.PublicURL(representativeKey(kind, publicID)),
	}, nil
}

// representativeKey is the variant a caller would embed: the 960 rendition
// for images, the stored original otherwise.
func representativeKey(kind media.Kind, publicID string) string {
	if kind == media.KindImage {
		return media.StorageKey(kind, publicID, "960", media.FormatFor(kind))
	}
	return media.StorageKey(kind, publicID, "original", media.FormatFor(kind))
}

func (uc *IngestMediaUseCase) produceVariants(
	ctx context.Context,
	kind media.Kind,
	publicID string,
	input IngestMediaInput,
) (assets []media.AssetRecord, width, height *int, durationMs *int64, err error) {
	format := media.FormatFor(kind)

	for _, spec := range transcode.Plan(kind) {
		var (
			payload     []byte
			contentType string
			rec         media.AssetRecord
		)

		switch kind {
		case media.KindImage:
			res, renderErr := uc.images.Render(input.Data, spec.MaxDimension)
			if renderErr != nil {
				return nil, nil, nil, nil, renderErr
			}
			payload = res.Data
			contentType = "image/webp"
			w, h := res.Width, res.Height
			rec = media.AssetRecord{Width: &w, Height: &h}
			if spec.Name == "original" {
				// the un-resized rendition carries the source dimensions
				width, height = &w, &h
			}

		case media.KindAudio:
			res, renderErr := uc.audio.Render(ctx, input.Data)
			if renderErr != nil {
				return nil, nil, nil, nil, renderErr
			}
			payload = res.Data
			contentType = "audio/mpeg"
			d := int64(res.DurationSeconds * 1000)
			durationMs = &d
			rec = media.AssetRecord{DurationMs: &d}

		default:
			// video and archives are stored pass-through
			payload = input.Data
			contentType = input.MimeType
			rec = media.AssetRecord{}
		}

		key := media.StorageKey(kind, publicID, spec.Name, format)
		if putErr := uc.store.Put(ctx, key, payload, contentType); putErr != nil {
			return nil, nil, nil, nil, apperror.NewStorage("failed to store variant "+spec.Name, putErr)
		}

		digest := sha256.Sum256(payload)
		rec.Variant = spec.Name
		rec.Format = format
		rec.Path = key
		rec.Bytes = int64(len(payload))
		rec.SHA256 = digest[:]
		assets = append(assets, rec)
	}

	return assets, width, height, durationMs, nil
}

// cleanupAborted removes any blobs written before the pipeline gave up.
// Failures here are logged and swallowed; the worker retries off the
// ingest_failed event.
func (uc *IngestMediaUseCase) cleanupAborted(kind media.Kind, publicID string, ownerID uuid.UUID, l logger.Logger) {
	prefix := media.StoragePrefix(kind, publicID)
	if n, err := uc.store.DeletePrefix(context.Background(), prefix); err != nil {
		l.Warn("Failed to clean up blobs of aborted ingestion", zap.String("prefix", prefix), zap.Error(err))
	} else if n > 0 {
		l.Info("Cleaned up blobs of aborted ingestion", zap.String("prefix", prefix), zap.Int("deleted", n))
	}
	uc.publish(event.MediaEventPayload{
		EventType:     event.MediaEventTypeIngestFailed,
		PublicID:      publicID,
		OwnerID:       ownerID,
		Kind:          string(kind),
		StoragePrefix: prefix,
	})
}

func (uc *IngestMediaUseCase) publish(payload event.MediaEventPayload) {
	if uc.kafkaClient == nil {
		return
	}
	go func() {
		if err := uc.kafkaClient.PublishMediaEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish Kafka media event", err,
				zap.String("event_type", string(payload.EventType)),
				zap.String("public_id", payload.PublicID),
			)
		}
	}()
}
