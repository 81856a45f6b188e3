package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/tuanng/mediahost/internal/config"
)

const TopicMediaEvents = "media.events"

type MediaEventType string

const (
	// MediaEventTypeIngested announces a fully committed ingestion.
	MediaEventTypeIngested MediaEventType = "media.ingested"
	// MediaEventTypeIngestFailed announces an aborted ingestion whose blobs
	// may still linger; the worker re-runs the prefix purge.
	MediaEventTypeIngestFailed MediaEventType = "media.ingest_failed"
	MediaEventTypeDeleted      MediaEventType = "media.deleted"
)

type MediaEventPayload struct {
	EventType     MediaEventType `json:"event_type"`
	MediaID       int64          `json:"media_id,omitempty"`
	PublicID      string         `json:"public_id"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	Kind          string         `json:"kind"`
	StoragePrefix string         `json:"storage_prefix"`
}

type KafkaProducerClient struct {
	MediaEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	mediaWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMediaEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{MediaEventsWriter: mediaWriter}, nil
}

func (c *KafkaProducerClient) PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal media event: %w", err)
	}

	return c.MediaEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PublicID),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.MediaEventsWriter != nil {
		c.MediaEventsWriter.Close()
	}
}
