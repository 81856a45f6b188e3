package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/tuanng/mediahost/adapters/blob_storage"
	"github.com/tuanng/mediahost/adapters/event"
	"github.com/tuanng/mediahost/internal/application/service"
	mediaUC "github.com/tuanng/mediahost/internal/application/usecase/media"
	"github.com/tuanng/mediahost/internal/config"
	"github.com/tuanng/mediahost/pkg/logger"
)

func main() {
	fmt.Println("Starting MediaHost Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Blob storage
	var store service.BlobStore
	switch cfg.Storage.Driver {
	case "fs":
		store = blob_storage.NewFSStore(cfg.Storage.LocalRoot, cfg.Storage.PublicBaseURL)
	default:
		store, err = blob_storage.NewS3Store(context.Background(), cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: failed to initialize blob storage: %v", err)
		}
	}

	// Worker Use Case
	reconcileUC := mediaUC.NewReconcileFailedIngestUseCase(store, appLogger)

	// Kafka Consumer
	mediaConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicMediaEvents,
		GroupID:  "media-reconciler-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer mediaConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicMediaEvents)

	ctx := context.Background()
	for {
		msg, err := mediaConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.MediaEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(mediaConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for media %s", payload.EventType, payload.PublicID)

		if err := reconcileUC.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to process event for media %s: %v", payload.PublicID, err)
			continue
		}

		commitMessage(mediaConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
