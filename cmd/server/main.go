package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/tuanng/mediahost/adapters/blob_storage"
	"github.com/tuanng/mediahost/adapters/event"
	httpAdapter "github.com/tuanng/mediahost/adapters/http"
	"github.com/tuanng/mediahost/adapters/persistence"
	"github.com/tuanng/mediahost/internal/application/service"
	authUC "github.com/tuanng/mediahost/internal/application/usecase/auth"
	collectionUC "github.com/tuanng/mediahost/internal/application/usecase/collection"
	mediaUC "github.com/tuanng/mediahost/internal/application/usecase/media"
	"github.com/tuanng/mediahost/internal/config"
	"github.com/tuanng/mediahost/internal/transcode"
	"github.com/tuanng/mediahost/pkg/auth"
	"github.com/tuanng/mediahost/pkg/logger"
)

func main() {
	fmt.Println("Starting MediaHost API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

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

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	mediaRepo := persistence.NewPostgresMediaRepo(dbPool, appLogger)
	collectionRepo := persistence.NewPostgresCollectionRepo(dbPool, appLogger)
	recorder := persistence.NewPostgresIngestionRecorder(dbPool, appLogger)
	mediaCache := persistence.NewMediaCache(redisClient, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	imageTranscoder := transcode.NewImageTranscoder()
	audioTranscoder := transcode.NewAudioTranscoder(
		cfg.Transcode.FFmpegPath, cfg.Transcode.FFprobePath, cfg.Transcode.Timeout, appLogger)

	// Use Cases
	resolveUserUseCase := authUC.NewResolveUserUseCase(userRepo, jwtSvc, appLogger)
	ingestMediaUseCase := mediaUC.NewIngestMediaUseCase(
		recorder, store, imageTranscoder, audioTranscoder, kafkaClient, appLogger)
	getMediaUseCase := mediaUC.NewGetMediaUseCase(mediaRepo, mediaCache)
	listMediaUseCase := mediaUC.NewListMediaUseCase(mediaRepo)
	updateMediaUseCase := mediaUC.NewUpdateMediaUseCase(mediaRepo, mediaCache)
	deleteMediaUseCase := mediaUC.NewDeleteMediaUseCase(mediaRepo, store, mediaCache, kafkaClient, appLogger)
	createCollectionUseCase := collectionUC.NewCreateCollectionUseCase(collectionRepo)
	listCollectionsUseCase := collectionUC.NewListCollectionsUseCase(collectionRepo)
	getCollectionUseCase := collectionUC.NewGetCollectionUseCase(collectionRepo)
	getDefaultCollectionUseCase := collectionUC.NewGetDefaultCollectionUseCase(collectionRepo)
	updateCollectionUseCase := collectionUC.NewUpdateCollectionUseCase(collectionRepo)
	deleteCollectionUseCase := collectionUC.NewDeleteCollectionUseCase(collectionRepo)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(resolveUserUseCase)
	mediaHandler := httpAdapter.NewMediaHandler(
		ingestMediaUseCase,
		getMediaUseCase,
		listMediaUseCase,
		updateMediaUseCase,
		deleteMediaUseCase,
		store,
		appLogger,
	)
	collectionHandler := httpAdapter.NewCollectionHandler(
		createCollectionUseCase,
		listCollectionsUseCase,
		getCollectionUseCase,
		getDefaultCollectionUseCase,
		updateCollectionUseCase,
		deleteCollectionUseCase,
		store,
		appLogger,
	)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = 64 << 20
	router.Use(errorMiddleware)

	router.GET("/healthz", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded", "error": "database unreachable"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/m/*key", mediaHandler.RedirectBlob)

	api := router.Group("/api")
	{
		api.POST("/auth/exchange", authHandler.ExchangeOAuth)

		api.GET("/media/:publicId", mediaHandler.GetMedia)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/media", mediaHandler.UploadMedia)
			private.GET("/media", mediaHandler.ListMedia)
			private.PATCH("/media/:id", mediaHandler.UpdateMedia)
			private.DELETE("/media/:id", mediaHandler.DeleteMedia)

			private.POST("/collections", collectionHandler.CreateCollection)
			private.GET("/collections", collectionHandler.ListCollections)
			private.GET("/collections/default", collectionHandler.GetDefaultCollection)
			private.GET("/collections/:id", collectionHandler.GetCollection)
			private.PATCH("/collections/:id", collectionHandler.UpdateCollection)
			private.DELETE("/collections/:id", collectionHandler.DeleteCollection)
		}
	}

	addr := fmt.Sprintf(":%s", cfg.App.Port)
	log.Printf("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("FATAL: server stopped: %v", err)
	}
}
