package container

import (
	"fmt"
	"net/http"

	"go-image-processing/internal/config"
	"go-image-processing/internal/logger"
	"go-image-processing/internal/nasa"
	"go-image-processing/internal/observer"
	"go-image-processing/internal/repository"
	"go-image-processing/internal/service"
	"go-image-processing/internal/storage"
	"go-image-processing/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config            *config.Config
	imageFetcher      storage.ImageFetcher
	blobStorage       storage.BlobStorage
	imageRepository   repository.ImageRepository
	epicClient        *nasa.Client
	events            observer.Subject
	metrics           observer.Observer
	processingService service.ProcessingService
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	imageFetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout)
	saver := storage.NewLocalSaver(cfg.OutputDirectory)

	var blobStorage storage.BlobStorage
	if cfg.AzureConfigured() {
		blobStorage, err = storage.NewAzureStorage(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to configure blob storage: %w", err)
		}
	}

	var imageRepository repository.ImageRepository
	if blobStorage != nil {
		imageRepository = repository.NewBlobImageRepository(imageFetcher, blobStorage)
	} else {
		imageRepository = repository.NewHTTPImageRepository(imageFetcher)
	}
	epicClient := nasa.NewClient(cfg.NASABaseURL, cfg.NASAAPIKey, cfg.EPICImageCount, cfg.ImageFetchTimeout, imageRepository)

	events := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	processingService := service.NewProcessingService(
		imageRepository, epicClient, saver, events, cfg.MaxImagePixels, cfg.MaxThresholdIterations)
	handler := transport.NewHandler(processingService, cfg)

	return &Container{
		config:            cfg,
		imageFetcher:      imageFetcher,
		blobStorage:       blobStorage,
		imageRepository:   imageRepository,
		epicClient:        epicClient,
		events:            events,
		metrics:           metrics,
		processingService: processingService,
		handler:           handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
