package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"invoscan/internal/acquire"
	"invoscan/internal/config"
	"invoscan/internal/extract"
	"invoscan/internal/handler"
	"invoscan/internal/port"
	"invoscan/internal/repository/postgres"
	"invoscan/internal/router"
	"invoscan/internal/service"
	s3storage "invoscan/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	fileRepo := postgres.NewFileMetaRepo(db)
	extRepo := postgres.NewExtractionRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Text acquisition: PDF text layer first, then OCR when configured.
	sources := []port.TextSource{acquire.NewPDFText()}
	if cfg.OCR.AzureEndpoint != "" && cfg.OCR.AzureKey != "" {
		sources = append(sources, acquire.NewAzureOCR(cfg.OCR.AzureEndpoint, cfg.OCR.AzureKey))
	} else {
		log.Printf("server: Azure OCR not configured, scanned documents will not be readable")
	}
	orch := acquire.NewOrchestrator(sources, acquire.Config{
		MinTextLen:     cfg.OCR.MinTextLen,
		AttemptTimeout: cfg.OCR.AttemptTimeout(),
	})

	// Extraction dictionary: built-ins plus configured extras
	dict := extract.DefaultDictionary()
	dict.Companies = append(dict.Companies, cfg.Dict.ExtraCompanies...)
	dict.Accessories = append(dict.Accessories, cfg.Dict.ExtraAccessories...)
	dict.Units = append(dict.Units, cfg.Dict.ExtraUnits...)
	extractor := extract.New(dict)

	// Initialize services
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	extSvc := service.NewExtractionService(extractor, orch, fileRepo, extRepo, s3Client, &cfg.S3)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extSvc)
	fileH := handler.NewFileHandler(fileSvc)
	extractionH := handler.NewExtractionHandler(extSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(extractH, fileH, extractionH, healthH, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background extract queue worker
	worker := service.NewExtractQueueWorker(fileRepo, extSvc, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server: shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	<-workerDone
	return nil
}
