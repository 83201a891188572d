package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"invoscan/internal/acquire"
	"invoscan/internal/config"
	"invoscan/internal/domain"
	"invoscan/internal/export"
	"invoscan/internal/extract"
	"invoscan/internal/port"
)

// ExtractionService runs the extraction pipeline and manages the
// resulting records.
type ExtractionService interface {
	// ExtractText runs the pipeline on raw invoice text synchronously.
	// The result is persisted with no file attached; a persistence
	// failure is logged but does not fail the extraction.
	ExtractText(ctx context.Context, rawText string) (*extract.Result, *domain.Extraction, error)
	// ExtractFile downloads a stored file, acquires its text and runs
	// the pipeline. Called by the queue worker; all outcomes are
	// recorded on the file and extraction rows rather than returned.
	ExtractFile(ctx context.Context, meta *domain.FileMeta, maxRetries int)
	GetByID(ctx context.Context, extractionID uuid.UUID) (*domain.Extraction, error)
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Extraction, error)
	List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error)
	// Export renders a stored extraction in the requested format and
	// returns the encoded bytes with a download filename.
	Export(ctx context.Context, extractionID uuid.UUID, format domain.ExportFormat) ([]byte, string, error)
}

type extractionService struct {
	extractor *extract.Extractor
	orch      *acquire.Orchestrator
	fileRepo  port.FileMetaRepository
	extRepo   port.ExtractionRepository
	storage   port.ObjectStorage
	s3cfg     *config.S3Config
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	extractor *extract.Extractor,
	orch *acquire.Orchestrator,
	fileRepo port.FileMetaRepository,
	extRepo port.ExtractionRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) ExtractionService {
	return &extractionService{
		extractor: extractor,
		orch:      orch,
		fileRepo:  fileRepo,
		extRepo:   extRepo,
		storage:   storage,
		s3cfg:     s3cfg,
	}
}

func (s *extractionService) ExtractText(ctx context.Context, rawText string) (*extract.Result, *domain.Extraction, error) {
	res, err := s.extractor.Extract(rawText)
	if err != nil {
		return nil, nil, err
	}

	ext := s.buildExtraction(nil, "direct", res)
	if err := s.extRepo.Create(ctx, ext); err != nil {
		log.Printf("extractionService.ExtractText: failed to persist extraction: %v", err)
		return nil, nil, fmt.Errorf("persisting extraction: %w", err)
	}
	return res, ext, nil
}

func (s *extractionService) ExtractFile(ctx context.Context, meta *domain.FileMeta, maxRetries int) {
	data, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		log.Printf("extractionService.ExtractFile: download failed for file %s: %v", meta.ID, err)
		s.recordFailure(ctx, meta, maxRetries, fmt.Errorf("downloading file: %w", err))
		return
	}

	doc := port.Document{Bytes: data, ContentType: meta.ContentType}
	text, source, err := s.orch.Acquire(ctx, doc)
	if err != nil {
		log.Printf("extractionService.ExtractFile: acquisition failed for file %s: %v", meta.ID, err)
		s.recordFailure(ctx, meta, maxRetries, err)
		return
	}

	res, err := s.extractor.Extract(text)
	if err != nil {
		// Only empty input fails extraction, and the orchestrator has
		// already enforced a minimum length.
		log.Printf("extractionService.ExtractFile: extraction failed for file %s: %v", meta.ID, err)
		s.recordFailure(ctx, meta, maxRetries, err)
		return
	}

	ext := s.buildExtraction(&meta.ID, source, res)
	if err := s.extRepo.Create(ctx, ext); err != nil {
		log.Printf("extractionService.ExtractFile: failed to persist extraction for file %s: %v", meta.ID, err)
		s.recordFailure(ctx, meta, maxRetries, err)
		return
	}

	if err := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusExtracted); err != nil {
		log.Printf("extractionService.ExtractFile: failed to update file %s status: %v", meta.ID, err)
		return
	}
	log.Printf("extractionService.ExtractFile: file %s extracted via %s (%d products)",
		meta.ID, source, ext.ProductCount)
}

// recordFailure writes a failed extraction row and bumps the file's
// attempt counter. ErrNoUsableText is terminal: more retries will not
// conjure text out of the same bytes.
func (s *extractionService) recordFailure(ctx context.Context, meta *domain.FileMeta, maxRetries int, cause error) {
	now := time.Now().UTC()
	ext := &domain.Extraction{
		ID:          uuid.New(),
		FileID:      &meta.ID,
		Status:      domain.ExtractionStatusFailed,
		Result:      json.RawMessage("null"),
		Error:       cause.Error(),
		ExtractedAt: &now,
	}
	if err := s.extRepo.Create(ctx, ext); err != nil {
		log.Printf("extractionService.recordFailure: failed to persist extraction for file %s: %v", meta.ID, err)
	}

	if errors.Is(cause, acquire.ErrNoUsableText) {
		if err := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed); err != nil {
			log.Printf("extractionService.recordFailure: failed to update file %s: %v", meta.ID, err)
		}
		return
	}
	if err := s.fileRepo.MarkFailed(ctx, meta.ID, maxRetries); err != nil {
		log.Printf("extractionService.recordFailure: failed to mark file %s: %v", meta.ID, err)
	}
}

// buildExtraction assembles the persisted record for a successful run.
// A run with zero products is recorded as empty rather than failed so
// illegible documents can be told apart from broken ones.
func (s *extractionService) buildExtraction(fileID *uuid.UUID, source string, res *extract.Result) *domain.Extraction {
	status := domain.ExtractionStatusCompleted
	if len(res.Products) == 0 {
		status = domain.ExtractionStatusEmpty
	}

	payload, err := json.Marshal(res)
	if err != nil {
		// extract.Result contains nothing json.Marshal can reject.
		log.Printf("extractionService.buildExtraction: marshal failed: %v", err)
		payload = json.RawMessage("null")
	}

	now := time.Now().UTC()
	return &domain.Extraction{
		ID:           uuid.New(),
		FileID:       fileID,
		SourceName:   source,
		Status:       status,
		Result:       payload,
		ProductCount: len(res.Products),
		ExtractedAt:  &now,
	}
}

func (s *extractionService) GetByID(ctx context.Context, extractionID uuid.UUID) (*domain.Extraction, error) {
	return s.extRepo.GetByID(ctx, extractionID)
}

func (s *extractionService) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Extraction, error) {
	return s.extRepo.GetByFileID(ctx, fileID)
}

func (s *extractionService) List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	return s.extRepo.List(ctx, offset, limit)
}

func (s *extractionService) Export(ctx context.Context, extractionID uuid.UUID, format domain.ExportFormat) ([]byte, string, error) {
	ext, err := s.extRepo.GetByID(ctx, extractionID)
	if err != nil {
		return nil, "", err
	}

	var res extract.Result
	if err := json.Unmarshal(ext.Result, &res); err != nil {
		return nil, "", fmt.Errorf("decoding stored extraction %s: %w", extractionID, err)
	}

	base := "extraction_" + extractionID.String()
	switch format {
	case domain.ExportFormatCSV:
		var buf bytes.Buffer
		buf.Write(export.BOM)
		w := export.NewCSVWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, "", fmt.Errorf("writing csv header: %w", err)
		}
		if err := w.WriteResult(&res); err != nil {
			return nil, "", fmt.Errorf("writing csv rows: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", fmt.Errorf("flushing csv: %w", err)
		}
		return buf.Bytes(), export.BuildFilename(base, "csv"), nil
	case domain.ExportFormatXLSX:
		data, err := export.WriteXLSX(&res)
		if err != nil {
			return nil, "", err
		}
		return data, export.BuildFilename(base, "xlsx"), nil
	default:
		return nil, "", domain.ErrUnsupportedFormat
	}
}
