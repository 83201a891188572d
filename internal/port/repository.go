package port

import (
	"context"

	"github.com/google/uuid"

	"invoscan/internal/domain"
)

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	List(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	// ClaimQueued atomically moves up to limit queued files into the
	// extracting state and returns them. Concurrent workers never claim
	// the same file twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.FileMeta, error)
	// MarkFailed records a failed extraction attempt. Files under
	// maxRetries attempts go back to queued; the rest stay failed.
	MarkFailed(ctx context.Context, fileID uuid.UUID, maxRetries int) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}

// ExtractionRepository defines the contract for extraction result persistence.
type ExtractionRepository interface {
	Create(ctx context.Context, ext *domain.Extraction) error
	GetByID(ctx context.Context, extractionID uuid.UUID) (*domain.Extraction, error)
	GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Extraction, error)
	List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error)
	Delete(ctx context.Context, extractionID uuid.UUID) error
}
