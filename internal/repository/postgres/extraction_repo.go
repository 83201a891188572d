package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoscan/internal/domain"
	"invoscan/internal/port"
)

type extractionRepo struct {
	db *sqlx.DB
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRepo{db: db}
}

func (r *extractionRepo) Create(ctx context.Context, ext *domain.Extraction) error {
	now := time.Now().UTC()
	ext.CreatedAt = now
	ext.UpdatedAt = now

	query := `INSERT INTO extractions
		(id, file_id, source_name, status, result, product_count, error, extracted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		ext.ID, ext.FileID, ext.SourceName, ext.Status, ext.Result,
		ext.ProductCount, ext.Error, ext.ExtractedAt, ext.CreatedAt, ext.UpdatedAt)
	if err != nil {
		return fmt.Errorf("extractionRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRepo) GetByID(ctx context.Context, extractionID uuid.UUID) (*domain.Extraction, error) {
	var ext domain.Extraction
	err := r.db.GetContext(ctx, &ext,
		"SELECT * FROM extractions WHERE id = $1", extractionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByID: %w", err)
	}
	return &ext, nil
}

func (r *extractionRepo) GetByFileID(ctx context.Context, fileID uuid.UUID) (*domain.Extraction, error) {
	var ext domain.Extraction
	err := r.db.GetContext(ctx, &ext,
		`SELECT * FROM extractions WHERE file_id = $1
		 ORDER BY created_at DESC LIMIT 1`, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByFileID: %w", err)
	}
	return &ext, nil
}

func (r *extractionRepo) List(ctx context.Context, offset, limit int) ([]domain.Extraction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extractions")
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List count: %w", err)
	}

	var exts []domain.Extraction
	err = r.db.SelectContext(ctx, &exts,
		`SELECT * FROM extractions
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List: %w", err)
	}
	return exts, total, nil
}

func (r *extractionRepo) Delete(ctx context.Context, extractionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM extractions WHERE id = $1", extractionID)
	if err != nil {
		return fmt.Errorf("extractionRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}
