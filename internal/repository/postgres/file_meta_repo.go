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

type fileMetaRepo struct {
	db *sqlx.DB
}

// NewFileMetaRepo creates a new PostgreSQL-backed FileMetaRepository.
func NewFileMetaRepo(db *sqlx.DB) port.FileMetaRepository {
	return &fileMetaRepo{db: db}
}

func (r *fileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	query := `INSERT INTO file_metadata
		(id, file_name, original_name, file_type, file_size,
		 s3_bucket, s3_key, content_type, status, extract_attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.FileName, meta.OriginalName, meta.FileType, meta.FileSize,
		meta.S3Bucket, meta.S3Key, meta.ContentType, meta.Status,
		meta.ExtractAttempts, meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Create: %w", err)
	}
	return nil
}

func (r *fileMetaRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error) {
	var meta domain.FileMeta
	err := r.db.GetContext(ctx, &meta,
		"SELECT * FROM file_metadata WHERE id = $1", fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("fileMetaRepo.GetByID: %w", err)
	}
	return &meta, nil
}

func (r *fileMetaRepo) List(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM file_metadata")
	if err != nil {
		return nil, 0, fmt.Errorf("fileMetaRepo.List count: %w", err)
	}

	var files []domain.FileMeta
	err = r.db.SelectContext(ctx, &files,
		`SELECT * FROM file_metadata
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("fileMetaRepo.List: %w", err)
	}
	return files, total, nil
}

func (r *fileMetaRepo) UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE file_metadata SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), fileID)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

// ClaimQueued uses FOR UPDATE SKIP LOCKED so concurrent workers never
// pick up the same file.
func (r *fileMetaRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.FileMeta, error) {
	query := `UPDATE file_metadata SET status = $1, updated_at = $2
		WHERE id IN (
			SELECT id FROM file_metadata
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var files []domain.FileMeta
	err := r.db.SelectContext(ctx, &files, query,
		domain.FileStatusExtracting, time.Now().UTC(), domain.FileStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("fileMetaRepo.ClaimQueued: %w", err)
	}
	return files, nil
}

func (r *fileMetaRepo) MarkFailed(ctx context.Context, fileID uuid.UUID, maxRetries int) error {
	// Files with attempts left go back to queued for another pass.
	query := `UPDATE file_metadata
		SET extract_attempts = extract_attempts + 1,
		    status = CASE WHEN extract_attempts + 1 < $1 THEN $2 ELSE $3 END,
		    updated_at = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		maxRetries, domain.FileStatusQueued, domain.FileStatusFailed,
		time.Now().UTC(), fileID)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.MarkFailed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

func (r *fileMetaRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM file_metadata WHERE id = $1", fileID)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}
