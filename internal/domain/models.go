package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FileMeta stores metadata about an uploaded invoice document.
type FileMeta struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	FileName        string     `db:"file_name" json:"file_name"`
	OriginalName    string     `db:"original_name" json:"original_name"`
	FileType        FileType   `db:"file_type" json:"file_type"`
	FileSize        int64      `db:"file_size" json:"file_size"`
	S3Bucket        string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key           string     `db:"s3_key" json:"s3_key"`
	ContentType     string     `db:"content_type" json:"content_type"`
	Status          FileStatus `db:"status" json:"status"`
	ExtractAttempts int        `db:"extract_attempts" json:"extract_attempts"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Extraction is the persisted outcome of running the pipeline on one document.
// Result holds the serialized extract.Result; it is stored as JSONB so the
// form-prefill frontend can consume it without another mapping layer.
type Extraction struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	FileID       *uuid.UUID       `db:"file_id" json:"file_id"`
	SourceName   string           `db:"source_name" json:"source_name"`
	Status       ExtractionStatus `db:"status" json:"status"`
	Result       json.RawMessage  `db:"result" json:"result"`
	ProductCount int              `db:"product_count" json:"product_count"`
	Error        string           `db:"error" json:"error"`
	ExtractedAt  *time.Time       `db:"extracted_at" json:"extracted_at"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}
