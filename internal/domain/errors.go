package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("input text is empty or missing")
	ErrNotFound            = errors.New("resource not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrExtractionNotFound  = errors.New("extraction not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
)
