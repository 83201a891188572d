package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeHEIC FileType = "heic"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeHEIC: "image/heic",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/heic":      FileTypeHEIC,
	"image/heif":      FileTypeHEIC,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"heic": FileTypeHEIC,
	"heif": FileTypeHEIC,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusUploaded   FileStatus = "uploaded"
	FileStatusQueued     FileStatus = "queued"
	FileStatusExtracting FileStatus = "extracting"
	FileStatusExtracted  FileStatus = "extracted"
	FileStatusFailed     FileStatus = "failed"
)

// ExtractionStatus represents the lifecycle of an extraction record.
type ExtractionStatus string

const (
	ExtractionStatusPending   ExtractionStatus = "pending"
	ExtractionStatusCompleted ExtractionStatus = "completed"
	ExtractionStatusEmpty     ExtractionStatus = "empty"
	ExtractionStatusFailed    ExtractionStatus = "failed"
)

// ExportFormat enumerates supported export encodings.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
