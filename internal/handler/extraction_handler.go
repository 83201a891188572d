package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoscan/internal/domain"
	"invoscan/internal/service"
)

// ExtractionHandler handles stored extraction endpoints.
type ExtractionHandler struct {
	extService service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extService service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extService: extService}
}

// List handles GET /api/v1/extractions
func (h *ExtractionHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	exts, total, err := h.extService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, exts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/extractions/:id
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	extractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return
	}

	ext, err := h.extService.GetByID(c.Request.Context(), extractionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ext)
}

// GetByFileID handles GET /api/v1/files/:id/extraction, returning the
// latest extraction for a file.
func (h *ExtractionHandler) GetByFileID(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	ext, err := h.extService.GetByFileID(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ext)
}

// Export handles GET /api/v1/extractions/:id/export?format=csv|xlsx and
// streams the rendered file as an attachment.
func (h *ExtractionHandler) Export(c *gin.Context) {
	extractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	data, filename, err := h.extService.Export(c.Request.Context(), extractionID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	contentType := "text/csv"
	if format == domain.ExportFormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
