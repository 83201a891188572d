package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoscan/internal/service"
)

// ExtractHandler handles the synchronous text extraction endpoint.
type ExtractHandler struct {
	extService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extService: extService}
}

// ExtractRequest is the request body for POST /api/v1/extract.
type ExtractRequest struct {
	Text string `json:"text"`
}

// Extract handles POST /api/v1/extract. It runs the pipeline on raw
// invoice text and returns the structured result immediately.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a text field")
		return
	}

	res, ext, err := h.extService.ExtractText(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"extraction_id": ext.ID,
		"status":        ext.Status,
		"result":        res,
	})
}
