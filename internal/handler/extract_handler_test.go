package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoscan/internal/domain"
	"invoscan/internal/extract"
)

type stubExtractionService struct {
	res        *extract.Result
	ext        *domain.Extraction
	err        error
	exportData []byte
	exportName string
}

func (s *stubExtractionService) ExtractText(_ context.Context, _ string) (*extract.Result, *domain.Extraction, error) {
	return s.res, s.ext, s.err
}

func (s *stubExtractionService) ExtractFile(_ context.Context, _ *domain.FileMeta, _ int) {}

func (s *stubExtractionService) GetByID(_ context.Context, _ uuid.UUID) (*domain.Extraction, error) {
	return s.ext, s.err
}

func (s *stubExtractionService) GetByFileID(_ context.Context, _ uuid.UUID) (*domain.Extraction, error) {
	return s.ext, s.err
}

func (s *stubExtractionService) List(_ context.Context, _, _ int) ([]domain.Extraction, int, error) {
	if s.ext == nil {
		return nil, 0, s.err
	}
	return []domain.Extraction{*s.ext}, 1, s.err
}

func (s *stubExtractionService) Export(_ context.Context, _ uuid.UUID, _ domain.ExportFormat) ([]byte, string, error) {
	return s.exportData, s.exportName, s.err
}

func extractRouter(svc *stubExtractionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewExtractHandler(svc)
	eh := NewExtractionHandler(svc)
	r.POST("/api/v1/extract", h.Extract)
	r.GET("/api/v1/extractions/:id", eh.GetByID)
	r.GET("/api/v1/extractions/:id/export", eh.Export)
	return r
}

func TestExtractEndpoint_Success(t *testing.T) {
	svc := &stubExtractionService{
		res: &extract.Result{
			Products: []extract.ProductRecord{{ID: "P1", CompanyName: "Whirlpool"}},
		},
		ext: &domain.Extraction{ID: uuid.New(), Status: domain.ExtractionStatusCompleted},
	}
	r := extractRouter(svc)

	body, _ := json.Marshal(gin.H{"text": "1 Whirlpool 001 17900.00 15169.49"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, string(domain.ExtractionStatusCompleted), data["status"])
	assert.NotEmpty(t, data["extraction_id"])
}

func TestExtractEndpoint_EmptyInput(t *testing.T) {
	svc := &stubExtractionService{err: domain.ErrInvalidInput}
	r := extractRouter(svc)

	body, _ := json.Marshal(gin.H{"text": ""})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestExtractEndpoint_BadBody(t *testing.T) {
	r := extractRouter(&stubExtractionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractionGet_NotFound(t *testing.T) {
	svc := &stubExtractionService{err: domain.ErrExtractionNotFound}
	r := extractRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EXTRACTION_NOT_FOUND", resp.Error.Code)
}

func TestExtractionGet_InvalidID(t *testing.T) {
	r := extractRouter(&stubExtractionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractionExport_CSVHeaders(t *testing.T) {
	svc := &stubExtractionService{
		exportData: []byte("Product ID,Company\n"),
		exportName: "extraction_test_2026-08-31.csv",
	}
	r := extractRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions/"+uuid.NewString()+"/export?format=csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "extraction_test_2026-08-31.csv")
}

func TestExtractionExport_UnsupportedFormat(t *testing.T) {
	svc := &stubExtractionService{err: domain.ErrUnsupportedFormat}
	r := extractRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extractions/"+uuid.NewString()+"/export?format=pdf", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
