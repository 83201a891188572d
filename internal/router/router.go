package router

import (
	"github.com/gin-gonic/gin"

	"invoscan/internal/handler"
	"invoscan/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	extractH *handler.ExtractHandler,
	fileH *handler.FileHandler,
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Synchronous extraction from raw text
	v1.POST("/extract", extractH.Extract)

	// File routes
	files := v1.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.GET("/:id/extraction", extractionH.GetByFileID)
	files.DELETE("/:id", fileH.Delete)

	// Stored extraction routes
	extractions := v1.Group("/extractions")
	extractions.GET("", extractionH.List)
	extractions.GET("/:id", extractionH.GetByID)
	extractions.GET("/:id/export", extractionH.Export)

	return r
}
