package daemon

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"ledger/internal/api"
	"ledger/internal/logging"
)

type healthFunc func(ctx context.Context) (api.HealthResponse, error)

func newRouter(svc *api.ShipmentService, health healthFunc, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "http")
	h := &handlers{svc: svc, health: health, logger: logger}

	router := gin.New()
	router.Use(requestID())
	router.Use(recovery(logger))
	router.Use(requestLogger(logger))

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", h.handleHealth)
	apiGroup.GET("/stats", h.handleStats)
	apiGroup.POST("/labels", h.handleLabels)

	shipments := apiGroup.Group("/shipments")
	shipments.GET("", h.handleList)
	shipments.POST("", h.handleCreate)
	shipments.PATCH("", h.handlePatch)
	shipments.DELETE("", h.handleDeleteMany)
	shipments.POST("/batch", h.handleBatch)
	shipments.POST("/import", h.handleImport)
	shipments.POST("/status", h.handleStatusByPrefix)
	shipments.GET("/:id", h.handleShow)
	shipments.PUT("/:id", h.handleReplace)
	shipments.DELETE("/:id", h.handleDelete)

	return router
}
