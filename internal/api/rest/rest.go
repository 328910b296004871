package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feral-file/ff-marketplace-indexer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator, gatherer prometheus.Gatherer) {
	// Health check and metrics (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/sync/status", handler.GetSyncStatus)
		v1.GET("/sync/checkpoints", handler.ListCheckpoints)

		// Admin operations
		v1.POST("/sync/scan", middleware.Auth(auth), handler.TriggerScan)
		v1.POST("/tokens/metadata/refresh", middleware.Auth(auth), handler.RefreshTokenMetadata)
	}
}
