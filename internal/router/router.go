package router

import (
	"github.com/gin-gonic/gin"

	"invoicegen/internal/config"
	"invoicegen/internal/handler"
	"invoicegen/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authCfg config.AuthConfig,
	runH *handler.RunHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authCfg))

	runs := protected.Group("/runs")
	runs.POST("", runH.Generate)
	runs.GET("", runH.List)
	runs.GET("/:id", runH.GetByID)

	return r
}
