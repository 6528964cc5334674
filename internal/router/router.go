package router

import (
	"github.com/gin-gonic/gin"

	"tierparse/internal/handler"
	"tierparse/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(parseH *handler.ParseHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks: always served, never pool-gated
	r.GET("/healthz", healthH.Liveness)
	r.GET("/health", healthH.Status)

	v1 := r.Group("/api/v1")

	parse := v1.Group("/parse")
	parse.POST("/fast", parseH.ParseFast)
	parse.POST("/accurate", parseH.ParseAccurate)

	return r
}
