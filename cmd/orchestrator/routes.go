package main

import (
	"voice-campaign/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/wake-up", h.WakeUp)
	r.GET("/status", h.Status)
}
