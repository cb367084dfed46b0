package httpapi

import (
	"net/http"
	"time"

	"voice-campaign/internal/campaign"
	"voice-campaign/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: the HTTP surface exists for liveness probes and a
// read-only view of campaign progress, nothing more.

type Handlers struct {
	Stats *campaign.Stats
}

// Root reports that the orchestrator process is up.
func (h Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "running",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Health is the probe endpoint for hosting platforms.
func (h Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// WakeUp is the keep-alive target. It does no work; a request reaching it
// is enough to keep the host from idling the service.
func (h Handlers) WakeUp(c *gin.Context) {
	logger.FromGin(c).Debug("keep-alive ping received")
	c.JSON(http.StatusOK, gin.H{"status": "awake"})
}

// Status returns a snapshot of campaign counters.
func (h Handlers) Status(c *gin.Context) {
	if h.Stats == nil {
		logger.FromGin(c).Error("status requested before runner init")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "stats not configured"})
		return
	}
	c.JSON(http.StatusOK, h.Stats.Snapshot())
}
