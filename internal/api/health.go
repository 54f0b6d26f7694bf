package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /health
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("health check failed", "error", err)
		msg := "store unavailable"
		if h.exposeErrors {
			msg = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
