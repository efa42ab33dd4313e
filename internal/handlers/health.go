package handlers

import (
	"context"
	"net/http"
	"time"

	"examen-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Health pings the backing store; credentials and internals never reach the body.
func Health(p storage.Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
