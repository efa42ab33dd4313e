package middleware

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	// the cookie store gob-encodes session values
	gob.Register(Flash{})
}

// AddFlash queues a message and saves the session.
func AddFlash(c *gin.Context, category, message string) {
	sess := sessions.Default(c)
	sess.AddFlash(Flash{Category: category, Message: message})
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("failed to save session")
	}
}

// Flashes pops every queued message. It must run before the response body is written.
func Flashes(c *gin.Context) []Flash {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("failed to save session")
	}

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
