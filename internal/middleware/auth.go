package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey holds the authenticated username in the session.
const SessionUserKey = "username"

// SessionUsername returns the logged in username, or "" for anonymous visitors.
func SessionUsername(c *gin.Context) string {
	username, _ := sessions.Default(c).Get(SessionUserKey).(string)
	return username
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionUsername(c) == "" {
			AddFlash(c, FlashWarning, "Debes iniciar sesión para acceder a esta página.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
