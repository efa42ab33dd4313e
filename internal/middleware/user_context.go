package middleware

import (
	"github.com/gin-gonic/gin"
)

// CurrentUsernameKey is the gin context key templates read the username from.
const CurrentUsernameKey = "CurrentUsername"

func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username := SessionUsername(c); username != "" {
			c.Set(CurrentUsernameKey, username)
		}
		c.Next()
	}
}
