package handlers

import (
	"examen-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

const (
	defaultTitle   = "Portal Examen"
	inlineFlashKey = "flash"
)

// render wraps c.HTML and passes the pending flashes and the CurrentUsername
// to every template. Flashes are popped here, so it has to run before any
// body bytes are written.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = defaultTitle
	}

	flashes := middleware.Flashes(c)
	if f, ok := data[inlineFlashKey].(middleware.Flash); ok {
		flashes = append(flashes, f)
		delete(data, inlineFlashKey)
	}
	data["Flashes"] = flashes
	if username := c.GetString(middleware.CurrentUsernameKey); username != "" {
		data["CurrentUsername"] = username
	}

	c.HTML(status, tmpl, data)
}

// renderWithFlash shows msg on the page being rendered instead of queueing it
// in the session for the next request.
func renderWithFlash(c *gin.Context, status int, tmpl, category, msg string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data[inlineFlashKey] = middleware.Flash{Category: category, Message: msg}
	render(c, status, tmpl, data)
}
