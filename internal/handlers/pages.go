package handlers

import (
	"net/http"

	"examen-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Home(c *gin.Context) {
	if middleware.SessionUsername(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func Dashboard(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{
		"Title":    "Inicio",
		"Username": middleware.SessionUsername(c),
	})
}
