package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home godoc
// @Summary Service banner
// @Description Returns the service name. Useful as a liveness probe target.
// @Tags home
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func Home(c *gin.Context) {
	c.String(http.StatusOK, "invmate backend")
}
