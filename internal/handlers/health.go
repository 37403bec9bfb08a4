package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root answers the plain-text greeting served at GET /.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello !")
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
