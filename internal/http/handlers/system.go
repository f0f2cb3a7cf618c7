package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
)

// GET /api/health
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"loaded": a.Store.Loaded(),
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GET /api/db-check
func (a *API) DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
