package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookwise/utils"
)

// HealthHandler reports the latest dependency health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
