package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers uptime checks with an empty 200. The request
// logger skips HEAD requests so these never clutter the logs.
func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
