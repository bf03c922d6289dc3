package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUsageStatistics reports the per-operation daily call histories.
func (s *Server) GetUsageStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.Snapshot())
}
