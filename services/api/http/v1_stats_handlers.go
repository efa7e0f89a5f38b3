package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/sisbi-dashboard/internal/pipeline"
)

// handleV1StateStats returns establishment counts and bovine capacity per state
// GET /api/v1/stats/states?q=&bovineOnly=&sort=total|alpha|bovine
func (s *Server) handleV1StateStats(c *gin.Context) {
	sortBy, err := pipeline.ParseStateSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort parameter"})
		return
	}

	rows, _, ok := s.loadListing(c)
	if !ok {
		return
	}

	report := pipeline.StatsByState(rows, sortBy)
	c.JSON(http.StatusOK, gin.H{
		"data": report,
		"meta": gin.H{
			"sort":         string(sortBy),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
