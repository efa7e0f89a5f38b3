package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/sisbi-dashboard/internal/export"
	"github.com/02loveslollipop/sisbi-dashboard/internal/models"
	"github.com/02loveslollipop/sisbi-dashboard/internal/pipeline"
)

const (
	errLoadEstablishments = "failed to load establishments"
	errLoadCapacities     = "failed to load capacities"
	errLoadDetail         = "failed to load establishment detail"
)

// parseListingQuery reads the immutable listing filters from the request.
func parseListingQuery(c *gin.Context) (pipeline.Query, error) {
	q := pipeline.Query{Search: c.Query("q")}
	if v := c.Query("bovineOnly"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, errors.New("invalid bovineOnly parameter")
		}
		q.BovineOnly = b
	}
	return q, nil
}

// loadListing runs the listing pipeline and applies the request filters. On
// failure it writes the error response and returns ok == false.
func (s *Server) loadListing(c *gin.Context) ([]models.MergedEstablishment, pipeline.Query, bool) {
	q, err := parseListingQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, q, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HandlerTimeout())
	defer cancel()

	rows, err := s.pipeline.List(ctx)
	if err != nil {
		s.log.Error("listing pipeline failed", "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadGateway, gin.H{"error": errLoadEstablishments})
		return nil, q, false
	}

	if !q.IsZero() {
		rows = pipeline.Filter(rows, q)
	}
	return rows, q, true
}

// handleV1ListEstablishments returns merged establishments
// GET /api/v1/establishments?q=&bovineOnly=
func (s *Server) handleV1ListEstablishments(c *gin.Context) {
	rows, _, ok := s.loadListing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rows)
}

// handleV1EstablishmentDetail returns per-species slaughter throughput
// GET /api/v1/establishments/:id/detail
func (s *Server) handleV1EstablishmentDetail(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "establishment id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HandlerTimeout())
	defer cancel()

	detail, err := s.pipeline.Detail(ctx, id)
	if err != nil {
		s.log.Error("detail pipeline failed", "establishment_id", id, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errLoadDetail})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// handleV1EstablishmentHistory returns stored capacity snapshots
// GET /api/v1/establishments/:id/history?limit=
func (s *Server) handleV1EstablishmentHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "establishment id is required"})
		return
	}

	limit := s.cfg.HistoryLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > s.cfg.MaxHistoryLimit() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	snapshots, err := s.history.History(ctx, id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": snapshots,
		"meta": gin.H{
			"establishment_id": id,
			"count":            len(snapshots),
		},
	})
}

// handleV1Capacities returns the raw per-establishment capacity aggregation
// GET /api/v1/capacities
func (s *Server) handleV1Capacities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.HandlerTimeout())
	defer cancel()

	agg, err := s.pipeline.Capacities(ctx)
	if err != nil {
		s.log.Error("capacity aggregation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errLoadCapacities})
		return
	}

	c.JSON(http.StatusOK, agg)
}

// handleV1ExportEstablishments streams the filtered listing as a workbook
// GET /api/v1/export/establishments.xlsx?q=&bovineOnly=
func (s *Server) handleV1ExportEstablishments(c *gin.Context) {
	rows, q, ok := s.loadListing(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, rows, q.BovineOnly); err != nil {
		s.log.Error("workbook export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	filename := export.FileName(time.Now(), strings.TrimSpace(q.Search) != "", q.BovineOnly)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
