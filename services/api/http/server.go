package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/02loveslollipop/sisbi-dashboard/internal/logger"
	"github.com/02loveslollipop/sisbi-dashboard/internal/pipeline"
	"github.com/02loveslollipop/sisbi-dashboard/services/api/config"
	"github.com/02loveslollipop/sisbi-dashboard/services/api/db"
)

// HistoryStore reads stored capacity snapshots. *db.Store implements it.
type HistoryStore interface {
	History(ctx context.Context, establishmentID string, limit int) ([]db.Snapshot, error)
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg      config.Config
	pipeline *pipeline.Service
	history  HistoryStore
	log      *logger.Logger
	engine   *gin.Engine
}

// New constructs a server with routes and middleware. history may be nil
// when no database is configured.
func New(cfg config.Config, svc *pipeline.Service, history HistoryStore, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(requestLogger(log))
	engine.Use(corsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{cfg: cfg, pipeline: svc, history: history, log: log, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerV1Routes()
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
