// Package server exposes the manager over HTTP so an external scheduler can trigger dispatch passes.
package server

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/osmike/orbitcron/internal/manager"
	"github.com/osmike/orbitcron/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"time"
)

// PASSWORD_HEADER is the header alternative to the "password" query parameter.
const PASSWORD_HEADER = "X-Cron-Password"

// Config holds the HTTP settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Path prefixes the trigger routes, e.g. "/cron".
	Path string
	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
	// History serves the run history route when set.
	History *monitoring.History
	// Debug switches gin to debug mode.
	Debug bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP trigger endpoint.
type Server struct {
	manager    *manager.Manager
	engine     *gin.Engine
	httpServer *http.Server
	cfg        Config
	log        *zap.Logger
}

// New builds the server and its routes. It does not start listening.
func New(m *manager.Manager, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Path == "/" {
		cfg.Path = ""
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestLogger(log))
	engine.Use(gin.Recovery())

	s := &Server{
		manager: m,
		engine:  engine,
		cfg:     cfg,
		log:     log,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	cron := s.engine.Group(s.cfg.Path)
	cron.Use(authMiddleware(s.manager))
	{
		cron.GET("/run", s.handleRun)
		cron.POST("/run", s.handleRun)
		cron.GET("/jobs", s.handleListJobs)
		cron.POST("/jobs/:name/run", s.handleRunJob)
		if s.cfg.History != nil {
			cron.GET("/jobs/:name/history", s.handleHistory)
		}
	}

	if s.cfg.Gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "jobs": s.manager.Len()})
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.cfg.Addr), zap.String("path", s.cfg.Path))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}
