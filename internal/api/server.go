// Package api exposes the triage interview and results over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
	"github.com/triage-advisor-server/internal/middleware"
	"github.com/triage-advisor-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	engine        *service.Engine
	model         domain.PredictionModel
	synthesizer   *service.Synthesizer
	sessions      domain.SessionStore
	transcripts   domain.TranscriptStore
	logger        *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	configManager domain.ConfigManager,
	engine *service.Engine,
	model domain.PredictionModel,
	synthesizer *service.Synthesizer,
	sessions domain.SessionStore,
	transcripts domain.TranscriptStore,
	logger *logrus.Logger,
) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.AuditLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.SecurityHeaders())

	server := &Server{
		configManager: configManager,
		engine:        engine,
		model:         model,
		synthesizer:   synthesizer,
		sessions:      sessions,
		transcripts:   transcripts,
		logger:        logger,
		router:        router,
	}
	server.setupRoutes()
	return server
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	serverCfg := s.configManager.GetServerConfig()

	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.RateLimit(serverCfg.RateLimitPerSec, serverCfg.RateLimitBurst))
	{
		v1.POST("/sessions", s.handleCreateSession)
		v1.GET("/sessions/:id/question", s.handleNextQuestion)
		v1.POST("/sessions/:id/answers", s.handleAnswer)
		v1.GET("/sessions/:id/results", s.handleResults)
		v1.DELETE("/sessions/:id", s.handleDeleteSession)

		admin := v1.Group("/admin")
		admin.Use(s.adminAuth())
		{
			admin.GET("/transcripts", s.handleListTranscripts)
			admin.GET("/transcripts/:id", s.handleGetTranscript)
			admin.GET("/transcripts/export", s.handleExportTranscripts)
		}
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Admin-Password, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
