package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-crud-service/internal/adapter/gin/handler"
	ginrouter "user-crud-service/internal/adapter/gin/router"
	"user-crud-service/internal/config"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the Gin router mounted
func New(
	cfg *config.Config,
	l *zap.Logger,
	userHandler *ginhandler.UserHandler,
	versionsHandler *ginhandler.VersionsHandler,
) *Server {
	router := ginrouter.SetupRouter(userHandler, versionsHandler, l)

	httpServer := &http.Server{
		Addr:              ":" + cfg.App.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   httpServer,
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
