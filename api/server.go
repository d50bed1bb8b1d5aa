// Package api exposes the engine over REST.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"

	"github.com/stakeclaim/stakeclaim/app"
)

// Server is the REST API server.
type Server struct {
	router  *gin.Engine
	app     *app.App
	config  *Config
	logger  log.Logger
	limiter *ipRateLimiter
}

// Config holds server configuration.
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "8080",
		CORSOrigins:     []string{"*"},
		RateLimitRPS:    50,
		RateLimitBurst:  100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates the API server over an engine app.
func NewServer(engine *app.App, config *Config, logger log.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:  gin.New(),
		app:     engine,
		config:  config,
		logger:  logger.With("component", "api"),
		limiter: newIPRateLimiter(config.RateLimitRPS, config.RateLimitBurst),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.RequestIDMiddleware())
	s.router.Use(s.LoggerMiddleware())
	s.router.Use(s.CORSMiddleware())
	s.router.Use(s.SecurityHeadersMiddleware())
	s.router.Use(s.RateLimitMiddleware())

	s.registerRoutes()
	return s
}

// Router exposes the gin engine, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until the context is cancelled or a shutdown signal
// arrives, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case sig := <-sigCh:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
