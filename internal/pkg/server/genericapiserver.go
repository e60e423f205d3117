package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GenericAPIServer wraps a gin engine with health, profiling and metrics routes.
type GenericAPIServer struct {
	*gin.Engine

	addr            string
	healthz         bool
	enableProfiling bool
	enableMetrics   bool
	shutdownTimeout time.Duration
	middlewares     []gin.HandlerFunc

	httpServer *http.Server
}

func (s *GenericAPIServer) init() {
	s.Use(gin.Recovery())
	s.Use(s.middlewares...)
	s.installAPIs()
}

func (s *GenericAPIServer) installAPIs() {
	if s.healthz {
		s.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.APIVersion})
		})
	}
	if s.enableProfiling {
		pprof.Register(s.Engine)
	}
	if s.enableMetrics {
		s.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// Addr returns the listen address.
func (s *GenericAPIServer) Addr() string {
	return s.addr
}

// Run spawns the http server. It only returns when the server stops.
func (s *GenericAPIServer) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("[Server] start to listening the incoming requests on http address: %s", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("[Server] server on %s stopped", s.addr)
	return nil
}

// Close graceful shutdown the api server.
func (s *GenericAPIServer) Close() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Warn("[Server] shutdown http server failed: %s", err.Error())
	}
}
