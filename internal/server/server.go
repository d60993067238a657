// Package server exposes the relay over HTTP: the lead webhook, a health
// probe, and the Prometheus endpoint.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adf-relay/internal/common/config"
	"adf-relay/internal/common/logger"
)

type Server struct {
	engine *gin.Engine
	srv    *http.Server
	log    logger.Logger
}

func New(cfg config.ServerConfig, handler *Handler, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(requestLogger(log), recovery(log))

	engine.POST("/webhook", handler.HandleWebhook)
	engine.GET("/health", handler.HandleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:        cfg.Addr,
			Handler:     engine,
			ReadTimeout: config.GetDuration(cfg.ReadTimeout),
		},
		log: log,
	}
}

// Engine exposes the router for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Start() error {
	s.log.Info("HTTP server listening", map[string]interface{}{
		"addr": s.srv.Addr,
	})
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
