// Package server exposes the pipeline boundary over HTTP: visual assessment,
// chat turns and meal-plan generation, with the request/response shapes the
// presentation layer consumes. No request data is persisted.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/alvesarel/shapeplan/pkg/logger"
)

type Server struct {
	server *http.Server
	logger *logger.Logger
}

func NewServer(port string, allowedOrigins []string, h *Handlers, log *logger.Logger) *Server {
	r := mux.NewRouter()

	r.HandleFunc("/api/analyze", h.HandleAnalyze).Methods(http.MethodPost)
	r.HandleFunc("/api/chat", h.HandleChat).Methods(http.MethodPost)
	r.HandleFunc("/api/meal-plan", h.HandleMealPlan).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(loggingMiddleware(log)(r)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server: httpServer,
		logger: log,
	}
}

func (s *Server) Start() error {
	s.logger.Infow("starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
