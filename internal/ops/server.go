// Package ops serves the operational HTTP endpoints: health and metrics.
package ops

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Kalyan-5460/Bujji-Weather/internal/metrics"
)

// Pinger reports whether a backing service is reachable. Optional.
type Pinger interface {
	Ping() error
}

// Server exposes /healthz and /metrics on a side port.
type Server struct {
	srv    *http.Server
	pinger Pinger
	log    *slog.Logger
}

// New builds the ops server. pinger may be nil when the cache backend has no
// health probe.
func New(addr string, pinger Pinger, log *slog.Logger) *Server {
	s := &Server{pinger: pinger, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("ops server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.log.Error("ops server", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(); err != nil {
			s.log.Warn("health check", "error", err)
			http.Error(w, "cache unreachable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
