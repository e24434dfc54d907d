package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/repositories/reports"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout = 5 * time.Second
	// broadcastsPerSec: частота рассылки снимков по websocket
	broadcastsPerSec = 10
)

// Server объединяет хранилище снимков, метрики, websocket-хаб и HTTP-листенер.
type Server struct {
	Store   *Store
	Metrics *Metrics
	Hub     *Hub

	addr      string
	http      *http.Server
	log       *zap.Logger
	broadcast *rate.Limiter
}

// NewServer собирает роутер для addr.
func NewServer(addr string, origins []string, repo reports.Repository, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("api")
	s := &Server{
		Store:     &Store{},
		Metrics:   NewMetrics(),
		addr:      addr,
		log:       log,
		broadcast: rate.NewLimiter(broadcastsPerSec, 1),
	}
	s.Hub = NewHub(s.Metrics, log, originChecker(origins))
	s.http = &http.Server{
		Addr: addr,
		Handler: NewRouter(RouterConfig{
			Store:       s.Store,
			Reports:     repo,
			Hub:         s.Hub,
			Metrics:     s.Metrics,
			CORSOrigins: origins,
			Logger:      log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Observe публикует снимок в хранилище, метрики и websocket-клиентам.
func (s *Server) Observe(t app.Telemetry) {
	s.Store.Observe(t)
	s.Metrics.Observe(t)
	if s.Hub.ClientCount() > 0 && s.broadcast.Allow() {
		s.Hub.Broadcast("telemetry", t)
	}
}

// Run слушает до отмены ctx, затем корректно останавливает сервер.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("telemetry listen %s: %w", s.addr, err)
	}
	s.log.Info("telemetry server listening", zap.String("addr", ln.Addr().String()))

	go s.Hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("telemetry server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	s.log.Info("telemetry server stopped")
	return nil
}

// originChecker разрешает websocket только с origin из списка CORS ("*": любой).
func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return nil
		}
		allowed[o] = true
	}
	if len(allowed) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
