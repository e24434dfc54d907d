// Package api отдаёт телеметрию сессии по HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/repositories/reports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultReportLimit = 20

// Store хранит последний снимок. Пишет горутина симуляции, читают обработчики.
type Store struct {
	latest atomic.Pointer[app.Telemetry]
}

// Observe сохраняет копию снимка.
func (s *Store) Observe(t app.Telemetry) {
	s.latest.Store(&t)
}

// Latest возвращает последний снимок, если он есть.
func (s *Store) Latest() (app.Telemetry, bool) {
	p := s.latest.Load()
	if p == nil {
		return app.Telemetry{}, false
	}
	return *p, true
}

// RouterConfig — зависимости HTTP-роутера.
type RouterConfig struct {
	// Store: источник снимков (обязателен)
	Store *Store

	// Reports необязателен; без него /reports отвечает 404
	Reports reports.Repository

	// Hub необязателен; без него /ws не подключается
	Hub *Hub

	// Metrics необязателен; без него /metrics не подключается
	Metrics *Metrics

	// CORSOrigins: разрешённые origin для CORS. Пустой список разрешает все.
	CORSOrigins []string

	Logger *zap.Logger
}

type routerHandlers struct {
	store   *Store
	reports reports.Repository
	log     *zap.Logger
}

// NewRouter строит роутер. Горутин не запускает, портов не открывает.
func NewRouter(cfg RouterConfig) *chi.Mux {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	h := &routerHandlers{store: cfg.Store, reports: cfg.Reports, log: log}
	r.Get("/healthz", h.handleHealth)
	r.Get("/telemetry", h.handleTelemetry)
	r.Get("/reports", h.handleReports)
	if cfg.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{}))
	}
	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.HandleWebSocket)
	}
	return r
}

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *routerHandlers) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	t, ok := h.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no session running")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *routerHandlers) handleReports(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeError(w, http.StatusNotFound, "report storage is disabled")
		return
	}
	limit := defaultReportLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	list, err := h.reports.List(r.Context(), reports.ListInput{Limit: limit})
	if err != nil {
		h.log.Error("failed to list reports", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)))
		})
	}
}
