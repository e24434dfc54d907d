package api

import (
	"go-path-defense/internal/app"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — метрики последнего снимка, без меток по сущностям.
type Metrics struct {
	registry *prometheus.Registry

	tickDuration  prometheus.Histogram
	activeEnemies prometheus.Gauge
	towers        prometheus.Gauge
	projectiles   prometheus.Gauge
	totalSpawned  prometheus.Gauge
	lives         prometheus.Gauge
	currency      prometheus.Gauge
	wsConnections prometheus.Gauge
	wsMessages    prometheus.Counter

	lastTicks uint64
}

// NewMetrics регистрирует коллекторы в собственном реестре.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pathdefense_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		activeEnemies: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_active_enemies",
			Help: "Enemies currently alive",
		}),
		towers: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_towers",
			Help: "Towers on the map",
		}),
		projectiles: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_projectiles",
			Help: "Projectiles in flight",
		}),
		totalSpawned: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_total_spawned",
			Help: "Enemies spawned since the session started",
		}),
		lives: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_lives",
			Help: "Remaining lives",
		}),
		currency: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_currency",
			Help: "Player currency",
		}),
		wsConnections: f.NewGauge(prometheus.GaugeOpts{
			Name: "pathdefense_websocket_connections_active",
			Help: "Currently active WebSocket connections",
		}),
		wsMessages: f.NewCounter(prometheus.CounterOpts{
			Name: "pathdefense_websocket_messages_total",
			Help: "Total WebSocket messages sent",
		}),
	}
}

// Registry возвращает реестр, который отдаётся на /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe обновляет gauge; в гистограмму попадают только выполненные тики.
func (m *Metrics) Observe(t app.Telemetry) {
	m.activeEnemies.Set(float64(t.ActiveEnemies))
	m.towers.Set(float64(t.Towers))
	m.projectiles.Set(float64(t.Projectiles))
	m.totalSpawned.Set(float64(t.TotalSpawned))
	m.lives.Set(float64(t.Lives))
	m.currency.Set(float64(t.Currency))
	if t.Ticks != m.lastTicks {
		m.lastTicks = t.Ticks
		m.tickDuration.Observe(t.LastTick.Seconds())
	}
}
