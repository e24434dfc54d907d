// Package bench гоняет стресс-тест без окна.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/repositories/reports"
	"go-path-defense/pkg/tilemap"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const saveTimeout = 5 * time.Second

// Observer получает снимок телеметрии после каждого тика.
type Observer interface {
	Observe(t app.Telemetry)
}

// ObserverFunc позволяет подписать обычную функцию.
type ObserverFunc func(t app.Telemetry)

func (f ObserverFunc) Observe(t app.Telemetry) { f(t) }

// SessionObserver дополнительно видит саму сессию (позиции врагов).
// Вызывается в горутине прогона; держать ссылку на сессию нельзя.
type SessionObserver interface {
	ObserveSession(g *app.Game)
}

// Options — параметры прогона.
type Options struct {
	Settings  *config.Settings
	Library   *defs.Library
	Grid      *tilemap.Grid
	LevelName string
	Logger    *zap.Logger
	// Fast — тикать без ожидания; бюджет считается по симулированному времени.
	Fast       bool
	Repository reports.Repository
	Observers  []Observer
}

// Runner гоняет стресс-тест с фиксированным шагом кадра.
type Runner struct {
	opts     Options
	game     *app.Game
	manual   *app.ManualClock // только в быстром режиме
	log      *zap.Logger
	progress *rate.Limiter
	pauseReq chan struct{}
}

// New создаёт сессию стресс-теста; towers уже расставлены.
func New(opts Options) (*Runner, error) {
	if opts.Settings == nil {
		opts.Settings = config.Defaults()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.LevelName == "" && opts.Library != nil {
		opts.LevelName = opts.Library.Level.Name
	}

	r := &Runner{
		opts:     opts,
		log:      opts.Logger.Named("bench"),
		progress: rate.NewLimiter(rate.Limit(opts.Settings.Stress.ProgressPerSec), 1),
		pauseReq: make(chan struct{}, 1),
	}
	var clock app.Clock = app.SystemClock{}
	if opts.Fast {
		r.manual = app.NewManualClock(time.Now())
		clock = r.manual
	}

	g, err := app.NewGame(app.Options{
		Mode:     component.ModeStress,
		Settings: opts.Settings,
		Library:  opts.Library,
		Grid:     opts.Grid,
		Logger:   opts.Logger,
		Clock:    clock,
	})
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	r.game = g
	return r, nil
}

// Game возвращает сессию. Без синхронизации: только до или после Run.
func (r *Runner) Game() *app.Game {
	return r.game
}

// TogglePause можно вызывать из любой горутины; применяется на следующем тике.
func (r *Runner) TogglePause() {
	select {
	case r.pauseReq <- struct{}{}:
	default:
	}
}

// Run тикает до конца бюджета или отмены ctx и возвращает отчёт.
// Отчёт сохраняется и при отмене, с Finished=false.
func (r *Runner) Run(ctx context.Context) (*reports.Report, error) {
	frame := r.opts.Settings.Stress.FrameDelta
	dt := frame.Seconds()

	var tick <-chan time.Time
	if !r.opts.Fast {
		ticker := time.NewTicker(frame)
		defer ticker.Stop()
		tick = ticker.C
	}

	started := time.Now()
	r.game.Start()
	r.log.Info("benchmark started",
		zap.String("level", r.opts.LevelName),
		zap.Bool("fast", r.opts.Fast),
		zap.Duration("budget", r.opts.Settings.Stress.Duration),
		zap.Duration("frame", frame))

	cancelled := false
loop:
	for r.game.Phase() != component.PhaseFinished {
		if tick != nil {
			select {
			case <-ctx.Done():
				cancelled = true
				break loop
			case <-tick:
			}
		} else if ctx.Err() != nil {
			cancelled = true
			break loop
		}

		select {
		case <-r.pauseReq:
			r.game.HandlePauseClick()
		default:
		}
		if r.manual != nil {
			r.manual.Advance(frame)
		}
		r.game.Update(dt)

		t := r.game.Telemetry()
		for _, o := range r.opts.Observers {
			if so, ok := o.(SessionObserver); ok {
				so.ObserveSession(r.game)
			}
			o.Observe(t)
		}
		if r.progress.Allow() {
			r.log.Info("benchmark progress",
				zap.String("clock", t.Clock()),
				zap.Int("spawned", t.TotalSpawned),
				zap.Int("active", t.ActiveEnemies),
				zap.Duration("avg_tick", t.AvgTick))
		}
	}

	report := r.report(started, !cancelled)
	r.game.Teardown()
	if cancelled {
		r.log.Warn("benchmark cancelled", zap.Uint64("ticks", report.Ticks))
	} else {
		r.log.Info("benchmark finished",
			zap.Int("spawned", report.TotalSpawned),
			zap.Int("peak_active", report.PeakActive),
			zap.Duration("avg_tick", report.AvgTick),
			zap.Duration("max_tick", report.MaxTick))
	}

	if r.opts.Repository != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
		defer cancel()
		if err := r.opts.Repository.Save(saveCtx, report); err != nil {
			return report, fmt.Errorf("save report %s: %w", report.ID, err)
		}
	}
	if cancelled {
		return report, errors.Join(ErrCancelled, ctx.Err())
	}
	return report, nil
}

// ErrCancelled — прогон остановлен до конца бюджета.
var ErrCancelled = errors.New("benchmark cancelled")

func (r *Runner) report(started time.Time, finished bool) *reports.Report {
	t := r.game.Telemetry()
	return &reports.Report{
		ID:           fmt.Sprintf("%s-%s", r.opts.LevelName, started.UTC().Format("20060102T150405.000")),
		Level:        r.opts.LevelName,
		Started:      started.UTC(),
		Wall:         time.Since(started),
		SimTime:      t.SimTime,
		Ticks:        t.Ticks,
		TotalSpawned: t.TotalSpawned,
		PeakActive:   t.PeakActive,
		Towers:       t.Towers,
		Kills:        t.Kills,
		Loops:        t.Loops,
		AvgTick:      t.AvgTick,
		MaxTick:      t.MaxTick,
		Finished:     finished,
	}
}
