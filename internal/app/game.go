// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"time"

	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/event"
	"go-path-defense/internal/system"
	"go-path-defense/internal/types"
	"go-path-defense/pkg/tilemap"

	"go.uber.org/zap"
)

var ErrTornDown = errors.New("session already torn down")

// Options — всё, что нужно для запуска сессии.
type Options struct {
	Mode     component.Mode
	Settings *config.Settings
	Library  *defs.Library
	Grid     *tilemap.Grid
	Layout   tilemap.Layout
	Logger   *zap.Logger
	Clock    Clock
}

// Game — одна игровая сессия: обычная игра или стресс-тест.
// Владеет контекстом симуляции и задаёт порядок проходов тика.
type Game struct {
	Grid    *tilemap.Grid
	Layout  tilemap.Layout
	Library *defs.Library
	Ctx     *system.Context

	WaveSystem       *system.WaveSystem
	StressSpawner    *system.StressSpawner
	MovementSystem   *system.MovementSystem
	CombatSystem     *system.CombatSystem
	ProjectileSystem *system.ProjectileSystem
	LifecycleSystem  *system.LifecycleSystem

	ShowHealthBars bool

	settings *config.Settings
	log      *zap.Logger
	clock    Clock
	spawner  system.Pass

	phase      component.Phase
	paused     bool
	tornDown   bool
	gameTime   float64
	ticks      uint64
	startedAt  time.Time
	finishedAt time.Time
	budget     time.Duration
	peakActive int
	lastTick   time.Duration
	maxTick    time.Duration
	totalTick  time.Duration
	towerCells map[tilemap.Cell]types.EntityID
}

// NewGame создаёт сессию. Путь извлекается один раз; в стресс-тесте
// все свободные клетки сразу застраиваются башнями.
func NewGame(opts Options) (*Game, error) {
	if opts.Grid == nil {
		return nil, errors.New("new game: grid is required")
	}
	if opts.Library == nil {
		return nil, errors.New("new game: definitions library is required")
	}
	if opts.Settings == nil {
		opts.Settings = config.Defaults()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Layout.TileSize == 0 {
		opts.Layout = tilemap.Layout{TileSize: config.TileSize, OriginX: config.MapOriginX, OriginY: config.MapOriginY}
	}

	log := opts.Logger.With(zap.Stringer("mode", opts.Mode))
	path := tilemap.ExtractPath(opts.Grid, opts.Layout)
	if path.Empty() {
		log.Warn("level has no start tile, simulation will idle")
	} else if !path.ReachesEnd(opts.Grid) {
		log.Warn("path does not reach the end tile", zap.Int("points", path.Len()))
	}

	s := opts.Settings
	stats := &component.PlayerStats{
		Currency: s.Session.StartingCurrency,
		Lives:    s.Session.StartingLives,
	}
	ctx := system.NewContext(path, stats, opts.Mode, log)
	ctx.KillReward = s.Session.KillReward

	g := &Game{
		Grid:             opts.Grid,
		Layout:           opts.Layout,
		Library:          opts.Library,
		Ctx:              ctx,
		MovementSystem:   system.NewMovementSystem(),
		CombatSystem:     system.NewCombatSystem(),
		ProjectileSystem: system.NewProjectileSystem(),
		LifecycleSystem:  system.NewLifecycleSystem(),
		ShowHealthBars:   true,
		settings:         s,
		log:              log,
		clock:            opts.Clock,
		towerCells:       make(map[tilemap.Cell]types.EntityID),
	}

	factory := system.NewEnemyFactory(opts.Library.Enemies)
	switch opts.Mode {
	case component.ModeStress:
		if _, ok := opts.Library.Enemies[s.Stress.EnemyID]; !ok {
			return nil, fmt.Errorf("new game: stress enemy %q not defined", s.Stress.EnemyID)
		}
		g.StressSpawner = system.NewStressSpawner(factory, s.Stress.EnemyID, s.Stress.SpawnPeriod.Seconds(), s.Stress.BurstSize)
		g.spawner = g.StressSpawner
		g.budget = s.Stress.Duration
		g.ShowHealthBars = s.Stress.ShowHealthBars
		g.phase = component.PhaseNotStarted
		if err := g.fillStressTowers(); err != nil {
			return nil, err
		}
	default:
		set, err := opts.Library.WaveSet(s.Spawn.WaveSet)
		if err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
		g.WaveSystem = system.NewWaveSystem(factory, set)
		g.spawner = g.WaveSystem
		g.phase = component.PhaseRunning
	}

	log.Info("session created",
		zap.Int("path_points", path.Len()),
		zap.Int("towers", ctx.ECS.Towers.Len()))
	return g, nil
}

// Start запускает отсчёт бюджета стресс-теста. Обычная игра стартует сразу.
func (g *Game) Start() {
	if g.phase != component.PhaseNotStarted {
		return
	}
	g.startedAt = g.clock.Now()
	g.phase = component.PhaseRunning
	g.log.Info("stress session started", zap.Duration("budget", g.budget))
}

// Update — один тик. Порядок проходов фиксирован: спавн, движение,
// прицеливание, снаряды, очистка мёртвых, затем сбор статистики.
// Пауза останавливает проходы, но не сбор статистики.
func (g *Game) Update(deltaTime float64) {
	if g.tornDown || g.phase == component.PhaseGameOver {
		return
	}
	if g.phase == component.PhaseNotStarted {
		g.Start()
	}
	if g.Ctx.Mode == component.ModeStress {
		g.checkBudget()
	}

	tickStart := time.Now()
	if !g.paused {
		ctx := g.Ctx
		g.spawner.Update(ctx, deltaTime)
		g.MovementSystem.Update(ctx, deltaTime)
		g.CombatSystem.Update(ctx, deltaTime)
		g.ProjectileSystem.Update(ctx, deltaTime)
		g.LifecycleSystem.Update(ctx, deltaTime)
		g.gameTime += deltaTime
		g.ticks++
	}
	g.collectStats(time.Since(tickStart))
}

func (g *Game) checkBudget() {
	if g.phase != component.PhaseRunning {
		return
	}
	if g.clock.Now().Sub(g.startedAt) < g.budget {
		return
	}
	g.StressSpawner.Stop()
	g.phase = component.PhaseFinished
	g.finishedAt = g.clock.Now()
	g.log.Info("stress session finished",
		zap.Int("spawned", g.Ctx.Counters.Spawned),
		zap.Int("active", g.Ctx.ECS.Enemies.Len()),
		zap.Uint64("ticks", g.ticks))
	g.Ctx.Events.Dispatch(event.Event{Type: event.SessionFinished, Data: g.Telemetry()})
}

func (g *Game) collectStats(tick time.Duration) {
	if active := g.Ctx.ECS.Enemies.Len(); active > g.peakActive {
		g.peakActive = active
	}
	if !g.paused {
		g.lastTick = tick
		g.totalTick += tick
		if tick > g.maxTick {
			g.maxTick = tick
		}
	}
	if g.Ctx.Mode == component.ModePlay && g.phase == component.PhaseRunning && g.Ctx.Stats.Lives == 0 {
		g.phase = component.PhaseGameOver
		g.log.Info("game over",
			zap.Float64("game_time", g.gameTime),
			zap.Int("kills", g.Ctx.Counters.Kills),
			zap.Int("wave", g.Wave()))
		g.Ctx.Events.Dispatch(event.Event{Type: event.GameOver, Data: g.Telemetry()})
	}
}

// Teardown удаляет все сущности, маршрут и статистику. После него сессия
// не обновляется; следующая сессия создаётся заново через NewGame.
func (g *Game) Teardown() {
	if g.tornDown {
		return
	}
	enemies, towers, projectiles := g.Ctx.ECS.Counts()
	g.Ctx.ECS.Clear()
	g.Ctx.Path = tilemap.Path{}
	g.Ctx.Stats = &component.PlayerStats{}
	g.Ctx.Events.Reset()
	g.towerCells = make(map[tilemap.Cell]types.EntityID)
	g.tornDown = true
	g.log.Info("session torn down",
		zap.Int("enemies", enemies),
		zap.Int("towers", towers),
		zap.Int("projectiles", projectiles))
}

// Subscribe подписывает слушателя на события сессии.
func (g *Game) Subscribe(listener event.Listener, types ...event.EventType) {
	g.Ctx.Events.SubscribeAll(listener, types...)
}

func (g *Game) HandlePauseClick() {
	g.paused = !g.paused
}

func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

func (g *Game) IsPaused() bool {
	return g.paused
}

func (g *Game) Phase() component.Phase {
	return g.phase
}

func (g *Game) Mode() component.Mode {
	return g.Ctx.Mode
}

func (g *Game) Path() tilemap.Path {
	return g.Ctx.Path
}

// Stats возвращает копию валюты и жизней для HUD.
func (g *Game) Stats() component.PlayerStats {
	return *g.Ctx.Stats
}

// Elapsed — для стресс-теста время по часам с начала сессии
// (останавливается на финише), для обычной игры: игровое время.
func (g *Game) Elapsed() time.Duration {
	if g.Ctx.Mode != component.ModeStress {
		return time.Duration(g.gameTime * float64(time.Second))
	}
	switch g.phase {
	case component.PhaseNotStarted:
		return 0
	case component.PhaseFinished:
		return g.finishedAt.Sub(g.startedAt)
	default:
		return g.clock.Now().Sub(g.startedAt)
	}
}

// Wave возвращает номер текущей волны (0 в стресс-тесте).
func (g *Game) Wave() int {
	if g.WaveSystem == nil {
		return 0
	}
	return g.WaveSystem.Wave()
}
