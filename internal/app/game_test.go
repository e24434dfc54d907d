package app

import (
	"testing"
	"time"

	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/event"
	"go-path-defense/pkg/tilemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const tickDT = 1.0 / 64

var (
	grassCell = tilemap.Cell{X: 5, Y: 5}
	roadCell  = tilemap.Cell{X: 5, Y: 2}
	waterCell = tilemap.Cell{X: 0, Y: 0}
)

type GameSuite struct {
	suite.Suite
	lib      *defs.Library
	grid     *tilemap.Grid
	settings *config.Settings
	clock    *ManualClock
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	lib, err := defs.Default()
	s.Require().NoError(err)
	grid, err := lib.Level.Grid()
	s.Require().NoError(err)
	s.lib = lib
	s.grid = grid
	s.settings = config.Defaults()
	s.clock = NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

func (s *GameSuite) newGame(mode component.Mode) *Game {
	g, err := NewGame(Options{
		Mode:     mode,
		Settings: s.settings,
		Library:  s.lib,
		Grid:     s.grid,
		Clock:    s.clock,
	})
	s.Require().NoError(err)
	return g
}

func record(g *Game, types ...event.EventType) *[]event.Event {
	var got []event.Event
	g.Subscribe(event.ListenerFunc(func(e event.Event) { got = append(got, e) }), types...)
	return &got
}

func (s *GameSuite) TestPlaceTower_Success() {
	g := s.newGame(component.ModePlay)
	placed := record(g, event.TowerPlaced)

	id, err := g.PlaceTower(grassCell, "archer")
	s.Require().NoError(err)

	s.Equal(265, g.Stats().Currency)
	tower, ok := g.Ctx.ECS.Towers.Get(id)
	s.Require().True(ok)
	s.Equal(g.Layout.CellToWorld(grassCell), tower.Pos)
	s.Equal(120.0, tower.Range)
	s.Equal(5, tower.Damage)
	s.True(tower.Cooldown.Ready())

	s.Require().Len(*placed, 1)
	s.Equal(event.TowerData{ID: id, DefID: "archer", Cell: grassCell, Cost: 35}, (*placed)[0].Data)

	at, ok := g.TowerAt(grassCell)
	s.Require().True(ok)
	s.Same(tower, at)
}

func (s *GameSuite) TestPlaceTower_RejectionsLeaveStateUntouched() {
	g := s.newGame(component.ModePlay)
	_, err := g.PlaceTower(grassCell, "archer")
	s.Require().NoError(err)

	cases := []struct {
		name string
		cell tilemap.Cell
		id   string
		want error
	}{
		{"outside", tilemap.Cell{X: -1, Y: 3}, "archer", ErrOutOfBounds},
		{"outside far", tilemap.Cell{X: 3, Y: 20}, "archer", ErrOutOfBounds},
		{"road", roadCell, "archer", ErrNotBuildable},
		{"water", waterCell, "archer", ErrNotBuildable},
		{"start", tilemap.Cell{X: 0, Y: 2}, "archer", ErrNotBuildable},
		{"occupied", grassCell, "canon", ErrCellOccupied},
		{"unknown", tilemap.Cell{X: 6, Y: 6}, "ballista", ErrUnknownTowerType},
	}
	for _, tc := range cases {
		_, err := g.PlaceTower(tc.cell, tc.id)
		s.ErrorIsf(err, tc.want, tc.name)
	}
	s.Equal(265, g.Stats().Currency)
	s.Equal(1, g.Ctx.ECS.Towers.Len())

	g.Ctx.Stats.Currency = 64
	_, err = g.PlaceTower(tilemap.Cell{X: 6, Y: 6}, "canon")
	s.ErrorIs(err, ErrInsufficientFunds)
	s.Equal(64, g.Stats().Currency)
	s.Equal(1, g.Ctx.ECS.Towers.Len())

	// ровно на стоимость: можно
	g.Ctx.Stats.Currency = 35
	_, err = g.PlaceTower(tilemap.Cell{X: 6, Y: 6}, "archer")
	s.NoError(err)
	s.Zero(g.Stats().Currency)
}

func (s *GameSuite) TestStress_FillsEveryOpenCell() {
	g := s.newGame(component.ModeStress)

	s.Equal(308, g.Ctx.ECS.Towers.Len())
	canon := 0
	g.Grid.Each(func(c tilemap.Cell, id tilemap.TileID) {
		tower, ok := g.TowerAt(c)
		if !tilemap.Classify(id).Buildable() {
			s.False(ok, "tower on unbuildable cell %v", c)
			return
		}
		s.Require().True(ok, "no tower at %v", c)
		if tower.DefID == "canon" {
			canon++
			s.Equal(95.0, tower.Range)
			s.Equal(25, tower.Damage)
		} else {
			s.Equal("archer", tower.DefID)
			s.Equal(160.0, tower.Range)
		}
	})
	s.Equal(116, canon)

	_, err := g.PlaceTower(grassCell, "archer")
	s.ErrorIs(err, ErrPlacementDisabled)
	s.Equal(300, g.Stats().Currency)
}

func (s *GameSuite) TestStress_BudgetLifecycle() {
	s.settings.Stress.Duration = 10 * time.Second
	g := s.newGame(component.ModeStress)
	finished := record(g, event.SessionFinished)

	s.Equal(component.PhaseNotStarted, g.Phase())
	s.Equal(time.Duration(0), g.Elapsed())

	g.Update(1.0 / 60)
	s.Equal(component.PhaseRunning, g.Phase())
	s.Positive(g.Ctx.Counters.Spawned)
	s.Zero(g.Ctx.Counters.Spawned % s.settings.Stress.BurstSize)

	s.clock.Advance(9 * time.Second)
	g.Update(1.0 / 60)
	s.Equal(component.PhaseRunning, g.Phase())
	s.Equal("00:09 / 00:10", g.Telemetry().Clock())

	s.clock.Advance(time.Second)
	g.Update(1.0 / 60)
	s.Equal(component.PhaseFinished, g.Phase())
	s.True(g.StressSpawner.Stopped())
	s.Require().Len(*finished, 1)
	snap, ok := (*finished)[0].Data.(Telemetry)
	s.Require().True(ok)
	s.Equal("finished", snap.Phase)

	spawned := g.Ctx.Counters.Spawned
	ticks := g.Telemetry().Ticks
	s.clock.Advance(time.Minute)
	for i := 0; i < 60; i++ {
		g.Update(1.0 / 60)
	}
	s.Equal(spawned, g.Ctx.Counters.Spawned, "no spawns after finish")
	s.Equal(ticks+60, g.Telemetry().Ticks, "entities keep simulating")
	s.Len(*finished, 1)
	s.Equal(10*time.Second, g.Elapsed())
	s.Equal("00:10 / 00:10", g.Telemetry().Clock())
}

func (s *GameSuite) TestStress_EnemiesLoopInsteadOfLeaking() {
	s.settings.Stress.Duration = time.Hour
	s.settings.Stress.SpawnPeriod = time.Second
	s.settings.Stress.BurstSize = 1
	g := s.newGame(component.ModeStress)
	g.Ctx.ECS.Towers.Clear()

	for i := 0; i < 64*45 && g.Ctx.Counters.Loops == 0; i++ {
		g.Update(tickDT)
	}
	s.Positive(g.Ctx.Counters.Loops)
	s.Zero(g.Ctx.Counters.Leaks)
	s.Equal(3, g.Stats().Lives)
}

func (s *GameSuite) TestPlay_GameOverWhenLivesRunOut() {
	s.settings.Session.StartingLives = 1
	g := s.newGame(component.ModePlay)
	over := record(g, event.GameOver)
	leaked := record(g, event.EnemyLeaked)

	for i := 0; i < 64*60 && g.Phase() != component.PhaseGameOver; i++ {
		g.Update(tickDT)
	}

	s.Require().Equal(component.PhaseGameOver, g.Phase())
	s.Equal(0, g.Stats().Lives)
	s.Len(*leaked, 1)
	s.Require().Len(*over, 1)

	ticks := g.Telemetry().Ticks
	g.Update(tickDT)
	s.Equal(ticks, g.Telemetry().Ticks)
	_, err := g.PlaceTower(grassCell, "archer")
	s.ErrorIs(err, ErrPlacementDisabled)
	s.Len(*over, 1)
}

func (s *GameSuite) TestPlay_WavesStartAndSpawn() {
	g := s.newGame(component.ModePlay)
	waves := record(g, event.WaveStarted)

	g.Update(tickDT)
	s.Equal(1, g.Wave())
	s.Zero(g.Ctx.Counters.Spawned)

	for i := 0; i < 96; i++ { // 1.5 с
		g.Update(tickDT)
	}
	s.Equal(1, g.Ctx.Counters.Spawned)
	s.Equal(2, g.Wave())
	s.Require().Len(*waves, 2)
	s.Equal(event.WaveData{Number: 1, EnemyID: "orc", Count: 1}, (*waves)[0].Data)
}

func (s *GameSuite) TestPause_StopsPassesNotTheBudget() {
	s.settings.Stress.Duration = 5 * time.Second
	g := s.newGame(component.ModeStress)
	g.Update(1.0 / 60)
	spawned := g.Ctx.Counters.Spawned
	ticks := g.Telemetry().Ticks

	g.HandlePauseClick()
	s.True(g.IsPaused())
	for i := 0; i < 10; i++ {
		g.Update(1.0 / 60)
	}
	s.Equal(spawned, g.Ctx.Counters.Spawned)
	s.Equal(ticks, g.Telemetry().Ticks)
	s.True(g.Telemetry().Paused)

	s.clock.Advance(5 * time.Second)
	g.Update(1.0 / 60)
	s.Equal(component.PhaseFinished, g.Phase())

	g.HandlePauseClick()
	s.False(g.IsPaused())
}

func (s *GameSuite) TestTeardown() {
	g := s.newGame(component.ModePlay)
	_, err := g.PlaceTower(grassCell, "archer")
	s.Require().NoError(err)
	for i := 0; i < 200; i++ {
		g.Update(tickDT)
	}
	s.Require().Positive(g.Ctx.ECS.Enemies.Len())
	spawned := record(g, event.EnemySpawned)

	g.Teardown()
	g.Teardown()

	enemies, towers, projectiles := g.Ctx.ECS.Counts()
	s.Zero(enemies + towers + projectiles)
	s.True(g.Path().Empty())
	s.Equal(component.PlayerStats{}, g.Stats())

	g.Update(tickDT)
	s.Empty(*spawned)
	_, err = g.PlaceTower(grassCell, "archer")
	s.ErrorIs(err, ErrPlacementDisabled)
}

func TestNewGame_Errors(t *testing.T) {
	lib, err := defs.Default()
	require.NoError(t, err)
	grid, err := lib.Level.Grid()
	require.NoError(t, err)

	_, err = NewGame(Options{Library: lib})
	assert.Error(t, err)
	_, err = NewGame(Options{Grid: grid})
	assert.Error(t, err)

	s := config.Defaults()
	s.Spawn.WaveSet = "nope"
	_, err = NewGame(Options{Mode: component.ModePlay, Settings: s, Library: lib, Grid: grid})
	assert.ErrorIs(t, err, defs.ErrUnknownWaveSet)

	s = config.Defaults()
	s.Stress.EnemyID = "dragon"
	_, err = NewGame(Options{Mode: component.ModeStress, Settings: s, Library: lib, Grid: grid})
	assert.Error(t, err)

	s = config.Defaults()
	s.Stress.RoadsideTowerID = "ballista"
	_, err = NewGame(Options{Mode: component.ModeStress, Settings: s, Library: lib, Grid: grid})
	assert.ErrorIs(t, err, ErrUnknownTowerType)
}

func TestNewGame_LevelWithoutStartIdles(t *testing.T) {
	lib, err := defs.Default()
	require.NoError(t, err)
	rows := make([][]int, tilemap.Size)
	for y := range rows {
		rows[y] = make([]int, tilemap.Size)
	}
	grid, err := tilemap.NewGrid(rows)
	require.NoError(t, err)

	g, err := NewGame(Options{Mode: component.ModePlay, Library: lib, Grid: grid})
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		g.Update(tickDT)
	}
	assert.True(t, g.Path().Empty())
	assert.Zero(t, g.Ctx.Counters.Spawned)
	assert.Equal(t, component.PhaseRunning, g.Phase())
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(-time.Second))
	assert.Equal(t, "01:05", FormatMinutes(65*time.Second+900*time.Millisecond))
	assert.Equal(t, "05:00", FormatMinutes(5*time.Minute))
	assert.Equal(t, "00:30", Telemetry{Elapsed: 30 * time.Second}.Clock())
}

func TestManualClock(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewManualClock(start)
	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())
}
