package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/component"
	"go-path-defense/internal/defs"
	"go-path-defense/pkg/tilemap"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stressGame(t *testing.T) *app.Game {
	t.Helper()
	lib, err := defs.Default()
	require.NoError(t, err)
	grid, err := lib.Level.Grid()
	require.NoError(t, err)
	g, err := app.NewGame(app.Options{
		Mode:    component.ModeStress,
		Library: lib,
		Grid:    grid,
		Clock:   app.NewManualClock(time.Now()),
	})
	require.NoError(t, err)
	return g
}

func runes(row []Glyph) string {
	var b strings.Builder
	for _, g := range row {
		b.WriteRune(g.R)
	}
	return b.String()
}

func TestFrame_MapAndTowers(t *testing.T) {
	g := stressGame(t)
	d := New(nil, g.Grid, nil)
	d.ObserveSession(g)

	frame := d.Frame()
	require.Len(t, frame, tilemap.Size+3)
	assert.Equal(t, 'S', frame[2][0].R)
	assert.Equal(t, "==", runes(frame[2][2:4]))
	assert.Equal(t, 'E', frame[18][36].R)
	assert.Equal(t, "~~", runes(frame[0][0:2]))
	assert.Equal(t, 'c', frame[3][10].R, "roadside tower")
	assert.Equal(t, 'a', frame[5][10].R, "infield tower")
}

func TestFrame_EnemyCounts(t *testing.T) {
	g := stressGame(t)
	cell := tilemap.Cell{X: 5, Y: 2}
	for i := 0; i < 3; i++ {
		g.Ctx.ECS.Enemies.Insert(&component.Enemy{
			Pos:    g.Layout.CellToWorld(cell),
			Health: component.Health{Current: 10, Max: 10},
		})
	}
	for i := 0; i < 12; i++ {
		g.Ctx.ECS.Enemies.Insert(&component.Enemy{
			Pos:    g.Layout.CellToWorld(tilemap.Cell{X: 9, Y: 2}),
			Health: component.Health{Current: 10, Max: 10},
		})
	}
	d := New(nil, g.Grid, nil)
	d.ObserveSession(g)

	frame := d.Frame()
	assert.Equal(t, "e3", runes(frame[2][10:12]))
	assert.Equal(t, "e+", runes(frame[2][18:20]))
	assert.Equal(t, "==", runes(frame[2][12:14]))
}

func TestFrame_StatusLine(t *testing.T) {
	g := stressGame(t)
	g.Update(1.0 / 60)
	d := New(nil, g.Grid, nil)
	tel := g.Telemetry()
	tel.Paused = true
	d.Observe(tel)

	frame := d.Frame()
	status := runes(frame[tilemap.Size+1])
	assert.True(t, strings.HasPrefix(status, "00:00 / 05:00  running"), status)
	assert.Contains(t, status, "spawned 10")
	assert.Contains(t, status, "PAUSED")
	assert.Equal(t, "q quit  p pause", runes(frame[tilemap.Size+2]))
}

func TestHandleKey(t *testing.T) {
	paused := 0
	d := New(nil, nil, func() { paused++ })

	assert.True(t, d.handleKey(tcell.KeyRune, 'q'))
	assert.True(t, d.handleKey(tcell.KeyEscape, 0))
	assert.True(t, d.handleKey(tcell.KeyCtrlC, 0))
	assert.False(t, d.handleKey(tcell.KeyRune, 'p'))
	assert.False(t, d.handleKey(tcell.KeyRune, 'x'))
	assert.Equal(t, 1, paused)
}

func TestRun_StopsOnContext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 30)

	g := stressGame(t)
	d := New(screen, g.Grid, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(2 * refreshInterval)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dashboard did not stop")
	}
}
