// Package tui рисует в терминале ход стресс-теста без окна.
package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/component"
	"go-path-defense/internal/types"
	"go-path-defense/pkg/tilemap"

	"github.com/gdamore/tcell/v2"
)

const refreshInterval = 100 * time.Millisecond

var (
	styleOpen   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleRoad   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleWater  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleFlag   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleTower  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Glyph — одна ячейка терминала.
type Glyph struct {
	R     rune
	Style tcell.Style
}

// Dashboard показывает карту (клетка: два символа), врагов и строку телеметрии.
type Dashboard struct {
	screen  tcell.Screen
	grid    *tilemap.Grid
	onPause func()

	mu        sync.Mutex
	telemetry app.Telemetry
	enemies   map[tilemap.Cell]int
	towers    map[tilemap.Cell]rune
}

// New создаёт панель поверх инициализированного экрана.
func New(screen tcell.Screen, grid *tilemap.Grid, onPause func()) *Dashboard {
	return &Dashboard{
		screen:  screen,
		grid:    grid,
		onPause: onPause,
		enemies: make(map[tilemap.Cell]int),
	}
}

// Observe сохраняет снимок телеметрии.
func (d *Dashboard) Observe(t app.Telemetry) {
	d.mu.Lock()
	d.telemetry = t
	d.mu.Unlock()
}

// ObserveSession снимает позиции врагов; вызывается в горутине симуляции.
func (d *Dashboard) ObserveSession(g *app.Game) {
	counts := make(map[tilemap.Cell]int, 64)
	g.Ctx.ECS.Enemies.Each(func(_ types.EntityID, e *component.Enemy) {
		counts[g.Layout.WorldToCell(e.Pos)]++
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.enemies = counts
	if d.towers == nil {
		d.towers = make(map[tilemap.Cell]rune)
		g.Ctx.ECS.Towers.Each(func(_ types.EntityID, t *component.Tower) {
			r := 't'
			if t.DefID != "" {
				r = rune(t.DefID[0])
			}
			d.towers[t.Cell] = r
		})
	}
}

// Run рисует панель до отмены ctx. q, Esc и Ctrl-C вызывают cancel, p: паузу.
func (d *Dashboard) Run(ctx context.Context, cancel context.CancelFunc) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	d.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if d.handleKey(ev.Key(), ev.Rune()) {
					cancel()
					return
				}
			case *tcell.EventResize:
				d.screen.Sync()
			}
		case <-ticker.C:
			d.draw()
		}
	}
}

// handleKey возвращает true, если прогон нужно остановить.
func (d *Dashboard) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return true
		case 'p', 'P':
			if d.onPause != nil {
				d.onPause()
			}
		}
	}
	return false
}

func (d *Dashboard) draw() {
	d.screen.Clear()
	for y, row := range d.Frame() {
		for x, g := range row {
			d.screen.SetContent(x, y, g.R, nil, g.Style)
		}
	}
	d.screen.Show()
}

// Frame строит кадр: строки карты, затем статус и подсказка.
func (d *Dashboard) Frame() [][]Glyph {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows := make([][]Glyph, 0, tilemap.Size+3)
	for y := 0; y < tilemap.Size; y++ {
		row := make([]Glyph, 0, tilemap.Size*2)
		for x := 0; x < tilemap.Size; x++ {
			a, b := d.cellGlyphs(tilemap.Cell{X: x, Y: y})
			row = append(row, a, b)
		}
		rows = append(rows, row)
	}

	t := d.telemetry
	status := fmt.Sprintf("%s  %s  spawned %d  active %d  peak %d  avg tick %s",
		t.Clock(), t.Phase, t.TotalSpawned, t.ActiveEnemies, t.PeakActive, t.AvgTick.Round(time.Microsecond))
	if t.Paused {
		status += "  PAUSED"
	}
	rows = append(rows, nil, text(status, styleStatus), text("q quit  p pause", styleHelp))
	return rows
}

func (d *Dashboard) cellGlyphs(c tilemap.Cell) (Glyph, Glyph) {
	if n := d.enemies[c]; n > 0 {
		r := '+'
		if n < 10 {
			r = rune('0' + n)
		}
		return Glyph{'e', styleEnemy}, Glyph{r, styleEnemy}
	}
	switch kind := d.grid.KindAt(c); kind {
	case tilemap.KindStart:
		return Glyph{'S', styleFlag}, Glyph{' ', styleFlag}
	case tilemap.KindEnd:
		return Glyph{'E', styleFlag}, Glyph{' ', styleFlag}
	case tilemap.KindRoad:
		return Glyph{'=', styleRoad}, Glyph{'=', styleRoad}
	case tilemap.KindOpen:
		if r, ok := d.towers[c]; ok {
			return Glyph{r, styleTower}, Glyph{' ', styleTower}
		}
		return Glyph{'.', styleOpen}, Glyph{' ', styleOpen}
	default:
		return Glyph{'~', styleWater}, Glyph{'~', styleWater}
	}
}

func text(s string, style tcell.Style) []Glyph {
	out := make([]Glyph, 0, len(s))
	for _, r := range s {
		out = append(out, Glyph{r, style})
	}
	return out
}
