// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"time"

	"go-path-defense/internal/app"
	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/event"
	"go-path-defense/internal/system"
	"go-path-defense/internal/ui"
	"go-path-defense/pkg/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const noticeDuration = 2 * time.Second

var hotkeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// GameState — сессия на экране: обычная игра или стресс-тест.
type GameState struct {
	sm       *StateMachine
	env      Env
	game     *app.Game
	renderer *system.RenderSystem
	hud      *ui.HUD
	panel    *ui.TowerPanel // только в обычной игре

	showPath      bool
	hover         tilemap.Cell
	hoverOnMap    bool
	lastClickTime time.Time
	notice        string
	noticeUntil   time.Time
}

// NewGameState создаёт сессию в выбранном режиме.
func NewGameState(sm *StateMachine, env Env, mode component.Mode) (*GameState, error) {
	env = env.withDefaults()
	g, err := app.NewGame(app.Options{
		Mode:     mode,
		Settings: env.Settings,
		Library:  env.Library,
		Grid:     env.Grid,
		Logger:   env.Logger,
	})
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		sm:   sm,
		env:  env,
		game: g,
		hud:  ui.NewHUD(),
	}
	if mode == component.ModePlay {
		gs.panel = ui.NewTowerPanel(env.Library)
	}
	g.Subscribe(event.ListenerFunc(gs.onEvent), event.WaveStarted, event.SessionFinished, event.GameOver)
	return gs, nil
}

// Game возвращает сессию (для паузы и тестов).
func (g *GameState) Game() *app.Game {
	return g.game
}

func (g *GameState) Enter() {
	g.game.Start()
}

func (g *GameState) onEvent(e event.Event) {
	switch e.Type {
	case event.WaveStarted:
		if d, ok := e.Data.(event.WaveData); ok {
			g.setNotice(fmt.Sprintf("Wave %d: %d x %s", d.Number, d.Count, d.EnemyID))
		}
	case event.SessionFinished:
		g.setNotice("Simulation finished")
	case event.GameOver:
		g.setNotice("")
	}
}

func (g *GameState) setNotice(s string) {
	g.notice = s
	g.noticeUntil = time.Now().Add(noticeDuration)
}

func (g *GameState) Update(deltaTime float64) {
	if g.handleKeys() {
		return
	}

	g.game.Update(deltaTime)
	if g.env.Publish != nil {
		g.env.Publish(g.game.Telemetry())
	}

	x, y := ebiten.CursorPosition()
	g.updateHover(x, y)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if time.Since(g.lastClickTime) < config.ClickDebounceTime*time.Millisecond {
			return
		}
		g.lastClickTime = time.Now()
		g.handleClick(x, y)
	}
}

// handleKeys обрабатывает клавиатуру. true: состояние сменилось.
func (g *GameState) handleKeys() bool {
	if g.game.Phase() == component.PhaseGameOver {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.backToMenu()
			return true
		}
		return false
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.backToMenu()
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.pause()
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.game.ShowHealthBars = !g.game.ShowHealthBars
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.showPath = !g.showPath
	}
	if g.panel != nil {
		for i, k := range hotkeys {
			if inpututil.IsKeyJustPressed(k) {
				g.panel.Hotkey(fmt.Sprint(i + 1))
			}
		}
	}
	return false
}

// handleClick маршрутизирует клик: сначала HUD и панель, затем карта.
func (g *GameState) handleClick(x, y int) {
	if g.game.Phase() == component.PhaseGameOver {
		g.backToMenu()
		return
	}
	switch {
	case g.hud.Menu.Contains(x, y):
		g.backToMenu()
		return
	case g.hud.Pause.Contains(x, y):
		g.pause()
		return
	}
	if g.game.Mode() == component.ModeStress {
		if g.hud.HealthBars.Contains(x, y) {
			g.game.ShowHealthBars = !g.game.ShowHealthBars
		}
		return
	}
	if g.panel.Click(x, y) {
		return
	}

	cell := g.game.Layout.WorldToCell(tilemap.Point{X: float64(x), Y: float64(y)})
	if !g.game.Grid.Contains(cell) {
		return
	}
	if _, err := g.game.PlaceTower(cell, g.panel.Selected()); err != nil {
		g.setNotice(placementNotice(err))
	}
}

func placementNotice(err error) string {
	switch {
	case errors.Is(err, app.ErrInsufficientFunds):
		return "Not enough gold"
	case errors.Is(err, app.ErrCellOccupied):
		return "Cell is occupied"
	case errors.Is(err, app.ErrNotBuildable):
		return "Can't build here"
	default:
		return err.Error()
	}
}

func (g *GameState) updateHover(x, y int) {
	g.hover = g.game.Layout.WorldToCell(tilemap.Point{X: float64(x), Y: float64(y)})
	g.hoverOnMap = g.game.Grid.Contains(g.hover) && g.game.Mode() == component.ModePlay
}

func (g *GameState) pause() {
	g.game.SetPaused(true)
	g.hud.Pause.Pulse()
	g.sm.Push(NewPauseState(g.sm, g))
}

func (g *GameState) backToMenu() {
	g.sm.SetState(NewMenuState(g.sm, g.env))
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	if g.renderer == nil {
		g.renderer = system.NewRenderSystem(g.game.Grid, g.game.Layout)
	}
	g.renderer.Draw(screen, g.game.Ctx, g.game.ShowHealthBars, g.showPath)

	if g.hoverOnMap && g.panel != nil {
		def, err := g.game.CanPlaceTower(g.hover, g.panel.Selected())
		g.renderer.DrawCellHighlight(screen, g.hover, err == nil)
		if def != nil {
			g.renderer.DrawRange(screen, g.game.Layout.CellToWorld(g.hover), def.Base.Range)
		}
	}
	if g.panel != nil {
		g.panel.Draw(screen, g.game.Stats().Currency)
	} else {
		g.drawSimulationPanel(screen)
	}

	t := g.game.Telemetry()
	g.hud.Draw(screen, t, ebiten.ActualFPS(), g.game.ShowHealthBars)
	if g.notice != "" && time.Now().Before(g.noticeUntil) {
		ui.DrawText(screen, g.notice, 10, config.HUDHeight+8, config.TextLightColor)
	}
	if g.game.Phase() == component.PhaseGameOver {
		drawGameOver(screen, t)
	}
}

// drawSimulationPanel показывает сводку стресс-теста справа от карты.
func (g *GameState) drawSimulationPanel(screen *ebiten.Image) {
	x := float32(config.MapPixelSize)
	vector.DrawFilledRect(screen, x, config.HUDHeight, config.PanelWidth, float32(config.MapPixelSize), config.PanelColor, false)
	t := g.game.Telemetry()
	lines := []string{
		"Simulation",
		"",
		"Phase: " + t.Phase,
		fmt.Sprintf("Loops: %d", t.Loops),
		fmt.Sprintf("Shots: %d", t.Shots),
		fmt.Sprintf("Hits: %d", t.Hits),
		fmt.Sprintf("Peak: %d", t.PeakActive),
		fmt.Sprintf("Tick: %s", t.LastTick.Round(time.Microsecond)),
		"",
		"[H] health bars",
		"[P] pause",
		"[Esc] menu",
	}
	for i, line := range lines {
		ui.DrawText(screen, line, int(x)+10, config.HUDHeight+12+i*18, config.TextLightColor)
	}
}

func drawGameOver(screen *ebiten.Image, t app.Telemetry) {
	vector.DrawFilledRect(screen, 0, 0, float32(config.ScreenWidth), float32(config.ScreenHeight), config.GameOverColor, false)
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Wave %d  Kills %d  Time %s", t.Wave, t.Kills, app.FormatMinutes(t.Elapsed)),
		"Click to return to menu",
	}
	y := config.ScreenHeight/2 - 30
	for i, line := range lines {
		ui.DrawText(screen, line, (config.ScreenWidth-ui.TextWidth(line))/2, y+i*24, config.TextLightColor)
	}
}

// Exit освобождает сессию: сущности, маршрут и подписки.
func (g *GameState) Exit() {
	g.game.Teardown()
}
