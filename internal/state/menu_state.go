// internal/state/menu_state.go
package state

import (
	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// MenuState — главное меню: игра, стресс-тест, выход.
type MenuState struct {
	sm         *StateMachine
	env        Env
	play       *ui.Button
	simulation *ui.Button
	quit       *ui.Button
	lastError  string
}

func NewMenuState(sm *StateMachine, env Env) *MenuState {
	const w, h = 220, 44
	x := float32(config.ScreenWidth-w) / 2
	y := float32(config.ScreenHeight)/2 - 80
	return &MenuState{
		sm:         sm,
		env:        env.withDefaults(),
		play:       ui.NewButton(x, y, w, h, "Play"),
		simulation: ui.NewButton(x, y+60, w, h, "Simulation"),
		quit:       ui.NewButton(x, y+120, w, h, "Quit"),
	}
}

func (m *MenuState) Enter() {
	m.lastError = ""
}

func (m *MenuState) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.Key1):
		m.start(component.ModePlay)
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyS), inpututil.IsKeyJustPressed(ebiten.Key2):
		m.start(component.ModeStress)
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		m.sm.RequestQuit()
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.handleClick(ebiten.CursorPosition())
	}
}

func (m *MenuState) handleClick(x, y int) {
	switch {
	case m.play.Contains(x, y):
		m.start(component.ModePlay)
	case m.simulation.Contains(x, y):
		m.start(component.ModeStress)
	case m.quit.Contains(x, y):
		m.sm.RequestQuit()
	}
}

func (m *MenuState) start(mode component.Mode) {
	gs, err := NewGameState(m.sm, m.env, mode)
	if err != nil {
		m.env.Logger.Error("failed to start session", zap.Stringer("mode", mode), zap.Error(err))
		m.lastError = err.Error()
		return
	}
	m.sm.SetState(gs)
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	title := "PATH DEFENSE"
	ui.DrawText(screen, title, (config.ScreenWidth-ui.TextWidth(title))/2, int(m.play.Y)-60, config.TextLightColor)
	m.play.Draw(screen, false)
	m.simulation.Draw(screen, false)
	m.quit.Draw(screen, false)
	if m.lastError != "" {
		ui.DrawText(screen, m.lastError, 10, config.ScreenHeight-24, config.ButtonActiveColor)
	}
}

func (m *MenuState) Exit() {
	// Ничего не делаем при выходе
}
