// internal/state/pause_state.go
package state

import (
	"go-path-defense/internal/config"
	"go-path-defense/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState лежит поверх GameState. Сессия продолжает получать тики:
// проходы стоят, сбор статистики и часы стресс-теста идут.
type PauseState struct {
	sm       *StateMachine
	previous *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{sm: sm, previous: prev}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	game := s.previous.game
	game.Update(deltaTime)
	if s.previous.env.Publish != nil {
		s.previous.env.Publish(game.Telemetry())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.previous.backToMenu()
		return
	}
	resume := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.previous.hud.Menu.Contains(x, y) {
			s.previous.backToMenu()
			return
		}
		resume = resume || s.previous.hud.Pause.Contains(x, y)
	}
	if resume {
		s.resume()
	}
}

func (s *PauseState) resume() {
	s.previous.game.SetPaused(false)
	s.previous.hud.Pause.Pulse()
	s.sm.Pop()
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previous.Draw(screen)
	vector.DrawFilledRect(screen, 0, config.HUDHeight, float32(config.MapPixelSize), float32(config.MapPixelSize), config.GameOverColor, false)
	label := "PAUSED"
	ui.DrawText(screen, label, (int(config.MapPixelSize)-ui.TextWidth(label))/2, config.HUDHeight+int(config.MapPixelSize)/2, config.TextLightColor)
}

func (s *PauseState) Exit() {}
