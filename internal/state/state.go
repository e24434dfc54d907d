// internal/state/state.go
package state

import (
	"go-path-defense/internal/app"
	"go-path-defense/internal/config"
	"go-path-defense/internal/defs"
	"go-path-defense/pkg/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// State — интерфейс для всех состояний
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Env — общие зависимости состояний: настройки, определения, уровень.
type Env struct {
	Settings *config.Settings
	Library  *defs.Library
	Grid     *tilemap.Grid
	Logger   *zap.Logger
	// Publish получает снимок телеметрии каждый тик (API, метрики). Может быть nil.
	Publish func(app.Telemetry)
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Settings == nil {
		e.Settings = config.Defaults()
	}
	return e
}

// StateMachine — структура для управления состояниями.
// Верхнее состояние стека активно; нижние ждут, пока верхнее не снимут.
type StateMachine struct {
	stack []State
	quit  bool
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState выходит из всех состояний стека и устанавливает новое.
func (sm *StateMachine) SetState(newState State) {
	for len(sm.stack) > 0 {
		sm.pop()
	}
	sm.Push(newState)
}

// Push кладёт состояние поверх текущего (без выхода из текущего).
func (sm *StateMachine) Push(s State) {
	if s == nil {
		return
	}
	sm.stack = append(sm.stack, s)
	s.Enter()
}

// Pop снимает верхнее состояние и возвращает управление предыдущему.
func (sm *StateMachine) Pop() {
	if len(sm.stack) > 1 {
		sm.pop()
	}
}

func (sm *StateMachine) pop() {
	top := sm.stack[len(sm.stack)-1]
	sm.stack = sm.stack[:len(sm.stack)-1]
	top.Exit()
}

// Current возвращает активное состояние.
func (sm *StateMachine) Current() State {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(deltaTime float64) {
	if s := sm.Current(); s != nil {
		s.Update(deltaTime)
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if s := sm.Current(); s != nil {
		s.Draw(screen)
	}
}

// RequestQuit просит главный цикл завершиться.
func (sm *StateMachine) RequestQuit() {
	sm.quit = true
}

func (sm *StateMachine) ShouldQuit() bool {
	return sm.quit
}

// Shutdown выходит из всех состояний (при закрытии окна).
func (sm *StateMachine) Shutdown() {
	for len(sm.stack) > 0 {
		sm.pop()
	}
}
