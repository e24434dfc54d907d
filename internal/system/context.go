package system

import (
	"go-path-defense/internal/component"
	"go-path-defense/internal/entity"
	"go-path-defense/internal/event"
	"go-path-defense/pkg/tilemap"

	"go.uber.org/zap"
)

// Counters — накопительные счётчики сессии для HUD и телеметрии.
type Counters struct {
	Spawned int
	Kills   int
	Leaks   int
	Loops   int
	Shots   int
	Hits    int
	Fizzled int // снаряды, потерявшие цель
}

// Context — всё изменяемое состояние симуляции, которое видят проходы.
// Глобальных ресурсов нет: сессия владеет контекстом и передаёт его в каждый проход.
type Context struct {
	ECS        *entity.ECS
	Path       tilemap.Path
	Stats      *component.PlayerStats
	Mode       component.Mode
	KillReward int
	Events     *event.Dispatcher
	Log        *zap.Logger
	Counters   Counters
}

// NewContext создаёт контекст с пустым ECS.
func NewContext(path tilemap.Path, stats *component.PlayerStats, mode component.Mode, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		ECS:    entity.NewECS(),
		Path:   path,
		Stats:  stats,
		Mode:   mode,
		Events: event.NewDispatcher(),
		Log:    log,
	}
}

// Pass — один проход тика.
type Pass interface {
	Update(ctx *Context, dt float64)
}
