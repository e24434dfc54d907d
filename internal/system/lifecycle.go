package system

import (
	"go-path-defense/internal/component"
	"go-path-defense/internal/event"
	"go-path-defense/internal/types"

	"go.uber.org/zap"
)

// LifecycleSystem — последний проход тика: удаляет врагов с нулевым здоровьем.
// Должен идти после ProjectileSystem, чтобы убитый враг не попал в прицел
// и не отрисовался с отрицательным здоровьем.
type LifecycleSystem struct{}

func NewLifecycleSystem() *LifecycleSystem {
	return &LifecycleSystem{}
}

func (s *LifecycleSystem) Update(ctx *Context, _ float64) {
	ctx.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) {
		if e.Alive() {
			return
		}
		ctx.ECS.Enemies.Remove(id)
		ctx.Counters.Kills++
		if ctx.Mode == component.ModePlay {
			ctx.Stats.Currency += ctx.KillReward
			ctx.Log.Debug("enemy killed",
				zap.Stringer("id", id),
				zap.String("def", e.DefID),
				zap.Int("currency", ctx.Stats.Currency))
		}
		ctx.Events.Dispatch(event.Event{
			Type: event.EnemyKilled,
			Data: event.EnemyData{ID: id, DefID: e.DefID, Pos: e.Pos},
		})
	})
}
