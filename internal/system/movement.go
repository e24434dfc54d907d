// internal/system/movement.go
package system

import (
	"go-path-defense/internal/component"
	"go-path-defense/internal/event"
	"go-path-defense/internal/types"

	"go.uber.org/zap"
)

// MovementSystem двигает врагов по маршруту и обрабатывает выход к концу пути.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(ctx *Context, dt float64) {
	path := ctx.Path
	// Вырожденный маршрут: двигаться некуда.
	if path.Len() < 2 {
		return
	}
	ctx.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) {
		if e.Follower.Index >= path.Len() {
			s.reachEnd(ctx, id, e)
			return
		}

		target := path.At(e.Follower.Index)
		d := target.Sub(e.Pos)
		dist := d.Len()
		moveDistance := e.Velocity.Speed * dt

		if dist <= moveDistance {
			e.Pos = target
			e.Follower.Index++
		} else {
			e.Pos.X += (d.X / dist) * moveDistance
			e.Pos.Y += (d.Y / dist) * moveDistance
		}

		if e.Follower.Index >= path.Len() {
			s.reachEnd(ctx, id, e)
		}
	})
}

// reachEnd: в обычной игре это утечка (минус жизнь, враг удаляется),
// в стресс-тесте враг возвращается на старт.
func (s *MovementSystem) reachEnd(ctx *Context, id types.EntityID, e *component.Enemy) {
	data := event.EnemyData{ID: id, DefID: e.DefID, Pos: e.Pos}

	if ctx.Mode == component.ModeStress {
		e.Pos = ctx.Path.At(0)
		e.Follower.Index = 1
		e.Loops++
		ctx.Counters.Loops++
		ctx.Events.Dispatch(event.Event{Type: event.EnemyLooped, Data: data})
		return
	}

	ctx.ECS.Enemies.Remove(id)
	ctx.Counters.Leaks++
	ctx.Stats.LoseLife()
	ctx.Log.Debug("enemy leaked",
		zap.Stringer("id", id),
		zap.String("def", e.DefID),
		zap.Int("lives", ctx.Stats.Lives))
	ctx.Events.Dispatch(event.Event{Type: event.EnemyLeaked, Data: data})
}
