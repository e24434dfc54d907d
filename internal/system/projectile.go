// internal/system/projectile.go
package system

import (
	"math"

	"go-path-defense/internal/component"
	"go-path-defense/internal/types"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(ctx *Context, dt float64) {
	ctx.ECS.Projectiles.Each(func(id types.EntityID, proj *component.Projectile) {
		target, ok := ctx.ECS.Enemies.Get(proj.Target)
		// Цель пропала или уже убита другим снарядом в этом тике.
		if !ok || !target.Alive() {
			ctx.ECS.Projectiles.Remove(id)
			ctx.Counters.Fizzled++
			return
		}

		d := target.Pos.Sub(proj.Pos)
		dist := d.Len()
		moveDistance := proj.Speed * dt

		if dist <= moveDistance {
			// Здоровье может уйти в минус, удалением занимается LifecycleSystem.
			target.Health.Current -= proj.Damage
			ctx.ECS.Projectiles.Remove(id)
			ctx.Counters.Hits++
			return
		}

		proj.Pos.X += (d.X / dist) * moveDistance
		proj.Pos.Y += (d.Y / dist) * moveDistance
		proj.Angle = math.Atan2(d.Y, d.X)
	})
}
