package system

import (
	"math"

	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/types"

	"go.uber.org/zap"
)

// CombatSystem управляет атакой башен: перезарядка, выбор цели, выстрел.
type CombatSystem struct {
	projectileSpeed float64
}

func NewCombatSystem() *CombatSystem {
	return &CombatSystem{projectileSpeed: config.ProjectileSpeed}
}

func (s *CombatSystem) Update(ctx *Context, dt float64) {
	if ctx.Path.Empty() {
		return
	}
	ctx.ECS.Towers.Each(func(id types.EntityID, tower *component.Tower) {
		tower.Cooldown.Tick(dt)
		if !tower.Cooldown.Ready() {
			return
		}
		// Без цели башня остаётся готовой и проверяет снова в следующем тике.
		enemyID, enemy := s.findNearestEnemyInRange(ctx, tower.Pos, tower.Range)
		if enemy == nil {
			return
		}
		s.createProjectile(ctx, id, tower, enemyID, enemy)
		tower.Cooldown.Reset()
		tower.Shots++
	})
}

// findNearestEnemyInRange сравнивает квадраты расстояний. При равенстве
// остаётся враг, встреченный первым, то есть с меньшим индексом слота.
func (s *CombatSystem) findNearestEnemyInRange(ctx *Context, from component.Position, radius float64) (types.EntityID, *component.Enemy) {
	var (
		nearestID types.EntityID
		nearest   *component.Enemy
	)
	best := radius * radius
	ctx.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) {
		if !e.Alive() {
			return
		}
		d := from.DistSq(e.Pos)
		if d > best {
			return
		}
		if nearest != nil && d >= best {
			return
		}
		best = d
		nearestID = id
		nearest = e
	})
	return nearestID, nearest
}

func (s *CombatSystem) createProjectile(ctx *Context, towerID types.EntityID, tower *component.Tower, enemyID types.EntityID, enemy *component.Enemy) {
	d := enemy.Pos.Sub(tower.Pos)
	proj := &component.Projectile{
		Target: enemyID,
		Source: towerID,
		Pos:    tower.Pos,
		Speed:  s.projectileSpeed,
		Damage: tower.Damage,
		Angle:  math.Atan2(d.Y, d.X),
	}
	projID := ctx.ECS.Projectiles.Insert(proj)
	ctx.Counters.Shots++
	if ce := ctx.Log.Check(zap.DebugLevel, "tower fired"); ce != nil {
		ce.Write(
			zap.Stringer("tower", towerID),
			zap.Stringer("target", enemyID),
			zap.Stringer("projectile", projID))
	}
}
