package entity

import "go-path-defense/internal/component"

// ECS — хранилище всех сущностей сессии: по одной арене на вид сущности.
// Компоненты лежат прямо в структурах врагов, башен и снарядов, поэтому
// запросы: это обычный обход нужной арены.
type ECS struct {
	Enemies     *Arena[component.Enemy]
	Towers      *Arena[component.Tower]
	Projectiles *Arena[component.Projectile]
}

// NewECS создаёт новый ECS
func NewECS() *ECS {
	return &ECS{
		Enemies:     NewArena[component.Enemy](256),
		Towers:      NewArena[component.Tower](64),
		Projectiles: NewArena[component.Projectile](256),
	}
}

// Clear удаляет все сущности. Все ранее выданные хэндлы становятся недействительными.
func (ecs *ECS) Clear() {
	ecs.Enemies.Clear()
	ecs.Towers.Clear()
	ecs.Projectiles.Clear()
}

// Counts возвращает число живых врагов, башен и снарядов.
func (ecs *ECS) Counts() (enemies, towers, projectiles int) {
	return ecs.Enemies.Len(), ecs.Towers.Len(), ecs.Projectiles.Len()
}
