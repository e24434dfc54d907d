package system

import (
	"go-path-defense/internal/component"
	"go-path-defense/pkg/tilemap"
)

// Facing — куда смотрит спрайт врага. Хранить не нужно: вычисляется
// из направления на следующую точку маршрута.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// EnemyFacing возвращает отражение спрайта по горизонтали.
func EnemyFacing(e *component.Enemy, path tilemap.Path) Facing {
	if e.Follower.Index >= path.Len() {
		return FacingRight
	}
	if path.At(e.Follower.Index).X < e.Pos.X {
		return FacingLeft
	}
	return FacingRight
}

// HealthBar — производное состояние полоски здоровья, только для отрисовки.
type HealthBar struct {
	Visible  bool
	Fraction float64
}

// EnemyHealthBar скрывает полоску при полном здоровье или если полоски отключены.
func EnemyHealthBar(h component.Health, enabled bool) HealthBar {
	if !enabled || h.Current >= h.Max {
		return HealthBar{}
	}
	return HealthBar{Visible: true, Fraction: h.Fraction()}
}
