// internal/component/projectile.go
package component

import (
	"go-path-defense/internal/types"
)

// Projectile представляет самонаводящийся снаряд.
type Projectile struct {
	Target types.EntityID // Хэндл врага; может устареть, если враг уже удалён
	Pos    Position
	Speed  float64
	Damage int
	Angle  float64 // Направление полёта, радианы
	Source types.EntityID
}
