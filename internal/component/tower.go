// component/tower.go
package component

import "go-path-defense/pkg/tilemap"

type Tower struct {
	DefID    string       // ID из towers.yaml
	Cell     tilemap.Cell // Клетка, на которой стоит башня
	Pos      Position
	Range    float64 // Радиус действия в мировых единицах
	Damage   int
	Cooldown Cooldown
	Visual   Renderable
	Shots    int // Сколько снарядов выпущено
}
