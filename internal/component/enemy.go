package component

// Enemy — подвижная сущность, идущая по маршруту.
type Enemy struct {
	DefID    string // ID из enemies.yaml
	Pos      Position
	Velocity Velocity
	Health   Health
	Follower PathFollower
	Visual   Renderable
	Loops    int // сколько раз враг прошёл маршрут (только стресс-режим)
}

// Alive здоровье ещё не опустилось до нуля.
func (e *Enemy) Alive() bool {
	return e.Health.Current > 0
}
