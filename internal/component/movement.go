// component/movement.go
package component

import "go-path-defense/pkg/tilemap"

// Position — компонент позиции в мировых координатах
type Position = tilemap.Point

// Velocity — компонент скорости
type Velocity struct {
	Speed float64 // единиц в секунду
}

// PathFollower — курсор по общему маршруту. Индекс 0: точка спавна,
// поэтому новые враги начинают с 1.
type PathFollower struct {
	Index int
}
