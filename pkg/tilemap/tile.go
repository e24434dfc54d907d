// pkg/tilemap/tile.go
package tilemap

// TileID — сырой идентификатор тайла из файла уровня.
type TileID int

const (
	TileGrass TileID = 0
	TileWater TileID = 1
	TileStart TileID = 20
	TileEnd   TileID = 21

	MaxTileID TileID = 21
)

// Kind — класс тайла, единственное, что видят путь и размещение башен.
type Kind int

const (
	KindDecorative Kind = iota // вода и составные тайлы 1, 8-19
	KindOpen                   // трава, можно строить
	KindRoad
	KindStart
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindRoad:
		return "road"
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	default:
		return "decorative"
	}
}

// Classify сопоставляет id тайла его классу. Ориентация составных тайлов
// на классификацию не влияет.
func Classify(id TileID) Kind {
	switch {
	case id == TileGrass:
		return KindOpen
	case id >= 2 && id <= 7:
		return KindRoad
	case id == TileStart:
		return KindStart
	case id == TileEnd:
		return KindEnd
	default:
		return KindDecorative
	}
}

// Traversable сообщает, может ли путь пройти по тайлу.
func (k Kind) Traversable() bool {
	return k == KindRoad || k == KindEnd
}

// Buildable сообщает, можно ли поставить башню на тайл.
func (k Kind) Buildable() bool {
	return k == KindOpen
}

// Walkway дорога или её концы; используется для выбора типа башни в стресс-режиме.
func (k Kind) Walkway() bool {
	return k == KindRoad || k == KindStart || k == KindEnd
}
