// pkg/render/sprites.go
package render

import "go-path-defense/pkg/tilemap"

// AtlasCell — клетка атласа тайлов (столбец, строка).
type AtlasCell struct {
	Col, Row int
}

var (
	AtlasWater      = AtlasCell{0, 0}
	AtlasShoreOuter = AtlasCell{4, 0}
	AtlasShoreEdge  = AtlasCell{5, 0}
	AtlasShoreInner = AtlasCell{6, 0}
	AtlasRoadCorner = AtlasCell{7, 0}
	AtlasRoad       = AtlasCell{8, 0}
	AtlasGrass      = AtlasCell{9, 0}
	AtlasStartFlag  = AtlasCell{7, 2}
	AtlasEndFlag    = AtlasCell{8, 2}
)

// Layer — один слой спрайта; Rotation в четвертях оборота по часовой стрелке.
type Layer struct {
	Atlas    AtlasCell
	Rotation int
}

// Sprite — базовый слой и необязательный слой поверх.
// Таблица только для отрисовки: путь и размещение смотрят на tilemap.Classify.
type Sprite struct {
	Base    Layer
	Overlay *Layer
}

var simpleSprites = map[tilemap.TileID]Layer{
	0: {AtlasGrass, 0},
	1: {AtlasWater, 0},
	2: {AtlasRoad, 0},
	3: {AtlasRoad, 1},
	4: {AtlasRoadCorner, 0},
	5: {AtlasRoadCorner, 1},
	6: {AtlasRoadCorner, 2},
	7: {AtlasRoadCorner, 3},
}

// SpriteFor возвращает слои для id тайла.
// 8-19: вода с берегом в четырёх поворотах, 20/21: дорога с флагом.
func SpriteFor(id tilemap.TileID) Sprite {
	switch {
	case id >= 8 && id <= 19:
		atlas := AtlasShoreEdge
		switch {
		case id >= 16:
			atlas = AtlasShoreOuter
		case id >= 12:
			atlas = AtlasShoreInner
		}
		return Sprite{
			Base:    Layer{Atlas: AtlasWater},
			Overlay: &Layer{Atlas: atlas, Rotation: int(id-8) % 4},
		}
	case id == tilemap.TileStart:
		return Sprite{Base: Layer{Atlas: AtlasRoad}, Overlay: &Layer{Atlas: AtlasStartFlag}}
	case id == tilemap.TileEnd:
		return Sprite{Base: Layer{Atlas: AtlasRoad}, Overlay: &Layer{Atlas: AtlasEndFlag}}
	}
	if l, ok := simpleSprites[id]; ok {
		return Sprite{Base: l}
	}
	return Sprite{Base: Layer{Atlas: AtlasWater}}
}

// Role — роль фигуры при отрисовке без атласа.
type Role int

const (
	RoleGrass Role = iota
	RoleWater
	RoleRoad
	RoleShore
	RoleEntry
	RoleExit
)

// Rect — прямоугольник в долях клетки: (0,0): левый верхний угол, 1: сторона.
type Rect struct {
	X, Y, W, H float64
	Role       Role
}

// rotate поворачивает прямоугольник на четверть оборота по часовой стрелке n раз.
func (r Rect) rotate(n int) Rect {
	for i := 0; i < ((n%4)+4)%4; i++ {
		r = Rect{X: 1 - (r.Y + r.H), Y: r.X, W: r.H, H: r.W, Role: r.Role}
	}
	return r
}

const road = 0.4 // ширина дороги в долях клетки

// layerShapes: фигуры слоя без поворота.
var layerShapes = map[AtlasCell][]Rect{
	AtlasGrass: {{0, 0, 1, 1, RoleGrass}},
	AtlasWater: {{0, 0, 1, 1, RoleWater}},
	// прямая дорога слева направо поверх травы
	AtlasRoad: {
		{0, 0, 1, 1, RoleGrass},
		{0, (1 - road) / 2, 1, road, RoleRoad},
	},
	// поворот: слева и вниз
	AtlasRoadCorner: {
		{0, 0, 1, 1, RoleGrass},
		{0, (1 - road) / 2, (1 + road) / 2, road, RoleRoad},
		{(1 - road) / 2, (1 - road) / 2, road, (1 + road) / 2, RoleRoad},
	},
	AtlasShoreEdge:  {{0, 0, 1, 0.25, RoleShore}},
	AtlasShoreInner: {{0, 0, 0.25, 0.25, RoleShore}},
	AtlasShoreOuter: {
		{0, 0, 1, 0.25, RoleShore},
		{0, 0, 0.25, 1, RoleShore},
	},
	AtlasStartFlag: {{0.3, 0.3, 0.4, 0.4, RoleEntry}},
	AtlasEndFlag:   {{0.3, 0.3, 0.4, 0.4, RoleExit}},
}

// Shapes раскладывает спрайт на прямоугольники для отрисовки цветом.
func (s Sprite) Shapes() []Rect {
	out := appendLayer(nil, s.Base)
	if s.Overlay != nil {
		out = appendLayer(out, *s.Overlay)
	}
	return out
}

func appendLayer(out []Rect, l Layer) []Rect {
	for _, r := range layerShapes[l.Atlas] {
		out = append(out, r.rotate(l.Rotation))
	}
	return out
}
