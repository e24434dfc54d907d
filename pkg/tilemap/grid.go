// pkg/tilemap/grid.go
package tilemap

import (
	"errors"
	"fmt"
	"math"
)

// Size — сторона квадратной карты в клетках.
const Size = 20

var (
	ErrGridSize  = errors.New("grid must be 20x20")
	ErrTileRange = errors.New("tile id out of range")
	ErrNoStart   = errors.New("grid has no start tile")
)

// Cell — координаты клетки на сетке (X: столбец, Y: строка, Y растёт вниз).
type Cell struct {
	X, Y int
}

// Add возвращает сумму двух клеток
func (c Cell) Add(other Cell) Cell {
	return Cell{X: c.X + other.X, Y: c.Y + other.Y}
}

// Point — точка в мировых (экранных) координатах.
type Point struct {
	X, Y float64
}

// Sub возвращает вектор от other до p.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Len возвращает длину вектора.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// DistSq возвращает квадрат расстояния между точками.
func (p Point) DistSq(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Grid — неизменяемая карта уровня.
type Grid struct {
	tiles [Size][Size]TileID
}

// NewGrid строит карту из строк id. Ошибка, если размер не 20x20
// или id вне известного диапазона.
func NewGrid(rows [][]int) (*Grid, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: got %d rows", ErrGridSize, len(rows))
	}
	g := &Grid{}
	for y, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrGridSize, y, len(row))
		}
		for x, id := range row {
			if id < 0 || TileID(id) > MaxTileID {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrTileRange, id, x, y)
			}
			g.tiles[y][x] = TileID(id)
		}
	}
	return g, nil
}

// Contains проверяет, что клетка внутри карты.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < Size && c.Y < Size
}

// At возвращает id тайла. Вне карты: вода.
func (g *Grid) At(c Cell) TileID {
	if !g.Contains(c) {
		return TileWater
	}
	return g.tiles[c.Y][c.X]
}

// KindAt возвращает класс тайла в клетке.
func (g *Grid) KindAt(c Cell) Kind {
	return Classify(g.At(c))
}

// Start ищет стартовую клетку (первую при обходе по строкам).
func (g *Grid) Start() (Cell, bool) {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if Classify(g.tiles[y][x]) == KindStart {
				return Cell{X: x, Y: y}, true
			}
		}
	}
	return Cell{}, false
}

// Each обходит все клетки по строкам.
func (g *Grid) Each(fn func(c Cell, id TileID)) {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			fn(Cell{X: x, Y: y}, g.tiles[y][x])
		}
	}
}

// Layout переводит клетки в мировые координаты: центр клетки (x,y)
// лежит в Origin + (x,y)*TileSize + TileSize/2.
type Layout struct {
	TileSize float64
	OriginX  float64
	OriginY  float64
}

// CellToWorld возвращает мировую позицию центра клетки.
func (l Layout) CellToWorld(c Cell) Point {
	return Point{
		X: l.OriginX + float64(c.X)*l.TileSize + l.TileSize/2,
		Y: l.OriginY + float64(c.Y)*l.TileSize + l.TileSize/2,
	}
}

// WorldToCell возвращает клетку, в которую попадает мировая точка.
func (l Layout) WorldToCell(p Point) Cell {
	return Cell{
		X: int(math.Floor((p.X - l.OriginX) / l.TileSize)),
		Y: int(math.Floor((p.Y - l.OriginY) / l.TileSize)),
	}
}
