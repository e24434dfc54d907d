// pkg/tilemap/path.go
package tilemap

// MaxPathSteps ограничивает обход на случай некорректного уровня.
const MaxPathSteps = 100

// walkOrder: фиксированный порядок соседей: вверх, вниз, влево, вправо.
var walkOrder = []Cell{
	{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0},
}

// Path — упорядоченные точки маршрута; первая точка: старт.
type Path struct {
	Points []Point
	Cells  []Cell
}

// Len возвращает число точек маршрута.
func (p Path) Len() int {
	return len(p.Points)
}

// Empty маршрута нет (на карте нет старта).
func (p Path) Empty() bool {
	return len(p.Points) == 0
}

// At возвращает точку маршрута по индексу.
func (p Path) At(i int) Point {
	return p.Points[i]
}

// ReachesEnd сообщает, заканчивается ли маршрут на клетке финиша.
func (p Path) ReachesEnd(g *Grid) bool {
	if len(p.Cells) == 0 {
		return false
	}
	return g.KindAt(p.Cells[len(p.Cells)-1]) == KindEnd
}

// ExtractPath проходит по дороге от старта. На каждом шаге выбирается первый
// проходимый сосед (дорога или финиш), не совпадающий с предыдущей клеткой.
// Тупик или отсутствие дороги: не ошибка: возвращается то, что успели построить.
// Это не поиск кратчайшего пути: уровень должен содержать один коридор без развилок.
func ExtractPath(g *Grid, layout Layout) Path {
	start, ok := g.Start()
	if !ok {
		return Path{}
	}

	path := Path{
		Points: []Point{layout.CellToWorld(start)},
		Cells:  []Cell{start},
	}
	current := start
	previous := start

	for step := 0; step < MaxPathSteps; step++ {
		next, found := nextCell(g, current, previous)
		if !found {
			break
		}
		previous = current
		current = next
		path.Points = append(path.Points, layout.CellToWorld(next))
		path.Cells = append(path.Cells, next)

		if g.KindAt(next) == KindEnd {
			break
		}
	}
	return path
}

func nextCell(g *Grid, current, previous Cell) (Cell, bool) {
	for _, dir := range walkOrder {
		n := current.Add(dir)
		if !g.Contains(n) || n == previous {
			continue
		}
		if g.KindAt(n).Traversable() {
			return n, true
		}
	}
	return Cell{}, false
}
