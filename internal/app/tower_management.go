package app

import (
	"errors"
	"fmt"

	"go-path-defense/internal/component"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/event"
	"go-path-defense/internal/types"
	"go-path-defense/pkg/tilemap"

	"go.uber.org/zap"
)

// Причины отказа в постройке. Отказ ничего не меняет в состоянии сессии.
var (
	ErrOutOfBounds       = errors.New("cell is outside the grid")
	ErrNotBuildable      = errors.New("tile is not buildable")
	ErrCellOccupied      = errors.New("cell already has a tower")
	ErrInsufficientFunds = errors.New("not enough currency")
	ErrUnknownTowerType  = errors.New("unknown tower type")
	ErrPlacementDisabled = errors.New("placement is not available in this session")
)

// CanPlaceTower проверяет все условия постройки, ничего не меняя.
func (g *Game) CanPlaceTower(cell tilemap.Cell, towerID string) (*defs.TowerDefinition, error) {
	if g.tornDown || g.Ctx.Mode != component.ModePlay || g.phase == component.PhaseGameOver {
		return nil, ErrPlacementDisabled
	}
	def, ok := g.Library.Towers[towerID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTowerType, towerID)
	}
	if !g.Grid.Contains(cell) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, cell.X, cell.Y)
	}
	if kind := g.Grid.KindAt(cell); !kind.Buildable() {
		return nil, fmt.Errorf("%w: (%d,%d) is %s", ErrNotBuildable, cell.X, cell.Y, kind)
	}
	if _, taken := g.towerCells[cell]; taken {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, cell.X, cell.Y)
	}
	if g.Ctx.Stats.Currency < def.Cost {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, g.Ctx.Stats.Currency, def.Cost)
	}
	return &def, nil
}

// PlaceTower строит башню в центре клетки и списывает её стоимость.
func (g *Game) PlaceTower(cell tilemap.Cell, towerID string) (types.EntityID, error) {
	def, err := g.CanPlaceTower(cell, towerID)
	if err != nil {
		g.log.Debug("tower placement rejected", zap.Error(err))
		return 0, err
	}
	g.Ctx.Stats.Currency -= def.Cost
	id := g.createTowerEntity(cell, def, def.Base)
	g.log.Debug("tower placed",
		zap.String("tower", def.ID),
		zap.Int("x", cell.X),
		zap.Int("y", cell.Y),
		zap.Int("currency", g.Ctx.Stats.Currency))
	g.Ctx.Events.Dispatch(event.Event{
		Type: event.TowerPlaced,
		Data: event.TowerData{ID: id, DefID: def.ID, Cell: cell, Cost: def.Cost},
	})
	return id, nil
}

// TowerAt возвращает башню в клетке, если она есть.
func (g *Game) TowerAt(cell tilemap.Cell) (*component.Tower, bool) {
	id, ok := g.towerCells[cell]
	if !ok {
		return nil, false
	}
	return g.Ctx.ECS.Towers.Get(id)
}

func (g *Game) createTowerEntity(cell tilemap.Cell, def *defs.TowerDefinition, stats defs.CombatStats) types.EntityID {
	tower := &component.Tower{
		DefID:    def.ID,
		Cell:     cell,
		Pos:      g.Layout.CellToWorld(cell),
		Range:    stats.Range,
		Damage:   stats.Damage,
		Cooldown: component.NewReadyCooldown(stats.Cooldown),
		Visual: component.Renderable{
			Color:  def.Visuals.Color.Value(),
			Radius: def.Visuals.Radius,
		},
	}
	id := g.Ctx.ECS.Towers.Insert(tower)
	g.towerCells[cell] = id
	return id
}

// fillStressTowers ставит башню на каждую свободную клетку: у дороги ставится
// башня ближнего боя, в глубине дальнобойная. Используются усиленные характеристики.
func (g *Game) fillStressTowers() error {
	roadside, ok := g.Library.Towers[g.settings.Stress.RoadsideTowerID]
	if !ok {
		return fmt.Errorf("stress towers: %w: %q", ErrUnknownTowerType, g.settings.Stress.RoadsideTowerID)
	}
	infield, ok := g.Library.Towers[g.settings.Stress.InfieldTowerID]
	if !ok {
		return fmt.Errorf("stress towers: %w: %q", ErrUnknownTowerType, g.settings.Stress.InfieldTowerID)
	}

	g.Grid.Each(func(c tilemap.Cell, id tilemap.TileID) {
		if !tilemap.Classify(id).Buildable() {
			return
		}
		def := &infield
		if g.nextToWalkway(c) {
			def = &roadside
		}
		g.createTowerEntity(c, def, def.Sim)
	})
	return nil
}

func (g *Game) nextToWalkway(c tilemap.Cell) bool {
	for _, d := range []tilemap.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		if g.Grid.KindAt(c.Add(d)).Walkway() {
			return true
		}
	}
	return false
}
