// internal/system/render.go
package system

import (
	"math"

	"go-path-defense/internal/component"
	"go-path-defense/internal/config"
	"go-path-defense/internal/types"
	"go-path-defense/pkg/render"
	"go-path-defense/pkg/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MapColors палитра карты из констант конфигурации.
func MapColors() render.MapColors {
	return render.MapColors{
		GrassColor:     config.GrassColor,
		RoadColor:      config.RoadColor,
		WaterColor:     config.WaterColor,
		ShoreColor:     config.ShoreColor,
		EntryColor:     config.EntryColor,
		ExitColor:      config.ExitColor,
		PathColor:      config.PathLineColor,
		GridLineColor:  render.DarkenColor(config.GrassColor),
		BackgroundFill: config.BackgroundColor,
	}
}

// RenderSystem рисует карту и сущности
type RenderSystem struct {
	layout   tilemap.Layout
	mapImage *ebiten.Image // Предрендеренная карта
}

func NewRenderSystem(grid *tilemap.Grid, layout tilemap.Layout) *RenderSystem {
	r := &RenderSystem{layout: layout}
	r.renderMapImage(grid)
	return r
}

// renderMapImage рисует статичный фон один раз при создании.
func (s *RenderSystem) renderMapImage(grid *tilemap.Grid) {
	ts := s.layout.TileSize
	size := int(ts * tilemap.Size)
	s.mapImage = ebiten.NewImage(size, size)
	colors := MapColors()
	grid.Each(func(c tilemap.Cell, id tilemap.TileID) {
		ox, oy := float64(c.X)*ts, float64(c.Y)*ts
		for _, r := range render.SpriteFor(id).Shapes() {
			vector.DrawFilledRect(s.mapImage,
				float32(ox+r.X*ts), float32(oy+r.Y*ts), float32(r.W*ts), float32(r.H*ts),
				colors.Of(r.Role), false)
		}
	})
}

// Draw рисует кадр. Полоски здоровья вычисляются из состояния, не хранятся.
func (s *RenderSystem) Draw(screen *ebiten.Image, ctx *Context, showHealthBars, showPath bool) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(s.layout.OriginX, s.layout.OriginY)
	screen.DrawImage(s.mapImage, op)

	if showPath {
		for i := 1; i < ctx.Path.Len(); i++ {
			a, b := ctx.Path.At(i-1), ctx.Path.At(i)
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, config.PathLineColor, true)
		}
	}

	ctx.ECS.Towers.Each(func(_ types.EntityID, t *component.Tower) {
		vector.DrawFilledCircle(screen, float32(t.Pos.X), float32(t.Pos.Y), t.Visual.Radius+2, config.TextDarkColor, true)
		vector.DrawFilledCircle(screen, float32(t.Pos.X), float32(t.Pos.Y), t.Visual.Radius, t.Visual.Color, true)
	})

	ctx.ECS.Enemies.Each(func(_ types.EntityID, e *component.Enemy) {
		x, y := float32(e.Pos.X), float32(e.Pos.Y)
		r := e.Visual.Radius
		if r == 0 {
			r = config.EnemyRadius
		}
		vector.DrawFilledCircle(screen, x, y, r, e.Visual.Color, true)
		// "глаз" показывает, куда смотрит враг
		eye := r / 2
		if EnemyFacing(e, ctx.Path) == FacingLeft {
			eye = -eye
		}
		vector.DrawFilledCircle(screen, x+eye, y-r/3, 2, config.TextLightColor, true)

		bar := EnemyHealthBar(e.Health, showHealthBars)
		if !bar.Visible {
			return
		}
		bx := x - config.HealthBarWidth/2
		by := y - config.HealthBarOffset
		vector.DrawFilledRect(screen, bx, by, config.HealthBarWidth, config.HealthBarHeight, config.HealthBackColor, false)
		vector.DrawFilledRect(screen, bx, by, float32(config.HealthBarWidth*bar.Fraction), config.HealthBarHeight, config.HealthFillColor, false)
	})

	ctx.ECS.Projectiles.Each(func(_ types.EntityID, p *component.Projectile) {
		const tail = 6.0
		tx := p.Pos.X - math.Cos(p.Angle)*tail
		ty := p.Pos.Y - math.Sin(p.Angle)*tail
		vector.StrokeLine(screen, float32(tx), float32(ty), float32(p.Pos.X), float32(p.Pos.Y), config.ProjectileRadius, config.ProjectileColor, true)
	})
}

// DrawRange рисует радиус башни (подсказка при постройке).
func (s *RenderSystem) DrawRange(screen *ebiten.Image, center tilemap.Point, radius float64) {
	vector.DrawFilledCircle(screen, float32(center.X), float32(center.Y), float32(radius), config.RangeColor, true)
}

// DrawCellHighlight подсвечивает клетку под курсором.
func (s *RenderSystem) DrawCellHighlight(screen *ebiten.Image, cell tilemap.Cell, valid bool) {
	clr := config.HoverValidColor
	if !valid {
		clr = config.HoverInvalidColor
	}
	ts := s.layout.TileSize
	x := s.layout.OriginX + float64(cell.X)*ts
	y := s.layout.OriginY + float64(cell.Y)*ts
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(ts), float32(ts), clr, false)
}
