package render

import (
	"fmt"
	"image"
	"io"

	"go-path-defense/pkg/tilemap"

	"github.com/fogleman/gg"
)

// ExportOptions — параметры выгрузки карты в картинку.
type ExportOptions struct {
	TileSize float64
	Colors   MapColors
	ShowPath bool
	ShowGrid bool
	Occupied []tilemap.Cell // клетки с башнями, рисуются кружками
}

// DrawMap рисует карту уровня программным рендером gg.
func DrawMap(grid *tilemap.Grid, path tilemap.Path, opts ExportOptions) image.Image {
	ts := opts.TileSize
	size := int(ts * tilemap.Size)
	dc := gg.NewContext(size, size)

	dc.SetColor(opts.Colors.BackgroundFill)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	grid.Each(func(c tilemap.Cell, id tilemap.TileID) {
		ox, oy := float64(c.X)*ts, float64(c.Y)*ts
		for _, r := range SpriteFor(id).Shapes() {
			dc.SetColor(opts.Colors.Of(r.Role))
			dc.DrawRectangle(ox+r.X*ts, oy+r.Y*ts, r.W*ts, r.H*ts)
			dc.Fill()
		}
	})

	if opts.ShowGrid {
		dc.SetColor(opts.Colors.GridLineColor)
		dc.SetLineWidth(1)
		for i := 0; i <= tilemap.Size; i++ {
			p := float64(i) * ts
			dc.DrawLine(p, 0, p, float64(size))
			dc.Stroke()
			dc.DrawLine(0, p, float64(size), p)
			dc.Stroke()
		}
	}

	for _, c := range opts.Occupied {
		dc.SetColor(DarkenColor(opts.Colors.RoadColor))
		dc.DrawCircle(float64(c.X)*ts+ts/2, float64(c.Y)*ts+ts/2, ts*0.35)
		dc.Fill()
	}

	if opts.ShowPath && path.Len() > 1 {
		dc.SetColor(opts.Colors.PathColor)
		dc.SetLineWidth(3)
		// Точки пути в мировых координатах, переводим через клетки.
		for i, c := range path.Cells {
			x, y := float64(c.X)*ts+ts/2, float64(c.Y)*ts+ts/2
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
	return dc.Image()
}

// EncodePNG рисует карту и пишет её в w в формате PNG.
func EncodePNG(w io.Writer, grid *tilemap.Grid, path tilemap.Path, opts ExportOptions) error {
	if opts.TileSize <= 0 {
		return fmt.Errorf("encode png: tile size must be positive, got %v", opts.TileSize)
	}
	dc := gg.NewContextForImage(DrawMap(grid, path, opts))
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
