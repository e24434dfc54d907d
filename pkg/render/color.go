// pkg/render/color.go
package render

import "image/color"

// MapColors holds all the color definitions needed to render the static map background.
type MapColors struct {
	GrassColor     color.RGBA
	RoadColor      color.RGBA
	WaterColor     color.RGBA
	ShoreColor     color.RGBA
	EntryColor     color.RGBA
	ExitColor      color.RGBA
	PathColor      color.RGBA
	GridLineColor  color.RGBA
	BackgroundFill color.RGBA
}

// Of returns the colour used for a shape role.
func (c MapColors) Of(role Role) color.RGBA {
	switch role {
	case RoleGrass:
		return c.GrassColor
	case RoleRoad:
		return c.RoadColor
	case RoleWater:
		return c.WaterColor
	case RoleShore:
		return c.ShoreColor
	case RoleEntry:
		return c.EntryColor
	case RoleExit:
		return c.ExitColor
	default:
		return c.BackgroundFill
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}
