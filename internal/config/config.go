// internal/config/config.go
package config

import "image/color"

const (
	TileSize     = 32.0
	GridSize     = 20
	HUDHeight    = 48
	PanelWidth   = 200
	MapPixelSize = GridSize * TileSize

	ScreenWidth  = int(MapPixelSize) + PanelWidth
	ScreenHeight = int(MapPixelSize) + HUDHeight

	MapOriginX = 0.0
	MapOriginY = float64(HUDHeight)

	MaxDeltaTime      = 0.1
	ClickDebounceTime = 150 // мс

	EnemyRadius      = 9.0
	TowerRadius      = 12.0
	ProjectileRadius = 3.0
	ProjectileSpeed  = 300.0 // пикселей в секунду

	HealthBarWidth  = 24.0
	HealthBarHeight = 4.0
	HealthBarOffset = 16.0

	TextCharWidth = 7
	TextOffsetY   = 4
)

var (
	BackgroundColor   = color.RGBA{20, 20, 30, 255}
	GrassColor        = color.RGBA{86, 140, 70, 255}
	RoadColor         = color.RGBA{170, 140, 95, 255}
	WaterColor        = color.RGBA{50, 100, 170, 255}
	ShoreColor        = color.RGBA{80, 130, 190, 255}
	EntryColor        = color.RGBA{0, 255, 0, 255}
	ExitColor         = color.RGBA{255, 0, 0, 255}
	PathLineColor     = color.RGBA{255, 255, 0, 128}
	TextLightColor    = color.RGBA{240, 240, 240, 255}
	TextDarkColor     = color.RGBA{20, 20, 30, 255}
	PanelColor        = color.RGBA{35, 35, 50, 255}
	ButtonColor       = color.RGBA{70, 130, 180, 220}
	ButtonActiveColor = color.RGBA{220, 60, 60, 220}
	HoverValidColor   = color.RGBA{255, 255, 255, 90}
	HoverInvalidColor = color.RGBA{220, 60, 60, 90}
	RangeColor        = color.RGBA{255, 255, 255, 40}
	HealthBackColor   = color.RGBA{60, 0, 0, 255}
	HealthFillColor   = color.RGBA{50, 205, 50, 255}
	ProjectileColor   = color.RGBA{255, 230, 120, 255}
	GameOverColor     = color.RGBA{0, 0, 0, 180}
)
