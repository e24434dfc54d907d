// internal/ui/button.go
package ui

import (
	"image/color"

	"go-path-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	X, Y          float32
	Width, Height float32
	Text          string
	BgColor       color.RGBA
	ActiveColor   color.RGBA
	TextColor     color.RGBA
}

// NewButton создает новую кнопку.
func NewButton(x, y, width, height float32, label string) *Button {
	return &Button{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Text:        label,
		BgColor:     config.ButtonColor,
		ActiveColor: config.ButtonActiveColor,
		TextColor:   config.TextLightColor,
	}
}

// Contains проверяет попадание точки в кнопку.
func (b *Button) Contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= b.X && fx < b.X+b.Width && fy >= b.Y && fy < b.Y+b.Height
}

// Draw отрисовывает кнопку. active: подсветка выбранной кнопки.
func (b *Button) Draw(screen *ebiten.Image, active bool) {
	bg := b.BgColor
	if active {
		bg = b.ActiveColor
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.Width, b.Height, bg, false)
	vector.StrokeRect(screen, b.X, b.Y, b.Width, b.Height, 2, config.TextLightColor, false)

	tx := int(b.X) + (int(b.Width)-TextWidth(b.Text))/2
	ty := int(b.Y) + (int(b.Height)-13)/2
	DrawText(screen, b.Text, tx, ty, b.TextColor)
}
