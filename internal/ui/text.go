// internal/ui/text.go
package ui

import (
	"image/color"

	"go-path-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// DrawText рисует строку моноширинным шрифтом; y: верх строки.
func DrawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(screen, s, basicfont.Face7x13, x, y+basicfont.Face7x13.Ascent, clr)
}

// TextWidth ширина строки в пикселях.
func TextWidth(s string) int {
	return len(s) * config.TextCharWidth
}
