// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"go-path-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton — круглая кнопка паузы с пульсацией при нажатии.
type PauseButton struct {
	X, Y       float32
	Size       float32
	PauseColor color.RGBA
	PlayColor  color.RGBA

	lastClick time.Time
}

func NewPauseButton(x, y, size float32) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: config.ButtonColor,
		PlayColor:  config.HealthFillColor,
	}
}

// Draw рисует треугольник "play" на паузе и две полосы во время игры.
func (b *PauseButton) Draw(screen *ebiten.Image, paused bool) {
	elapsed := time.Since(b.lastClick).Seconds()
	scale := 1.0 + 0.2*math.Exp(-elapsed*8)
	radius := b.Size * float32(scale)
	vector.DrawFilledCircle(screen, b.X, b.Y, radius, config.PanelColor, true)
	vector.StrokeCircle(screen, b.X, b.Y, radius, 2, config.TextLightColor, true)

	rectSize := radius * 0.4
	if paused {
		var p vector.Path
		p.MoveTo(b.X-rectSize, b.Y-rectSize*1.2)
		p.LineTo(b.X-rectSize, b.Y+rectSize*1.2)
		p.LineTo(b.X+rectSize, b.Y)
		p.Close()
		fillPath(screen, &p, b.PlayColor)
		return
	}
	width := rectSize * 0.6
	height := rectSize * 2.0
	spacing := rectSize * 0.4
	vector.DrawFilledRect(screen, b.X-width-spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
	vector.DrawFilledRect(screen, b.X+spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
}

// Contains попадание в круг кнопки.
func (b *PauseButton) Contains(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	return dx*dx+dy*dy <= b.Size*b.Size
}

// Pulse запускает анимацию нажатия.
func (b *PauseButton) Pulse() {
	b.lastClick = time.Now()
}

var whitePixel *ebiten.Image

func fillPath(screen *ebiten.Image, p *vector.Path, clr color.RGBA) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(3, 3)
		whitePixel.Fill(color.White)
	}
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whitePixel.SubImage(whitePixel.Bounds()).(*ebiten.Image), op)
}
