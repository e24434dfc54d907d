// internal/ui/tower_panel.go
package ui

import (
	"fmt"

	"go-path-defense/internal/config"
	"go-path-defense/internal/defs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TowerPanel — боковая панель выбора башни для постройки.
type TowerPanel struct {
	X        float32
	ids      []string
	buttons  []*Button
	hotkeys  map[string]string
	costs    map[string]int
	selected string
}

// NewTowerPanel строит кнопки в порядке определений.
func NewTowerPanel(lib *defs.Library) *TowerPanel {
	x := float32(config.MapPixelSize)
	p := &TowerPanel{
		X:       x,
		hotkeys: make(map[string]string),
		costs:   make(map[string]int),
	}
	for i, id := range lib.TowerIDs() {
		def := lib.Towers[id]
		label := fmt.Sprintf("[%s] %s %d", def.Hotkey, def.Name, def.Cost)
		y := float32(config.HUDHeight) + 40 + float32(i)*44
		p.ids = append(p.ids, id)
		p.buttons = append(p.buttons, NewButton(x+10, y, config.PanelWidth-20, 34, label))
		p.costs[id] = def.Cost
		if def.Hotkey != "" {
			p.hotkeys[def.Hotkey] = id
		}
	}
	if len(p.ids) > 0 {
		p.selected = p.ids[0]
	}
	return p
}

// Selected id выбранной башни.
func (p *TowerPanel) Selected() string {
	return p.selected
}

// Click выбирает башню по клику. false: клик мимо кнопок.
func (p *TowerPanel) Click(x, y int) bool {
	for i, b := range p.buttons {
		if b.Contains(x, y) {
			p.selected = p.ids[i]
			return true
		}
	}
	return false
}

// Hotkey выбирает башню по горячей клавише ("1", "2", ...).
func (p *TowerPanel) Hotkey(key string) bool {
	id, ok := p.hotkeys[key]
	if ok {
		p.selected = id
	}
	return ok
}

// Draw рисует панель; недоступные по цене башни затемнены.
func (p *TowerPanel) Draw(screen *ebiten.Image, currency int) {
	vector.DrawFilledRect(screen, p.X, config.HUDHeight, config.PanelWidth, float32(config.MapPixelSize), config.PanelColor, false)
	DrawText(screen, "Towers", int(p.X)+10, config.HUDHeight+12, config.TextLightColor)
	for i, b := range p.buttons {
		b.TextColor = config.TextLightColor
		if p.costs[p.ids[i]] > currency {
			b.TextColor = config.HoverInvalidColor
			b.TextColor.A = 255
		}
		b.Draw(screen, p.ids[i] == p.selected)
	}
}
