// internal/ui/hud.go
package ui

import (
	"fmt"

	"go-path-defense/internal/app"
	"go-path-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD — верхняя панель: ресурсы в игре, счётчики в стресс-тесте.
type HUD struct {
	Pause      *PauseButton
	Menu       *Button
	Wave       *WaveIndicator
	HealthBars *Button
}

func NewHUD() *HUD {
	h := float32(config.HUDHeight)
	right := float32(config.ScreenWidth)
	return &HUD{
		Pause:      NewPauseButton(right-140, h/2, 16),
		Menu:       NewButton(right-110, 8, 100, h-16, "Menu"),
		Wave:       NewWaveIndicator(config.ScreenWidth/2, 8),
		HealthBars: NewButton(right-260, 8, 100, h-16, "HP bars"),
	}
}

// Lines возвращает строки статуса для снимка телеметрии.
func Lines(t app.Telemetry, fps float64) []string {
	if t.Mode == "stress" {
		return []string{
			fmt.Sprintf("%s  Spawned: %d  Active: %d", t.Clock(), t.TotalSpawned, t.ActiveEnemies),
			fmt.Sprintf("FPS: %.0f  Towers: %d  Kills: %d", fps, t.Towers, t.Kills),
		}
	}
	lines := []string{fmt.Sprintf("Gold: %d  Lives: %d", t.Currency, t.Lives)}
	if t.Paused {
		lines = append(lines, "PAUSED")
	} else {
		lines = append(lines, fmt.Sprintf("Time: %s", app.FormatMinutes(t.Elapsed)))
	}
	return lines
}

// Draw рисует панель. showHealthBars подсвечивает переключатель полосок здоровья.
func (h *HUD) Draw(screen *ebiten.Image, t app.Telemetry, fps float64, showHealthBars bool) {
	vector.DrawFilledRect(screen, 0, 0, float32(config.ScreenWidth), config.HUDHeight, config.PanelColor, false)
	for i, line := range Lines(t, fps) {
		DrawText(screen, line, 10, 6+i*18, config.TextLightColor)
	}
	if t.Mode == "stress" {
		h.HealthBars.Draw(screen, showHealthBars)
	} else {
		h.Wave.Draw(screen, t.Wave)
	}
	h.Pause.Draw(screen, t.Paused)
	h.Menu.Draw(screen, false)
}
