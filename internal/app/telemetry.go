package app

import (
	"fmt"
	"time"
)

// Telemetry — снимок состояния сессии для HUD, API и отчётов.
type Telemetry struct {
	Mode          string        `json:"mode"`
	Phase         string        `json:"phase"`
	Paused        bool          `json:"paused"`
	Elapsed       time.Duration `json:"elapsed_ns"`
	Budget        time.Duration `json:"budget_ns,omitempty"`
	SimTime       float64       `json:"sim_time"`
	Ticks         uint64        `json:"ticks"`
	Wave          int           `json:"wave,omitempty"`
	TotalSpawned  int           `json:"total_spawned"`
	ActiveEnemies int           `json:"active_enemies"`
	PeakActive    int           `json:"peak_active"`
	Towers        int           `json:"towers"`
	Projectiles   int           `json:"projectiles"`
	Kills         int           `json:"kills"`
	Leaks         int           `json:"leaks"`
	Loops         int           `json:"loops"`
	Shots         int           `json:"shots"`
	Hits          int           `json:"hits"`
	Currency      int           `json:"currency"`
	Lives         int           `json:"lives"`
	LastTick      time.Duration `json:"last_tick_ns"`
	MaxTick       time.Duration `json:"max_tick_ns"`
	AvgTick       time.Duration `json:"avg_tick_ns"`
}

// Telemetry собирает снимок. Только чтение.
func (g *Game) Telemetry() Telemetry {
	enemies, towers, projectiles := g.Ctx.ECS.Counts()
	c := g.Ctx.Counters
	t := Telemetry{
		Mode:          g.Ctx.Mode.String(),
		Phase:         g.phase.String(),
		Paused:        g.paused,
		Elapsed:       g.Elapsed(),
		Budget:        g.budget,
		SimTime:       g.gameTime,
		Ticks:         g.ticks,
		Wave:          g.Wave(),
		TotalSpawned:  c.Spawned,
		ActiveEnemies: enemies,
		PeakActive:    g.peakActive,
		Towers:        towers,
		Projectiles:   projectiles,
		Kills:         c.Kills,
		Leaks:         c.Leaks,
		Loops:         c.Loops,
		Shots:         c.Shots,
		Hits:          c.Hits,
		Currency:      g.Ctx.Stats.Currency,
		Lives:         g.Ctx.Stats.Lives,
		LastTick:      g.lastTick,
		MaxTick:       g.maxTick,
	}
	if g.ticks > 0 {
		t.AvgTick = g.totalTick / time.Duration(g.ticks)
	}
	return t
}

// Clock форматирует прошедшее время как "mm:ss / mm:ss" для стресс-теста.
func (t Telemetry) Clock() string {
	if t.Budget <= 0 {
		return FormatMinutes(t.Elapsed)
	}
	return FormatMinutes(t.Elapsed) + " / " + FormatMinutes(t.Budget)
}

// FormatMinutes форматирует длительность как mm:ss.
func FormatMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
