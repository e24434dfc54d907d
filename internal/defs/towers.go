// internal/defs/towers.go
package defs

// CombatStats contains parameters related to a tower's combat abilities.
type CombatStats struct {
	Range    float64 `yaml:"range"`    // world units
	Damage   int     `yaml:"damage"`   // per projectile
	Cooldown float64 `yaml:"cooldown"` // seconds between shots
}

// TowerDefinition holds all the static data for a specific type of tower.
// Stress-mode towers use the upgraded Sim stats.
type TowerDefinition struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Cost    int         `yaml:"cost"`
	Hotkey  string      `yaml:"hotkey"`
	Base    CombatStats `yaml:"base"`
	Sim     CombatStats `yaml:"sim"`
	Visuals Visuals     `yaml:"visuals"`
}

// Stats returns the stats for the requested mode.
func (d *TowerDefinition) Stats(stress bool) CombatStats {
	if stress {
		return d.Sim
	}
	return d.Base
}

type towerListFile struct {
	Towers []TowerDefinition `yaml:"towers"`
}
