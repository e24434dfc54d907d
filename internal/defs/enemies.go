// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Health  int     `yaml:"health"`
	Speed   float64 `yaml:"speed"` // world units per second
	Visuals Visuals `yaml:"visuals"`
}

type enemyListFile struct {
	Enemies []EnemyDefinition `yaml:"enemies"`
}
