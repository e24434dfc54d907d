package defs

import (
	"fmt"

	"go-path-defense/pkg/tilemap"
)

// LevelDefinition — карта уровня: 20 строк по 20 id тайлов.
type LevelDefinition struct {
	Name  string  `yaml:"name"`
	Tiles [][]int `yaml:"tiles"`
}

// Grid строит неизменяемую карту из определения.
func (l *LevelDefinition) Grid() (*tilemap.Grid, error) {
	g, err := tilemap.NewGrid(l.Tiles)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", l.Name, err)
	}
	return g, nil
}
