// internal/defs/loader.go
package defs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var builtin embed.FS

const (
	towersFile  = "towers.yaml"
	enemiesFile = "enemies.yaml"
	wavesFile   = "waves.yaml"
	levelFile   = "level.yaml"
)

var ErrUnknownWaveSet = errors.New("unknown wave set")

// Library — все статические определения игры.
type Library struct {
	Towers   map[string]TowerDefinition
	Enemies  map[string]EnemyDefinition
	WaveSets map[string]WaveSet
	Level    LevelDefinition

	towerOrder []string
}

// Default загружает встроенные в бинарник определения.
func Default() (*Library, error) {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		return nil, fmt.Errorf("open builtin defs: %w", err)
	}
	return Load(sub)
}

// LoadDir загружает определения из каталога на диске.
func LoadDir(dir string) (*Library, error) {
	return Load(os.DirFS(dir))
}

// Load читает все файлы определений из fsys и проверяет их.
func Load(fsys fs.FS) (*Library, error) {
	var towers towerListFile
	if err := decodeFile(fsys, towersFile, &towers); err != nil {
		return nil, err
	}
	var enemies enemyListFile
	if err := decodeFile(fsys, enemiesFile, &enemies); err != nil {
		return nil, err
	}
	var waves waveListFile
	if err := decodeFile(fsys, wavesFile, &waves); err != nil {
		return nil, err
	}
	level, err := loadLevel(fsys, levelFile)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Towers:   make(map[string]TowerDefinition, len(towers.Towers)),
		Enemies:  make(map[string]EnemyDefinition, len(enemies.Enemies)),
		WaveSets: waves.Sets,
		Level:    *level,
	}
	for _, def := range towers.Towers {
		if _, dup := lib.Towers[def.ID]; dup {
			return nil, fmt.Errorf("duplicate tower id %q", def.ID)
		}
		lib.Towers[def.ID] = def
		lib.towerOrder = append(lib.towerOrder, def.ID)
	}
	for _, def := range enemies.Enemies {
		if _, dup := lib.Enemies[def.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", def.ID)
		}
		lib.Enemies[def.ID] = def
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadLevelFile читает отдельный файл уровня.
func LoadLevelFile(path string) (*LevelDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	return parseLevel(data, path)
}

func loadLevel(fsys fs.FS, name string) (*LevelDefinition, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return parseLevel(data, name)
}

func parseLevel(data []byte, name string) (*LevelDefinition, error) {
	var level LevelDefinition
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	if _, err := level.Grid(); err != nil {
		return nil, err
	}
	return &level, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func (lib *Library) validate() error {
	for id, t := range lib.Towers {
		for _, s := range []CombatStats{t.Base, t.Sim} {
			if s.Cooldown <= 0 || s.Range <= 0 || s.Damage <= 0 {
				return fmt.Errorf("tower %q: range, damage and cooldown must be positive", id)
			}
		}
		if t.Cost < 0 {
			return fmt.Errorf("tower %q: negative cost", id)
		}
	}
	for id, e := range lib.Enemies {
		if e.Health <= 0 || e.Speed <= 0 {
			return fmt.Errorf("enemy %q: health and speed must be positive", id)
		}
	}
	for name, set := range lib.WaveSets {
		if len(set.Waves) == 0 {
			return fmt.Errorf("wave set %q is empty", name)
		}
		if set.LoopFrom < 0 || set.LoopFrom >= len(set.Waves) {
			return fmt.Errorf("wave set %q: loop_from %d out of range", name, set.LoopFrom)
		}
		for i, w := range set.Waves {
			if _, ok := lib.Enemies[w.EnemyID]; !ok {
				return fmt.Errorf("wave set %q wave %d: unknown enemy %q", name, i, w.EnemyID)
			}
			if w.Count <= 0 || w.Interval <= 0 {
				return fmt.Errorf("wave set %q wave %d: count and interval must be positive", name, i)
			}
		}
	}
	return nil
}

// TowerIDs возвращает id башен в порядке объявления (для панели и горячих клавиш).
func (lib *Library) TowerIDs() []string {
	return append([]string(nil), lib.towerOrder...)
}

// WaveSet возвращает набор волн по имени.
func (lib *Library) WaveSet(name string) (WaveSet, error) {
	set, ok := lib.WaveSets[name]
	if !ok {
		names := make([]string, 0, len(lib.WaveSets))
		for n := range lib.WaveSets {
			names = append(names, n)
		}
		sort.Strings(names)
		return WaveSet{}, fmt.Errorf("%w %q (have %v)", ErrUnknownWaveSet, name, names)
	}
	return set, nil
}
