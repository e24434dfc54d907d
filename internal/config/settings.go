package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings — настройки из TOML-файла. Отсутствующие ключи берутся из defaults().
type Settings struct {
	Window    WindowConfig    `toml:"window"`
	Session   SessionConfig   `toml:"session"`
	Spawn     SpawnConfig     `toml:"spawn"`
	Stress    StressConfig    `toml:"stress"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Storage   StorageConfig   `toml:"storage"`
}

type WindowConfig struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"`
	TPS   int    `toml:"tps"`
}

type SessionConfig struct {
	StartingCurrency int    `toml:"starting_currency"`
	StartingLives    int    `toml:"starting_lives"`
	KillReward       int    `toml:"kill_reward"`
	LevelFile        string `toml:"level_file"` // пусто: встроенный уровень
	DefsDir          string `toml:"defs_dir"`   // пусто: встроенные определения
}

type SpawnConfig struct {
	WaveSet string `toml:"wave_set"`
}

type StressConfig struct {
	Duration        time.Duration `toml:"duration"`
	SpawnPeriod     time.Duration `toml:"spawn_period"`
	BurstSize       int           `toml:"burst_size"`
	EnemyID         string        `toml:"enemy_id"`
	ShowHealthBars  bool          `toml:"show_health_bars"`
	FrameDelta      time.Duration `toml:"frame_delta"`
	ProgressPerSec  float64       `toml:"progress_per_sec"` // строк прогресса в секунду
	RoadsideTowerID string        `toml:"roadside_tower"`
	InfieldTowerID  string        `toml:"infield_tower"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" или "console"
}

type TelemetryConfig struct {
	Enabled     bool     `toml:"enabled"`
	BindAddress string   `toml:"bind_address"`
	CORSOrigins []string `toml:"cors_origins"`
}

type StorageConfig struct {
	Backend   string `toml:"backend"` // "memory" или "redis"
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	KeyPrefix string `toml:"key_prefix"`
	MaxList   int    `toml:"max_list"`
}

// Load читает настройки из файла. Пустой путь: только значения по умолчанию.
func Load(path string) (*Settings, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет значения, при которых симуляция не может работать.
func (s *Settings) Validate() error {
	if s.Window.Scale <= 0 {
		return fmt.Errorf("window.scale must be positive, got %d", s.Window.Scale)
	}
	if s.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", s.Window.TPS)
	}
	if s.Session.StartingLives <= 0 {
		return fmt.Errorf("session.starting_lives must be positive, got %d", s.Session.StartingLives)
	}
	if s.Session.StartingCurrency < 0 {
		return fmt.Errorf("session.starting_currency must not be negative, got %d", s.Session.StartingCurrency)
	}
	if s.Stress.Duration <= 0 {
		return fmt.Errorf("stress.duration must be positive")
	}
	if s.Stress.SpawnPeriod <= 0 {
		return fmt.Errorf("stress.spawn_period must be positive")
	}
	if s.Stress.BurstSize <= 0 {
		return fmt.Errorf("stress.burst_size must be positive, got %d", s.Stress.BurstSize)
	}
	if s.Stress.FrameDelta <= 0 {
		return fmt.Errorf("stress.frame_delta must be positive")
	}
	switch s.Storage.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("storage.backend must be memory or redis, got %q", s.Storage.Backend)
	}
	return nil
}

// Defaults возвращает настройки по умолчанию.
func Defaults() *Settings {
	return &Settings{
		Window: WindowConfig{
			Title: "Path Defense",
			Scale: 1,
			TPS:   60,
		},
		Session: SessionConfig{
			StartingCurrency: 300,
			StartingLives:    3,
			KillReward:       5,
		},
		Spawn: SpawnConfig{
			WaveSet: "classic",
		},
		Stress: StressConfig{
			Duration:        5 * time.Minute,
			SpawnPeriod:     time.Second / 60,
			BurstSize:       10,
			EnemyID:         "orc",
			ShowHealthBars:  false,
			FrameDelta:      time.Second / 60,
			ProgressPerSec:  0.2,
			RoadsideTowerID: "canon",
			InfieldTowerID:  "archer",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			BindAddress: "127.0.0.1:8089",
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
			KeyPrefix: "pathdefense",
			MaxList:   50,
		},
	}
}
