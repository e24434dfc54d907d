// Package main is the entry point for the path defense game and its tools.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-path-defense/internal/config"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/repositories/reports"
	"go-path-defense/pkg/tilemap"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	levelPath  string
)

var rootCmd = &cobra.Command{
	Use:   "pathdefense",
	Short: "Path defense simulation",
	Long:  `Tower defense on a 20x20 map: interactive play, headless stress benchmark and level tools.`,
	// без подкоманды запускаем игру
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML settings file")
	rootCmd.PersistentFlags().StringVar(&levelPath, "level", "", "path to a level YAML file (overrides settings)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(reportsCmd)
}

// environment: всё, что нужно любой подкоманде.
type environment struct {
	settings *config.Settings
	library  *defs.Library
	grid     *tilemap.Grid
	log      *zap.Logger
}

func loadEnvironment() (*environment, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(settings.Logging)
	if err != nil {
		return nil, err
	}

	var lib *defs.Library
	if dir := settings.Session.DefsDir; dir != "" {
		lib, err = defs.LoadDir(dir)
	} else {
		lib, err = defs.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}

	file := levelPath
	if file == "" {
		file = settings.Session.LevelFile
	}
	if file != "" {
		level, err := defs.LoadLevelFile(file)
		if err != nil {
			return nil, err
		}
		lib.Level = *level
	}

	grid, err := lib.Level.Grid()
	if err != nil {
		return nil, err
	}
	log.Debug("environment loaded",
		zap.String("level", lib.Level.Name),
		zap.Strings("towers", lib.TowerIDs()))
	return &environment{settings: settings, library: lib, grid: grid, log: log}, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	default:
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// newRepository открывает хранилище отчётов; close нужно вызвать в конце.
func newRepository(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (reports.Repository, func(), error) {
	if cfg.Backend != "redis" {
		return reports.NewInMemory(cfg.MaxList), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}

	repo, err := reports.NewRedis(&reports.Config{
		Client:    client,
		KeyPrefix: cfg.KeyPrefix,
		MaxList:   cfg.MaxList,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.Info("report storage connected", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return repo, func() {
		if err := client.Close(); err != nil {
			log.Warn("redis close", zap.Error(err))
		}
	}, nil
}
