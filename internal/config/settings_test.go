package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Session.StartingCurrency)
	assert.Equal(t, 3, cfg.Session.StartingLives)
	assert.Equal(t, 5*time.Minute, cfg.Stress.Duration)
	assert.Equal(t, 10, cfg.Stress.BurstSize)
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	body := `
[session]
starting_lives = 10

[stress]
duration = "30s"
burst_size = 4

[storage]
backend = "redis"
redis_addr = "redis:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Session.StartingLives)
	assert.Equal(t, 300, cfg.Session.StartingCurrency, "untouched keys keep defaults")
	assert.Equal(t, 30*time.Second, cfg.Stress.Duration)
	assert.Equal(t, 4, cfg.Stress.BurstSize)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6379", cfg.Storage.RedisAddr)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"postgres\"\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "storage.backend")
}

func TestValidate_RejectsNonPositive(t *testing.T) {
	cases := map[string]struct {
		mutate func(s *Settings)
		field  string
	}{
		"zero scale":       {func(s *Settings) { s.Window.Scale = 0 }, "window.scale"},
		"negative scale":   {func(s *Settings) { s.Window.Scale = -2 }, "window.scale"},
		"zero tps":         {func(s *Settings) { s.Window.TPS = 0 }, "window.tps"},
		"zero lives":       {func(s *Settings) { s.Session.StartingLives = 0 }, "session.starting_lives"},
		"zero burst":       {func(s *Settings) { s.Stress.BurstSize = 0 }, "stress.burst_size"},
		"zero frame delta": {func(s *Settings) { s.Stress.FrameDelta = 0 }, "stress.frame_delta"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.field)
		})
	}
	assert.NoError(t, Defaults().Validate())
}

func TestLoad_ZeroWindowScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nscale = 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "window.scale")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
