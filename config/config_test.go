package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, config.Validate())
	require.Equal(t, 1, config.Goroutines)
	require.Equal(t, "info", config.LogLevel)
}

func TestLoadFile(t *testing.T) {
	t.Run("overriding some defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "goroutines: 4\nreferee:\n  server: 2\nexperiments:\n  depths: [2, 4]\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		config, err := LoadFile(path)

		require.NoError(t, err)
		require.Equal(t, 4, config.Goroutines)
		require.Equal(t, 2, config.Referee.Server)
		require.Equal(t, []int{2, 4}, config.Experiments.Depths)
		require.Equal(t, 10, config.Experiments.Games, "Missing fields should keep their default")
		require.Equal(t, "info", config.LogLevel)
	})

	t.Run("rejecting invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("goroutines: 0\n"), 0644))

		_, err := LoadFile(path)

		require.Error(t, err)
		require.True(t, IsInvalid(err))
	})

	t.Run("rejecting malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("goroutines: [1\n"), 0644))

		_, err := LoadFile(path)

		require.Error(t, err)
		require.False(t, IsInvalid(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gothello", "config.yaml")
	config := DefaultConfig()
	config.Seed = 42
	config.Referee.ObserverAddr = ":8080"

	require.NoError(t, config.SaveFile(path, 0600))
	loaded, err := LoadFile(path)

	require.NoError(t, err)
	require.Equal(t, config, *loaded)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	config := DefaultConfig()
	config.Goroutines = 8
	config.Experiments.Depths = []int{2}

	require.NoError(t, config.Save())
	require.FileExists(t, filepath.Join(dir, "gothello", "config.yaml"))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, config, *loaded)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative server", func(c *Config) { c.Referee.Server = -1 }},
		{"no games", func(c *Config) { c.Experiments.Games = 0 }},
		{"negative baseline", func(c *Config) { c.Experiments.Baseline = -2 }},
		{"negative depth", func(c *Config) { c.Experiments.Depths = []int{1, -1} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.modify(&config)

			err := config.Validate()

			var invalid *InvalidConfig
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	defer func(logger zerolog.Logger, level zerolog.Level) {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	}(log.Logger, zerolog.GlobalLevel())

	var buf bytes.Buffer
	require.NoError(t, SetupLogging(&buf, "warn"))

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	require.Error(t, SetupLogging(&buf, "loud"))
}
