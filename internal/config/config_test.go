package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"EM_CONFIG_FILE", "EM_DATA_DIR", "EM_STORAGE_DRIVER", "EM_SETTINGS_PATH", "EM_SECRETS_DIR", "EM_SECRETS_BACKEND",
		"EM_CATALOG_PATH", "EM_LOG_LEVEL", "EM_GAME_TICK_INTERVAL", "EM_GAME_SEED", "EM_GAME_SOUND",
		"EM_GAME_SPAWN_PROBABILITY",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolateEnv(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	dataDir := filepath.Join(home, ".everydaymood")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "config.toml"), cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dataDir, "settings.toml"), cfg.SettingsPath)
	assert.Equal(t, filepath.Join(dataDir, "secrets"), cfg.SecretsDir)
	assert.Equal(t, DriverJSON, cfg.StorageDriver)
	assert.Equal(t, SecretsAuto, cfg.SecretsBackend)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, GameConfig{TickInterval: 30 * time.Millisecond, SpawnProbability: 0.012}, cfg.Game)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := isolateEnv(t)

	dataDir := filepath.Join(home, ".everydaymood")
	require.NoError(t, os.MkdirAll(dataDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte(`
[storage]
driver = "sqlite"

[catalog]
path = "~/messages.yaml"

[log]
level = "debug"

[game]
tick_interval = "50ms"
seed = 42
sound = true
spawn_probability = 0.5
`), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, filepath.Join(home, "messages.yaml"), cfg.CatalogPath)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, GameConfig{TickInterval: 50 * time.Millisecond, Seed: 42, Sound: true, SpawnProbability: 0.5}, cfg.Game)
}

func TestLoadEnvOverridesConfigFile(t *testing.T) {
	home := isolateEnv(t)

	configPath := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[storage]\ndriver = \"sqlite\"\n"), 0o600))
	t.Setenv("EM_CONFIG_FILE", configPath)
	t.Setenv("EM_STORAGE_DRIVER", "json")
	t.Setenv("EM_DATA_DIR", filepath.Join(home, "data"))

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, configPath, cfg.ConfigFile)
	assert.Equal(t, DriverJSON, cfg.StorageDriver)
	assert.Equal(t, filepath.Join(home, "data"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "data", "settings.toml"), v.GetString(KeySettingsPath))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "driver", key: "EM_STORAGE_DRIVER", val: "postgres", want: "unsupported storage.driver"},
		{name: "secrets", key: "EM_SECRETS_BACKEND", val: "vault", want: "unsupported secrets.backend"},
		{name: "tick", key: "EM_GAME_TICK_INTERVAL", val: "-1s", want: "game.tick_interval must be positive"},
		{name: "spawn", key: "EM_GAME_SPAWN_PROBABILITY", val: "1.5", want: "game.spawn_probability must be between 0 and 1"},
		{name: "level", key: "EM_LOG_LEVEL", val: "loud", want: "parse log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	home := isolateEnv(t)

	configPath := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[storage\n"), 0o600))
	t.Setenv("EM_CONFIG_FILE", configPath)

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadEnvFilesSkipsMissingAndKeepsExisting(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("EM_GAME_SEED=7\nEM_STORAGE_DRIVER=sqlite\n"), 0o600))
	t.Setenv("EM_STORAGE_DRIVER", "json")
	require.NoError(t, os.Unsetenv("EM_GAME_SEED"))
	t.Cleanup(func() { _ = os.Unsetenv("EM_GAME_SEED") })

	require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), envPath))

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Game.Seed)
	assert.Equal(t, DriverJSON, cfg.StorageDriver)
}
