// Package config resolves runtime configuration from defaults, an optional TOML config
// file, .env files and EM_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	KeyConfigFile       = "config.file"
	KeyDataDir          = "data.dir"
	KeyStorageDriver    = "storage.driver"
	KeySettingsPath     = "settings.path"
	KeySecretsDir       = "secrets.dir"
	KeySecretsBackend   = "secrets.backend"
	KeyCatalogPath      = "catalog.path"
	KeyLogLevel         = "log.level"
	KeyTickInterval     = "game.tick_interval"
	KeySeed             = "game.seed"
	KeySound            = "game.sound"
	KeySpawnProbability = "game.spawn_probability"

	EnvPrefix = "EM"

	DriverJSON   = "json"
	DriverSQLite = "sqlite"

	// SecretsAuto tries pass first and falls back to the vault file under secrets.dir.
	SecretsAuto = "auto"
	SecretsPass = "pass"
	SecretsFile = "file"

	defaultDataDirName      = ".everydaymood"
	defaultConfigFileName   = "config.toml"
	defaultSettingsFileName = "settings.toml"
	defaultTickInterval     = 30 * time.Millisecond
	defaultSpawnProbability = 0.012
)

type Config struct {
	ConfigFile     string
	DataDir        string
	StorageDriver  string
	SettingsPath   string
	SecretsDir     string
	SecretsBackend string
	CatalogPath    string
	LogLevel       zerolog.Level
	Game           GameConfig
}

type GameConfig struct {
	TickInterval     time.Duration
	Seed             uint64
	Sound            bool
	SpawnProbability float64
}

// LoadEnvFiles loads the given .env files into the process environment. Missing files are
// skipped and variables already set win over file values.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// Load fills v with defaults, reads the config file when present and returns the resolved
// configuration. Settings read later through v (such as settings.path) see the same values.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dataDir, err := expandHome(v.GetString(KeyDataDir))
	if err != nil {
		return Config{}, err
	}
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, defaultDataDirName)
	}

	v.SetDefault(KeyConfigFile, filepath.Join(dataDir, defaultConfigFileName))
	configFile, err := expandHome(v.GetString(KeyConfigFile))
	if err != nil {
		return Config{}, err
	}
	if err := readConfigFile(v, configFile); err != nil {
		return Config{}, err
	}

	// The config file may relocate the data dir.
	if fromFile, err := expandHome(v.GetString(KeyDataDir)); err != nil {
		return Config{}, err
	} else if fromFile != "" {
		dataDir = fromFile
	}

	v.SetDefault(KeyDataDir, dataDir)
	v.SetDefault(KeyStorageDriver, DriverJSON)
	v.SetDefault(KeySettingsPath, filepath.Join(dataDir, defaultSettingsFileName))
	v.SetDefault(KeySecretsDir, filepath.Join(dataDir, "secrets"))
	v.SetDefault(KeySecretsBackend, SecretsAuto)
	v.SetDefault(KeyCatalogPath, "")
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyTickInterval, defaultTickInterval)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeySound, false)
	v.SetDefault(KeySpawnProbability, defaultSpawnProbability)

	cfg := Config{
		ConfigFile:     configFile,
		DataDir:        dataDir,
		StorageDriver:  strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageDriver))),
		SecretsBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
		Game: GameConfig{
			TickInterval:     v.GetDuration(KeyTickInterval),
			Seed:             v.GetUint64(KeySeed),
			Sound:            v.GetBool(KeySound),
			SpawnProbability: v.GetFloat64(KeySpawnProbability),
		},
	}

	for key, target := range map[string]*string{
		KeySettingsPath: &cfg.SettingsPath,
		KeySecretsDir:   &cfg.SecretsDir,
		KeyCatalogPath:  &cfg.CatalogPath,
	} {
		value, err := expandHome(v.GetString(key))
		if err != nil {
			return Config{}, err
		}
		*target = value
	}
	// Keep the expanded path visible to repositories that resolve it through viper.
	v.Set(KeySettingsPath, cfg.SettingsPath)

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString(KeyLogLevel)))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", KeyLogLevel, err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverJSON, DriverSQLite:
	default:
		return fmt.Errorf("unsupported %s %q (want %s or %s)", KeyStorageDriver, c.StorageDriver, DriverJSON, DriverSQLite)
	}
	switch c.SecretsBackend {
	case SecretsAuto, SecretsPass, SecretsFile:
	default:
		return fmt.Errorf("unsupported %s %q (want %s, %s or %s)", KeySecretsBackend, c.SecretsBackend, SecretsAuto, SecretsPass, SecretsFile)
	}
	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyTickInterval, c.Game.TickInterval)
	}
	if c.Game.SpawnProbability < 0 || c.Game.SpawnProbability > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", KeySpawnProbability, c.Game.SpawnProbability)
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
