package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SettingsPathKey    = "settings.path"
	settingsFileMode   = 0o600
	settingsDirMode    = 0o700
	settingsConfigDir  = ".everydaymood"
	settingsConfigFile = "settings.toml"
	tempFilePattern    = ".settings-*.toml.tmp"
	startDateLayout    = "2006-01-02"
)

// Repository stores user settings in a single versioned TOML file.
type Repository struct {
	settingsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SettingsRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if cfg.GetString(SettingsPathKey) == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetDefault(SettingsPathKey, filepath.Join(homeDir, settingsConfigDir, settingsConfigFile))
	}

	settingsPath := cfg.GetString(SettingsPathKey)
	if settingsPath == "" {
		return nil, errors.New("settings path is empty")
	}
	settingsPath, err := normalizeSettingsPath(settingsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{settingsPath: settingsPath, mu: lockForPath(settingsPath)}, nil
}

func (r *Repository) Path() string {
	return r.settingsPath
}

func (r *Repository) Get(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Settings{}, err
	}

	return fromSchema(file), nil
}

func (r *Repository) Save(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := settings.Notifier.Validate(); err != nil {
		return fmt.Errorf("validate notifier settings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := toSchema(settings)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read settings file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode settings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeSettingsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.settingsPath)
	if err := os.MkdirAll(dir, settingsDirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tempFile.Chmod(settingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp settings file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}
	if err := os.Rename(tempName, r.settingsPath); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(settings domain.Settings) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Notifier: notifierSchema{
			Channel:     string(settings.Notifier.Channel),
			Enabled:     settings.Notifier.Enabled,
			SMTPServer:  settings.Notifier.SMTPServer,
			SMTPPort:    settings.Notifier.SMTPPort,
			Sender:      settings.Notifier.Sender,
			Recipient:   settings.Notifier.Recipient,
			PasswordRef: settings.Notifier.PasswordRef,
			WebhookURL:  settings.Notifier.WebhookURL,
		},
		Relationship: relationshipSchema{
			StartDate:      formatDate(settings.Relationship.StartDate),
			CelebrationDay: settings.Relationship.CelebrationDay,
		},
		Love: loveSchema{Level: settings.Love.Level},
	}
}

func fromSchema(file fileSchema) domain.Settings {
	return domain.Settings{
		Notifier: domain.NotifierSettings{
			Channel:     domain.NotifierChannel(file.Notifier.Channel),
			Enabled:     file.Notifier.Enabled,
			SMTPServer:  file.Notifier.SMTPServer,
			SMTPPort:    file.Notifier.SMTPPort,
			Sender:      file.Notifier.Sender,
			Recipient:   file.Notifier.Recipient,
			PasswordRef: file.Notifier.PasswordRef,
			WebhookURL:  file.Notifier.WebhookURL,
		},
		Relationship: domain.Relationship{
			StartDate:      parseDate(file.Relationship.StartDate),
			CelebrationDay: file.Relationship.CelebrationDay,
		},
		Love: domain.LoveMeter{Level: file.Love.Level},
	}
}

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.ParseInLocation(startDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(startDateLayout)
}
