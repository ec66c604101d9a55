package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"github.com/pelletier/go-toml/v2"
)

const (
	VaultFileName = "vault.toml"

	vaultDirMode  = 0o700
	vaultFileMode = 0o600
	vaultVersion  = 1
)

type vault struct {
	Version int               `toml:"version"`
	Secrets map[string]string `toml:"secrets"`
}

// Store keeps every secret in one owner-only TOML file below dir.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(filepath.Clean(dir), VaultFileName)}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load()
	if err != nil {
		return err
	}
	v.Secrets[strings.TrimSpace(key)] = value

	return s.save(v)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load()
	if err != nil {
		return "", err
	}

	value, ok := v.Secrets[strings.TrimSpace(key)]
	if !ok {
		return "", fmt.Errorf("vault secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return value, nil
}

// Delete succeeds when the key is already absent.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load()
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(key)
	if _, ok := v.Secrets[trimmed]; !ok {
		return nil
	}
	delete(v.Secrets, trimmed)

	return s.save(v)
}

func (s *Store) load() (vault, error) {
	v := vault{Version: vaultVersion, Secrets: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return vault{}, fmt.Errorf("read secret vault: %w", err)
	}

	if err := toml.Unmarshal(data, &v); err != nil {
		return vault{}, fmt.Errorf("decode secret vault %s: %w", s.path, err)
	}
	if v.Version > vaultVersion {
		return vault{}, fmt.Errorf("unsupported secret vault version %d", v.Version)
	}
	if v.Secrets == nil {
		v.Secrets = map[string]string{}
	}

	return v, nil
}

func (s *Store) save(v vault) error {
	v.Version = vaultVersion

	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode secret vault: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, vaultDirMode); err != nil {
		return fmt.Errorf("create secret vault directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vault-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp secret vault: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(vaultFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod secret vault: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write secret vault: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync secret vault: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close secret vault: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace secret vault: %w", err)
	}

	return nil
}

func validateKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("secret key is empty")
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return fmt.Errorf("invalid secret key %q", key)
	}
	return nil
}
