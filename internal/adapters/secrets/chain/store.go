package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/everydaymood/internal/adapters/secrets/file"
	passstore "github.com/bnema/everydaymood/internal/adapters/secrets/pass"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"github.com/rs/zerolog"
)

// Backend is one named link of the chain.
type Backend struct {
	Name  string
	Store ports.SecretStore
}

// Store walks its backends in order. Reads return the first hit, writes land in the
// first backend that accepts them and deletes reach every backend.
type Store struct {
	backends []Backend
	logger   zerolog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(logger zerolog.Logger, backends ...Backend) (*Store, error) {
	if len(backends) == 0 {
		return nil, errors.New("secret chain needs at least one backend")
	}
	for i, backend := range backends {
		if backend.Store == nil {
			return nil, fmt.Errorf("secret backend %d (%s) is nil", i, backend.Name)
		}
	}

	return &Store{backends: backends, logger: logger}, nil
}

// NewDefault prefers the pass password manager and keeps the vault file as a fallback.
func NewDefault(vaultDir string, logger zerolog.Logger, opts ...passstore.Option) (*Store, error) {
	return NewStore(logger,
		Backend{Name: "pass", Store: passstore.NewStore(opts...)},
		Backend{Name: "vault", Store: filestore.NewStore(vaultDir)},
	)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextErr(err) {
			return err
		}

		s.logger.Debug().Err(err).Str("backend", backend.Name).Str("key", key).Msg("secret put failed, trying next backend")
		errs = append(errs, fmt.Errorf("%s backend put: %w", backend.Name, err))
	}

	return errors.Join(errs...)
}

// Get reports domain.ErrSecretNotFound only when every backend lacks the key. A broken
// backend never masquerades as a missing secret.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var failures []error
	for _, backend := range s.backends {
		value, err := backend.Store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextErr(err) {
			return "", err
		}
		if isAbsent(err) {
			continue
		}

		failures = append(failures, fmt.Errorf("%s backend get: %v", backend.Name, err))
	}

	if len(failures) > 0 {
		return "", errors.Join(failures...)
	}
	return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
}

// Delete clears the key everywhere since a value may live in any backend.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Delete(ctx, key)
		if err == nil || isAbsent(err) {
			continue
		}
		if isContextErr(err) {
			return err
		}

		errs = append(errs, fmt.Errorf("%s backend delete: %w", backend.Name, err))
	}

	return errors.Join(errs...)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func isAbsent(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable)
}
