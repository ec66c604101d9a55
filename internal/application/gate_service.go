package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

const GatePasswordKey = "everydaymood/gate/password_hash"

// GateService guards commands behind an optional password kept as a bcrypt hash.
type GateService struct {
	store ports.SecretStore
	cost  int
}

func NewGateService(store ports.SecretStore) *GateService {
	return &GateService{store: store, cost: bcrypt.DefaultCost}
}

func (s *GateService) SetPassword(ctx context.Context, password string) error {
	if password == "" {
		return errors.New("password is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.Put(ctx, GatePasswordKey, string(hash)); err != nil {
		return fmt.Errorf("store password hash: %w", err)
	}

	return nil
}

func (s *GateService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, GatePasswordKey); err != nil {
		return fmt.Errorf("delete password hash: %w", err)
	}
	return nil
}

func (s *GateService) Enabled(ctx context.Context) (bool, error) {
	_, err := s.store.Get(ctx, GatePasswordKey)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrSecretNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("read password hash: %w", err)
}

// Verify passes when no password is set or when password matches the stored hash.
func (s *GateService) Verify(ctx context.Context, password string) error {
	hash, err := s.store.Get(ctx, GatePasswordKey)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil
		}
		return fmt.Errorf("read password hash: %w", err)
	}

	if password == "" {
		return domain.ErrGateLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrWrongPassword
		}
		return fmt.Errorf("compare password hash: %w", err)
	}

	return nil
}
