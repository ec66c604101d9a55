package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

const SMTPPasswordKey = "everydaymood/notifier/smtp_password"

// SettingsService updates stored settings and keeps the notifier password in the secret
// store, never in the settings file.
type SettingsService struct {
	repo  ports.SettingsRepository
	store ports.SecretStore
}

func NewSettingsService(repo ports.SettingsRepository, store ports.SecretStore) *SettingsService {
	return &SettingsService{repo: repo, store: store}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) UpdateNotifier(ctx context.Context, cmd UpdateNotifierCommand) error {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	original := settings

	notifier := settings.Notifier
	if cmd.Channel != "" {
		notifier.Channel = cmd.Channel
	}
	if cmd.Enabled != nil {
		notifier.Enabled = *cmd.Enabled
	}
	if cmd.SMTPServer != "" {
		notifier.SMTPServer = strings.TrimSpace(cmd.SMTPServer)
	}
	if cmd.SMTPPort != 0 {
		notifier.SMTPPort = cmd.SMTPPort
	}
	if cmd.Sender != "" {
		notifier.Sender = strings.TrimSpace(cmd.Sender)
	}
	if cmd.Recipient != "" {
		notifier.Recipient = strings.TrimSpace(cmd.Recipient)
	}
	if cmd.WebhookURL != "" {
		notifier.WebhookURL = strings.TrimSpace(cmd.WebhookURL)
	}
	if err := notifier.Validate(); err != nil {
		return fmt.Errorf("validate notifier settings: %w", err)
	}

	if cmd.Password == nil {
		settings.Notifier = notifier
		if err := s.repo.Save(ctx, settings); err != nil {
			return fmt.Errorf("save notifier settings: %w", err)
		}
		return nil
	}

	if *cmd.Password == "" {
		return s.removePassword(ctx, original, notifier)
	}

	return s.rotatePassword(ctx, settings, notifier, *cmd.Password)
}

func (s *SettingsService) rotatePassword(ctx context.Context, settings domain.Settings, notifier domain.NotifierSettings, password string) error {
	previous, err := s.store.Get(ctx, SMTPPasswordKey)
	hadPrevious := err == nil
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return fmt.Errorf("read current smtp password: %w", err)
	}

	if err := s.store.Put(ctx, SMTPPasswordKey, password); err != nil {
		return fmt.Errorf("store smtp password: %w", err)
	}

	notifier.PasswordRef = SMTPPasswordKey
	settings.Notifier = notifier

	if err := s.repo.Save(ctx, settings); err != nil {
		var rollbackErr error
		if hadPrevious {
			rollbackErr = s.store.Put(ctx, SMTPPasswordKey, previous)
		} else {
			rollbackErr = s.store.Delete(ctx, SMTPPasswordKey)
		}
		if rollbackErr != nil {
			return fmt.Errorf("save notifier settings and rollback stored password: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save notifier settings: %w", err)
	}

	return nil
}

func (s *SettingsService) removePassword(ctx context.Context, original domain.Settings, notifier domain.NotifierSettings) error {
	secretRef := original.Notifier.PasswordRef
	notifier.PasswordRef = ""

	settings := original
	settings.Notifier = notifier
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("save notifier settings: %w", err)
	}

	if secretRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, secretRef); err != nil {
		if restoreErr := s.repo.Save(ctx, original); restoreErr != nil {
			return fmt.Errorf("delete smtp password and restore settings: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete smtp password: %w", err)
	}

	return nil
}

func (s *SettingsService) UpdateRelationship(ctx context.Context, cmd UpdateRelationshipCommand) error {
	relationship := domain.Relationship{StartDate: cmd.StartDate, CelebrationDay: cmd.CelebrationDay}
	if relationship.CelebrationDay == 0 {
		relationship.CelebrationDay = domain.DefaultCelebrationDay
	}
	if err := relationship.Validate(); err != nil {
		return fmt.Errorf("validate relationship: %w", err)
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	settings.Relationship = relationship
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("save relationship settings: %w", err)
	}

	return nil
}
