package toml

import (
	"fmt"

	"github.com/bnema/everydaymood/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int                `toml:"version"`
	Notifier     notifierSchema     `toml:"notifier"`
	Relationship relationshipSchema `toml:"relationship"`
	Love         loveSchema         `toml:"love"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Notifier.Channel == "" {
		s.Notifier.Channel = string(domain.NotifierChannelEmail)
	}
	if s.Notifier.SMTPServer == "" {
		s.Notifier.SMTPServer = domain.DefaultSMTPServer
	}
	if s.Notifier.SMTPPort == 0 {
		s.Notifier.SMTPPort = domain.DefaultSMTPPort
	}
	if s.Relationship.CelebrationDay == 0 {
		s.Relationship.CelebrationDay = domain.DefaultCelebrationDay
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type notifierSchema struct {
	Channel     string `toml:"channel"`
	Enabled     bool   `toml:"enabled"`
	SMTPServer  string `toml:"smtp_server"`
	SMTPPort    int    `toml:"smtp_port"`
	Sender      string `toml:"sender,omitempty"`
	Recipient   string `toml:"recipient,omitempty"`
	PasswordRef string `toml:"password_ref,omitempty"`
	WebhookURL  string `toml:"webhook_url,omitempty"`
}

type relationshipSchema struct {
	StartDate      string `toml:"start_date,omitempty"`
	CelebrationDay int    `toml:"celebration_day"`
}

type loveSchema struct {
	Level int `toml:"level"`
}
