package domain

import (
	"fmt"
	"strings"
)

type NotifierChannel string

const (
	NotifierChannelEmail   NotifierChannel = "email"
	NotifierChannelWebhook NotifierChannel = "webhook"

	DefaultSMTPServer = "smtp.gmail.com"
	DefaultSMTPPort   = 587
)

type NotifierSettings struct {
	Channel     NotifierChannel
	Enabled     bool
	SMTPServer  string
	SMTPPort    int
	Sender      string
	Recipient   string
	PasswordRef string
	WebhookURL  string
}

func DefaultNotifierSettings() NotifierSettings {
	return NotifierSettings{
		Channel:    NotifierChannelEmail,
		SMTPServer: DefaultSMTPServer,
		SMTPPort:   DefaultSMTPPort,
	}
}

func (s NotifierSettings) Validate() error {
	switch s.Channel {
	case NotifierChannelEmail:
		if strings.TrimSpace(s.SMTPServer) == "" {
			return fmt.Errorf("smtp server is required")
		}
		if s.SMTPPort <= 0 || s.SMTPPort > 65535 {
			return fmt.Errorf("invalid smtp port %d", s.SMTPPort)
		}
	case NotifierChannelWebhook:
		if s.Enabled && strings.TrimSpace(s.WebhookURL) == "" {
			return fmt.Errorf("webhook url is required")
		}
	default:
		return fmt.Errorf("unsupported notifier channel %q", s.Channel)
	}
	return nil
}

type Settings struct {
	Notifier     NotifierSettings
	Relationship Relationship
	Love         LoveMeter
}

func DefaultSettings() Settings {
	return Settings{
		Notifier:     DefaultNotifierSettings(),
		Relationship: Relationship{CelebrationDay: DefaultCelebrationDay},
	}
}
