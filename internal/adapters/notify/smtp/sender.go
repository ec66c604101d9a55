package smtp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/everydaymood/internal/adapters/notify"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"github.com/wneessen/go-mail"
)

const defaultTimeout = 30 * time.Second

type deliverFunc func(ctx context.Context, settings domain.NotifierSettings, password string, msg *mail.Msg) error

// Sender mails journal entries through an authenticated STARTTLS SMTP server.
type Sender struct {
	secrets ports.SecretStore
	timeout time.Duration
	deliver deliverFunc
}

var _ notify.Sender = (*Sender)(nil)

func NewSender(secrets ports.SecretStore, timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	sender := &Sender{secrets: secrets, timeout: timeout}
	sender.deliver = sender.dialAndSend
	return sender
}

func (s *Sender) Send(ctx context.Context, settings domain.NotifierSettings, entry domain.JournalEntry) error {
	if strings.TrimSpace(settings.Sender) == "" || strings.TrimSpace(settings.PasswordRef) == "" {
		return domain.ErrNotifierNotConfigured
	}

	password, err := s.secrets.Get(ctx, settings.PasswordRef)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return fmt.Errorf("smtp password: %w", domain.ErrNotifierNotConfigured)
		}
		return fmt.Errorf("read smtp password: %w", err)
	}
	if password == "" {
		return domain.ErrNotifierNotConfigured
	}

	if strings.TrimSpace(settings.Recipient) == "" {
		return domain.ErrRecipientMissing
	}

	msg, err := buildMessage(settings, entry)
	if err != nil {
		return err
	}

	return s.deliver(ctx, settings, password, msg)
}

func buildMessage(settings domain.NotifierSettings, entry domain.JournalEntry) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(settings.Sender); err != nil {
		return nil, fmt.Errorf("set sender address: %w", err)
	}
	if err := msg.To(settings.Recipient); err != nil {
		return nil, fmt.Errorf("set recipient address: %w", err)
	}
	msg.Subject(notify.Subject(entry))
	msg.SetBodyString(mail.TypeTextPlain, notify.Body(entry))

	return msg, nil
}

func (s *Sender) dialAndSend(ctx context.Context, settings domain.NotifierSettings, password string, msg *mail.Msg) error {
	client, err := mail.NewClient(settings.SMTPServer,
		mail.WithPort(settings.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(settings.Sender),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(s.timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
