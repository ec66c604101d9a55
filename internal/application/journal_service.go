package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"github.com/rs/zerolog"
)

const (
	notifySentMessage          = "Email sent successfully!"
	notifyDisabledMessage      = "Notifications disabled"
	notifyNotConfiguredMessage = "Notifier not configured. Run `em settings notifier` first."
	notifyNoRecipientMessage   = "Recipient email not set"
)

type JournalService struct {
	repo     ports.JournalRepository
	notifier ports.Notifier
	clock    ports.Clock
	logger   zerolog.Logger
}

func NewJournalService(repo ports.JournalRepository, notifier ports.Notifier, clock ports.Clock, logger zerolog.Logger) *JournalService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &JournalService{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// AddEntry notifies first, then persists the entry whatever the notification outcome.
// The returned message describes that outcome.
func (s *JournalService) AddEntry(ctx context.Context, cmd AddJournalEntryCommand) (domain.JournalEntry, string, error) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return domain.JournalEntry{}, "", domain.ErrEmptyJournalText
	}

	mood := strings.TrimSpace(cmd.Mood)
	if mood == "" {
		mood = "Unknown"
	}

	now := s.clock.Now()
	entry := domain.JournalEntry{
		Timestamp:    now,
		Date:         now.Format(domain.JournalDateLayout),
		Mood:         mood,
		Text:         text,
		DaysTogether: cmd.DaysTogether,
	}

	sent, message := s.notify(ctx, entry)
	entry.EmailSent = sent

	saved, err := s.repo.Append(ctx, entry)
	if err != nil {
		return domain.JournalEntry{}, message, fmt.Errorf("append journal entry: %w", err)
	}

	return saved, message, nil
}

func (s *JournalService) notify(ctx context.Context, entry domain.JournalEntry) (bool, string) {
	if s.notifier == nil {
		return false, notifyDisabledMessage
	}

	err := s.notifier.Notify(ctx, entry)
	switch {
	case err == nil:
		return true, notifySentMessage
	case errors.Is(err, domain.ErrNotificationsDisabled):
		return false, notifyDisabledMessage
	case errors.Is(err, domain.ErrNotifierNotConfigured):
		s.logger.Warn().Err(err).Msg("journal notification skipped")
		return false, notifyNotConfiguredMessage
	case errors.Is(err, domain.ErrRecipientMissing):
		s.logger.Warn().Err(err).Msg("journal notification skipped")
		return false, notifyNoRecipientMessage
	default:
		s.logger.Error().Err(err).Str("mood", entry.Mood).Msg("send journal notification")
		return false, fmt.Sprintf("Notification failed: %v", err)
	}
}

func (s *JournalService) Entries(ctx context.Context, filter domain.JournalFilter) ([]domain.JournalEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	return domain.FilterJournal(entries, filter), nil
}

func (s *JournalService) Entry(ctx context.Context, id int) (domain.JournalEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("list journal entries: %w", err)
	}

	for _, entry := range entries {
		if entry.ID == id {
			return entry, nil
		}
	}

	return domain.JournalEntry{}, fmt.Errorf("entry %d: %w", id, domain.ErrJournalEntryNotFound)
}

func (s *JournalService) Statistics(ctx context.Context) (domain.JournalStats, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return domain.JournalStats{}, fmt.Errorf("list journal entries: %w", err)
	}

	return domain.ComputeJournalStats(entries), nil
}
