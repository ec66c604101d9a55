package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

// Sender delivers one journal entry over a single channel.
type Sender interface {
	Send(ctx context.Context, settings domain.NotifierSettings, entry domain.JournalEntry) error
}

// Router reads the notifier settings on every call and hands the entry to the sender for
// the configured channel.
type Router struct {
	settings ports.SettingsRepository
	senders  map[domain.NotifierChannel]Sender
}

var _ ports.Notifier = (*Router)(nil)

func NewRouter(settings ports.SettingsRepository, senders map[domain.NotifierChannel]Sender) *Router {
	return &Router{settings: settings, senders: senders}
}

func (r *Router) Notify(ctx context.Context, entry domain.JournalEntry) error {
	settings, err := r.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load notifier settings: %w", err)
	}

	cfg := settings.Notifier
	if !cfg.Enabled {
		return domain.ErrNotificationsDisabled
	}

	sender, ok := r.senders[cfg.Channel]
	if !ok {
		return fmt.Errorf("channel %q: %w", cfg.Channel, domain.ErrNotifierNotConfigured)
	}

	return sender.Send(ctx, cfg, entry)
}

func Subject(entry domain.JournalEntry) string {
	return fmt.Sprintf("💕 New Journal Entry - %s - %s", orDefault(entry.Mood, "Unknown"), orDefault(entry.Date, "Unknown"))
}

func Body(entry domain.JournalEntry) string {
	const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

	days := "N/A"
	if entry.DaysTogether > 0 {
		days = strconv.Itoa(entry.DaysTogether)
	}
	timestamp := "Unknown"
	if !entry.Timestamp.IsZero() {
		timestamp = entry.Timestamp.Format(domain.JournalTimestampLayout)
	}

	var b strings.Builder
	b.WriteString("Hello! 💖\n\n")
	b.WriteString("A new journal entry was just written:\n\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Date: %s\n", orDefault(entry.Date, "Unknown"))
	fmt.Fprintf(&b, "Time: %s\n", timestamp)
	fmt.Fprintf(&b, "Mood: %s\n", orDefault(entry.Mood, "Unknown"))
	fmt.Fprintf(&b, "Days Together: %s\n", days)
	b.WriteString(rule + "\n\n")
	b.WriteString(entry.Text + "\n\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("With love,\nYour EverydayMood App 💕\n")

	return b.String()
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
