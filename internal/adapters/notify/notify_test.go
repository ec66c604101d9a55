package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSettings struct {
	settings domain.Settings
	err      error
}

func (s staticSettings) Get(context.Context) (domain.Settings, error) {
	return s.settings, s.err
}

func (s staticSettings) Save(context.Context, domain.Settings) error {
	return nil
}

type recordingSender struct {
	calls []domain.JournalEntry
	err   error
}

func (s *recordingSender) Send(_ context.Context, _ domain.NotifierSettings, entry domain.JournalEntry) error {
	s.calls = append(s.calls, entry)
	return s.err
}

func enabledSettings(channel domain.NotifierChannel) domain.Settings {
	settings := domain.DefaultSettings()
	settings.Notifier.Enabled = true
	settings.Notifier.Channel = channel
	return settings
}

func TestRouterDispatchesToConfiguredChannel(t *testing.T) {
	t.Parallel()

	email := &recordingSender{}
	webhook := &recordingSender{}
	router := NewRouter(staticSettings{settings: enabledSettings(domain.NotifierChannelWebhook)}, map[domain.NotifierChannel]Sender{
		domain.NotifierChannelEmail:   email,
		domain.NotifierChannelWebhook: webhook,
	})

	require.NoError(t, router.Notify(context.Background(), domain.JournalEntry{ID: 1}))
	assert.Empty(t, email.calls)
	assert.Len(t, webhook.calls, 1)
}

func TestRouterFailures(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("smtp down")

	testCases := []struct {
		name     string
		settings staticSettings
		sender   *recordingSender
		wantErr  error
	}{
		{name: "disabled", settings: staticSettings{settings: domain.DefaultSettings()}, sender: &recordingSender{}, wantErr: domain.ErrNotificationsDisabled},
		{name: "unknown channel", settings: staticSettings{settings: enabledSettings("pigeon")}, sender: &recordingSender{}, wantErr: domain.ErrNotifierNotConfigured},
		{name: "sender error", settings: staticSettings{settings: enabledSettings(domain.NotifierChannelEmail)}, sender: &recordingSender{err: sendErr}, wantErr: sendErr},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router := NewRouter(tc.settings, map[domain.NotifierChannel]Sender{domain.NotifierChannelEmail: tc.sender})
			err := router.Notify(context.Background(), domain.JournalEntry{})
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRouterSettingsError(t *testing.T) {
	t.Parallel()

	router := NewRouter(staticSettings{err: errors.New("decode settings file")}, nil)

	err := router.Notify(context.Background(), domain.JournalEntry{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "load notifier settings")
}

func TestSubjectAndBody(t *testing.T) {
	t.Parallel()

	entry := domain.JournalEntry{
		Timestamp:    time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		Date:         "2026-02-14",
		Mood:         "Happy",
		Text:         "Pancakes for breakfast.",
		DaysTogether: 814,
	}

	assert.Equal(t, "💕 New Journal Entry - Happy - 2026-02-14", Subject(entry))

	body := Body(entry)
	assert.Contains(t, body, "Date: 2026-02-14\n")
	assert.Contains(t, body, "Time: 2026-02-14 09:30:00\n")
	assert.Contains(t, body, "Mood: Happy\n")
	assert.Contains(t, body, "Days Together: 814\n")
	assert.Contains(t, body, "Pancakes for breakfast.")
}

func TestSubjectAndBodyFallbacks(t *testing.T) {
	t.Parallel()

	entry := domain.JournalEntry{Text: "just text"}

	assert.Equal(t, "💕 New Journal Entry - Unknown - Unknown", Subject(entry))
	assert.Contains(t, Body(entry), "Days Together: N/A\n")
	assert.Contains(t, Body(entry), "Time: Unknown\n")
}
