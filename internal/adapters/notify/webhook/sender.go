package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/everydaymood/internal/adapters/notify"
	"github.com/bnema/everydaymood/internal/domain"
)

const (
	defaultTimeout       = 10 * time.Second
	maxErrorResponseBody = 4 << 10
)

// Sender posts journal entries as JSON to a configured URL.
type Sender struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ notify.Sender = Sender{}

type payload struct {
	Subject      string `json:"subject"`
	Text         string `json:"text"`
	ID           int    `json:"id"`
	Timestamp    string `json:"timestamp"`
	Date         string `json:"date"`
	Mood         string `json:"mood"`
	Entry        string `json:"entry"`
	DaysTogether int    `json:"days_together"`
}

func (s Sender) Send(ctx context.Context, settings domain.NotifierSettings, entry domain.JournalEntry) error {
	endpoint := strings.TrimSpace(settings.WebhookURL)
	if endpoint == "" {
		return fmt.Errorf("webhook url: %w", domain.ErrNotifierNotConfigured)
	}

	body, err := json.Marshal(payload{
		Subject:      notify.Subject(entry),
		Text:         notify.Body(entry),
		ID:           entry.ID,
		Timestamp:    entry.Timestamp.Format(domain.JournalTimestampLayout),
		Date:         entry.Date,
		Mood:         entry.Mood,
		Entry:        entry.Text,
		DaysTogether: entry.DaysTogether,
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	requestCtx, cancel := s.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorResponseBody))
		message := strings.TrimSpace(string(detail))
		if message == "" {
			return fmt.Errorf("post webhook: status %d", resp.StatusCode)
		}
		return fmt.Errorf("post webhook: status %d: %s", resp.StatusCode, message)
	}

	return nil
}

func (s Sender) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s Sender) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
