package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

const journalFile = "journal_entries.json"

type JournalRepository struct {
	path string
	mu   *sync.RWMutex
	now  func() time.Time
}

var _ ports.JournalRepository = (*JournalRepository)(nil)

type journalEntrySchema struct {
	ID           int    `json:"id"`
	Timestamp    string `json:"timestamp"`
	Date         string `json:"date"`
	Mood         string `json:"mood"`
	Entry        string `json:"entry"`
	EmailSent    bool   `json:"email_sent"`
	DaysTogether int    `json:"days_together"`
}

func NewJournalRepository(dir string) *JournalRepository {
	path := filepath.Join(filepath.Clean(dir), journalFile)
	return &JournalRepository{path: path, mu: lockForPath(path), now: time.Now}
}

func (r *JournalRepository) Append(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.JournalEntry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		if !errors.Is(err, errMalformedJournal) {
			return domain.JournalEntry{}, err
		}
		if err := r.quarantine(); err != nil {
			return domain.JournalEntry{}, err
		}
		entries = nil
	}

	nextID := 1
	for _, existing := range entries {
		if existing.ID >= nextID {
			nextID = existing.ID + 1
		}
	}
	entry.ID = nextID

	entries = append(entries, toJournalSchema(entry))

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("encode journal entries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return domain.JournalEntry{}, err
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("write journal file: %w", err)
	}

	return entry, nil
}

func (r *JournalRepository) List(ctx context.Context) ([]domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := r.read()
	if err != nil {
		if errors.Is(err, errMalformedJournal) {
			return []domain.JournalEntry{}, nil
		}
		return nil, err
	}

	result := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, fromJournalSchema(entry))
	}

	return result, nil
}

var errMalformedJournal = errors.New("malformed journal file")

func (r *JournalRepository) read() ([]journalEntrySchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read journal file: %w", err)
	}

	var entries []journalEntrySchema
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedJournal, err)
	}

	return entries, nil
}

// quarantine moves an unreadable journal aside so a fresh one never overwrites it.
func (r *JournalRepository) quarantine() error {
	target := fmt.Sprintf("%s.corrupt-%d", r.path, r.now().Unix())
	if err := os.Rename(r.path, target); err != nil {
		return fmt.Errorf("move malformed journal aside: %w", err)
	}
	return nil
}

func toJournalSchema(entry domain.JournalEntry) journalEntrySchema {
	timestamp := ""
	if !entry.Timestamp.IsZero() {
		timestamp = entry.Timestamp.Format(domain.JournalTimestampLayout)
	}

	return journalEntrySchema{
		ID:           entry.ID,
		Timestamp:    timestamp,
		Date:         entry.Date,
		Mood:         entry.Mood,
		Entry:        entry.Text,
		EmailSent:    entry.EmailSent,
		DaysTogether: entry.DaysTogether,
	}
}

func fromJournalSchema(entry journalEntrySchema) domain.JournalEntry {
	var timestamp time.Time
	if entry.Timestamp != "" {
		if parsed, err := time.ParseInLocation(domain.JournalTimestampLayout, entry.Timestamp, time.Local); err == nil {
			timestamp = parsed
		}
	}

	return domain.JournalEntry{
		ID:           entry.ID,
		Timestamp:    timestamp,
		Date:         entry.Date,
		Mood:         entry.Mood,
		Text:         entry.Entry,
		EmailSent:    entry.EmailSent,
		DaysTogether: entry.DaysTogether,
	}
}
