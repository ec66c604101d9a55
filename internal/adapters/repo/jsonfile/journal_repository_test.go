package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRepositoryAppendAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewJournalRepository(dir)
	ctx := context.Background()
	at := time.Date(2026, 2, 14, 9, 30, 0, 0, time.Local)

	first, err := repo.Append(ctx, domain.JournalEntry{Timestamp: at, Date: "2026-02-14", Mood: "Happy", Text: "first", DaysTogether: 814})
	require.NoError(t, err)
	second, err := repo.Append(ctx, domain.JournalEntry{Timestamp: at.Add(time.Hour), Date: "2026-02-14", Mood: "Loved", Text: "second", EmailSent: true})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	entries, err := NewJournalRepository(dir).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestJournalRepositoryUsesOriginalKeyNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewJournalRepository(dir)

	_, err := repo.Append(context.Background(), domain.JournalEntry{
		Timestamp:    time.Date(2026, 2, 14, 9, 30, 0, 0, time.Local),
		Date:         "2026-02-14",
		Mood:         "Happy",
		Text:         "hello",
		DaysTogether: 3,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, journalFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"timestamp":"2026-02-14 09:30:00","date":"2026-02-14","mood":"Happy","entry":"hello","email_sent":false,"days_together":3}]`, string(raw))
}

func TestJournalRepositoryListMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	entries, err := NewJournalRepository(t.TempDir()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalRepositoryQuarantinesMalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, journalFile)
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0o600))

	repo := NewJournalRepository(dir)
	repo.now = func() time.Time { return time.Unix(1700000000, 0) }

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	entry, err := repo.Append(context.Background(), domain.JournalEntry{Date: "2026-02-14", Mood: "Calm", Text: "fresh start"})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.ID)

	preserved, err := os.ReadFile(path + ".corrupt-1700000000")
	require.NoError(t, err)
	assert.Equal(t, "[{broken", string(preserved))
}
