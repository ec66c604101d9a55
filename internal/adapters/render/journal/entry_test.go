package journal

import (
	"testing"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() domain.JournalEntry {
	return domain.JournalEntry{
		ID:           3,
		Timestamp:    time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC),
		Date:         "2026-02-14",
		Mood:         "Loved 🥰",
		Text:         "Valentine's dinner.\nBest pasta ever.",
		EmailSent:    true,
		DaysTogether: 814,
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := Markdown(sampleEntry())

	assert.Contains(t, md, "# Entry #3 · Loved 🥰")
	assert.Contains(t, md, "- **Date:** 2026-02-14")
	assert.Contains(t, md, "- **Time:** 19:30:00")
	assert.Contains(t, md, "- **Days together:** 814")
	assert.Contains(t, md, "- **Notification:** sent")
	assert.Contains(t, md, "> Valentine's dinner.\n> Best pasta ever.\n")
}

func TestMarkdownDefaults(t *testing.T) {
	t.Parallel()

	entry := sampleEntry()
	entry.Mood = " "
	entry.DaysTogether = 0
	entry.EmailSent = false

	md := Markdown(entry)

	assert.Contains(t, md, "· Unknown")
	assert.NotContains(t, md, "Days together")
	assert.Contains(t, md, "not sent")
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	out, err := Render(sampleEntry(), Options{Style: StylePlain, Width: 80})
	require.NoError(t, err)

	assert.Contains(t, out, "Entry #3")
	assert.Contains(t, out, "Best pasta ever.")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderUnknownStyle(t *testing.T) {
	t.Parallel()

	_, err := Render(sampleEntry(), Options{Style: "/does/not/exist.json"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "create markdown renderer")
}
