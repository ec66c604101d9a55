package summary

import (
	"testing"
	"time"

	"github.com/bnema/everydaymood/internal/application"
	"github.com/bnema/everydaymood/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var achievements = []domain.Achievement{
	{Threshold: 1, Title: "First Flight", Emoji: "🐣"},
	{Threshold: 5, Title: "Getting Started", Emoji: "⭐"},
	{Threshold: 10, Title: "Love Expert", Emoji: "💖"},
}

func TestRenderScoreboard(t *testing.T) {
	output, err := RenderScoreboard(application.Scoreboard{
		HighScore:    7,
		Unlocked:     achievements[:2],
		Achievements: achievements,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Arcade Scoreboard")
	assert.Contains(t, output, "high score: 7")
	assert.Contains(t, output, "achievements: 2/3")
	assert.Contains(t, output, "[x] 🐣 First Flight")
	assert.Contains(t, output, "[x] ⭐ Getting Started")
	assert.Contains(t, output, "[ ] 💖 Love Expert")
	assert.Contains(t, output, "7/10")
}

func TestRenderScoreboardWithoutAchievements(t *testing.T) {
	output, err := RenderScoreboard(application.Scoreboard{})

	require.NoError(t, err)
	assert.Contains(t, output, "high score: 0")
	assert.Contains(t, output, "No achievements defined.")
}

func TestRenderTogether(t *testing.T) {
	output, err := RenderTogether(application.Together{
		StartDate: time.Date(2023, 11, 23, 0, 0, 0, 0, time.UTC),
		Days:      100,
		Months:    3,
		Milestones: []domain.MilestoneStatus{
			{Milestone: domain.Milestone{Days: 100, Label: "100 Days"}, Reached: true},
			{Milestone: domain.Milestone{Days: 365, Label: "1 Year"}, Remaining: 265},
		},
		NextCelebration:      time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC),
		DaysUntilCelebration: 21,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "since 2023-11-23")
	assert.Contains(t, output, "100 days · 3 months")
	assert.Contains(t, output, "next celebration: 23 Mar 2024 (in 21 days)")
	assert.Contains(t, output, "reached")
	assert.Contains(t, output, "265 days to go")
}

func TestRenderTogetherOnCelebrationDay(t *testing.T) {
	output, err := RenderTogether(application.Together{
		StartDate:        time.Date(2023, 11, 23, 0, 0, 0, 0, time.UTC),
		Days:             731,
		Months:           24,
		NextCelebration:  time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC),
		CelebrationToday: true,
		MonthlyNote:      &domain.MonthlyNote{Title: "Two Years", Message: "Here's to forever."},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "celebration: today! 🎉")
	assert.Contains(t, output, "Two Years")
	assert.Contains(t, output, "Here's to forever.")
	assert.NotContains(t, output, "milestones:")
}

func TestRenderLove(t *testing.T) {
	testCases := []struct {
		name        string
		love        application.Love
		wantLevel   string
		wantMessage bool
	}{
		{name: "rising", love: application.Love{Level: 40}, wantLevel: "Love Meter: 40% 💗"},
		{name: "full", love: application.Love{Level: 100, Overflowing: true, Message: "overflowing 💘"}, wantLevel: "Love Meter: 100% 💗", wantMessage: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := RenderLove(tc.love)

			require.NoError(t, err)
			assert.Contains(t, output, tc.wantLevel)
			if tc.wantMessage {
				assert.Contains(t, output, "overflowing 💘")
			} else {
				assert.NotContains(t, output, "💘")
			}
		})
	}
}

func TestRenderJournal(t *testing.T) {
	entries := []domain.JournalEntry{
		{ID: 2, Timestamp: time.Date(2026, 2, 11, 21, 5, 0, 0, time.UTC), Mood: "Loved 🥰", Text: "Dinner   under the\nstars", EmailSent: true},
		{ID: 1, Timestamp: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC), Mood: "Happy 😊", Text: "Morning coffee"},
	}

	output, err := RenderJournal(entries, domain.JournalStats{Total: 2, Streak: 2, MostCommonMood: "Loved 🥰", FirstEntryDate: "2026-02-10"})

	require.NoError(t, err)
	assert.Contains(t, output, "entries: 2")
	assert.Contains(t, output, "#2 2026-02-11 21:05:00 Loved 🥰 ✉")
	assert.Contains(t, output, "Dinner under the stars")
	assert.Contains(t, output, "#1 2026-02-10 08:00:00 Happy 😊")
	assert.Contains(t, output, "writing streak: 2 days")
	assert.Contains(t, output, "journaling since: 2026-02-10")
}

func TestRenderJournalEmpty(t *testing.T) {
	output, err := RenderJournal(nil, domain.ComputeJournalStats(nil))

	require.NoError(t, err)
	assert.Contains(t, output, "No journal entries yet.")
	assert.Contains(t, output, "most common mood: N/A")
}

func TestRenderProgressBarClamps(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "["+"=========="+"]", renderProgressBar(1.5, 10, s))
	assert.Equal(t, "["+"----------"+"]", renderProgressBar(-1, 10, s))
	assert.Equal(t, "[=====-----]", renderProgressBar(0.5, 10, s))
	assert.Empty(t, renderProgressBar(0.5, 0, s))
}

func TestPreviewTruncates(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
}
