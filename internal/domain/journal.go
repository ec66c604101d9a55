package domain

import (
	"sort"
	"strings"
	"time"
)

const (
	JournalDateLayout      = "2006-01-02"
	JournalTimestampLayout = "2006-01-02 15:04:05"
)

type JournalEntry struct {
	ID           int
	Timestamp    time.Time
	Date         string
	Mood         string
	Text         string
	EmailSent    bool
	DaysTogether int
}

type JournalFilter struct {
	Mood   string
	Search string
}

func (f JournalFilter) Match(entry JournalEntry) bool {
	if f.Mood != "" && !strings.EqualFold(f.Mood, "all") && entry.Mood != f.Mood {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(entry.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// FilterJournal returns matching entries, newest first.
func FilterJournal(entries []JournalEntry, filter JournalFilter) []JournalEntry {
	filtered := make([]JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if filter.Match(entry) {
			filtered = append(filtered, entry)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	return filtered
}

type JournalStats struct {
	Total          int
	Streak         int
	MostCommonMood string
	FirstEntryDate string
}

// ComputeJournalStats counts the streak of consecutive days ending at the most recent entry.
func ComputeJournalStats(entries []JournalEntry) JournalStats {
	if len(entries) == 0 {
		return JournalStats{MostCommonMood: "N/A", FirstEntryDate: "N/A"}
	}

	counts := map[string]int{}
	order := []string{}
	for _, entry := range entries {
		mood := entry.Mood
		if mood == "" {
			mood = "Unknown"
		}
		if _, ok := counts[mood]; !ok {
			order = append(order, mood)
		}
		counts[mood]++
	}

	mostCommon := order[0]
	for _, mood := range order[1:] {
		if counts[mood] > counts[mostCommon] {
			mostCommon = mood
		}
	}

	return JournalStats{
		Total:          len(entries),
		Streak:         writingStreak(entries),
		MostCommonMood: mostCommon,
		FirstEntryDate: entries[0].Date,
	}
}

func writingStreak(entries []JournalEntry) int {
	seen := map[string]struct{}{}
	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.Date]; ok {
			continue
		}
		parsed, err := time.Parse(JournalDateLayout, entry.Date)
		if err != nil {
			continue
		}
		seen[entry.Date] = struct{}{}
		dates = append(dates, parsed)
	}
	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 1
	current := dates[0]
	for _, date := range dates[1:] {
		if current.Sub(date) > 24*time.Hour {
			break
		}
		streak++
		current = date
	}

	return streak
}
