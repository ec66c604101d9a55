package domain

import (
	"sort"
	"time"
)

type MonthlyNote struct {
	Title   string
	Message string
}

// Catalog is the message data shown around the app. Its wording is opaque to the code.
type Catalog struct {
	Categories   map[string][]string
	Moods        map[string][]string
	Monthly      map[time.Month]MonthlyNote
	Achievements []Achievement
	Milestones   []Milestone
	Secret       string
	LoveOverflow string
}

func (c Catalog) CategoryNames() []string {
	return sortedKeys(c.Categories)
}

func (c Catalog) MoodNames() []string {
	return sortedKeys(c.Moods)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
