package domain

import "sort"

type Achievement struct {
	Threshold int
	Title     string
	Message   string
	Emoji     string
}

// AchievementTable maps a score threshold to the achievement it unlocks.
type AchievementTable map[int]Achievement

func NewAchievementTable(achievements []Achievement) AchievementTable {
	table := make(AchievementTable, len(achievements))
	for _, achievement := range achievements {
		if achievement.Threshold <= 0 {
			continue
		}
		table[achievement.Threshold] = achievement
	}
	return table
}

func (t AchievementTable) Thresholds() []int {
	thresholds := make([]int, 0, len(t))
	for threshold := range t {
		thresholds = append(thresholds, threshold)
	}
	sort.Ints(thresholds)
	return thresholds
}

// AchievementSet holds the thresholds already unlocked.
type AchievementSet map[int]struct{}

func NewAchievementSet(thresholds ...int) AchievementSet {
	set := make(AchievementSet, len(thresholds))
	for _, threshold := range thresholds {
		set[threshold] = struct{}{}
	}
	return set
}

func (s AchievementSet) Has(threshold int) bool {
	_, ok := s[threshold]
	return ok
}

// Add reports whether the threshold was newly added.
func (s AchievementSet) Add(threshold int) bool {
	if s.Has(threshold) {
		return false
	}
	s[threshold] = struct{}{}
	return true
}

func (s AchievementSet) Sorted() []int {
	thresholds := make([]int, 0, len(s))
	for threshold := range s {
		thresholds = append(thresholds, threshold)
	}
	sort.Ints(thresholds)
	return thresholds
}

func (s AchievementSet) Clone() AchievementSet {
	clone := make(AchievementSet, len(s))
	for threshold := range s {
		clone[threshold] = struct{}{}
	}
	return clone
}
