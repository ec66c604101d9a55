package domain

import (
	"fmt"
	"time"
)

const DefaultCelebrationDay = 23

type Relationship struct {
	StartDate      time.Time
	CelebrationDay int
}

func (r Relationship) Validate() error {
	if r.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if r.CelebrationDay < 1 || r.CelebrationDay > 31 {
		return fmt.Errorf("celebration day must be between 1 and 31, got %d", r.CelebrationDay)
	}
	return nil
}

func (r Relationship) DaysTogether(now time.Time) int {
	if r.StartDate.IsZero() {
		return 0
	}
	days := daysBetween(civilDate(r.StartDate), civilDate(now))
	if days < 0 {
		return 0
	}
	return days
}

func (r Relationship) MonthsTogether(now time.Time) int {
	if r.StartDate.IsZero() {
		return 0
	}
	start := civilDate(r.StartDate)
	today := civilDate(now)

	months := (today.Year()-start.Year())*12 + int(today.Month()-start.Month())
	if today.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func (r Relationship) IsCelebrationDay(now time.Time) bool {
	today := civilDate(now)
	return today.Day() == clampDay(today.Year(), today.Month(), r.celebrationDay())
}

// NextCelebration returns the next celebration date (today when it is the celebration day)
// and the number of days until then. Months shorter than the celebration day celebrate on
// their last day.
func (r Relationship) NextCelebration(now time.Time) (time.Time, int) {
	today := civilDate(now)
	day := r.celebrationDay()

	candidate := time.Date(today.Year(), today.Month(), clampDay(today.Year(), today.Month(), day), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		candidate = time.Date(next.Year(), next.Month(), clampDay(next.Year(), next.Month(), day), 0, 0, 0, 0, time.UTC)
	}

	return candidate, daysBetween(today, candidate)
}

func (r Relationship) celebrationDay() int {
	if r.CelebrationDay < 1 || r.CelebrationDay > 31 {
		return DefaultCelebrationDay
	}
	return r.CelebrationDay
}

type Milestone struct {
	Days  int
	Label string
}

type MilestoneStatus struct {
	Milestone Milestone
	Reached   bool
	Remaining int
}

func (r Relationship) Milestones(now time.Time, milestones []Milestone) []MilestoneStatus {
	days := r.DaysTogether(now)
	statuses := make([]MilestoneStatus, 0, len(milestones))
	for _, milestone := range milestones {
		status := MilestoneStatus{Milestone: milestone, Reached: days >= milestone.Days}
		if !status.Reached {
			status.Remaining = milestone.Days - days
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}
