package application

import (
	"time"

	"github.com/bnema/everydaymood/internal/domain"
)

// Together summarizes the relationship counters shown by the together view.
type Together struct {
	StartDate            time.Time
	Days                 int
	Months               int
	Milestones           []domain.MilestoneStatus
	NextCelebration      time.Time
	DaysUntilCelebration int
	CelebrationToday     bool
	MonthlyNote          *domain.MonthlyNote
}

// Reveal is the message unlocked after every mood has been read.
type Reveal struct {
	Title   string
	Message string
	Months  int
	Monthly bool
}

type Scoreboard struct {
	HighScore    int
	Unlocked     []domain.Achievement
	Achievements []domain.Achievement
}

// Love is the love meter after a press, with the catalog note once it is full.
type Love struct {
	Level       int    `json:"level"`
	Overflowing bool   `json:"overflowing"`
	Message     string `json:"message,omitempty"`
}
