package ports

import (
	"context"

	"github.com/bnema/everydaymood/internal/domain"
)

// ScoreStore persists the high score and the unlocked achievement thresholds.
// Reads return the zero value when the backing data is missing or malformed.
type ScoreStore interface {
	ReadHighScore(ctx context.Context) (int, error)
	WriteHighScore(ctx context.Context, score int) error
	ReadAchievements(ctx context.Context) (domain.AchievementSet, error)
	WriteAchievements(ctx context.Context, set domain.AchievementSet) error
}

// HighScoreCommitter is implemented by stores that can raise the high score atomically.
type HighScoreCommitter interface {
	CommitHighScore(ctx context.Context, score int) (best int, improved bool, err error)
}
