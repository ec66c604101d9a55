package application

import (
	"context"
	"sync"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
	"github.com/rs/zerolog"
)

// ArcadeService runs arcade sessions against the persisted high score and achievement set.
// Store failures are logged and never interrupt a game.
type ArcadeService struct {
	scores ports.ScoreStore
	table  domain.AchievementTable
	tuning domain.Tuning
	rng    domain.Randomizer
	logger zerolog.Logger

	mu    sync.Mutex
	fired domain.AchievementSet
}

func NewArcadeService(scores ports.ScoreStore, achievements []domain.Achievement, tuning domain.Tuning, rng domain.Randomizer, logger zerolog.Logger) *ArcadeService {
	return &ArcadeService{
		scores: scores,
		table:  domain.NewAchievementTable(achievements),
		tuning: tuning,
		rng:    rng,
		logger: logger,
		fired:  domain.NewAchievementSet(),
	}
}

func (s *ArcadeService) Start() *domain.Session {
	return domain.NewSession(s.tuning, s.rng)
}

// Flap is a no-op on an ended session.
func (s *ArcadeService) Flap(session *domain.Session) {
	session.Flap()
}

// Tick advances the session and returns the achievements unlocked for the first time by
// the scores reached during this tick.
func (s *ArcadeService) Tick(ctx context.Context, session *domain.Session) []domain.Achievement {
	result := session.Tick()

	var unlocked []domain.Achievement
	for _, score := range result.Scores {
		achievement, ok := s.table[score]
		if !ok {
			continue
		}
		if s.unlock(ctx, score) {
			unlocked = append(unlocked, achievement)
		}
	}

	return unlocked
}

func (s *ArcadeService) unlock(ctx context.Context, threshold int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fired.Has(threshold) {
		return false
	}

	set, err := s.scores.ReadAchievements(ctx)
	if err != nil {
		// An unreadable set is never overwritten.
		s.logger.Error().Err(err).Int("threshold", threshold).Msg("read achievements, unlock not persisted")
		s.fired.Add(threshold)
		return true
	}
	for known := range s.fired {
		set.Add(known)
	}

	if !set.Add(threshold) {
		s.fired.Add(threshold)
		return false
	}
	s.fired.Add(threshold)

	if err := s.scores.WriteAchievements(ctx, set); err != nil {
		s.logger.Error().Err(err).Int("threshold", threshold).Msg("write achievements")
	}

	s.logger.Info().Int("threshold", threshold).Msg("achievement unlocked")
	return true
}

// End finalizes the session and commits its score when it beats the stored high score.
// When the stored record cannot be read the score is reported but not committed.
// Later calls for the same session return the first result without touching the store.
func (s *ArcadeService) End(ctx context.Context, session *domain.Session) domain.FinalResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result, done := session.Finish(); done {
		return result
	}

	score := session.Score
	result := domain.FinalResult{Score: score}

	if committer, ok := s.scores.(ports.HighScoreCommitter); ok {
		best, improved, err := committer.CommitHighScore(ctx, score)
		if err == nil {
			result.HighScore = best
			result.NewHighScore = improved
			session.Record(result)
			return result
		}
		s.logger.Error().Err(err).Int("score", score).Msg("commit high score")
	}

	prior, err := s.scores.ReadHighScore(ctx)
	if err != nil {
		// An unreadable record is never overwritten.
		s.logger.Error().Err(err).Int("score", score).Msg("read high score, score not committed")
		result.HighScore = score
		session.Record(result)
		return result
	}

	result.HighScore = prior
	if score > prior {
		result.HighScore = score
		result.NewHighScore = true
		if err := s.scores.WriteHighScore(ctx, score); err != nil {
			s.logger.Error().Err(err).Int("score", score).Msg("write high score")
		}
	}

	session.Record(result)
	return result
}

func (s *ArcadeService) HighScore(ctx context.Context) int {
	score, err := s.scores.ReadHighScore(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("read high score")
		return 0
	}
	return score
}

// Unlocked lists the persisted achievements known to the current table, lowest threshold first.
func (s *ArcadeService) Unlocked(ctx context.Context) []domain.Achievement {
	set, err := s.scores.ReadAchievements(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("read achievements")
		return nil
	}

	unlocked := make([]domain.Achievement, 0, len(set))
	for _, threshold := range set.Sorted() {
		if achievement, ok := s.table[threshold]; ok {
			unlocked = append(unlocked, achievement)
		}
	}
	return unlocked
}

// Achievements returns the full table, lowest threshold first.
func (s *ArcadeService) Achievements() []domain.Achievement {
	achievements := make([]domain.Achievement, 0, len(s.table))
	for _, threshold := range s.table.Thresholds() {
		achievements = append(achievements, s.table[threshold])
	}
	return achievements
}

func (s *ArcadeService) Scoreboard(ctx context.Context) Scoreboard {
	return Scoreboard{
		HighScore:    s.HighScore(ctx),
		Unlocked:     s.Unlocked(ctx),
		Achievements: s.Achievements(),
	}
}
