package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"
)

const (
	highScoreFile    = "highscore.txt"
	achievementsFile = "achievements.json"
)

// ScoreStore keeps the high score as plain integer text and the unlocked thresholds as a
// JSON array, each in its own file under dir.
type ScoreStore struct {
	highScorePath    string
	achievementsPath string
	highScoreMu      *sync.RWMutex
	achievementsMu   *sync.RWMutex
}

var (
	_ ports.ScoreStore         = (*ScoreStore)(nil)
	_ ports.HighScoreCommitter = (*ScoreStore)(nil)
)

func NewScoreStore(dir string) *ScoreStore {
	dir = filepath.Clean(dir)
	highScorePath := filepath.Join(dir, highScoreFile)
	achievementsPath := filepath.Join(dir, achievementsFile)

	return &ScoreStore{
		highScorePath:    highScorePath,
		achievementsPath: achievementsPath,
		highScoreMu:      lockForPath(highScorePath),
		achievementsMu:   lockForPath(achievementsPath),
	}
}

func (s *ScoreStore) ReadHighScore(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.highScoreMu.RLock()
	defer s.highScoreMu.RUnlock()

	return s.readHighScore()
}

func (s *ScoreStore) WriteHighScore(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.highScoreMu.Lock()
	defer s.highScoreMu.Unlock()

	return s.writeHighScore(score)
}

// CommitHighScore raises the stored high score to score when it is larger.
func (s *ScoreStore) CommitHighScore(ctx context.Context, score int) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	s.highScoreMu.Lock()
	defer s.highScoreMu.Unlock()

	current, err := s.readHighScore()
	if err != nil {
		return 0, false, err
	}
	if score <= current {
		return current, false, nil
	}

	if err := s.writeHighScore(score); err != nil {
		return current, false, err
	}

	return score, true, nil
}

func (s *ScoreStore) ReadAchievements(ctx context.Context) (domain.AchievementSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.achievementsMu.RLock()
	defer s.achievementsMu.RUnlock()

	data, err := os.ReadFile(s.achievementsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewAchievementSet(), nil
		}
		return domain.NewAchievementSet(), fmt.Errorf("read achievements file: %w", err)
	}

	var thresholds []int
	if err := json.Unmarshal(data, &thresholds); err != nil {
		return domain.NewAchievementSet(), nil
	}

	return domain.NewAchievementSet(thresholds...), nil
}

func (s *ScoreStore) WriteAchievements(ctx context.Context, set domain.AchievementSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(set.Sorted())
	if err != nil {
		return fmt.Errorf("encode achievements: %w", err)
	}

	s.achievementsMu.Lock()
	defer s.achievementsMu.Unlock()

	if err := writeFileAtomic(s.achievementsPath, data); err != nil {
		return fmt.Errorf("write achievements file: %w", err)
	}

	return nil
}

func (s *ScoreStore) readHighScore() (int, error) {
	data, err := os.ReadFile(s.highScorePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read high score file: %w", err)
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		return 0, nil
	}

	return score, nil
}

func (s *ScoreStore) writeHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("invalid high score %d", score)
	}

	if err := writeFileAtomic(s.highScorePath, []byte(strconv.Itoa(score))); err != nil {
		return fmt.Errorf("write high score file: %w", err)
	}

	return nil
}
