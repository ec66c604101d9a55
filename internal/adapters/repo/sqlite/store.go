package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/everydaymood/internal/domain"
	"github.com/bnema/everydaymood/internal/ports"

	_ "modernc.org/sqlite"
)

const DefaultFileName = "everydaymood.db"

// Store keeps scores, achievements and the journal in a single SQLite database.
type Store struct {
	db *sql.DB
}

var (
	_ ports.ScoreStore         = (*Store)(nil)
	_ ports.HighScoreCommitter = (*Store)(nil)
	_ ports.JournalRepository  = (*Store)(nil)
)

func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS high_score (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  score INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS achievements (
  threshold INTEGER PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS journal_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timestamp TEXT NOT NULL,
  date TEXT NOT NULL,
  mood TEXT NOT NULL,
  entry TEXT NOT NULL,
  email_sent INTEGER NOT NULL,
  days_together INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *Store) ReadHighScore(ctx context.Context) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT score FROM high_score WHERE id = 1`).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("read high score: %w", err)
	}
	if score < 0 {
		return 0, nil
	}
	return score, nil
}

func (s *Store) WriteHighScore(ctx context.Context, score int) error {
	if score < 0 {
		return fmt.Errorf("invalid high score %d", score)
	}

	const stmt = `
INSERT INTO high_score (id, score) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET score = excluded.score;
`
	if _, err := s.db.ExecContext(ctx, stmt, score); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

// CommitHighScore raises the stored score in a single conditional upsert, so concurrent
// writers can never lower it.
func (s *Store) CommitHighScore(ctx context.Context, score int) (int, bool, error) {
	const stmt = `
INSERT INTO high_score (id, score) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET score = excluded.score WHERE excluded.score > high_score.score;
`
	result, err := s.db.ExecContext(ctx, stmt, score)
	if err != nil {
		return 0, false, fmt.Errorf("commit high score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("commit high score: %w", err)
	}

	best, err := s.ReadHighScore(ctx)
	if err != nil {
		return 0, false, err
	}

	return best, affected > 0, nil
}

func (s *Store) ReadAchievements(ctx context.Context) (domain.AchievementSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT threshold FROM achievements ORDER BY threshold`)
	if err != nil {
		return domain.NewAchievementSet(), fmt.Errorf("read achievements: %w", err)
	}
	defer rows.Close()

	set := domain.NewAchievementSet()
	for rows.Next() {
		var threshold int
		if err := rows.Scan(&threshold); err != nil {
			return domain.NewAchievementSet(), fmt.Errorf("scan achievement: %w", err)
		}
		set.Add(threshold)
	}
	if err := rows.Err(); err != nil {
		return domain.NewAchievementSet(), fmt.Errorf("read achievements: %w", err)
	}

	return set, nil
}

func (s *Store) WriteAchievements(ctx context.Context, set domain.AchievementSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin achievements tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM achievements`); err != nil {
		return fmt.Errorf("clear achievements: %w", err)
	}
	for _, threshold := range set.Sorted() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO achievements (threshold) VALUES (?)`, threshold); err != nil {
			return fmt.Errorf("insert achievement %d: %w", threshold, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit achievements: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	const stmt = `
INSERT INTO journal_entries (timestamp, date, mood, entry, email_sent, days_together)
VALUES (?, ?, ?, ?, ?, ?);
`
	result, err := s.db.ExecContext(ctx, stmt,
		entry.Timestamp.Format(time.RFC3339),
		entry.Date,
		entry.Mood,
		entry.Text,
		entry.EmailSent,
		entry.DaysTogether,
	)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("insert journal entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("insert journal entry: %w", err)
	}

	entry.ID = int(id)
	return entry, nil
}

func (s *Store) List(ctx context.Context) ([]domain.JournalEntry, error) {
	const query = `
SELECT id, timestamp, date, mood, entry, email_sent, days_together
FROM journal_entries
ORDER BY id;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var entry domain.JournalEntry
		var timestamp string
		if err := rows.Scan(&entry.ID, &timestamp, &entry.Date, &entry.Mood, &entry.Text, &entry.EmailSent, &entry.DaysTogether); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, timestamp); err == nil {
			entry.Timestamp = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	return entries, nil
}
