package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const highScoreKey = "high_score"

// Store is the SQLite-backed save file. The only value today is the
// high score, kept as a key/value row so future saved values need no
// schema change.
type Store struct {
	db *sql.DB
}

// Open opens or creates the save database at dbPath and runs migrations
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS save_values (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("migrate save_values: %w", err)
	}
	return nil
}

// HighScore returns the best score ever recorded, zero when none exists
func (s *Store) HighScore() (int, error) {
	var value int
	err := s.db.QueryRow(
		`SELECT value FROM save_values WHERE key = ?`, highScoreKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	return value, nil
}

// RecordHighScore applies update-if-greater and reports whether score
// became the new record
func (s *Store) RecordHighScore(score int) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO save_values (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE excluded.value > save_values.value`,
		highScoreKey, score,
	)
	if err != nil {
		return false, fmt.Errorf("write high score: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
