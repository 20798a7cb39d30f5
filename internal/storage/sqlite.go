// Package storage provides SQLite-based persistence for finished runs,
// lifetime statistics, achievements and the telemetry event log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	// LeaderboardMin is the lowest score that enters the leaderboard.
	LeaderboardMin = 100
	// LeaderboardSize is the default number of leaderboard rows.
	LeaderboardSize = 50
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord is one finished run.
type SessionRecord struct {
	ID       string
	Score    int
	Survival float64
	Reason   string
	Snacks   int
	Dodged   int
	Powerups int
	// Remote is the SSH user for runs played through duck serve.
	Remote    string
	CreatedAt time.Time
}

// LifetimeStats aggregates every recorded run.
type LifetimeStats struct {
	GamesPlayed   int
	BestScore     int
	AvgScore      float64
	TotalSnacks   int
	TotalDodged   int
	TotalPowerups int
	PlayTime      float64
	LongestRun    float64
	LastPlayed    time.Time
}

// Achievement is an unlocked milestone.
type Achievement struct {
	ID         string
	SessionID  string
	UnlockedAt time.Time
}

// EventRecord is one encoded gameplay event.
type EventRecord struct {
	SessionID string
	Name      string
	Payload   []byte
	At        time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// The recorder writes from its own goroutine while the UI reads.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			survival REAL NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			snacks INTEGER NOT NULL DEFAULT 0,
			dodged INTEGER NOT NULL DEFAULT 0,
			powerups INTEGER NOT NULL DEFAULT 0,
			remote TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_score ON sessions(score DESC)`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			payload BLOB,
			at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished run. An empty ID is filled with a new
// UUID and a zero CreatedAt with the current time.
func (s *Store) SaveSession(rec *SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, score, survival, reason, snacks, dodged, powerups, remote, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Score, rec.Survival, rec.Reason,
		rec.Snacks, rec.Dodged, rec.Powerups, rec.Remote,
		rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session: %w", err)
	}
	return nil
}

// TopScores returns leaderboard entries: runs scoring at least
// LeaderboardMin, best first. Ties keep insertion order.
func (s *Store) TopScores(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = LeaderboardSize
	}

	rows, err := s.db.Query(
		`SELECT id, score, survival, reason, snacks, dodged, powerups, remote, created_at
		 FROM sessions
		 WHERE score >= ?
		 ORDER BY score DESC, rowid ASC
		 LIMIT ?`,
		LeaderboardMin, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []SessionRecord
	for rows.Next() {
		var e SessionRecord
		var created int64
		if err := rows.Scan(&e.ID, &e.Score, &e.Survival, &e.Reason,
			&e.Snacks, &e.Dodged, &e.Powerups, &e.Remote, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score over all runs, or 0 when none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM sessions").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Lifetime aggregates all recorded runs.
func (s *Store) Lifetime() (*LifetimeStats, error) {
	stats := &LifetimeStats{}
	var last int64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(snacks), 0), COALESCE(SUM(dodged), 0), COALESCE(SUM(powerups), 0),
		        COALESCE(SUM(survival), 0), COALESCE(MAX(survival), 0), COALESCE(MAX(created_at), 0)
		 FROM sessions`,
	).Scan(&stats.GamesPlayed, &stats.BestScore, &stats.AvgScore,
		&stats.TotalSnacks, &stats.TotalDodged, &stats.TotalPowerups,
		&stats.PlayTime, &stats.LongestRun, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get lifetime stats: %w", err)
	}
	if last > 0 {
		stats.LastPlayed = time.UnixMilli(last)
	}
	return stats, nil
}

// UnlockAchievement records a milestone. It reports false when the
// achievement was already unlocked.
func (s *Store) UnlockAchievement(id, sessionID string) (bool, error) {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO achievements (id, session_id, unlocked_at) VALUES (?, ?, ?)",
		id, sessionID, time.Now().UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n == 1, nil
}

// Achievements lists unlocked milestones in unlock order.
func (s *Store) Achievements() ([]Achievement, error) {
	rows, err := s.db.Query(
		"SELECT id, session_id, unlocked_at FROM achievements ORDER BY unlocked_at, rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var a Achievement
		var at int64
		if err := rows.Scan(&a.ID, &a.SessionID, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.UnlockedAt = time.UnixMilli(at)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveEvents appends a batch of events in one transaction.
func (s *Store) SaveEvents(events []EventRecord) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO events (session_id, name, payload, at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.SessionID, e.Name, e.Payload, e.At.UnixMilli()); err != nil {
			return fmt.Errorf("storage: cannot save event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit events: %w", err)
	}
	return nil
}

// SessionEvents returns the events of one run in recorded order.
func (s *Store) SessionEvents(sessionID string) ([]EventRecord, error) {
	rows, err := s.db.Query(
		"SELECT session_id, name, payload, at FROM events WHERE session_id = ? ORDER BY id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var e EventRecord
		var at int64
		if err := rows.Scan(&e.SessionID, &e.Name, &e.Payload, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.At = time.UnixMilli(at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ClearScores deletes all runs and their events. Achievements are kept.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM events"); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
