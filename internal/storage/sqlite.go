// Package storage provides the SQLite-backed local leaderboard.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/skunk-squad/internal/scorecode"
)

// DefaultPath is where the leaderboard lives unless --db says otherwise.
const DefaultPath = "~/.skunk/scores.db"

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// Entry is one leaderboard row.
type Entry struct {
	ID        int64
	Code      string
	Record    scorecode.Record
	CreatedAt time.Time
}

// Stats contains aggregated leaderboard statistics.
type Stats struct {
	Runs       int
	BestScore  int64
	AvgScore   float64
	TotalKills int64
	MaxLevel   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/")), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			kills INTEGER NOT NULL,
			ts INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard(score DESC, ts ASC, id ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Admit stores a validated record under its code. Admitting a code that is
// already present is a no-op and reports false.
func (s *Store) Admit(ctx context.Context, code string, r scorecode.Record) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboard (code, score, level, kills, ts, seed)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(code) DO NOTHING`,
		code, r.Score, r.LevelReached, r.Kills, r.Timestamp, int64(r.ChecksumSeed),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot admit score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}

	return n > 0, nil
}

var _ scorecode.Sink = (*Store)(nil)

// Top retrieves the best limit entries, best first. Equal scores rank the
// earlier run higher.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, score, level, kills, ts, seed, created_at
		 FROM leaderboard
		 ORDER BY score DESC, ts ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Best returns the top entry, or ok false when the board is empty.
func (s *Store) Best(ctx context.Context) (Entry, bool, error) {
	entries, err := s.Top(ctx, 1)
	if err != nil {
		return Entry{}, false, err
	}
	if len(entries) == 0 {
		return Entry{}, false, nil
	}
	return entries[0], true, nil
}

// ByCode looks up a single entry.
func (s *Store) ByCode(ctx context.Context, code string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, code, score, level, kills, ts, seed, created_at
		 FROM leaderboard WHERE code = ?`,
		code,
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Clear deletes every leaderboard entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("storage: cannot clear leaderboard: %w", err)
	}
	return nil
}

// Stats aggregates the whole leaderboard.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(kills), 0), COALESCE(MAX(level), 0), MAX(created_at)
		 FROM leaderboard`,
	).Scan(&st.Runs, &st.BestScore, &st.AvgScore, &st.TotalKills, &st.MaxLevel, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var seed int64
	var createdAt any
	err := sc.Scan(&e.ID, &e.Code, &e.Record.Score, &e.Record.LevelReached,
		&e.Record.Kills, &e.Record.Timestamp, &seed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.Record.ChecksumSeed = uint32(seed)
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
