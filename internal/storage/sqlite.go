// Package storage provides SQLite-based persistence for rallies and online
// match results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ringpong/internal/multiplayer"
)

// Rally modes.
const (
	ModeHotSeat = "hotseat"
	ModeOnline  = "online"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RallyEntry is one finished rally.
type RallyEntry struct {
	ID        int64
	Mode      string
	Length    int
	CreatedAt time.Time
}

// RallyStats aggregates the rallies of one mode.
type RallyStats struct {
	Mode       string
	Count      int
	Best       int
	Average    float64
	LastPlayed time.Time
}

// OnlineMatchResult represents the outcome of an online match.
type OnlineMatchResult struct {
	ID             int64
	MatchID        string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	BestRally      int
	WinnerSession  string // Empty if draw or disconnect
	EndReason      string // "completed", "disconnect", "cancelled"
	Duration       int    // Duration in seconds
	CreatedAt      time.Time
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

	// Create parent directories
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rallies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			length INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rallies_top ON rallies(mode, length DESC);

		CREATE TABLE IF NOT EXISTS online_matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			player1_session TEXT NOT NULL,
			player2_session TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			best_rally INTEGER NOT NULL DEFAULT 0,
			winner_session TEXT,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_online_matches_player1 ON online_matches(player1_session);
		CREATE INDEX IF NOT EXISTS idx_online_matches_player2 ON online_matches(player2_session);
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

// parseTime converts a scanned DATETIME, which the driver may return as
// either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveRally records a finished rally. Rallies shorter than one bounce are ignored
// and return ID 0.
func (s *Store) SaveRally(mode string, length int) (int64, error) {
	if length <= 0 {
		return 0, nil
	}

	result, err := s.db.Exec(
		"INSERT INTO rallies (mode, length) VALUES (?, ?)",
		mode, length,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save rally: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRallies retrieves the longest rallies for mode, or for all modes when
// mode is empty. Results are ordered by length descending.
func (s *Store) TopRallies(mode string, limit int) ([]RallyEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, length, created_at
		 FROM rallies
		 WHERE ? = '' OR mode = ?
		 ORDER BY length DESC, id ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rallies: %w", err)
	}
	defer rows.Close()

	var entries []RallyEntry
	for rows.Next() {
		var e RallyEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Length, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestRally returns the longest rally for mode (all modes when empty).
// Returns 0 if no rallies exist.
func (s *Store) BestRally(mode string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(length) FROM rallies WHERE ? = '' OR mode = ?",
		mode, mode,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best rally: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats retrieves aggregated rally statistics for mode (all modes when empty).
func (s *Store) Stats(mode string) (*RallyStats, error) {
	stats := &RallyStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(length), 0), COALESCE(AVG(length), 0), MAX(created_at)
		 FROM rallies WHERE ? = '' OR mode = ?`,
		mode, mode,
	).Scan(&stats.Count, &stats.Best, &stats.Average, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get rally stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRallies deletes all rallies for mode (all modes when empty).
func (s *Store) ClearRallies(mode string) error {
	_, err := s.db.Exec("DELETE FROM rallies WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rallies: %w", err)
	}
	return nil
}

// SaveOnlineMatch records the result of an online match.
// Returns the ID of the inserted record.
func (s *Store) SaveOnlineMatch(result OnlineMatchResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO online_matches
		 (match_id, player1_session, player2_session, score1, score2, best_rally, winner_session, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.Player1Session,
		result.Player2Session,
		result.Score1,
		result.Score2,
		result.BestRally,
		result.WinnerSession,
		result.EndReason,
		result.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save online match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, player1_session, player2_session,
		        score1, score2, best_rally, winner_session, end_reason, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (OnlineMatchResult, error) {
	var result OnlineMatchResult
	var createdAt any
	var winnerSession sql.NullString

	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.Player1Session,
		&result.Player2Session,
		&result.Score1,
		&result.Score2,
		&result.BestRally,
		&winnerSession,
		&result.EndReason,
		&result.Duration,
		&createdAt,
	)
	if err != nil {
		return result, err
	}

	if winnerSession.Valid {
		result.WinnerSession = winnerSession.String
	}
	result.CreatedAt = parseTime(createdAt)
	return result, nil
}

// OnlineMatchByID retrieves an online match by its match ID.
// Returns nil without error when no such match exists.
func (s *Store) OnlineMatchByID(matchID string) (*OnlineMatchResult, error) {
	result, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+`
		 FROM online_matches
		 WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online match: %w", err)
	}
	return &result, nil
}

// RecentMatches retrieves the most recent online matches.
func (s *Store) RecentMatches(limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM online_matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online matches: %w", err)
	}
	defer rows.Close()

	var results []OnlineMatchResult
	for rows.Next() {
		result, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
// The match result is stored and its best rally is added to the online rallies.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	result := OnlineMatchResult{
		MatchID:        data.MatchID,
		Player1Session: data.Player1Session,
		Player2Session: data.Player2Session,
		Score1:         data.Score1,
		Score2:         data.Score2,
		BestRally:      data.BestRally,
		WinnerSession:  data.WinnerSession,
		EndReason:      data.EndReason,
		Duration:       data.DurationSecs,
	}
	if _, err := s.SaveOnlineMatch(result); err != nil {
		return err
	}
	_, err := s.SaveRally(ModeOnline, data.BestRally)
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
