// Package storage keeps the run log of completed runs in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk; the log lives as long as the process.
package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-woods/internal/core"
)

// Store manages the SQLite connection holding the run log.
type Store struct {
	db *sql.DB
}

// RunEntry is one completed run as recorded in the log.
type RunEntry struct {
	ID        int64
	RunID     string
	SessionID string
	GameID    string
	Players   int
	GridW     int
	GridH     int
	Protocol  string
	Elapsed   float64
	Ticks     int
	Moves     []int
	CreatedAt time.Time
}

// TotalMoves returns the sum of the per-actor move counts.
func (e RunEntry) TotalMoves() int {
	total := 0
	for _, m := range e.Moves {
		total += m
	}
	return total
}

// Open creates an empty in-memory run log and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			players INTEGER NOT NULL,
			grid_w INTEGER NOT NULL,
			grid_h INTEGER NOT NULL,
			protocol TEXT NOT NULL,
			elapsed REAL NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			moves TEXT NOT NULL DEFAULT '',
			total_moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_fastest ON runs(game_id, elapsed ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);
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

// SaveRun records a completed run for the given session and game.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(sessionID, gameID string, r core.RunSummary) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, session_id, game_id, players, grid_w, grid_h, protocol, elapsed, ticks, moves, total_moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, sessionID, gameID, r.Players, r.GridW, r.GridH, r.Protocol, r.Elapsed, r.Ticks,
		encodeMoves(r.Moves), r.TotalMoves(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, run_id, session_id, game_id, players, grid_w, grid_h, protocol, elapsed, ticks, moves, created_at`

// FastestRuns retrieves the N fastest runs for the given game, or for every
// game when gameID is empty. Results are ordered by elapsed time ascending.
func (s *Store) FastestRuns(gameID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY elapsed ASC, id ASC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsBySession retrieves the most recent runs of one session, newest first.
func (s *Store) RunsBySession(sessionID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE session_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session runs: %w", err)
	}
	return scanRuns(rows)
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var moves string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.SessionID, &e.GameID, &e.Players, &e.GridW, &e.GridH,
			&e.Protocol, &e.Elapsed, &e.Ticks, &moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Moves = decodeMoves(moves)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles the datetime column arriving as time.Time or string.
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

func encodeMoves(moves []int) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

func decodeMoves(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	moves := make([]int, 0, len(parts))
	for _, p := range parts {
		if m, err := strconv.Atoi(p); err == nil {
			moves = append(moves, m)
		}
	}
	return moves
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Runs       int
	Fastest    float64
	AvgTime    float64
	TotalTime  float64
	AvgMoves   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(elapsed), 0), COALESCE(AVG(elapsed), 0), COALESCE(SUM(elapsed), 0),
		        COALESCE(AVG(total_moves), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.Fastest, &stats.AvgTime, &stats.TotalTime, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ProtocolStats aggregates runs that used one wandering protocol.
type ProtocolStats struct {
	Protocol string
	Runs     int
	Fastest  float64
	AvgTime  float64
	AvgMoves float64
}

// SummaryByProtocol groups every logged run by wandering protocol.
func (s *Store) SummaryByProtocol() (map[string]*ProtocolStats, error) {
	rows, err := s.db.Query(
		`SELECT protocol, COUNT(*), MIN(elapsed), AVG(elapsed), AVG(total_moves)
		 FROM runs
		 GROUP BY protocol`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ProtocolStats)
	for rows.Next() {
		var p ProtocolStats
		if err := rows.Scan(&p.Protocol, &p.Runs, &p.Fastest, &p.AvgTime, &p.AvgMoves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		stats[p.Protocol] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
