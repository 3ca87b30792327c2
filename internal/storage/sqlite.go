// Package storage provides SQLite-based persistence for best scores and
// round history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/stake-arcade/internal/round"
)

// ErrCorruptBest is returned when a stored best score is not an integer.
var ErrCorruptBest = errors.New("storage: corrupt best score")

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

var (
	_ round.ScoreStore    = (*Store)(nil)
	_ round.RoundRecorder = (*Store)(nil)
)

// ScoreEntry represents a single finished round.
type ScoreEntry struct {
	ID           uuid.UUID `json:"id"`
	GameID       string    `json:"game_id"`
	Score        int       `json:"score"`
	Victory      bool      `json:"victory"`
	TokensEarned float64   `json:"tokens_earned"`
	Level        int       `json:"level,omitempty"`
	Ticks        int       `json:"ticks"`
	Duration     int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string    `json:"game_id"`
	RoundsCount int       `json:"rounds"`
	Victories   int       `json:"victories"`
	HighScore   int       `json:"high_score"`
	AvgScore    float64   `json:"avg_score"`
	TotalTokens float64   `json:"total_tokens"`
	LastPlayed  time.Time `json:"last_played"`
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

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; also keeps :memory: on a single connection
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			victory INTEGER NOT NULL DEFAULT 0,
			tokens REAL NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(game_id, score DESC);
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

// Best implements round.ScoreStore. The cell holds a single integer in
// text form; anything else yields ErrCorruptBest.
func (s *Store) Best(gameID string) (int, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM best_scores WHERE game_id = ?", gameID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w for %s: %q", ErrCorruptBest, gameID, raw)
	}
	return score, true, nil
}

// SetBest implements round.ScoreStore. The cell only ever rises: sessions
// sharing a store may hold stale bests, so a lower score is ignored. A
// corrupt cell casts to 0 and is replaced.
func (s *Store) SetBest(gameID string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (game_id, value) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET value = excluded.value
		 WHERE CAST(best_scores.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		gameID, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// RecordRound implements round.RoundRecorder.
func (s *Store) RecordRound(res round.Result) error {
	id := res.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	endedAt := res.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, game_id, score, victory, tokens, level, ticks, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(),
		res.GameID,
		res.Score,
		res.Victory,
		res.TokensEarned,
		res.Level,
		res.Ticks,
		res.Duration.Milliseconds(),
		endedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record round: %w", err)
	}
	return nil
}

// TopScores retrieves the top N rounds for the given game.
// Results are ordered by score descending, newest first on ties.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, victory, tokens, level, ticks, duration_ms, created_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY score DESC, created_at DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var id string
		var createdAt any
		if err := rows.Scan(&id, &e.GameID, &e.Score, &e.Victory, &e.TokensEarned,
			&e.Level, &e.Ticks, &e.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.ID, _ = uuid.Parse(id)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the round history and the best-score cell of a game.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rounds WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM best_scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	return tx.Commit()
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(victory), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(tokens), 0), MAX(created_at)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RoundsCount, &stats.Victories, &stats.HighScore,
		&stats.AvgScore, &stats.TotalTokens, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTimestamp(lastPlayed.String)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(victory), MAX(score), AVG(score), SUM(tokens), MAX(created_at)
		 FROM rounds
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.RoundsCount, &gs.Victories, &gs.HighScore,
			&gs.AvgScore, &gs.TotalTokens, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTimestamp(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and string column values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
