// Package storage persists high scores and finished vs-CPU matches in
// SQLite, using the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// Winner values stored in the matches table.
const (
	WinnerHuman = "human"
	WinnerCPU   = "cpu"
	WinnerDraw  = ""
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// MatchRecord is the outcome of one human vs CPU game.
type MatchRecord struct {
	ID         int64
	MatchID    string // UUID; generated by SaveMatch when empty
	GameID     string
	HumanScore int
	CPUScore   int
	HumanMoves int
	CPUMoves   int
	Winner     string // WinnerHuman, WinnerCPU or WinnerDraw
	Reason     string // Why the game ended
	Duration   int    // Seconds
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			human_score INTEGER NOT NULL DEFAULT 0,
			cpu_score INTEGER NOT NULL DEFAULT 0,
			human_moves INTEGER NOT NULL DEFAULT 0,
			cpu_moves INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id);
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

// SaveScore records a new score for the given game and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game, best first.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
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
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game, or 0.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveMatch records a finished match and returns its match ID.
func (s *Store) SaveMatch(m MatchRecord) (string, error) {
	if m.MatchID == "" {
		m.MatchID = uuid.NewString()
	} else if _, err := uuid.Parse(m.MatchID); err != nil {
		return "", fmt.Errorf("storage: invalid match id %q: %w", m.MatchID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, game_id, human_score, cpu_score, human_moves, cpu_moves, winner, reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID,
		m.GameID,
		m.HumanScore,
		m.CPUScore,
		m.HumanMoves,
		m.CPUMoves,
		m.Winner,
		m.Reason,
		m.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return m.MatchID, nil
}

const matchColumns = `id, match_id, game_id, human_score, cpu_score, human_moves,
	cpu_moves, winner, reason, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var m MatchRecord
	var createdAt any
	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.GameID,
		&m.HumanScore,
		&m.CPUScore,
		&m.HumanMoves,
		&m.CPUMoves,
		&m.Winner,
		&m.Reason,
		&m.Duration,
		&createdAt,
	)
	m.CreatedAt = parseTimestamp(createdAt)
	return m, err
}

// MatchByID retrieves a match by its match ID.
func (s *Store) MatchByID(matchID string) (MatchRecord, error) {
	m, err := scanMatch(s.db.QueryRow(
		"SELECT "+matchColumns+" FROM matches WHERE match_id = ?",
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return MatchRecord{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return MatchRecord{}, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return m, nil
}

// RecentMatches returns the latest matches of a game, newest first.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+matchColumns+` FROM matches
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Record is the human's win/loss/draw tally against the CPU.
type Record struct {
	Wins   int
	Losses int
	Draws  int
}

// Played returns the number of recorded matches.
func (r Record) Played() int { return r.Wins + r.Losses + r.Draws }

// MatchRecordFor summarises every stored match of a game.
func (s *Store) MatchRecordFor(gameID string) (Record, error) {
	var r Record
	err := s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN winner = '' THEN 1 ELSE 0 END), 0)
		 FROM matches WHERE game_id = ?`,
		WinnerHuman, WinnerCPU, gameID,
	).Scan(&r.Wins, &r.Losses, &r.Draws)
	if err != nil {
		return Record{}, fmt.Errorf("storage: cannot query match record: %w", err)
	}
	return r, nil
}

// GameStats contains aggregated score statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// parseTimestamp accepts what the driver hands back for a DATETIME column.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
