package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// LevelEntry is a stored level attempt.
type LevelEntry struct {
	ID     int64
	GameID string
	core.LevelResult
	CreatedAt time.Time
}

// SaveLevelResult records one level attempt.
func (s *Store) SaveLevelResult(gameID string, r core.LevelResult) (int64, error) {
	cleared := 0
	if r.Cleared {
		cleared = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO level_results (game_id, level, cleared, score, lines, moves)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, r.Level, cleared, r.Score, r.Lines, r.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestClearedLevel returns the highest cleared level, or 0 if none.
func (s *Store) BestClearedLevel(gameID string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM level_results WHERE game_id = ? AND cleared = 1",
		gameID,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}
	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

// RecentLevelResults retrieves the most recent level attempts, newest first.
func (s *Store) RecentLevelResults(gameID string, limit int) ([]LevelEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, cleared, score, lines, moves, created_at
		 FROM level_results
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var entries []LevelEntry
	for rows.Next() {
		var e LevelEntry
		var cleared int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Level, &cleared, &e.Score, &e.Lines, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Cleared = cleared == 1
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
