package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/pkg/logger"
	"github.com/pitchside/oracle/pkg/metrics"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

const createMatchesTable = `
CREATE TABLE IF NOT EXISTS matches (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id      TEXT,
	team1         TEXT NOT NULL,
	team2         TEXT NOT NULL,
	team1_score   INTEGER NOT NULL,
	team2_score   INTEGER NOT NULL,
	winner        TEXT NOT NULL,
	venue         TEXT NOT NULL DEFAULT '',
	toss_winner   TEXT NOT NULL DEFAULT '',
	toss_decision TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL DEFAULT (datetime('now'))
)`

// SQLiteStore implements Store on a local sqlite database. A single insert
// statement per append keeps the never-partially-written contract: either the
// row commits or nothing is observable.
type SQLiteStore struct {
	db     *sql.DB
	logger logger.Logger
}

// OpenSQLite opens (creating if necessary) the match log at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open match log: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping match log: %w", err)
	}
	if _, err := db.ExecContext(ctx, createMatchesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create matches table: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger.Get().Named("matchlog")}
	s.logger.Info(ctx, "match log opened", logger.String("path", path))
	return s, nil
}

// Append validates m and inserts it as the next row of the log.
func (s *SQLiteStore) Append(ctx context.Context, m model.Match) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (event_id, team1, team2, team1_score, team2_score, winner, venue, toss_winner, toss_decision)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.EventID, m.Team1, m.Team2, m.Team1Score, m.Team2Score, m.Winner, m.Venue, m.TossWinner, m.TossDecision,
	)
	if err != nil {
		return 0, fmt.Errorf("append match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append match id: %w", err)
	}

	// Leave the gauge at its last known value when the count fails; a
	// transient error must not report an empty log.
	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateMatchesTotal(n)
	}
	return id, nil
}

// All returns the full history in insertion order.
func (s *SQLiteStore) All(ctx context.Context) ([]model.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, team1, team2, team1_score, team2_score, winner, venue, toss_winner, toss_decision
		FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query match log: %w", err)
	}
	defer rows.Close()

	var history []model.Match
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.EventID, &m.Team1, &m.Team2,
			&m.Team1Score, &m.Team2Score, &m.Winner, &m.Venue,
			&m.TossWinner, &m.TossDecision); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match log: %w", err)
	}
	return history, nil
}

// Count returns the number of stored matches.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close match log: %w", err)
	}
	return nil
}
