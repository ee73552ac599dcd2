// Package stats persists the results of completed games in SQLite, using
// the pure-Go modernc.org/sqlite driver. Only finished results are stored —
// never in-progress game state.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// GameResult is one finished game.
type GameResult struct {
	ID       int64
	Seed     int64
	Players  int
	Winner   int // -1 for a draw
	Scores   []int
	Turns    int
	Duration time.Duration
}

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at the given path and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("stats: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: cannot connect to database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("stats: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			players INTEGER NOT NULL,
			winner INTEGER NOT NULL,
			scores TEXT NOT NULL,
			turns INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_game_results_winner ON game_results(winner);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddResult records one finished game.
func (s *Store) AddResult(ctx context.Context, r GameResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO game_results (seed, players, winner, scores, turns, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Players, r.Winner, encodeScores(r.Scores), r.Turns, r.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("stats: insert failed: %w", err)
	}
	return res.LastInsertId()
}

// Results returns the most recent n results, newest first.
func (s *Store) Results(ctx context.Context, n int) ([]GameResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, players, winner, scores, turns, duration_ms
		 FROM game_results ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameResult
	for rows.Next() {
		var r GameResult
		var scores string
		var durMS int64
		if err := rows.Scan(&r.ID, &r.Seed, &r.Players, &r.Winner, &scores, &r.Turns, &durMS); err != nil {
			return nil, err
		}
		r.Scores, err = decodeScores(scores)
		if err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// WinCounts returns, per winner index (including -1 for draws), how many
// stored games that player won.
func (s *Store) WinCounts(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT winner, COUNT(*) FROM game_results GROUP BY winner`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[int]int)
	for rows.Next() {
		var winner, ct int
		if err := rows.Scan(&winner, &ct); err != nil {
			return nil, err
		}
		counts[winner] = ct
	}
	return counts, rows.Err()
}

func encodeScores(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func decodeScores(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	scores := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("stats: bad scores column %q: %w", s, err)
		}
		scores[i] = n
	}
	return scores, nil
}
