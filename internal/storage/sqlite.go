// Package storage persists solver results: the results.json angle file the
// swipe command reads, and an SQLite history of every sweep.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded sweep.
type Run struct {
	ID          string
	LevelID     string
	Course      string
	Level       string
	PowerUp     string
	Power       float64
	Target      string
	Start       float64
	Trials      int
	HasBest     bool
	BestAngle   float64
	BestScore   float64
	BestReason  string
	Recommended float64 // narrowest band center, 0 when no band fit
	Elapsed     time.Duration
	CreatedAt   time.Time
}

// SpreadRow is one ranked band of a run.
type SpreadRow struct {
	RunID string
	Width int // tenths of a degree
	Angle float64
	Sum   float64
}

// LevelStats aggregates the runs of one level.
type LevelStats struct {
	LevelID   string
	Runs      int
	Trials    int64
	BestScore float64 // lowest best score; 0 when no run qualified
	LastRun   time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			course TEXT NOT NULL DEFAULT '',
			level TEXT NOT NULL DEFAULT '',
			powerup TEXT NOT NULL,
			power REAL NOT NULL,
			target TEXT NOT NULL,
			start_angle REAL NOT NULL,
			trials INTEGER NOT NULL,
			best_angle REAL,
			best_score REAL,
			best_reason TEXT,
			recommended REAL NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS spreads (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			width INTEGER NOT NULL,
			angle REAL NOT NULL,
			sum REAL NOT NULL,
			PRIMARY KEY (run_id, width)
		);
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

// SaveRun records a run and returns its id. A run without an id gets a
// fresh UUID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	var bestAngle, bestScore sql.NullFloat64
	var bestReason sql.NullString
	if r.HasBest {
		bestAngle = sql.NullFloat64{Float64: r.BestAngle, Valid: true}
		bestScore = sql.NullFloat64{Float64: r.BestScore, Valid: true}
		bestReason = sql.NullString{String: r.BestReason, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, level_id, course, level, powerup, power, target, start_angle, trials,
		  best_angle, best_score, best_reason, recommended, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.LevelID, r.Course, r.Level, r.PowerUp, r.Power, r.Target, r.Start, r.Trials,
		bestAngle, bestScore, bestReason, r.Recommended, r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

const runColumns = `id, level_id, course, level, powerup, power, target, start_angle, trials,
	best_angle, best_score, best_reason, recommended, elapsed_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var bestAngle, bestScore sql.NullFloat64
	var bestReason sql.NullString
	var elapsed int64
	var createdAt any
	err := row.Scan(
		&r.ID, &r.LevelID, &r.Course, &r.Level, &r.PowerUp, &r.Power, &r.Target, &r.Start, &r.Trials,
		&bestAngle, &bestScore, &bestReason, &r.Recommended, &elapsed, &createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	if bestAngle.Valid {
		r.HasBest = true
		r.BestAngle = bestAngle.Float64
		r.BestScore = bestScore.Float64
		r.BestReason = bestReason.String
	}
	r.Elapsed = time.Duration(elapsed) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RunByID retrieves a run. Returns nil when no run has that id.
func (s *Store) RunByID(id string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, of one level when levelID is
// not empty.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// SaveSpreads records the ranked bands of a run in one transaction.
func (s *Store) SaveSpreads(runID string, spreads []SpreadRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO spreads (run_id, width, angle, sum) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare spread insert: %w", err)
	}
	defer stmt.Close()

	for _, sp := range spreads {
		if _, err := stmt.Exec(runID, sp.Width, sp.Angle, sp.Sum); err != nil {
			return fmt.Errorf("storage: cannot save spread %d: %w", sp.Width, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit spreads: %w", err)
	}
	return nil
}

// SpreadsForRun returns the bands of a run by ascending width.
func (s *Store) SpreadsForRun(runID string) ([]SpreadRow, error) {
	rows, err := s.db.Query(
		`SELECT run_id, width, angle, sum FROM spreads WHERE run_id = ? ORDER BY width`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query spreads: %w", err)
	}
	defer rows.Close()

	var out []SpreadRow
	for rows.Next() {
		var sp SpreadRow
		if err := rows.Scan(&sp.RunID, &sp.Width, &sp.Angle, &sp.Sum); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Stats aggregates the history per level.
func (s *Store) Stats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(trials), COALESCE(MIN(best_score), 0), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastRun any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.Trials, &st.BestScore, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.LevelID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
