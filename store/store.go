// Package store provides SQLite-based persistence for simulation runs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pumpsim-xyz/go-pumpsim/results"
)

// Store handles SQLite database operations for run history.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	RunID      string    `json:"runId"`
	Timestamp  time.Time `json:"timestamp"`
	Status     string    `json:"status"`
	StartFlow  float64   `json:"startFlow"`
	TargetFlow float64   `json:"targetFlow"`
	Mode       string    `json:"mode,omitempty"`
	Cases      int       `json:"cases"`
}

// New creates a new Store with the given database path. ":memory:" gives an
// in-process throwaway database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		status TEXT NOT NULL,
		start_flow REAL NOT NULL,
		target_flow REAL NOT NULL,
		mode TEXT,
		duration REAL NOT NULL,
		step_size REAL NOT NULL,
		case_count INTEGER NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		label TEXT NOT NULL,
		time_constant REAL NOT NULL,
		overshoot REAL NOT NULL,
		transition_time REAL NOT NULL,
		settling_time REAL NOT NULL,
		energy_kwh REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_run_cases_run ON run_cases(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a run and its per-case summary rows. The full results
// document is stored as JSON so reads round-trip exactly.
func (s *Store) SaveRun(res *results.Results) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, status, start_flow, target_flow, mode, duration, step_size, case_count, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Metadata.RunID, res.Metadata.Timestamp.UTC(), res.Metadata.Status,
		res.Scenario.StartFlow, res.Scenario.TargetFlow, res.Scenario.Mode,
		res.Scenario.Duration, res.Scenario.StepSize, len(res.Cases), string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, c := range res.Cases {
		_, err = tx.Exec(
			`INSERT INTO run_cases (run_id, label, time_constant, overshoot, transition_time, settling_time, energy_kwh)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.Metadata.RunID, c.Label, c.TimeConstant, c.Overshoot,
			c.Metrics.TransitionTime, c.Metrics.SettlingTime, c.EnergyKWh,
		)
		if err != nil {
			return fmt.Errorf("insert case %s: %w", c.Label, err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run by ID.
func (s *Store) GetRun(id string) (*results.Results, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var res results.Results
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("unmarshal run: %w", err)
	}
	return &res, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, status, start_flow, target_flow, mode, case_count
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var rs RunSummary
		var mode sql.NullString
		if err := rows.Scan(&rs.RunID, &rs.Timestamp, &rs.Status, &rs.StartFlow, &rs.TargetFlow, &mode, &rs.Cases); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rs.Mode = mode.String
		summaries = append(summaries, rs)
	}
	return summaries, rows.Err()
}
