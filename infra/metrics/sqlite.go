package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	coremetrics "github.com/kilianp07/fleetroute/core/metrics"
)

// SQLiteSink keeps a history of planning runs in a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// RunRecord is one stored planning run.
type RunRecord struct {
	RunID     string
	Agents    int
	Points    int
	TotalCost float64
	Elapsed   time.Duration
	Time      time.Time
	// Critical fields are zero until a coordination event is recorded.
	CriticalOffset   float64
	CriticalDistance float64
	Radius           float64
	Feasible         bool
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    agents INTEGER,
    points INTEGER,
    total_cost REAL,
    elapsed_ns INTEGER,
    ts INTEGER,
    critical_offset REAL DEFAULT 0,
    critical_distance REAL DEFAULT 0,
    radius REAL DEFAULT 0,
    feasible INTEGER DEFAULT 1
);
CREATE TABLE IF NOT EXISTS routes (
    run_id TEXT,
    agent INTEGER,
    stops INTEGER,
    cost REAL,
    PRIMARY KEY(run_id, agent)
);
CREATE TABLE IF NOT EXISTS separations (
    run_id TEXT,
    at REAL,
    max_distance REAL
);`

// NewSQLiteSink opens or creates the database at path and ensures the schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// RecordSolve stores the run and its routes in one transaction.
func (s *SQLiteSink) RecordSolve(ev coremetrics.SolveEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`INSERT INTO runs (run_id, agents, points, total_cost, elapsed_ns, ts)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(run_id) DO UPDATE SET
            agents = excluded.agents,
            points = excluded.points,
            total_cost = excluded.total_cost,
            elapsed_ns = excluded.elapsed_ns,
            ts = excluded.ts`,
		ev.RunID, ev.Agents, ev.Points, ev.TotalCost, int64(ev.Elapsed), ev.Time.UnixNano()); err != nil {
		return err
	}
	for _, r := range ev.Routes {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO routes (run_id, agent, stops, cost) VALUES (?, ?, ?, ?)`,
			ev.RunID, r.Agent, r.Stops, r.Cost); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecordSeparations stores the separation timeline of a run.
func (s *SQLiteSink) RecordSeparations(evs []coremetrics.SeparationEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, ev := range evs {
		if _, err := tx.Exec(`INSERT INTO separations (run_id, at, max_distance) VALUES (?, ?, ?)`,
			ev.RunID, ev.Offset, ev.MaxDistance); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecordCoordination attaches the critical separation to a stored run.
func (s *SQLiteSink) RecordCoordination(ev coremetrics.CoordinationEvent) error {
	_, err := s.db.Exec(`UPDATE runs SET critical_offset = ?, critical_distance = ?, radius = ?, feasible = ?
        WHERE run_id = ?`,
		ev.CriticalOffset, ev.CriticalDistance, ev.Radius, ev.Feasible, ev.RunID)
	return err
}

// Runs returns the most recent runs first, at most limit of them. A
// non-positive limit returns every run.
func (s *SQLiteSink) Runs(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT run_id, agents, points, total_cost, elapsed_ns, ts,
        critical_offset, critical_distance, radius, feasible
        FROM runs ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []RunRecord
	for rows.Next() {
		var (
			r       RunRecord
			elapsed int64
			ts      int64
		)
		if err := rows.Scan(&r.RunID, &r.Agents, &r.Points, &r.TotalCost, &elapsed, &ts,
			&r.CriticalOffset, &r.CriticalDistance, &r.Radius, &r.Feasible); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(elapsed)
		r.Time = time.Unix(0, ts).UTC()
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Separations returns the stored timeline of a run ordered by offset.
func (s *SQLiteSink) Separations(runID string) ([]coremetrics.SeparationEvent, error) {
	rows, err := s.db.Query(`SELECT at, max_distance FROM separations WHERE run_id = ? ORDER BY at`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []coremetrics.SeparationEvent
	for rows.Next() {
		ev := coremetrics.SeparationEvent{RunID: runID}
		if err := rows.Scan(&ev.Offset, &ev.MaxDistance); err != nil {
			return nil, err
		}
		res = append(res, ev)
	}
	return res, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error { return s.db.Close() }
