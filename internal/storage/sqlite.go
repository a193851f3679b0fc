//go:build sqlite

package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"sunswarm/internal/model"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS epoch_reports (
	run_id  TEXT NOT NULL,
	epoch   INTEGER NOT NULL,
	payload BLOB NOT NULL,
	PRIMARY KEY (run_id, epoch)
);
CREATE TABLE IF NOT EXISTS run_summaries (
	run_id  TEXT PRIMARY KEY,
	payload BLOB NOT NULL
);
`

// SQLiteStore persists diagnostics to a single-file database. Payloads are
// JSON envelopes; the schema stays stable while report fields evolve.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %q: %w", path, err)
	}
	// The driver is in-process; connection concurrency only causes
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Init() error {
	if _, err := s.db.Exec(createTablesSQL); err != nil {
		return fmt.Errorf("storage: create tables: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveEpochReport(runID string, report model.EpochReport) error {
	payload, err := encodePayload(report)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO epoch_reports (run_id, epoch, payload) VALUES (?, ?, ?)
		 ON CONFLICT (run_id, epoch) DO UPDATE SET payload = excluded.payload`,
		runID, report.Epoch, payload)
	if err != nil {
		return fmt.Errorf("storage: save epoch report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetEpochReports(runID string) ([]model.EpochReport, error) {
	rows, err := s.db.Query(
		`SELECT payload FROM epoch_reports WHERE run_id = ? ORDER BY epoch`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage: query epoch reports: %w", err)
	}
	defer rows.Close()

	var reports []model.EpochReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("storage: scan epoch report: %w", err)
		}
		var report model.EpochReport
		if err := decodePayload(payload, &report); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate epoch reports: %w", err)
	}
	if len(reports) == 0 {
		return nil, ErrNotFound
	}
	return reports, nil
}

func (s *SQLiteStore) SaveRunSummary(summary model.RunSummary) error {
	payload, err := encodePayload(summary)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO run_summaries (run_id, payload) VALUES (?, ?)
		 ON CONFLICT (run_id) DO UPDATE SET payload = excluded.payload`,
		summary.RunID, payload)
	if err != nil {
		return fmt.Errorf("storage: save run summary: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetRunSummary(runID string) (model.RunSummary, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM run_summaries WHERE run_id = ?`, runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RunSummary{}, ErrNotFound
	}
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("storage: query run summary: %w", err)
	}
	var summary model.RunSummary
	if err := decodePayload(payload, &summary); err != nil {
		return model.RunSummary{}, err
	}
	return summary, nil
}

func (s *SQLiteStore) ListRuns() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT run_id FROM run_summaries
		 UNION SELECT DISTINCT run_id FROM epoch_reports
		 ORDER BY run_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate run ids: %w", err)
	}
	return ids, nil
}
