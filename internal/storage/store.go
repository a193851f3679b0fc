// Package storage persists per-run diagnostics: epoch reports and run
// summaries. Stores never feed past generations back into a simulation;
// they exist for post-run analysis only.
package storage

import (
	"errors"
	"io"

	"sunswarm/internal/model"
)

// ErrNotFound is returned when a run or report does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store is the persistence interface for run diagnostics. Implementations
// must be safe for concurrent use.
type Store interface {
	// Init prepares the backing medium (schema creation, directories).
	Init() error
	// SaveEpochReport appends one epoch report to a run. Saving the same
	// epoch twice overwrites the earlier report.
	SaveEpochReport(runID string, report model.EpochReport) error
	// GetEpochReports returns a run's reports ordered by epoch.
	GetEpochReports(runID string) ([]model.EpochReport, error)
	// SaveRunSummary upserts the final summary for a run.
	SaveRunSummary(summary model.RunSummary) error
	// GetRunSummary returns a run's summary or ErrNotFound.
	GetRunSummary(runID string) (model.RunSummary, error)
	// ListRuns returns the known run ids in lexical order.
	ListRuns() ([]string, error)
}

// CloseIfSupported closes stores that hold external resources.
func CloseIfSupported(s Store) error {
	if closer, ok := s.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
