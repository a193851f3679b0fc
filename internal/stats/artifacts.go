// Package stats turns finished runs into artifacts an operator can read:
// JSON for machines, CSV for spreadsheets, and a formatted console summary.
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"sunswarm/internal/model"
)

// RunArtifacts bundles everything persisted for one run.
type RunArtifacts struct {
	Summary model.RunSummary    `json:"summary"`
	Reports []model.EpochReport `json:"reports"`
}

// WriteRunArtifacts writes summary.json and epochs.csv under
// baseDir/<runID>/ and returns the run directory.
func WriteRunArtifacts(baseDir string, a RunArtifacts) (string, error) {
	if a.Summary.RunID == "" {
		return "", fmt.Errorf("stats: run id is required")
	}
	dir := filepath.Join(baseDir, a.Summary.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("stats: create run dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "summary.json"), a); err != nil {
		return "", err
	}
	if err := writeEpochCSV(filepath.Join(dir, "epochs.csv"), a.Reports); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("stats: marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("stats: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

var epochCSVHeader = []string{
	"epoch", "extinct", "survivors", "elite_count", "population_size",
	"top_fitness", "mean_fitness", "dominant_model", "dominant_policy",
	"best_accuracy_model", "best_accuracy_percent",
}

func writeEpochCSV(path string, reports []model.EpochReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stats: create epochs.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(epochCSVHeader); err != nil {
		return fmt.Errorf("stats: write csv header: %w", err)
	}
	for _, r := range reports {
		record := []string{
			strconv.Itoa(r.Epoch),
			strconv.FormatBool(r.Extinct),
			strconv.Itoa(r.Survivors),
			strconv.Itoa(r.EliteCount),
			strconv.Itoa(r.PopulationSize),
			formatFloat(r.TopFitness),
			formatFloat(r.MeanFitness),
			string(r.DominantModel),
			r.DominantPolicy,
			string(r.BestAccuracyModel),
			formatFloat(r.BestAccuracyPercent),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("stats: write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("stats: flush epochs.csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatSummary renders a human-readable run summary for the console.
func FormatSummary(a RunArtifacts) string {
	s := a.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (seed %d)\n", s.RunID, s.Seed)
	fmt.Fprintf(&b, "  epochs:        %d (%d extinction events)\n", s.Epochs, s.Extinctions)
	fmt.Fprintf(&b, "  best fitness:  %s\n", humanize.CommafWithDigits(s.BestFitness, 2))
	fmt.Fprintf(&b, "  live ticks:    %s\n", humanize.Comma(int64(s.LiveTicks)))
	fmt.Fprintf(&b, "  energy:        %s Wh consumed, %s Wh harvested\n",
		humanize.CommafWithDigits(s.TotalEnergyConsumedWh, 2),
		humanize.CommafWithDigits(s.TotalEnergyHarvestedWh, 2))
	if len(a.Reports) > 0 {
		last := a.Reports[len(a.Reports)-1]
		if last.DominantModel != "" {
			fmt.Fprintf(&b, "  final epoch:   %s on %s policy, best accuracy %s%% (%s)\n",
				last.DominantModel, last.DominantPolicy,
				humanize.FtoaWithDigits(last.BestAccuracyPercent, 1), last.BestAccuracyModel)
		}
	}
	return b.String()
}
