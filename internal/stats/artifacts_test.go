package stats

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sunswarm/internal/model"
)

func sampleArtifacts() RunArtifacts {
	return RunArtifacts{
		Summary: model.RunSummary{
			RunID:                  "run-test",
			Seed:                   42,
			Epochs:                 2,
			Extinctions:            1,
			BestFitness:            1234.5,
			TotalEnergyConsumedWh:  88.25,
			TotalEnergyHarvestedWh: 54.5,
			LiveTicks:              100000,
		},
		Reports: []model.EpochReport{
			{Epoch: 0, Extinct: true, PopulationSize: 100},
			{
				Epoch: 1, Survivors: 60, EliteCount: 9, PopulationSize: 100,
				TopFitness: 1234.5, MeanFitness: 800.25,
				DominantModel: "MobileNetV2", DominantPolicy: "conservative",
				BestAccuracyModel: "DistilBERT", BestAccuracyPercent: 88.9,
			},
		},
	}
}

func TestWriteRunArtifacts(t *testing.T) {
	base := t.TempDir()
	dir, err := WriteRunArtifacts(base, sampleArtifacts())
	if err != nil {
		t.Fatalf("WriteRunArtifacts: %v", err)
	}
	if dir != filepath.Join(base, "run-test") {
		t.Fatalf("run dir = %q", dir)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	if err != nil {
		t.Fatalf("read summary.json: %v", err)
	}
	var decoded RunArtifacts
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal summary.json: %v", err)
	}
	if decoded.Summary != sampleArtifacts().Summary {
		t.Fatalf("summary round trip = %+v", decoded.Summary)
	}
	if len(decoded.Reports) != 2 {
		t.Fatalf("summary.json carries %d reports, want 2", len(decoded.Reports))
	}

	f, err := os.Open(filepath.Join(dir, "epochs.csv"))
	if err != nil {
		t.Fatalf("open epochs.csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read epochs.csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("epochs.csv has %d rows, want header plus 2", len(records))
	}
	if records[0][0] != "epoch" || records[0][7] != "dominant_model" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][1] != "true" {
		t.Fatalf("extinct column = %q, want true", records[1][1])
	}
	if records[2][7] != "MobileNetV2" || records[2][10] != "88.90" {
		t.Fatalf("epoch 1 row = %v", records[2])
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	if _, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(sampleArtifacts())
	for _, want := range []string{
		"run run-test (seed 42)",
		"2 (1 extinction events)",
		"100,000",
		"MobileNetV2 on conservative policy",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
