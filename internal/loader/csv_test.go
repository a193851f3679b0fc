package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadPowerProfiles(t *testing.T) {
	path := writeFile(t, "power.csv", `model_name,idle_power_w,inference_power_w,avg_inference_time_ms,model_size_mb,accuracy_percent,parameters_millions
YOLOv8-nano,2.5,4.2,45,6.0,80.4,3.2
MobileNetV2,2.5,3.8,28,14.0,71.3,3.5
`)

	profiles, err := LoadPowerProfiles(path, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("LoadPowerProfiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("loaded %d profiles, want 2", len(profiles))
	}
	p, ok := profiles["YOLOv8-nano"]
	if !ok {
		t.Fatal("YOLOv8-nano missing")
	}
	if p.InferencePowerW != 4.2 || p.AccuracyPercent != 80.4 || p.ParametersMillions != 3.2 {
		t.Fatalf("profile = %+v", p)
	}
}

func TestLoadPowerProfilesSkipsMalformedRows(t *testing.T) {
	path := writeFile(t, "power.csv", `model_name,idle_power_w,inference_power_w,avg_inference_time_ms,model_size_mb,accuracy_percent,parameters_millions
good,2.5,4.2,45,6.0,80.4,3.2
bad,not-a-number,4.2,45,6.0,80.4,3.2
,2.5,4.2,45,6.0,80.4,3.2
short,2.5
also-good,2.0,3.0,30,10.0,75.0,4.0
`)

	profiles, err := LoadPowerProfiles(path, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("LoadPowerProfiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("loaded %d profiles, want the 2 valid rows", len(profiles))
	}
	if _, ok := profiles["good"]; !ok {
		t.Fatal("valid row dropped")
	}
	if _, ok := profiles["bad"]; ok {
		t.Fatal("malformed row loaded")
	}
}

func TestLoadPowerProfilesHeaderOrderIndependent(t *testing.T) {
	path := writeFile(t, "power.csv", `accuracy_percent,model_name,parameters_millions,idle_power_w,inference_power_w,avg_inference_time_ms,model_size_mb
80.4,reordered,3.2,2.5,4.2,45,6.0
`)

	profiles, err := LoadPowerProfiles(path, nil)
	if err != nil {
		t.Fatalf("LoadPowerProfiles: %v", err)
	}
	p := profiles["reordered"]
	if p.AccuracyPercent != 80.4 || p.IdlePowerW != 2.5 {
		t.Fatalf("profile = %+v", p)
	}
}

func TestLoadPowerProfilesMissingColumn(t *testing.T) {
	path := writeFile(t, "power.csv", `model_name,idle_power_w
m,2.5
`)
	if _, err := LoadPowerProfiles(path, nil); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoadPowerProfilesMissingFile(t *testing.T) {
	if _, err := LoadPowerProfiles(filepath.Join(t.TempDir(), "nope.csv"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSolarTable(t *testing.T) {
	path := writeFile(t, "solar.csv", `hour,avg_irradiance_w_m2,panel_efficiency
10,800,0.18
12,850,0.18
`)

	table, err := LoadSolarTable(path, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("LoadSolarTable: %v", err)
	}
	if got, want := table.OutputW(10), 800*0.6*0.18; got != want {
		t.Fatalf("hour 10 output = %g W, want %g", got, want)
	}
	if got := table.OutputW(3); got != 0 {
		t.Fatalf("unlisted hour output = %g W, want 0", got)
	}
}

func TestLoadSolarTableSkipsBadRows(t *testing.T) {
	path := writeFile(t, "solar.csv", `hour,avg_irradiance_w_m2,panel_efficiency
25,800,0.18
-1,800,0.18
noon,800,0.18
12,bad,0.18
13,700,0.18
`)

	table, err := LoadSolarTable(path, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("LoadSolarTable: %v", err)
	}
	if got := table.OutputW(12); got != 0 {
		t.Fatalf("malformed hour 12 row loaded: output %g W", got)
	}
	if got, want := table.OutputW(13), 700*0.6*0.18; got != want {
		t.Fatalf("hour 13 output = %g W, want %g", got, want)
	}
}
