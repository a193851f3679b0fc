// Package loader reads measurement CSVs into in-memory profile tables.
// Malformed rows are skipped with a warning rather than failing the load;
// field measurement exports are rarely pristine.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"sunswarm/internal/profile"
)

// Power profile CSV columns. Header order is free; lookups go by name.
var powerColumns = []string{
	"model_name",
	"idle_power_w",
	"inference_power_w",
	"avg_inference_time_ms",
	"model_size_mb",
	"accuracy_percent",
	"parameters_millions",
}

// Solar profile CSV columns.
var solarColumns = []string{
	"hour",
	"avg_irradiance_w_m2",
	"panel_efficiency",
}

func headerIndex(header, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("loader: missing column %q", name)
		}
	}
	return index, nil
}

// LoadPowerProfiles reads a power measurement CSV into an override map keyed
// by model name. Rows with non-numeric fields are skipped.
func LoadPowerProfiles(path string, logger hclog.Logger) (map[string]profile.PowerProfile, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open power profiles: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("loader: read power profile header: %w", err)
	}
	index, err := headerIndex(header, powerColumns)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]profile.PowerProfile)
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping unreadable power profile row", "line", line, "error", err)
			continue
		}
		if len(record) < len(header) {
			logger.Warn("skipping short power profile row", "line", line, "fields", len(record))
			continue
		}

		name := record[index["model_name"]]
		if name == "" {
			logger.Warn("skipping power profile row without model name", "line", line)
			continue
		}

		fields := make([]float64, 0, len(powerColumns)-1)
		ok := true
		for _, col := range powerColumns[1:] {
			v, err := strconv.ParseFloat(record[index[col]], 64)
			if err != nil {
				logger.Warn("skipping malformed power profile row",
					"line", line, "model", name, "column", col, "value", record[index[col]])
				ok = false
				break
			}
			fields = append(fields, v)
		}
		if !ok {
			continue
		}

		profiles[name] = profile.PowerProfile{
			ModelName:          name,
			IdlePowerW:         fields[0],
			InferencePowerW:    fields[1],
			AvgInferenceTimeMs: fields[2],
			ModelSizeMB:        fields[3],
			AccuracyPercent:    fields[4],
			ParametersMillions: fields[5],
		}
	}

	logger.Info("loaded power profiles", "path", path, "models", len(profiles))
	return profiles, nil
}

// LoadSolarTable reads an hourly irradiance CSV. Hours absent from the file
// keep zero output; rows with out-of-range hours or non-numeric fields are
// skipped.
func LoadSolarTable(path string, logger hclog.Logger) (profile.SolarTable, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	var table profile.SolarTable

	f, err := os.Open(path)
	if err != nil {
		return table, fmt.Errorf("loader: open solar table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return table, fmt.Errorf("loader: read solar table header: %w", err)
	}
	index, err := headerIndex(header, solarColumns)
	if err != nil {
		return table, err
	}

	loaded := 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping unreadable solar row", "line", line, "error", err)
			continue
		}
		if len(record) < len(header) {
			logger.Warn("skipping short solar row", "line", line, "fields", len(record))
			continue
		}

		hour, err := strconv.Atoi(record[index["hour"]])
		if err != nil || hour < 0 || hour > 23 {
			logger.Warn("skipping solar row with bad hour", "line", line, "hour", record[index["hour"]])
			continue
		}
		irradiance, err := strconv.ParseFloat(record[index["avg_irradiance_w_m2"]], 64)
		if err != nil {
			logger.Warn("skipping solar row with bad irradiance", "line", line, "hour", hour)
			continue
		}
		efficiency, err := strconv.ParseFloat(record[index["panel_efficiency"]], 64)
		if err != nil {
			logger.Warn("skipping solar row with bad efficiency", "line", line, "hour", hour)
			continue
		}

		table[hour] = profile.SolarHour{
			Hour:            hour,
			IrradianceWM2:   irradiance,
			PanelEfficiency: efficiency,
		}
		loaded++
	}

	logger.Info("loaded solar table", "path", path, "hours", loaded)
	return table, nil
}
