// Package profile holds the static catalogs the simulation reads every tick:
// ML model power profiles, hardware class specifications, and the hourly
// solar table. All figures for the built-in model catalog come from published
// edge-inference benchmarks measured on a Raspberry Pi 4.
package profile

import (
	"sort"

	"sunswarm/internal/model"
)

const (
	ModelYOLOv8Nano       model.ModelID = "YOLOv8-nano"
	ModelYOLOv8Small      model.ModelID = "YOLOv8-small"
	ModelMobileNetV2      model.ModelID = "MobileNetV2"
	ModelEfficientNetB0   model.ModelID = "EfficientNetB0"
	ModelTinyBERT         model.ModelID = "TinyBERT"
	ModelEfficientNetB1   model.ModelID = "EfficientNetB1"
	ModelMobileNetV3Small model.ModelID = "MobileNetV3-Small"
	ModelDistilBERT       model.ModelID = "DistilBERT"
)

// PowerProfile describes one model's measured power and quality figures.
type PowerProfile struct {
	ModelName          string  `json:"model_name"`
	IdlePowerW         float64 `json:"idle_power_w"`
	InferencePowerW    float64 `json:"inference_power_w"`
	AvgInferenceTimeMs float64 `json:"avg_inference_time_ms"`
	ModelSizeMB        float64 `json:"model_size_mb"`
	AccuracyPercent    float64 `json:"accuracy_percent"`
	ParametersMillions float64 `json:"parameters_millions"`
}

// EnergyPerInferenceJ is the energy cost of one inference in Joules.
func (p PowerProfile) EnergyPerInferenceJ() float64 {
	return p.InferencePowerW * (p.AvgInferenceTimeMs / 1000.0)
}

// EfficiencyRatio is accuracy per watt; higher is better.
func (p PowerProfile) EfficiencyRatio() float64 {
	if p.InferencePowerW <= 0 {
		return 0
	}
	return p.AccuracyPercent / p.InferencePowerW
}

var defaultPowerProfiles = map[model.ModelID]PowerProfile{
	ModelYOLOv8Nano:       {ModelName: "YOLOv8-nano", IdlePowerW: 2.5, InferencePowerW: 4.2, AvgInferenceTimeMs: 45, ModelSizeMB: 6.0, AccuracyPercent: 80.4, ParametersMillions: 3.2},
	ModelYOLOv8Small:      {ModelName: "YOLOv8-small", IdlePowerW: 2.5, InferencePowerW: 5.8, AvgInferenceTimeMs: 78, ModelSizeMB: 22.0, AccuracyPercent: 86.2, ParametersMillions: 11.2},
	ModelMobileNetV2:      {ModelName: "MobileNetV2", IdlePowerW: 2.5, InferencePowerW: 3.8, AvgInferenceTimeMs: 28, ModelSizeMB: 14.0, AccuracyPercent: 71.3, ParametersMillions: 3.5},
	ModelEfficientNetB0:   {ModelName: "EfficientNetB0", IdlePowerW: 2.5, InferencePowerW: 4.5, AvgInferenceTimeMs: 35, ModelSizeMB: 20.1, AccuracyPercent: 77.1, ParametersMillions: 5.3},
	ModelTinyBERT:         {ModelName: "TinyBERT", IdlePowerW: 2.5, InferencePowerW: 6.2, AvgInferenceTimeMs: 120, ModelSizeMB: 60.0, AccuracyPercent: 84.5, ParametersMillions: 67.0},
	ModelEfficientNetB1:   {ModelName: "EfficientNetB1", IdlePowerW: 2.5, InferencePowerW: 5.2, AvgInferenceTimeMs: 42, ModelSizeMB: 31.0, AccuracyPercent: 79.8, ParametersMillions: 7.9},
	ModelMobileNetV3Small: {ModelName: "MobileNetV3-Small", IdlePowerW: 2.5, InferencePowerW: 3.5, AvgInferenceTimeMs: 26, ModelSizeMB: 13.0, AccuracyPercent: 67.4, ParametersMillions: 2.5},
	ModelDistilBERT:       {ModelName: "DistilBERT", IdlePowerW: 2.5, InferencePowerW: 5.5, AvgInferenceTimeMs: 110, ModelSizeMB: 268.0, AccuracyPercent: 88.9, ParametersMillions: 66.0},
}

// AllModels returns the model catalog in a stable order.
func AllModels() []model.ModelID {
	ids := make([]model.ModelID, 0, len(defaultPowerProfiles))
	for id := range defaultPowerProfiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefaultPowerProfile looks up the built-in catalog.
func DefaultPowerProfile(id model.ModelID) (PowerProfile, bool) {
	p, ok := defaultPowerProfiles[id]
	return p, ok
}
