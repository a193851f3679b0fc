package evo

import (
	"fmt"
	"math/rand"

	"sunswarm/internal/model"
)

// Canonical mutation parameters. Perturbation clamps are wider than the
// spawn-time gene ranges, so evolution can explore regions initial seeding
// never reaches.
const (
	frequencyStep = 0.1
	frequencyMin  = 0.1
	frequencyMax  = 1.0

	solarFactorStep = 0.05
	solarFactorMin  = 0.7
	solarFactorMax  = 1.3

	modelSwapRate  = 0.10
	policySwapRate = 0.05
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FrequencyPerturbation nudges the inference-frequency gene by a uniform
// draw in [-Step, +Step], clamped to [Min, Max].
type FrequencyPerturbation struct {
	Step, Min, Max float64
}

// NewFrequencyPerturbation validates the perturbation parameters.
func NewFrequencyPerturbation(step, min, max float64) (*FrequencyPerturbation, error) {
	if step <= 0 {
		return nil, fmt.Errorf("evo: frequency step must be positive, got %g", step)
	}
	if min >= max {
		return nil, fmt.Errorf("evo: frequency bounds inverted: [%g, %g]", min, max)
	}
	return &FrequencyPerturbation{Step: step, Min: min, Max: max}, nil
}

func (m *FrequencyPerturbation) Name() string { return "frequency_perturbation" }

func (m *FrequencyPerturbation) Apply(rng *rand.Rand, g model.Gene) model.Gene {
	g.InferenceFrequency = clamp(g.InferenceFrequency+(rng.Float64()*2-1)*m.Step, m.Min, m.Max)
	return g
}

// SolarFactorPerturbation nudges the solar-efficiency gene the same way.
type SolarFactorPerturbation struct {
	Step, Min, Max float64
}

// NewSolarFactorPerturbation validates the perturbation parameters.
func NewSolarFactorPerturbation(step, min, max float64) (*SolarFactorPerturbation, error) {
	if step <= 0 {
		return nil, fmt.Errorf("evo: solar factor step must be positive, got %g", step)
	}
	if min >= max {
		return nil, fmt.Errorf("evo: solar factor bounds inverted: [%g, %g]", min, max)
	}
	return &SolarFactorPerturbation{Step: step, Min: min, Max: max}, nil
}

func (m *SolarFactorPerturbation) Name() string { return "solar_factor_perturbation" }

func (m *SolarFactorPerturbation) Apply(rng *rand.Rand, g model.Gene) model.Gene {
	g.SolarEfficiencyFactor = clamp(g.SolarEfficiencyFactor+(rng.Float64()*2-1)*m.Step, m.Min, m.Max)
	return g
}

// ModelSwap replaces the gene's model with a uniform random pick from the
// catalog at the configured rate. The replacement may equal the original.
type ModelSwap struct {
	Rate    float64
	Catalog []model.ModelID
}

// NewModelSwap validates the swap parameters.
func NewModelSwap(rate float64, catalog []model.ModelID) (*ModelSwap, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("evo: model swap rate must be in [0, 1], got %g", rate)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("evo: model swap requires a non-empty catalog")
	}
	return &ModelSwap{Rate: rate, Catalog: catalog}, nil
}

func (m *ModelSwap) Name() string { return "model_swap" }

func (m *ModelSwap) Apply(rng *rand.Rand, g model.Gene) model.Gene {
	if rng.Float64() < m.Rate {
		g.Model = m.Catalog[rng.Intn(len(m.Catalog))]
	}
	return g
}

// PolicySwap replaces the gene's policy the same way.
type PolicySwap struct {
	Rate    float64
	Catalog []model.Policy
}

// NewPolicySwap validates the swap parameters.
func NewPolicySwap(rate float64, catalog []model.Policy) (*PolicySwap, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("evo: policy swap rate must be in [0, 1], got %g", rate)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("evo: policy swap requires a non-empty catalog")
	}
	return &PolicySwap{Rate: rate, Catalog: catalog}, nil
}

func (m *PolicySwap) Name() string { return "policy_swap" }

func (m *PolicySwap) Apply(rng *rand.Rand, g model.Gene) model.Gene {
	if rng.Float64() < m.Rate {
		g.Policy = m.Catalog[rng.Intn(len(m.Catalog))]
	}
	return g
}

// DefaultPipeline assembles the canonical mutation chain over the given
// catalogs: both perturbations always fire, the swaps fire at their rates.
func DefaultPipeline(models []model.ModelID, policies []model.Policy) (Pipeline, error) {
	freq, err := NewFrequencyPerturbation(frequencyStep, frequencyMin, frequencyMax)
	if err != nil {
		return nil, err
	}
	solar, err := NewSolarFactorPerturbation(solarFactorStep, solarFactorMin, solarFactorMax)
	if err != nil {
		return nil, err
	}
	modelSwap, err := NewModelSwap(modelSwapRate, models)
	if err != nil {
		return nil, err
	}
	policySwap, err := NewPolicySwap(policySwapRate, policies)
	if err != nil {
		return nil, err
	}
	return Pipeline{freq, solar, modelSwap, policySwap}, nil
}
