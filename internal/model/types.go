package model

import "fmt"

// ModelID identifies an ML model in the power-profile catalog.
type ModelID string

// Status is the liveness state of a node. The transition Alive -> Dead
// happens at most once per generation and never reverses.
type Status int

const (
	StatusAlive Status = iota
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusDead:
		return "dead"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Policy is the closed set of inference decision rules. New policies are not
// added at runtime; dispatch lives in the policy package.
type Policy int

const (
	// PolicyAggressive always infers when the frequency draw succeeds.
	PolicyAggressive Policy = iota
	// PolicyConservative infers only on a healthy battery.
	PolicyConservative
	// PolicySmartAdaptive infers freely in abundant sunlight, otherwise
	// requires a moderate battery reserve.
	PolicySmartAdaptive
)

func (p Policy) String() string {
	switch p {
	case PolicyAggressive:
		return "aggressive"
	case PolicyConservative:
		return "conservative"
	case PolicySmartAdaptive:
		return "smart-adaptive"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// AllPolicies returns the full policy set for random selection.
func AllPolicies() []Policy {
	return []Policy{PolicyAggressive, PolicyConservative, PolicySmartAdaptive}
}

// HardwareClass identifies an entry in the hardware catalog.
type HardwareClass string

const (
	HardwareESP32        HardwareClass = "esp32"
	HardwareRaspberryPi4 HardwareClass = "raspberry-pi-4"
	HardwareJetsonNano   HardwareClass = "jetson-nano"
)

// HardwareSpec is the fixed specification of a hardware class, assigned to a
// node at spawn and immutable for the node's lifetime.
type HardwareSpec struct {
	Class          HardwareClass `json:"class"`
	CapacityWh     float64       `json:"capacity_wh"`
	IdlePowerW     float64       `json:"idle_power_w"`
	MaxSolarInputW float64       `json:"max_solar_input_w"`
}

// Gene is the heritable configuration of a node. It is immutable within a
// generation; the evolution cycle copies and mutates it at respawn.
type Gene struct {
	Model                 ModelID `json:"model"`
	InferenceFrequency    float64 `json:"inference_frequency"`
	SolarEfficiencyFactor float64 `json:"solar_efficiency_factor"`
	Policy                Policy  `json:"policy"`
}

// NodeState is a read-only snapshot of one node, exposed to external
// renderers. Position is owned by the renderer, not the core.
type NodeState struct {
	ID              string       `json:"id"`
	Gene            Gene         `json:"gene"`
	Hardware        HardwareSpec `json:"hardware"`
	BatteryWh       float64      `json:"battery_wh"`
	BatteryFraction float64      `json:"battery_fraction"`
	SurvivalScore   float64      `json:"survival_score"`
	Status          string       `json:"status"`
}

// WorldState is a read-only snapshot of the whole simulation.
type WorldState struct {
	RunID                  string      `json:"run_id"`
	Epoch                  int         `json:"epoch"`
	HourOfDay              float64     `json:"hour_of_day"`
	Alive                  int         `json:"alive"`
	TotalEnergyConsumedWh  float64     `json:"total_energy_consumed_wh"`
	TotalEnergyHarvestedWh float64     `json:"total_energy_harvested_wh"`
	LiveTicks              uint64      `json:"live_ticks"`
	Nodes                  []NodeState `json:"nodes"`
}

// EpochReport is the diagnostic summary emitted by one evolution cycle.
type EpochReport struct {
	Epoch               int     `json:"epoch"`
	Extinct             bool    `json:"extinct"`
	Survivors           int     `json:"survivors"`
	EliteCount          int     `json:"elite_count"`
	PopulationSize      int     `json:"population_size"`
	TopFitness          float64 `json:"top_fitness"`
	MeanFitness         float64 `json:"mean_fitness"`
	DominantModel       ModelID `json:"dominant_model,omitempty"`
	DominantPolicy      string  `json:"dominant_policy,omitempty"`
	BestAccuracyModel   ModelID `json:"best_accuracy_model,omitempty"`
	BestAccuracyPercent float64 `json:"best_accuracy_percent,omitempty"`
}

// RunSummary aggregates one simulation run for the report store.
type RunSummary struct {
	RunID                  string  `json:"run_id"`
	Seed                   int64   `json:"seed"`
	Epochs                 int     `json:"epochs"`
	Extinctions            int     `json:"extinctions"`
	BestFitness            float64 `json:"best_fitness"`
	TotalEnergyConsumedWh  float64 `json:"total_energy_consumed_wh"`
	TotalEnergyHarvestedWh float64 `json:"total_energy_harvested_wh"`
	LiveTicks              uint64  `json:"live_ticks"`
}
