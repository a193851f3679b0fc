package sim

import (
	"fmt"
	"math/rand"
	"sync"

	"sunswarm/internal/model"
	"sunswarm/internal/policy"
	"sunswarm/internal/profile"
)

// solarEnvironmentPenalty models dust, panel tilt, and shading losses on top
// of the raw irradiance table.
const solarEnvironmentPenalty = 0.15

// initialChargeFraction is the battery level of every freshly spawned node,
// as a fraction of its hardware capacity.
const initialChargeFraction = 0.8

// Config parameterizes an Engine. Zero values for Workers, Hardware, Models,
// and Policies select sensible defaults; GridSize, TimeScale, and Profiles
// are mandatory.
type Config struct {
	// GridSize is the side length of the deployment grid. The population
	// holds GridSize*GridSize nodes.
	GridSize int
	// TimeScale stretches wall-clock tick durations into simulated seconds
	// for energy flow and the hour clock. Survival scores accrue unscaled.
	TimeScale float64
	// StartHour is the simulated hour of day at world creation, in [0, 24).
	StartHour float64
	// Workers bounds physics-step parallelism. Values below 2 keep the
	// step serial.
	Workers int

	Profiles *profile.Table
	Solar    profile.SolarTable

	// Hardware, Models, and Policies are the catalogs drawn from when
	// spawning random nodes. Empty slices select the full built-in sets.
	Hardware []model.HardwareClass
	Models   []model.ModelID
	Policies []model.Policy
}

// Engine advances a World tick by tick. It holds no mutable simulation
// state itself, so a single Engine may drive several independent worlds.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns a ready engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.GridSize <= 0 {
		return nil, fmt.Errorf("sim: grid size must be positive, got %d", cfg.GridSize)
	}
	if cfg.TimeScale <= 0 {
		return nil, fmt.Errorf("sim: time scale must be positive, got %g", cfg.TimeScale)
	}
	if cfg.StartHour < 0 || cfg.StartHour >= 24 {
		return nil, fmt.Errorf("sim: start hour must be in [0, 24), got %g", cfg.StartHour)
	}
	if cfg.Profiles == nil {
		return nil, fmt.Errorf("sim: power profile table is required")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if len(cfg.Hardware) == 0 {
		cfg.Hardware = profile.AllHardware()
	}
	if len(cfg.Models) == 0 {
		cfg.Models = profile.AllModels()
	}
	if len(cfg.Policies) == 0 {
		cfg.Policies = model.AllPolicies()
	}
	return &Engine{cfg: cfg}, nil
}

// PopulationSize returns the number of nodes the engine seeds into a world.
func (e *Engine) PopulationSize() int {
	return e.cfg.GridSize * e.cfg.GridSize
}

// Profiles exposes the power profile table shared with the evolution cycle.
func (e *Engine) Profiles() *profile.Table {
	return e.cfg.Profiles
}

// Models returns the model catalog nodes are spawned and mutated from.
func (e *Engine) Models() []model.ModelID {
	return e.cfg.Models
}

// Policies returns the policy catalog nodes are spawned and mutated from.
func (e *Engine) Policies() []model.Policy {
	return e.cfg.Policies
}

// Step advances the world by one tick of dt wall-clock seconds. Energy flow
// and the hour clock use dt*TimeScale; survival scores accrue raw dt. Dead
// nodes are skipped entirely. The order per live node is fixed: decide,
// drain, harvest, clamp, death check, score.
func (e *Engine) Step(w *World, dt float64, rng *rand.Rand) {
	if dt <= 0 {
		return
	}
	dtScaled := dt * e.cfg.TimeScale

	hour := int(w.HourOfDay) % 24
	baseSolarW := e.cfg.Solar.OutputW(hour)

	if e.cfg.Workers > 1 && len(w.Nodes) >= e.cfg.Workers {
		e.stepParallel(w, dt, dtScaled, baseSolarW, rng)
	} else {
		var totals stepTotals
		for _, n := range w.Nodes {
			e.stepNode(n, dt, dtScaled, baseSolarW, rng, &totals)
		}
		w.apply(totals)
	}

	w.HourOfDay += dtScaled / 3600.0
	for w.HourOfDay >= 24 {
		w.HourOfDay -= 24
	}
}

func (e *Engine) stepNode(n *Node, dt, dtScaled, baseSolarW float64, rng *rand.Rand, totals *stepTotals) {
	if n.Status == model.StatusDead {
		return
	}

	prof := e.cfg.Profiles.Resolve(n.Gene.Model)

	solarW := baseSolarW * n.Gene.SolarEfficiencyFactor * solarEnvironmentPenalty
	if solarW > n.Hardware.MaxSolarInputW {
		solarW = n.Hardware.MaxSolarInputW
	}

	infer := policy.ShouldInfer(rng, n.Gene.Policy, n.BatteryWh, n.Hardware.CapacityWh, solarW, n.Gene.InferenceFrequency)

	// The board's idle draw is an unconditional baseline; the resident model
	// adds its inference power when active and its standby power otherwise.
	drawW := n.Hardware.IdlePowerW + prof.IdlePowerW
	if infer {
		drawW = n.Hardware.IdlePowerW + prof.InferencePowerW
	}

	drainWh := drawW * dtScaled / 3600.0
	harvestWh := solarW * dtScaled / 3600.0

	n.BatteryWh += harvestWh - drainWh
	if n.BatteryWh > n.Hardware.CapacityWh {
		n.BatteryWh = n.Hardware.CapacityWh
	}
	if n.BatteryWh < 0 {
		n.BatteryWh = 0
	}

	totals.consumedWh += drainWh
	totals.harvestedWh += harvestWh

	if n.BatteryWh <= 0 {
		n.Status = model.StatusDead
		return
	}
	n.SurvivalScore += dt
	totals.liveTicks++
}

// stepParallel partitions the population into contiguous chunks, one per
// worker. Each worker gets its own rand source derived from the caller's,
// so a fixed seed and worker count reproduce the same run. Per-node state
// is disjoint across chunks; totals are reduced after the join.
func (e *Engine) stepParallel(w *World, dt, dtScaled, baseSolarW float64, rng *rand.Rand) {
	workers := e.cfg.Workers
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	chunk := (len(w.Nodes) + workers - 1) / workers
	totals := make([]stepTotals, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunk
		if start >= len(w.Nodes) {
			break
		}
		end := start + chunk
		if end > len(w.Nodes) {
			end = len(w.Nodes)
		}
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			local := rand.New(rand.NewSource(seeds[i]))
			for _, n := range w.Nodes[start:end] {
				e.stepNode(n, dt, dtScaled, baseSolarW, local, &totals[i])
			}
		}(i, start, end)
	}
	wg.Wait()

	for _, t := range totals {
		w.apply(t)
	}
}
