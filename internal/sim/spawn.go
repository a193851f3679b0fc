package sim

import (
	"fmt"
	"math/rand"

	"sunswarm/internal/model"
	"sunswarm/internal/profile"
)

// Spawn-time gene ranges. Mutation clamps are wider than these initial
// draws, so first-generation genes always sit inside the legal bounds.
const (
	minInitialFrequency = 0.3
	maxInitialFrequency = 1.0
	minInitialSolar     = 0.8
	maxInitialSolar     = 1.2
)

// RandomGene draws a uniformly random gene from the engine's catalogs.
func (e *Engine) RandomGene(rng *rand.Rand) model.Gene {
	return model.Gene{
		Model:                 e.cfg.Models[rng.Intn(len(e.cfg.Models))],
		InferenceFrequency:    minInitialFrequency + rng.Float64()*(maxInitialFrequency-minInitialFrequency),
		SolarEfficiencyFactor: minInitialSolar + rng.Float64()*(maxInitialSolar-minInitialSolar),
		Policy:                e.cfg.Policies[rng.Intn(len(e.cfg.Policies))],
	}
}

// SpawnNode builds a live node around gene with freshly rolled hardware.
// Hardware is deliberately not heritable: every node, first generation or
// offspring, is assigned a random board and starts at the same charge
// fraction of whatever capacity that board has.
func (e *Engine) SpawnNode(rng *rand.Rand, id string, gene model.Gene) *Node {
	hw := profile.HardwareSpecFor(e.cfg.Hardware[rng.Intn(len(e.cfg.Hardware))])
	return &Node{
		ID:        id,
		Gene:      gene,
		Hardware:  hw,
		BatteryWh: hw.CapacityWh * initialChargeFraction,
		Status:    model.StatusAlive,
	}
}

// NewWorld creates a world seeded with a full random population and the
// configured start hour.
func (e *Engine) NewWorld(rng *rand.Rand) *World {
	w := &World{HourOfDay: e.cfg.StartHour}
	w.Nodes = e.seed(rng, 0)
	return w
}

// Reseed replaces the entire population with fresh random nodes, keeping
// the world's clock, epoch counter, and energy totals. Used after an
// extinction event.
func (e *Engine) Reseed(w *World, rng *rand.Rand) {
	w.Nodes = e.seed(rng, w.Epoch)
}

func (e *Engine) seed(rng *rand.Rand, epoch int) []*Node {
	nodes := make([]*Node, 0, e.PopulationSize())
	for i := 0; i < e.PopulationSize(); i++ {
		id := fmt.Sprintf("node-e%d-i%d", epoch, i)
		nodes = append(nodes, e.SpawnNode(rng, id, e.RandomGene(rng)))
	}
	return nodes
}
