// Package sim is the per-tick physics core: it advances battery state,
// survival scores, and the global simulation clock for a population of
// solar-powered edge nodes.
package sim

import (
	"sunswarm/internal/model"
)

// Node is the unit of simulation. Gene and Hardware are fixed for the node's
// lifetime; BatteryWh, SurvivalScore, and Status are mutated by Step while
// the node is alive. A dead node is never touched again within a generation.
type Node struct {
	ID            string
	Gene          model.Gene
	Hardware      model.HardwareSpec
	BatteryWh     float64
	SurvivalScore float64
	Status        model.Status
}

// Snapshot returns a read-only view of the node for external renderers.
func (n *Node) Snapshot() model.NodeState {
	fraction := 0.0
	if n.Hardware.CapacityWh > 0 {
		fraction = n.BatteryWh / n.Hardware.CapacityWh
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return model.NodeState{
		ID:              n.ID,
		Gene:            n.Gene,
		Hardware:        n.Hardware,
		BatteryWh:       n.BatteryWh,
		BatteryFraction: fraction,
		SurvivalScore:   n.SurvivalScore,
		Status:          n.Status.String(),
	}
}

// World is the explicit simulation context: the live population plus the
// global mutable state (hour clock, energy totals, epoch counter). It is
// owned by the top-level driver and passed by reference into both the
// physics step and the evolution cycle.
type World struct {
	Nodes []*Node

	// HourOfDay is the global simulated clock in [0, 24).
	HourOfDay float64
	// Epoch counts completed evolution cycles.
	Epoch int

	TotalEnergyConsumedWh  float64
	TotalEnergyHarvestedWh float64
	// LiveTicks counts node-ticks survived across the whole run.
	LiveTicks uint64
}

// Alive returns the number of live nodes.
func (w *World) Alive() int {
	count := 0
	for _, n := range w.Nodes {
		if n.Status == model.StatusAlive {
			count++
		}
	}
	return count
}

// Snapshot returns a read-only view of the whole world.
func (w *World) Snapshot(runID string) model.WorldState {
	nodes := make([]model.NodeState, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		nodes = append(nodes, n.Snapshot())
	}
	return model.WorldState{
		RunID:                  runID,
		Epoch:                  w.Epoch,
		HourOfDay:              w.HourOfDay,
		Alive:                  w.Alive(),
		TotalEnergyConsumedWh:  w.TotalEnergyConsumedWh,
		TotalEnergyHarvestedWh: w.TotalEnergyHarvestedWh,
		LiveTicks:              w.LiveTicks,
		Nodes:                  nodes,
	}
}

type stepTotals struct {
	consumedWh  float64
	harvestedWh float64
	liveTicks   uint64
}

func (w *World) apply(t stepTotals) {
	w.TotalEnergyConsumedWh += t.consumedWh
	w.TotalEnergyHarvestedWh += t.harvestedWh
	w.LiveTicks += t.liveTicks
}
