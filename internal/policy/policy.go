// Package policy implements the closed set of per-tick inference decision
// rules. Policies are pure: given the same inputs and random draw they always
// produce the same answer, and they never touch node state.
package policy

import (
	"math/rand"

	"sunswarm/internal/model"
)

// Battery thresholds are fractions of the node's own hardware capacity, so a
// heterogeneous fleet gets equivalent behavior across battery sizes.
const (
	conservativeChargeFraction = 0.50
	adaptiveChargeFraction     = 0.30
	abundantSolarW             = 5.0
)

// ShouldInfer decides whether a node attempts inference this tick.
//
// The decision is a two-stage gate: first a Bernoulli draw with success
// probability baseProbability (the gene's inference-frequency ratio); if the
// draw fails the node idles regardless of policy. If it succeeds, the
// policy-specific rule applies.
func ShouldInfer(rng *rand.Rand, p model.Policy, batteryWh, capacityWh, solarOutputW, baseProbability float64) bool {
	if rng.Float64() >= baseProbability {
		return false
	}

	switch p {
	case model.PolicyAggressive:
		// Ignores battery status until empty.
		return true
	case model.PolicyConservative:
		return batteryWh > conservativeChargeFraction*capacityWh
	case model.PolicySmartAdaptive:
		// Abundant sunlight: run freely. Night or overcast: conserve
		// unless reserves are healthy.
		if solarOutputW > abundantSolarW {
			return true
		}
		return batteryWh > adaptiveChargeFraction*capacityWh
	default:
		return false
	}
}
