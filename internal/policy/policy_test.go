package policy

import (
	"math/rand"
	"testing"

	"sunswarm/internal/model"
)

// alwaysInfer runs the decision with a frequency of 1.0 so the Bernoulli
// gate always passes and only the policy rule is under test.
func alwaysInfer(t *testing.T, p model.Policy, batteryWh, capacityWh, solarW float64) bool {
	t.Helper()
	return ShouldInfer(rand.New(rand.NewSource(1)), p, batteryWh, capacityWh, solarW, 1.0)
}

func TestShouldInferFrequencyGate(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 1000; i++ {
		if ShouldInfer(rng, model.PolicyAggressive, 10, 10, 0, 0) {
			t.Fatal("zero frequency must never infer")
		}
	}

	rng = rand.New(rand.NewSource(9))
	hits := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if ShouldInfer(rng, model.PolicyAggressive, 10, 10, 0, 0.5) {
			hits++
		}
	}
	rate := float64(hits) / trials
	if rate < 0.47 || rate > 0.53 {
		t.Fatalf("observed inference rate %g at frequency 0.5", rate)
	}
}

func TestAggressiveIgnoresBattery(t *testing.T) {
	if !alwaysInfer(t, model.PolicyAggressive, 0.001, 40, 0) {
		t.Fatal("aggressive must infer on any positive battery")
	}
}

func TestConservativeThresholdScalesWithCapacity(t *testing.T) {
	cases := []struct {
		batteryWh, capacityWh float64
		want                  bool
	}{
		{25, 40, true},  // 62.5% of capacity
		{10, 40, false}, // 25% of capacity
		{20, 40, false}, // exactly at the 50% threshold
		{0.8, 1.5, true},
		{0.7, 1.5, false},
	}
	for _, tc := range cases {
		got := alwaysInfer(t, model.PolicyConservative, tc.batteryWh, tc.capacityWh, 0)
		if got != tc.want {
			t.Fatalf("conservative %g/%g Wh: infer = %v, want %v",
				tc.batteryWh, tc.capacityWh, got, tc.want)
		}
	}
}

func TestSmartAdaptive(t *testing.T) {
	cases := []struct {
		name                  string
		batteryWh, capacityWh float64
		solarW                float64
		want                  bool
	}{
		{"abundant sun overrides low battery", 1, 40, 6.0, true},
		{"solar exactly at threshold defers to battery", 1, 40, 5.0, false},
		{"dim sun healthy battery", 15, 40, 2.0, true},
		{"dim sun low battery", 10, 40, 2.0, false},
		{"night healthy battery", 20, 40, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := alwaysInfer(t, model.PolicySmartAdaptive, tc.batteryWh, tc.capacityWh, tc.solarW)
			if got != tc.want {
				t.Fatalf("infer = %v, want %v", got, tc.want)
			}
		})
	}
}
