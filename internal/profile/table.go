package profile

import "sunswarm/internal/model"

// Fallback power figures used when a model id is in neither the override
// table nor the built-in catalog. Data incompleteness degrades gracefully;
// a lookup never fails a tick.
const (
	FallbackIdlePowerW      = 2.5
	FallbackInferencePowerW = 4.5
)

// Table resolves power profiles for the simulation. Measurement overrides
// loaded from CSV take precedence; the built-in catalog is the reliability
// fallback. Immutable after construction.
type Table struct {
	overrides map[string]PowerProfile
}

// NewTable builds a resolution table. overrides may be nil; keys are model
// names as they appear in measurement CSVs.
func NewTable(overrides map[string]PowerProfile) *Table {
	copied := make(map[string]PowerProfile, len(overrides))
	for name, p := range overrides {
		copied[name] = p
	}
	return &Table{overrides: copied}
}

// Resolve returns the power profile for a model id: override first, then the
// built-in catalog, then the documented fallback constants.
func (t *Table) Resolve(id model.ModelID) PowerProfile {
	if t != nil {
		if p, ok := t.overrides[string(id)]; ok {
			return p
		}
	}
	if p, ok := DefaultPowerProfile(id); ok {
		return p
	}
	return PowerProfile{
		ModelName:       string(id),
		IdlePowerW:      FallbackIdlePowerW,
		InferencePowerW: FallbackInferencePowerW,
	}
}

// HasOverride reports whether a measurement override is present for id.
func (t *Table) HasOverride(id model.ModelID) bool {
	if t == nil {
		return false
	}
	_, ok := t.overrides[string(id)]
	return ok
}
