package evo

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"sunswarm/internal/model"
	"sunswarm/internal/sim"
)

// Config parameterizes an EpochRunner. Engine is mandatory; the other
// fields default to the canonical selector, elite fraction, and mutation
// chain.
type Config struct {
	Engine *sim.Engine
	// Selector chooses parents from the ranked survivor pool.
	Selector Selector
	// EliteFraction sizes the elite prefix, ceiling-rounded with a floor
	// of one survivor.
	EliteFraction float64
	// Mutations is the operator chain applied to every offspring gene.
	Mutations Pipeline
}

const defaultEliteFraction = 0.15

// EpochRunner executes one evolution cycle over a world: rank survivors,
// report diagnostics, and respawn the next generation from mutated elite
// genes.
type EpochRunner struct {
	engine        *sim.Engine
	selector      Selector
	eliteFraction float64
	mutations     Pipeline
}

// NewEpochRunner validates cfg and fills defaults.
func NewEpochRunner(cfg Config) (*EpochRunner, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("evo: engine is required")
	}
	if cfg.EliteFraction == 0 {
		cfg.EliteFraction = defaultEliteFraction
	}
	if cfg.EliteFraction < 0 || cfg.EliteFraction > 1 {
		return nil, fmt.Errorf("evo: elite fraction must be in (0, 1], got %g", cfg.EliteFraction)
	}
	if cfg.Selector == nil {
		cfg.Selector = EliteSelector{}
	}
	if cfg.Mutations == nil {
		pipeline, err := DefaultPipeline(cfg.Engine.Models(), cfg.Engine.Policies())
		if err != nil {
			return nil, err
		}
		cfg.Mutations = pipeline
	}
	return &EpochRunner{
		engine:        cfg.Engine,
		selector:      cfg.Selector,
		eliteFraction: cfg.EliteFraction,
		mutations:     cfg.Mutations,
	}, nil
}

// RunEpoch closes the current generation and opens the next one. On
// extinction the world is reseeded with fresh random genes instead of
// breeding. The world's clock and energy totals carry across generations.
func (r *EpochRunner) RunEpoch(w *sim.World, rng *rand.Rand) (model.EpochReport, error) {
	report := model.EpochReport{
		Epoch:          w.Epoch,
		PopulationSize: len(w.Nodes),
	}

	ranked := make([]ScoredGene, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		if n.Status != model.StatusAlive {
			continue
		}
		ranked = append(ranked, ScoredGene{Gene: n.Gene, Fitness: n.SurvivalScore})
	}

	if len(ranked) == 0 {
		report.Extinct = true
		w.Epoch++
		r.engine.Reseed(w, rng)
		return report, nil
	}

	// Stable descending sort keeps the node iteration order as the
	// tie-break, so equal scores rank deterministically.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	eliteCount := int(math.Ceil(r.eliteFraction * float64(len(ranked))))
	if eliteCount < 1 {
		eliteCount = 1
	}

	report.Survivors = len(ranked)
	report.EliteCount = eliteCount
	report.TopFitness = ranked[0].Fitness
	sum := 0.0
	for _, sg := range ranked {
		sum += sg.Fitness
	}
	report.MeanFitness = sum / float64(len(ranked))
	r.fillDominance(&report, ranked)

	w.Epoch++
	next := make([]*sim.Node, 0, r.engine.PopulationSize())
	for i := 0; i < r.engine.PopulationSize(); i++ {
		parent, err := r.selector.PickParent(rng, ranked, eliteCount)
		if err != nil {
			return model.EpochReport{}, fmt.Errorf("evo: epoch %d: %w", report.Epoch, err)
		}
		child := r.mutations.Apply(rng, parent)
		id := fmt.Sprintf("node-e%d-i%d", w.Epoch, i)
		next = append(next, r.engine.SpawnNode(rng, id, child))
	}
	w.Nodes = next

	return report, nil
}

// fillDominance records the most common survivor model and policy, plus the
// most accurate model present among survivors. Ties break toward the
// lexicographically smaller name.
func (r *EpochRunner) fillDominance(report *model.EpochReport, ranked []ScoredGene) {
	modelCounts := make(map[model.ModelID]int)
	policyCounts := make(map[string]int)
	for _, sg := range ranked {
		modelCounts[sg.Gene.Model]++
		policyCounts[sg.Gene.Policy.String()]++
	}

	for id, count := range modelCounts {
		best := count > modelCounts[report.DominantModel]
		tie := count == modelCounts[report.DominantModel] && id < report.DominantModel
		if report.DominantModel == "" || best || tie {
			report.DominantModel = id
		}
	}
	for name, count := range policyCounts {
		best := count > policyCounts[report.DominantPolicy]
		tie := count == policyCounts[report.DominantPolicy] && name < report.DominantPolicy
		if report.DominantPolicy == "" || best || tie {
			report.DominantPolicy = name
		}
	}

	profiles := r.engine.Profiles()
	for id := range modelCounts {
		p := profiles.Resolve(id)
		better := p.AccuracyPercent > report.BestAccuracyPercent
		tie := p.AccuracyPercent == report.BestAccuracyPercent && id < report.BestAccuracyModel
		if report.BestAccuracyModel == "" || better || tie {
			report.BestAccuracyModel = id
			report.BestAccuracyPercent = p.AccuracyPercent
		}
	}
}
