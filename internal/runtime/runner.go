// Package runtime drives a simulation run end to end: the physics tick
// loop, the scheduled evolution cycle, diagnostics persistence, and the
// snapshot surface the HTTP API reads from.
package runtime

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/robfig/cron/v3"

	"sunswarm/internal/evo"
	"sunswarm/internal/model"
	"sunswarm/internal/sim"
	"sunswarm/internal/stats"
	"sunswarm/internal/storage"
)

const (
	defaultTickInterval  = 250 * time.Millisecond
	defaultEpochInterval = 30 * time.Second
)

// Config parameterizes a Runner. Engine, Epochs, and Store are mandatory.
type Config struct {
	Engine *sim.Engine
	Epochs *evo.EpochRunner
	Store  storage.Store
	Logger hclog.Logger

	Seed          int64
	TickInterval  time.Duration
	EpochInterval time.Duration
	// EpochLimit stops the run after that many evolution cycles; 0 runs
	// until the context is canceled.
	EpochLimit int
	// ArtifactsDir receives the run's JSON and CSV artifacts on shutdown.
	// Empty skips artifact writing.
	ArtifactsDir string
}

// Runner owns one world and advances it until the run ends. All world
// access goes through the runner's lock; the tick loop, the epoch
// scheduler, and API snapshots never race.
type Runner struct {
	cfg    Config
	logger hclog.Logger
	runID  string

	mu      sync.Mutex
	world   *sim.World
	rng     *rand.Rand
	reports []model.EpochReport

	epochsRun   int
	extinctions int
	bestFitness float64

	limitOnce    sync.Once
	limitReached chan struct{}
}

// NewRunner validates cfg, seeds the world, and assigns a fresh run id.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("runtime: engine is required")
	}
	if cfg.Epochs == nil {
		return nil, fmt.Errorf("runtime: epoch runner is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("runtime: store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if cfg.EpochInterval <= 0 {
		cfg.EpochInterval = defaultEpochInterval
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	r := &Runner{
		cfg:          cfg,
		logger:       cfg.Logger,
		runID:        uuid.NewString(),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		limitReached: make(chan struct{}),
	}
	r.world = cfg.Engine.NewWorld(r.rng)
	return r, nil
}

// RunID returns the identifier assigned to this run.
func (r *Runner) RunID() string { return r.runID }

// WorldState snapshots the live world for the HTTP API.
func (r *Runner) WorldState() model.WorldState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world.Snapshot(r.runID)
}

// EpochReports returns the reports produced so far, oldest first.
func (r *Runner) EpochReports() []model.EpochReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EpochReport, len(r.reports))
	copy(out, r.reports)
	return out
}

// Run drives the simulation until the context is canceled or the epoch
// limit is reached, then persists the run summary and artifacts.
func (r *Runner) Run(ctx context.Context) (model.RunSummary, error) {
	r.logger.Info("run starting",
		"run_id", r.runID,
		"seed", r.cfg.Seed,
		"population", r.cfg.Engine.PopulationSize(),
		"tick_interval", r.cfg.TickInterval,
		"epoch_interval", r.cfg.EpochInterval,
	)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", r.cfg.EpochInterval), r.runEpoch); err != nil {
		return model.RunSummary{}, fmt.Errorf("runtime: schedule epochs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	last := time.Now()
loop:
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("run interrupted", "run_id", r.runID)
			break loop
		case <-r.limitReached:
			r.logger.Info("epoch limit reached", "run_id", r.runID, "epochs", r.epochsRun)
			break loop
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.step(dt)
		}
	}

	return r.finalize()
}

func (r *Runner) step(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.Engine.Step(r.world, dt, r.rng)
}

func (r *Runner) runEpoch() {
	r.mu.Lock()
	report, err := r.cfg.Epochs.RunEpoch(r.world, r.rng)
	if err != nil {
		r.mu.Unlock()
		r.logger.Error("evolution cycle failed", "run_id", r.runID, "error", err)
		return
	}
	r.reports = append(r.reports, report)
	r.epochsRun++
	if report.Extinct {
		r.extinctions++
	}
	if report.TopFitness > r.bestFitness {
		r.bestFitness = report.TopFitness
	}
	limit := r.cfg.EpochLimit > 0 && r.epochsRun >= r.cfg.EpochLimit
	r.mu.Unlock()

	r.logger.Info("evolution cycle complete",
		"run_id", r.runID,
		"epoch", report.Epoch,
		"survivors", report.Survivors,
		"elite", report.EliteCount,
		"top_fitness", report.TopFitness,
		"extinct", report.Extinct,
		"dominant_model", report.DominantModel,
		"dominant_policy", report.DominantPolicy,
	)

	if err := r.cfg.Store.SaveEpochReport(r.runID, report); err != nil {
		r.logger.Error("saving epoch report", "run_id", r.runID, "epoch", report.Epoch, "error", err)
	}
	if limit {
		r.limitOnce.Do(func() { close(r.limitReached) })
	}
}

func (r *Runner) finalize() (model.RunSummary, error) {
	r.mu.Lock()
	summary := model.RunSummary{
		RunID:                  r.runID,
		Seed:                   r.cfg.Seed,
		Epochs:                 r.epochsRun,
		Extinctions:            r.extinctions,
		BestFitness:            r.bestFitness,
		TotalEnergyConsumedWh:  r.world.TotalEnergyConsumedWh,
		TotalEnergyHarvestedWh: r.world.TotalEnergyHarvestedWh,
		LiveTicks:              r.world.LiveTicks,
	}
	reports := make([]model.EpochReport, len(r.reports))
	copy(reports, r.reports)
	r.mu.Unlock()

	if err := r.cfg.Store.SaveRunSummary(summary); err != nil {
		return summary, fmt.Errorf("runtime: save run summary: %w", err)
	}

	if r.cfg.ArtifactsDir != "" {
		dir, err := stats.WriteRunArtifacts(r.cfg.ArtifactsDir, stats.RunArtifacts{
			Summary: summary,
			Reports: reports,
		})
		if err != nil {
			return summary, fmt.Errorf("runtime: write artifacts: %w", err)
		}
		r.logger.Info("run artifacts written", "run_id", r.runID, "dir", dir)
	}

	r.logger.Info("run complete",
		"run_id", r.runID,
		"epochs", summary.Epochs,
		"extinctions", summary.Extinctions,
		"best_fitness", summary.BestFitness,
	)
	return summary, nil
}
