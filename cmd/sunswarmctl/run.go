package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"

	"sunswarm/internal/config"
	"sunswarm/internal/evo"
	"sunswarm/internal/loader"
	"sunswarm/internal/profile"
	"sunswarm/internal/runtime"
	"sunswarm/internal/server"
	"sunswarm/internal/sim"
	"sunswarm/internal/stats"
	"sunswarm/internal/storage"
)

func newLogger(cfg config.LogConfig) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "sunswarm",
		Level:      hclog.LevelFromString(cfg.Level),
		JSONFormat: cfg.JSON,
	})
}

func runSimulation(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	seed := fs.Int64("seed", cfg.Run.Seed, "random seed (0 picks a time-based seed)")
	gridSize := fs.Int("grid", cfg.Run.GridSize, "deployment grid side length")
	timeScale := fs.Float64("time-scale", cfg.Run.TimeScale, "simulated seconds per wall second")
	startHour := fs.Float64("start-hour", cfg.Run.StartHour, "hour of day at startup")
	workers := fs.Int("workers", cfg.Run.Workers, "physics step worker count")
	tickInterval := fs.Duration("tick", cfg.Run.TickInterval, "physics tick interval")
	epochInterval := fs.Duration("epoch-interval", cfg.Run.EpochInterval, "evolution cycle interval")
	epochLimit := fs.Int("epochs", cfg.Run.EpochLimit, "stop after N evolution cycles (0 runs until interrupted)")
	eliteFraction := fs.Float64("elite", cfg.Run.EliteFraction, "elite survivor fraction")
	selectorName := fs.String("selector", cfg.Run.Selector, "parent selector: elite or tournament")
	powerCSV := fs.String("power-csv", cfg.Run.PowerProfileCSV, "power measurement CSV (empty uses built-in catalog)")
	solarCSV := fs.String("solar-csv", cfg.Run.SolarProfileCSV, "hourly irradiance CSV (empty uses built-in table)")
	artifactsDir := fs.String("artifacts", cfg.Run.ArtifactsDir, "artifact output directory (empty disables)")
	storeKind := fs.String("store", cfg.Store.Kind, "diagnostics store kind (empty picks the build default)")
	storePath := fs.String("store-path", cfg.Store.Path, "diagnostics store path")
	addr := fs.String("addr", cfg.Server.Addr, "state API listen address")
	noServer := fs.Bool("no-server", !cfg.Server.Enabled, "disable the state API")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(cfg.Log)

	table, err := buildProfileTable(*powerCSV, logger)
	if err != nil {
		return err
	}
	solar := profile.DefaultSolarTable()
	if *solarCSV != "" {
		if solar, err = loader.LoadSolarTable(*solarCSV, logger); err != nil {
			return err
		}
	}

	engine, err := sim.NewEngine(sim.Config{
		GridSize:  *gridSize,
		TimeScale: *timeScale,
		StartHour: *startHour,
		Workers:   *workers,
		Profiles:  table,
		Solar:     solar,
	})
	if err != nil {
		return err
	}

	selector, err := buildSelector(*selectorName)
	if err != nil {
		return err
	}
	epochs, err := evo.NewEpochRunner(evo.Config{
		Engine:        engine,
		Selector:      selector,
		EliteFraction: *eliteFraction,
	})
	if err != nil {
		return err
	}

	kind := *storeKind
	if kind == "" {
		kind = storage.DefaultStoreKind()
	}
	store, err := storage.NewStore(kind, *storePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.CloseIfSupported(store); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()
	if err := store.Init(); err != nil {
		return err
	}

	runner, err := runtime.NewRunner(runtime.Config{
		Engine:        engine,
		Epochs:        epochs,
		Store:         store,
		Logger:        logger,
		Seed:          *seed,
		TickInterval:  *tickInterval,
		EpochInterval: *epochInterval,
		EpochLimit:    *epochLimit,
		ArtifactsDir:  *artifactsDir,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*noServer {
		srv := server.New(*addr, runner, logger.Named("http"))
		go func() {
			if err := srv.Start(); err != nil {
				logger.Error("state API failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutting down state API", "error", err)
			}
		}()
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Print(stats.FormatSummary(stats.RunArtifacts{
		Summary: summary,
		Reports: runner.EpochReports(),
	}))
	return nil
}

func buildProfileTable(csvPath string, logger hclog.Logger) (*profile.Table, error) {
	if csvPath == "" {
		return profile.NewTable(nil), nil
	}
	overrides, err := loader.LoadPowerProfiles(csvPath, logger)
	if err != nil {
		return nil, err
	}
	return profile.NewTable(overrides), nil
}

func buildSelector(name string) (evo.Selector, error) {
	switch name {
	case "elite":
		return evo.EliteSelector{}, nil
	case "tournament":
		return evo.NewTournamentSelector(3)
	default:
		return nil, fmt.Errorf("unknown selector %q (want elite or tournament)", name)
	}
}
