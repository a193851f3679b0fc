package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"sunswarm/internal/config"
	"sunswarm/internal/profile"
	"sunswarm/internal/stats"
	"sunswarm/internal/storage"
)

func runProfiles(args []string) error {
	fs := flag.NewFlagSet("profiles", flag.ExitOnError)
	csvPath := fs.String("csv", "", "power measurement CSV layered over the built-in catalog")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := buildProfileTable(*csvPath, nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tIDLE W\tINFER W\tTIME MS\tSIZE MB\tACC %\tEFF\tSOURCE")
	for _, id := range profile.AllModels() {
		p := table.Resolve(id)
		source := "catalog"
		if table.HasOverride(id) {
			source = "measured"
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
			p.ModelName, p.IdlePowerW, p.InferencePowerW, p.AvgInferenceTimeMs,
			p.ModelSizeMB, p.AccuracyPercent, p.EfficiencyRatio(), source)
	}
	return w.Flush()
}

func runHardware(args []string) error {
	fs := flag.NewFlagSet("hardware", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tCAPACITY WH\tIDLE W\tMAX SOLAR W")
	for _, class := range profile.AllHardware() {
		spec := profile.HardwareSpecFor(class)
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\n",
			spec.Class, spec.CapacityWh, spec.IdlePowerW, spec.MaxSolarInputW)
	}
	return w.Flush()
}

func runReport(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	storeKind := fs.String("store", cfg.Store.Kind, "diagnostics store kind (empty picks the build default)")
	storePath := fs.String("store-path", cfg.Store.Path, "diagnostics store path")
	runID := fs.String("run", "", "run id to report on (empty lists known runs)")
	if err := fs.Parse(args); err != nil {
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
	defer storage.CloseIfSupported(store)
	if err := store.Init(); err != nil {
		return err
	}

	if *runID == "" {
		ids, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("no stored runs")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	summary, err := store.GetRunSummary(*runID)
	if err != nil {
		return fmt.Errorf("run %s: %w", *runID, err)
	}
	reports, err := store.GetEpochReports(*runID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("run %s: %w", *runID, err)
	}

	fmt.Print(stats.FormatSummary(stats.RunArtifacts{Summary: summary, Reports: reports}))
	if len(reports) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EPOCH\tSURVIVORS\tELITE\tTOP\tMEAN\tMODEL\tPOLICY")
	for _, r := range reports {
		if r.Extinct {
			fmt.Fprintf(w, "%d\textinct\t-\t-\t-\t-\t-\n", r.Epoch)
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.1f\t%.1f\t%s\t%s\n",
			r.Epoch, r.Survivors, r.EliteCount, r.TopFitness, r.MeanFitness,
			r.DominantModel, r.DominantPolicy)
	}
	return w.Flush()
}
