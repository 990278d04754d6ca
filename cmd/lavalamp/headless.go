package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lavalamp/internal/automation"
	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/export"
	"github.com/san-kum/lavalamp/internal/metrics"
	"github.com/san-kum/lavalamp/internal/storage"
)

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, e, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	c := metrics.NewCollector(max(ticks, 1), metrics.Defaults()...).WithLogger(log)
	if csvPath != "" {
		tw, err := storage.Create(csvPath)
		if err != nil {
			return err
		}
		defer tw.Close()
		c.WithSink(tw)
	}
	e.AddObserver(c)

	var director *automation.Director
	if scenarioFile != "" {
		sc, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		director = automation.NewDirector(sc, log)
		e.AddObserver(director)
	}

	if err := e.Run(cmd.Context(), engine.NewHeadless(width, height, ticks)); err != nil {
		return err
	}
	if err := c.Err(); err != nil {
		return fmt.Errorf("writing %s: %w", csvPath, err)
	}
	if director != nil && director.Err() != nil {
		return fmt.Errorf("scenario %s: %w", scenarioFile, director.Err())
	}

	last := e.Last()
	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("extent: %dx%d\n", last.W, last.H)
	fmt.Printf("ticks: %d\n", last.Tick)
	fmt.Printf("blobs: %d\n\n", last.Blobs)

	coverage := c.Series(metrics.CoverageOf)
	regions := c.Series(metrics.RegionsOf)
	printPlots(coverage, regions)
	printSummary(c.Summary())

	if svgPath != "" {
		if err := export.WriteFile(svgPath, export.SeriesToSVG(coverage, 800, 240, cfg.Color.Base)); err != nil {
			return err
		}
		fmt.Printf("coverage svg: %s\n", svgPath)
	}

	if saveRun {
		st := storage.New(dataDir)
		id, err := st.Save(storage.RunMetadata{
			Preset:  preset,
			Seed:    cfg.Seed,
			Width:   width,
			Height:  height,
			Ticks:   int(last.Tick),
			Density: cfg.Sim.Density,
			Metrics: c.Summary(),
		}, c.Records())
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", id)
	}
	return nil
}

func printPlots(coverage, regions []float64) {
	if len(coverage) < 2 {
		return
	}
	pct := make([]float64, len(coverage))
	for i, v := range coverage {
		pct[i] = 100 * v
	}
	fmt.Println(asciigraph.Plot(pct,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("coverage (%)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(regions,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("regions"),
	))
	fmt.Println()
}

func printSummary(summary map[string]float64) {
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, summary[name])
	}
	w.Flush()
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, e, _, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := e.Run(cmd.Context(), engine.NewHeadless(width, height, ticks)); err != nil {
		return err
	}

	f := e.Last()
	if err := export.WriteFile(outPath, export.FrameToSVG(f, scale, "")); err != nil {
		return err
	}
	fmt.Printf("wrote %s (tick %d, %dx%d, %d blobs, seed %d)\n", outPath, f.Tick, f.W, f.H, f.Blobs, cfg.Seed)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	param := args[0]

	cfg, e, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("sweep", "param", param, "min", sweepMin, "max", sweepMax, "steps", sweepSteps, "seed", cfg.Seed)
	fmt.Printf("sweeping %s from %.3f to %.3f (%d steps, seed %d)\n\n", param, sweepMin, sweepMax, sweepSteps, cfg.Seed)

	results, err := automation.RunSweep(cmd.Context(), automation.ParameterSweep{
		Param:    param,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Width:    width,
		Height:   height,
		Ticks:    ticks,
		Density:  cfg.Sim.Density,
		Seed:     cfg.Seed,
		Base:     e.Params(),
	}, func(i int, r automation.SweepResult) {
		log.Debug("sweep step", "index", i, "value", r.Value)
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, param)
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.Value)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tEXTENT\tTICKS\tSEED\tCOVERAGE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.1f%%\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Ticks,
			run.Seed,
			100*run.Metrics["mean_coverage"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("samples: %d\n\n", len(records))

	c := metrics.NewCollector(0)
	for _, r := range records {
		c.Add(r)
	}
	printPlots(c.Series(metrics.CoverageOf), c.Series(metrics.RegionsOf))
	printSummary(meta.Metrics)
	return nil
}
