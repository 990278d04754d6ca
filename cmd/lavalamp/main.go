package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/lavalamp/internal/config"
	"github.com/san-kum/lavalamp/internal/engine"
	"github.com/san-kum/lavalamp/internal/gui"
	"github.com/san-kum/lavalamp/internal/logging"
	"github.com/san-kum/lavalamp/internal/random"
	"github.com/san-kum/lavalamp/internal/screen"
	"github.com/san-kum/lavalamp/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	density    float64
	threshold  float64
	speed      float64
	jitter     float64
	baseColor  string
	theme      string
	background bool
	mono       bool
	logFile    string
	logLevel   string
	// Animation
	backend string
	fps     int
	hud     bool
	// Headless runs
	ticks        int
	width        int
	height       int
	csvPath      string
	svgPath      string
	scenarioFile string
	saveRun      bool
	outPath      string
	scale        float64
	configOut    string
	// Sweeps
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "lavalamp",
		Short:        "metaball lava lamp for the terminal",
		RunE:         runLamp,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".lavalamp", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	pf.Float64Var(&density, "density", config.DefaultDensity, "viewport cells per blob before the cube root")
	pf.Float64Var(&threshold, "threshold", 0.6, "field value at the blob surface")
	pf.Float64Var(&speed, "speed", 1.0, "velocity scale")
	pf.Float64Var(&jitter, "jitter", 0.1, "random velocity jitter fraction")
	pf.StringVar(&baseColor, "color", config.DefaultColor, "base colour (#rrggbb), clears --theme")
	pf.StringVar(&theme, "theme", "", "colour theme")
	pf.BoolVar(&background, "background", true, "tint the background by field strength")
	pf.BoolVar(&mono, "mono", false, "draw with glyphs instead of colour")
	pf.StringVar(&logFile, "log", "", "write JSON logs to this file")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "animate the lamp",
		Args:  cobra.NoArgs,
		RunE:  runLamp,
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVar(&backend, "backend", config.DefaultBackend, "renderer: tui, tcell or gui")
		c.Flags().IntVar(&fps, "fps", 0, "frames per second (0 keeps the configured interval)")
		c.Flags().BoolVar(&hud, "hud", false, "show the stats HUD (tui only)")
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run headless and plot coverage and regions",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	addExtentFlags(traceCmd)
	traceCmd.Flags().StringVar(&csvPath, "csv", "", "stream per-tick records to a csv file")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write the coverage series as svg")
	traceCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file of timed parameter changes (yaml)")
	traceCmd.Flags().BoolVar(&saveRun, "save", false, "save the run under the data directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "advance headless and write the last frame as svg",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	addExtentFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "lavalamp.svg", "output file")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 8, "pixels per cell column")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "run one seed across a range of a tunable",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addExtentFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.4, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE:  printConfig,
	}
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "also save it to this file")

	rootCmd.AddCommand(runCmd, traceCmd, snapshotCmd, sweepCmd, runsCmd, plotCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addExtentFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate")
	cmd.Flags().IntVar(&width, "width", 80, "viewport columns")
	cmd.Flags().IntVar(&height, "height", 24, "viewport rows")
}

// resolveConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		if fps <= 0 {
			return nil, fmt.Errorf("%w: fps must be positive, got %d", config.ErrInvalidConfig, fps)
		}
		cfg.Frame = time.Second / time.Duration(fps)
	}
	if flags.Changed("density") {
		cfg.Sim.Density = density
	}
	if flags.Changed("threshold") {
		cfg.Color.Threshold = threshold
	}
	if flags.Changed("speed") {
		cfg.Sim.Speed = speed
	}
	if flags.Changed("jitter") {
		cfg.Sim.Jitter = jitter
	}
	if flags.Changed("color") {
		cfg.Color.Base = baseColor
		cfg.Theme = ""
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("background") {
		cfg.Color.Background = background
	}
	if flags.Changed("mono") {
		cfg.Mono = mono
	}
	if flags.Changed("log") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	// Glyph output has nowhere to put a background tint.
	if cfg.Mono {
		cfg.Color.Background = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cfg *config.Config, log *slog.Logger) (*engine.Engine, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return engine.New(engine.Options{
		Density:       cfg.Sim.Density,
		FrameInterval: cfg.Frame,
		Params:        p,
		Rand:          random.New(cfg.Seed),
		Logger:        log,
	})
}

// setup resolves the configuration, installs the logger and builds the
// engine. The returned func closes the log file.
func setup(cmd *cobra.Command) (*config.Config, *engine.Engine, *slog.Logger, func() error, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log, closeLog, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	e, err := newEngine(cfg, log)
	if err != nil {
		closeLog()
		return nil, nil, nil, nil, err
	}
	return cfg, e, log, closeLog, nil
}

func runLamp(cmd *cobra.Command, args []string) error {
	cfg, e, log, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("starting",
		"backend", cfg.Backend,
		"seed", cfg.Seed,
		"density", cfg.Sim.Density,
		"frame", cfg.Frame,
		"mono", cfg.Mono,
	)

	ctx := cmd.Context()
	switch cfg.Backend {
	case "tcell":
		err = runScreen(ctx, e, cfg.Mono)
	case "gui":
		err = runWindow(ctx, e, cfg.Mono)
	default:
		err = viz.Run(ctx, e, viz.Options{
			Interval: cfg.Frame,
			Mono:     cfg.Mono,
			Theme:    cfg.Theme,
			HUD:      hud,
		})
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		log.Info("stopped", "ticks", e.Ticks())
		return nil
	case errors.Is(err, engine.ErrNoViewport):
		log.Error("no viewport", "err", err)
	default:
		log.Error("animation failed", "err", err, "ticks", e.Ticks())
	}
	return err
}

func runScreen(ctx context.Context, e *engine.Engine, mono bool) error {
	s, err := screen.New(mono)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrNoViewport, err)
	}
	defer s.Close()
	return e.Run(ctx, s)
}

func runWindow(ctx context.Context, e *engine.Engine, mono bool) error {
	w := gui.Open(gui.DefaultWidth, gui.DefaultHeight, gui.DefaultCell, "lavalamp", mono)
	defer w.Close()
	return e.Run(ctx, w)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTHEME\tDENSITY\tSPEED\tJITTER\tTHRESHOLD\tMONO")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		th := p.Theme
		if th == "" {
			th = p.Color.Base
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%v\n",
			name, th, p.Sim.Density, p.Sim.Speed, p.Sim.Jitter, p.Color.Threshold, p.Mono)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Print(out)

	if configOut != "" {
		if err := config.Save(configOut, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved to %s\n", configOut)
	}
	return nil
}
