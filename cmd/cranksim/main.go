package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Harshavardhan3015/cranksim/internal/analysis"
	"github.com/Harshavardhan3015/cranksim/internal/config"
	"github.com/Harshavardhan3015/cranksim/internal/engine"
	"github.com/Harshavardhan3015/cranksim/internal/gui"
	"github.com/Harshavardhan3015/cranksim/internal/metrics"
	"github.com/Harshavardhan3015/cranksim/internal/sim"
	"github.com/Harshavardhan3015/cranksim/internal/storage"
	"github.com/Harshavardhan3015/cranksim/internal/viz"
)

var (
	dataDir    string
	rpm        float64
	dt         float64
	duration   float64
	cylinders  int
	offsets    string
	configFile string
	preset     string
	// Timing table resolution
	stepDeg float64
)

// main is the entry point for the cranksim CLI; it registers commands and
// flags, launches the GUI when no subcommand is given, and executes the root
// command. It exits the process with status 1 if command execution returns an
// error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "cranksim",
		Short: "inline-4 crank kinematics lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to GUI mode when no command given
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cranksim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record the trace",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the engine in the terminal",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate the engine in a 3D window",
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot piston displacement traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	timingCmd := &cobra.Command{
		Use:   "timing",
		Short: "print the stroke and valve table over a full cycle",
		RunE:  timingTable,
	}
	timingCmd.Flags().Float64Var(&stepDeg, "step", 30, "crank angle step in degrees")
	addConfigFlags(timingCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a trace to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a trace to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRPM\tDT\tCYLINDERS\tOFFSETS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0f\t%.5f\t%d\t%s\n",
					name, p.RPM, p.Dt, p.Bank.Cylinders, p.Bank.Offsets)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the simulation loop",
		RunE:  benchLoop,
	}
	addConfigFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, timingCmd,
		analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rpm, "rpm", config.DefaultRPM, "crankshaft speed")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().IntVar(&cylinders, "cylinders", 4, "number of cylinders")
	cmd.Flags().StringVar(&offsets, "offsets", config.OffsetsFiring, "phase table (firing|index)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file, and CLI flags; flags win.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("rpm") {
		cfg.RPM = rpm
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("cylinders") {
		cfg.Bank.Cylinders = cylinders
	}
	if cmd.Flags().Changed("offsets") {
		cfg.Bank.Offsets = offsets
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := cfg.BuildEngine()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(eng)
	runner.AddMetric(metrics.NewMeanPistonSpeed(eng.Geometry))
	runner.AddMetric(metrics.NewStrokeBalance())
	runner.AddMetric(metrics.NewFiringSpread())

	fmt.Printf("running %.0f rpm for %.1fs...\n", cfg.RPM, cfg.Duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.RPM, cfg.Dt, cfg.Duration, cfg.Bank.Offsets, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := cfg.BuildEngine()
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(eng))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := cfg.BuildEngine()
	if err != nil {
		return err
	}

	gui.Run(eng)
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tRPM\tDURATION\tDT\tCYL\tOFFSETS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.2fs\t%.5fs\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RPM,
			run.Duration,
			run.Dt,
			run.Cylinders,
			run.Offsets,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("rpm: %.0f\n", meta.RPM)
	fmt.Printf("samples: %d\n\n", len(trace.Times))

	graph := asciigraph.Plot(trace.Angles,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("crank angle (deg)"),
	)
	fmt.Println(graph)
	fmt.Println()

	for c := range trace.Displacements {
		graph := asciigraph.Plot(trace.Displacements[c],
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("cylinder %d piston displacement", c+1)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

// timingTable prints which stroke each cylinder is on and the valve lifts
// across a full 720 degree cycle.
func timingTable(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := cfg.BuildEngine()
	if err != nil {
		return err
	}

	if stepDeg <= 0 {
		return fmt.Errorf("step must be positive")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "CRANK"
	for i := range eng.Cylinders {
		header += fmt.Sprintf("\t#%d STROKE\t#%d IN\t#%d EX", i+1, i+1, i+1)
	}
	fmt.Fprintln(w, header)

	for angle := 0.0; angle < engine.CycleDeg; angle += stepDeg {
		eng.State.CrankAngleDeg = angle
		snap := eng.Snapshot()

		row := fmt.Sprintf("%.0f", angle)
		for _, cv := range snap.Cylinders {
			row += fmt.Sprintf("\t%s\t%.2f\t%.2f", cv.Stroke, cv.IntakeLift, cv.ExhaustLift)
		}
		fmt.Fprintln(w, row)
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Displacements) == 0 || len(trace.Displacements[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("rpm: %.0f\n\n", meta.RPM)

	data := trace.Displacements[0]
	ps := analysis.PowerSpectrum(data)

	plotData := ps
	if len(plotData) > len(ps)/4 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (cylinder 1 displacement)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
		fmt.Printf("implied rpm: %.0f\n", freq*60)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "crank_angle_deg"}
	for i := range trace.Displacements {
		header = append(header, fmt.Sprintf("disp%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range trace.Times {
		row := []string{
			strconv.FormatFloat(trace.Times[i], 'f', 6, 64),
			strconv.FormatFloat(trace.Angles[i], 'f', 6, 64),
		}
		for c := range trace.Displacements {
			row = append(row, strconv.FormatFloat(trace.Displacements[c][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	return storage.ExportTraceJSON(os.Stdout, meta, trace)
}

func benchLoop(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 1.0 / 60.0}

	fmt.Printf("benchmarking %d cylinders at %.0f rpm\n\n", cfg.Bank.Cylinders, cfg.RPM)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			eng, err := cfg.BuildEngine()
			if err != nil {
				return err
			}

			runner := sim.New(eng)
			start := time.Now()
			result, err := runner.Run(context.Background(), sim.Config{Dt: step, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.Steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.Steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
