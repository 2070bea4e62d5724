package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stringverse/internal/analysis"
	"github.com/san-kum/stringverse/internal/config"
	"github.com/san-kum/stringverse/internal/experiment"
	"github.com/san-kum/stringverse/internal/geometry"
	"github.com/san-kum/stringverse/internal/physics"
	"github.com/san-kum/stringverse/internal/sim"
	"github.com/san-kum/stringverse/internal/storage"
	"github.com/san-kum/stringverse/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	coupling   float64
	mass       float64
	size       int
	configFile string
	preset     string
	frameRate  int
	// mesh parameters
	resolution int
	sliceZ     float64
	meshTime   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stringverse",
		Short: "string and matrix model simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stringverse", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	meshCmd := &cobra.Command{
		Use:   "mesh",
		Short: "export the background surface mesh as JSON",
		RunE:  exportMesh,
	}
	meshCmd.Flags().IntVar(&resolution, "resolution", 48, "grid resolution")
	meshCmd.Flags().Float64Var(&sliceZ, "slice", 0.5, "slice coordinate")
	meshCmd.Flags().Float64Var(&meshTime, "time", 0, "animation time for the deformation parameter")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, meshCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling constant")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass parameter (matrix)")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "matrix size (matrix)")
}

// buildConfig folds preset, config file, and CLI flags into one config.
// Flags the user actually set override everything else.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if f := cmd.Flags().Lookup("time"); f != nil && f.Changed {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("coupling") {
		cfg.Coupling = coupling
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("size") {
		cfg.Size = size
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Dt == 0 {
		cfg.Dt = config.DefaultDt
	}
	if cfg.Duration == 0 {
		cfg.Duration = config.DefaultDuration
	}
	if cfg.Coupling == 0 {
		cfg.Coupling = config.DefaultCoupling
	}
	if cfg.Model == config.ModelMatrix {
		if cfg.Mass == 0 {
			cfg.Mass = config.DefaultMass
		}
		if cfg.Size == 0 {
			cfg.Size = config.DefaultSize
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunParams{
		Model:    cfg.Model,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Coupling: cfg.Coupling,
		Mass:     cfg.Mass,
		Size:     cfg.Size,
	}, result)
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
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	factory := func() sim.Simulation {
		rng := rand.New(rand.NewSource(cfg.Seed))
		if cfg.Model == config.ModelMatrix {
			mm, err := physics.NewMatrixModel(cfg.Size, cfg.Coupling, cfg.Mass, rng)
			if err != nil {
				panic(err)
			}
			return mm
		}
		return physics.NewStringSimulation(cfg.Coupling, rng)
	}

	m := viz.NewModel(cfg.Model, factory, cfg.Dt, frameRate, cfg.Coupling, cfg.Mass)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tCOUPLING\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%.2f\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Coupling,
			run.Steps,
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

	_, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(energies) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(energies))

	graph := asciigraph.Plot(energies,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("energy vs time"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(energies) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	ps := analysis.PowerSpectrum(analysis.PadPow2(energies))

	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("energy power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	freq := float64(maxIdx) / meta.Duration
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "energy"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(energies[i], 'f', 6, 64),
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

	times, energies, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	snapshot, _ := st.LoadSnapshot(runID)

	out := struct {
		Meta     *storage.RunMetadata `json:"meta"`
		Times    []float64            `json:"times"`
		Energies []float64            `json:"energies"`
		Snapshot []float64            `json:"snapshot,omitempty"`
	}{meta, times, energies, snapshot}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportMesh(cmd *cobra.Command, args []string) error {
	psi := geometry.PsiFromTime(meshTime)

	out := struct {
		Resolution int       `json:"resolution"`
		Psi        float64   `json:"psi"`
		Stride     int       `json:"stride"`
		Vertices   []float64 `json:"vertices"`
		Indices    []uint32  `json:"indices"`
	}{
		Resolution: resolution,
		Psi:        psi,
		Stride:     geometry.VertexStride,
		Vertices:   geometry.Mesh(resolution, sliceZ, psi),
		Indices:    geometry.Indices(resolution),
	}

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(out)
}
