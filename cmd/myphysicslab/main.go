package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yur234/myphysicslab/internal/config"
	"github.com/yur234/myphysicslab/internal/models"
	"github.com/yur234/myphysicslab/internal/ode"
	"github.com/yur234/myphysicslab/internal/solvers"
	"github.com/yur234/myphysicslab/internal/storage"
	"github.com/yur234/myphysicslab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	solverName string
	angle      float64
	omega      float64
	pos        float64
	vel        float64
	adaptive   bool
	tolerance  float64
	configFile string
	preset     string
	slotName   string
	pngPath    string
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "myphysicslab",
		Short: "ODE integration lab: interchangeable solvers with adaptive stepping",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".myphysicslab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&solverName, "solver", config.DefaultSolver, "solver (euler, heun, rk4, adaptive)")
	runCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "initial angle")
	runCmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity")
	runCmd.Flags().Float64Var(&pos, "pos", 0.0, "initial position (spring_mass)")
	runCmd.Flags().Float64Var(&vel, "vel", 0.0, "initial velocity (spring_mass)")
	runCmd.Flags().BoolVar(&adaptive, "adaptive", false, "use adaptive stepping")
	runCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "adaptive energy drift tolerance")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&slotName, "slot", "", "state slot to plot (default: first)")
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write a PNG instead of an ASCII plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "run.json", "output path")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "interactive live view with solver hot-swapping",
		Args:  cobra.ExactArgs(1),
		RunE:  liveView,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep per frame")
	liveCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "initial angle")
	liveCmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity")

	solversCmd := &cobra.Command{
		Use:   "solvers",
		Short: "list available solvers",
		RunE:  listSolvers,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, solversCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfig(model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("no preset %q for model %q", preset, model)
		}
		cfg = p
	}

	cfg.Model = model
	if configFile == "" && preset == "" {
		cfg.Dt = dt
		cfg.Duration = duration
		cfg.Solver = solverName
		cfg.InitState = config.InitStateConfig{Angle: angle, Omega: omega, Pos: pos, Vel: vel}
		if adaptive {
			cfg.Solver = "adaptive"
			cfg.Adaptive.Enabled = true
			cfg.Adaptive.Tolerance = tolerance
		}
	}
	return cfg, nil
}

func buildSystem(cfg *config.Config) (ode.System, error) {
	switch cfg.Model {
	case "pendulum":
		p := models.NewPendulum()
		return p, p.SetInitialState(cfg.InitState.Angle, cfg.InitState.Omega)
	case "spring_mass":
		s := models.NewSpringMass()
		return s, s.SetInitialState(cfg.InitState.Pos, cfg.InitState.Vel)
	case "magnet_wheel":
		m := models.NewMagnetWheel()
		return m, m.SetInitialState(cfg.InitState.Angle, cfg.InitState.Omega)
	default:
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
}

func buildSelector(sys ode.System, cfg *config.Config) (*solvers.Selector, error) {
	sel := solvers.NewSelector(solvers.NewEuler(sys), solvers.NewHeun(sys), solvers.NewRK4(sys))

	if _, ok := sys.(ode.EnergyReporter); ok {
		a, err := solvers.NewAdaptive(sys, solvers.NewRK4(sys), solvers.Config{
			Tolerance:    cfg.Adaptive.Tolerance,
			GrowFactor:   cfg.Adaptive.GrowFactor,
			ShrinkFactor: cfg.Adaptive.ShrinkFactor,
			MaxRetries:   cfg.Adaptive.MaxRetries,
			MinStep:      cfg.Adaptive.MinStep,
			MaxStep:      cfg.Adaptive.MaxStep,
		})
		if err != nil {
			return nil, err
		}
		sel.Register(a)
	}

	if err := sel.Select(cfg.Solver); err != nil {
		return nil, err
	}
	return sel, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	sel, err := buildSelector(sys, cfg)
	if err != nil {
		return err
	}

	vec := sys.StateVector()
	tr := &storage.Trajectory{Names: vec.Names()}
	drift := ode.NewEnergyDrift(sys)

	elapsed := 0.0
	tr.Append(elapsed, vec.Values())
	drift.OnStep(vec.Values(), elapsed)

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		if err := sel.Active().Step(cfg.Dt); err != nil {
			return fmt.Errorf("step %d (t=%.4f): %w", i, elapsed, err)
		}
		elapsed += cfg.Dt
		vals := vec.Values()
		drift.OnStep(vals, elapsed)
		tr.Append(elapsed, vals)
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Model:       cfg.Model,
		Solver:      sel.Current(),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		EnergyDrift: drift.Value(),
	}, tr)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps, max energy drift %.3g\n\n", runID, steps, drift.Value())
	fmt.Println(viz.Graph(tr.Column(vec.Name(0)), vec.Name(0), 70, 12))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSOLVER\tDT\tDURATION\tSTEPS\tDRIFT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%d\t%.3g\n",
			r.ID, r.Model, r.Solver, r.Dt, r.Duration, r.Steps, r.EnergyDrift)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	tr, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(tr.Rows) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	name := slotName
	if name == "" {
		name = tr.Names[0]
	}
	series := tr.Column(name)
	if series == nil {
		return fmt.Errorf("no slot %q in run %s", name, args[0])
	}

	if pngPath != "" {
		if err := viz.SavePNG(pngPath, args[0], name, tr.Times, series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
		return nil
	}

	fmt.Println(viz.Graph(series, name, 70, 14))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	if err := store.ExportJSON(args[0], outPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func liveView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args[0])
	if err != nil {
		return err
	}
	cfg.Solver = "rk4"

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	sel, err := buildSelector(sys, cfg)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(viz.NewLive(sys, sel, cfg.Dt), tea.WithAltScreen()).Run()
	return err
}

func listSolvers(cmd *cobra.Command, args []string) error {
	sys := models.NewPendulum()
	cfg := config.DefaultConfig()
	sel, err := buildSelector(sys, cfg)
	if err != nil {
		return err
	}

	for _, name := range sel.Names() {
		marker := " "
		if name == sel.Current() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, name)
	}
	return nil
}
