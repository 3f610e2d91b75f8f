package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dhkin/internal/analysis"
	"github.com/san-kum/dhkin/internal/config"
	"github.com/san-kum/dhkin/internal/experiment"
	"github.com/san-kum/dhkin/internal/export"
	"github.com/san-kum/dhkin/internal/kinematics"
	"github.com/san-kum/dhkin/internal/logging"
	"github.com/san-kum/dhkin/internal/storage"
	"github.com/san-kum/dhkin/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	// build
	mode     string
	save     bool
	latex    bool
	simplify bool
	// verify
	tolerance float64
	// sweep
	sweepVar string
	from     float64
	to       float64
	samples  int
	workers  int
	svgPath  string
	// presets
	outFile string

	logger *zap.SugaredLogger
)

// main registers the dhkin commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "dhkin",
		Short:        "Denavit-Hartenberg forward kinematics",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dhkin", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	buildCmd := &cobra.Command{
		Use:   "build [preset]",
		Short: "build the end-effector transform",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVar(&configFile, "config", "", "robot config file (yaml)")
	buildCmd.Flags().StringVar(&mode, "mode", "", "override mode: numeric or symbolic")
	buildCmd.Flags().BoolVar(&save, "save", false, "save the run")
	buildCmd.Flags().BoolVar(&latex, "latex", false, "print the symbolic matrix as LaTeX")
	buildCmd.Flags().BoolVar(&simplify, "simplify", false, "collapse sin^2+cos^2 in symbolic entries")

	verifyCmd := &cobra.Command{
		Use:   "verify [preset]",
		Short: "check homogeneity and symbolic/numeric agreement",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVerify,
	}
	verifyCmd.Flags().StringVar(&configFile, "config", "", "robot config file (yaml)")
	verifyCmd.Flags().Float64Var(&tolerance, "tol", 1e-9, "tolerance")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one joint variable and plot the tip",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "robot config file (yaml)")
	sweepCmd.Flags().StringVar(&sweepVar, "var", "", "variable to sweep (default: first free symbol)")
	sweepCmd.Flags().Float64Var(&from, "from", 0, "start value")
	sweepCmd.Flags().Float64Var(&to, "to", 1, "end value")
	sweepCmd.Flags().IntVar(&samples, "samples", 60, "number of samples")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0: GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&svgPath, "svg", "", "write the swept path as SVG")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "nudge joint variables interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "robot config file (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or write one with --out",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&outFile, "out", "", "write the named preset to this yaml file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(buildCmd, verifyCmd, sweepCmd, liveCmd, presetsCmd, listCmd, exportCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func resolve(args []string) (*config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := experiment.Resolve(name, configFile)
	if err != nil {
		return nil, err
	}
	logger.Debugw("robot resolved", "name", cfg.Name, "config", configFile, "joints", len(cfg.Joints))
	return cfg, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.Options{Mode: mode, Simplify: simplify}, logger)
	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	numeric := res.Mode == kinematics.ModeNumeric
	title := fmt.Sprintf("%s (%s, %s)", cfg.Name, res.Mode, cfg.AngleUnit)
	fmt.Println(viz.Title.Render(title))
	viz.RenderMatrix(os.Stdout, "", res.Cells(), numeric)

	if numeric {
		viz.RenderPose(os.Stdout, res.Pose)
	} else {
		if len(res.Symbols) > 0 {
			fmt.Println(viz.Label.Render("symbols") + viz.Value.Render(strings.Join(res.Symbols, ", ")))
		}
		if latex {
			fmt.Println(kinematics.LaTeX(res.Symbolic))
		}
	}
	logger.Infow("built", "robot", cfg.Name, "mode", res.Mode, "elapsed", res.Elapsed)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(res), res.Cells())
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(args)
	if err != nil {
		return err
	}
	table, err := cfg.SymbolicTable()
	if err != nil {
		return err
	}

	report, err := analysis.VerifyChain(table, cfg.Bindings, tolerance)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(cfg.Name))
	viz.RenderReport(os.Stdout, report)
	viz.RenderPose(os.Stdout, report.Pose)
	if !report.OK() {
		return fmt.Errorf("verification failed for %s", cfg.Name)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(args)
	if err != nil {
		return err
	}
	table, err := cfg.SymbolicTable()
	if err != nil {
		return err
	}

	name := sweepVar
	if name == "" {
		vars := kinematics.FreeSymbols(table)
		if len(vars) == 0 {
			return fmt.Errorf("%s has no variables to sweep", cfg.Name)
		}
		name = vars[0]
		for _, v := range vars {
			if strings.HasPrefix(v, "q") {
				name = v
				break
			}
		}
	}

	spec := analysis.SweepSpec{Var: name, From: from, To: to, Samples: samples, Workers: workers}
	logger.Debugw("sweeping", "robot", cfg.Name, "var", name, "from", from, "to", to, "samples", samples)
	points, err := analysis.Sweep(cmd.Context(), table, cfg.Bindings, spec)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s: %s from %g to %g", cfg.Name, name, from, to)))
	if len(points) > 1 {
		for axis, label := range []string{"x", "y", "z"} {
			fmt.Println(asciigraph.Plot(analysis.Axis(points, axis),
				asciigraph.Height(8),
				asciigraph.Width(70),
				asciigraph.Caption(fmt.Sprintf("tip %s vs %s", label, name)),
			))
			fmt.Println(viz.Separator(78))
		}
	}
	fmt.Print(analysis.WorkspaceToASCII(points, 60, 20))

	ext := analysis.WorkspaceExtents(points)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	size := ext.Size()
	fmt.Fprintln(w, "AXIS\tMIN\tMAX\tSPAN")
	for axis, label := range []string{"x", "y", "z"} {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\n", label, ext.Min[axis], ext.Max[axis], size[axis])
	}
	fmt.Fprintf(w, "reach\t\t\t%.6g\n", analysis.Reach(points))
	if err := w.Flush(); err != nil {
		return err
	}

	if svgPath != "" {
		path := make([]mgl64.Vec3, len(points))
		for i, p := range points {
			path[i] = p.Position
		}
		svg := export.PathToSVG(path, 600, 600, "#00ff00")
		if numTable, err := kinematics.Bind(table, cfg.Bindings); err == nil {
			if frames, err := kinematics.Frames(kinematics.Float, numTable); err == nil {
				svg = export.ChainToSVG(frames, path, 600, 600)
			}
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if outFile != "" {
		if len(args) == 0 {
			return fmt.Errorf("--out needs a preset name")
		}
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", args[0])
		}
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tUNIT\tJOINTS\tSYMBOLS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			name, cfg.Mode, cfg.AngleUnit, len(cfg.Joints), strings.Join(cfg.FreeSymbols(), ","))
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
	fmt.Fprintln(w, "ID\tROBOT\tMODE\tTIME\tJOINTS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Robot,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Joints),
			run.Elapsed,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}
