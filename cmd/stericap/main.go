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

	"github.com/san-kum/stericap/internal/config"
	"github.com/san-kum/stericap/internal/echem"
	"github.com/san-kum/stericap/internal/model"
	"github.com/san-kum/stericap/internal/storage"
	"github.com/san-kum/stericap/internal/sweep"
	"github.com/san-kum/stericap/internal/viz"
)

var (
	dataDir       string
	cation        string
	anion         string
	solvent       string
	concentration float64
	temperature   float64
	nHydCation    float64
	nHydAnion     float64
	stericModel   string
	sweepStart    float64
	sweepEnd      float64
	sweepSteps    int
	configFile    string
	preset        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stericap",
		Short: "steric-corrected electrochemical capacitance lab",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".stericap", "data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a potential sweep and store the curve",
		RunE:  runSweep,
	}
	addSystemFlags(sweepCmd)

	pointCmd := &cobra.Command{
		Use:   "point [potential]",
		Short: "compute all quantities at a single potential",
		Args:  cobra.ExactArgs(1),
		RunE:  runPoint,
	}
	addSystemFlags(pointCmd)

	profileCmd := &cobra.Command{
		Use:   "profile [potential]",
		Short: "plot spatial profiles inside the steric layer",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfile,
	}
	addSystemFlags(profileCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare Carnahan-Starling and Liu steric models",
		RunE:  runCompare,
	}
	addSystemFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a sweep with live visualization",
		RunE:  runLive,
	}
	addSystemFlags(liveCmd)

	ionsCmd := &cobra.Command{
		Use:   "ions",
		Short: "list the built-in ion database",
		RunE:  listIons,
	}

	solventsCmd := &cobra.Command{
		Use:   "solvents",
		Short: "list the built-in solvent database",
		RunE:  listSolvents,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored capacitance curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run curve to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-20s %s / %s in %s, %.2g mol/L, %s\n",
					name, p.Cation, p.Anion, p.Solvent, p.Concentration, p.StericModel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(sweepCmd, pointCmd, profileCmd, compareCmd, liveCmd,
		ionsCmd, solventsCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cation, "cation", "Na+", "cation name")
	cmd.Flags().StringVar(&anion, "anion", "Cl-", "anion name")
	cmd.Flags().StringVar(&solvent, "solvent", "water", "solvent name")
	cmd.Flags().Float64Var(&concentration, "conc", config.DefaultConcentration, "bulk concentration (mol/L)")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature (K)")
	cmd.Flags().Float64Var(&nHydCation, "nhyd-cation", 0, "cation hydration number")
	cmd.Flags().Float64Var(&nHydAnion, "nhyd-anion", 0, "anion hydration number")
	cmd.Flags().StringVar(&stericModel, "steric", config.DefaultStericModel, "steric model (cs or liu)")
	cmd.Flags().Float64Var(&sweepStart, "start", config.DefaultSweepStart, "sweep start potential (V)")
	cmd.Flags().Float64Var(&sweepEnd, "end", config.DefaultSweepEnd, "sweep end potential (V)")
	cmd.Flags().IntVar(&sweepSteps, "steps", config.DefaultSweepSteps, "sweep points")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file and flags in ascending priority.
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

	flags := cmd.Flags()
	if flags.Changed("cation") {
		cfg.Cation = cation
	}
	if flags.Changed("anion") {
		cfg.Anion = anion
	}
	if flags.Changed("solvent") {
		cfg.Solvent = solvent
	}
	if flags.Changed("conc") {
		cfg.Concentration = concentration
	}
	if flags.Changed("temp") {
		cfg.Temperature = temperature
	}
	if flags.Changed("nhyd-cation") {
		cfg.NHydrationCation = nHydCation
	}
	if flags.Changed("nhyd-anion") {
		cfg.NHydrationAnion = nHydAnion
	}
	if flags.Changed("steric") {
		cfg.StericModel = stericModel
	}
	if flags.Changed("start") {
		cfg.Sweep.Start = sweepStart
	}
	if flags.Changed("end") {
		cfg.Sweep.End = sweepEnd
	}
	if flags.Changed("steps") {
		cfg.Sweep.Steps = sweepSteps
	}

	return cfg, nil
}

func buildModel(cfg *config.Config) (*model.Model, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return nil, err
	}
	return model.New(sys, cfg.StericModel), nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	mdl, err := buildModel(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("sweeping %s / %s in %s, %g mol/L...\n", cfg.Cation, cfg.Anion, cfg.Solvent, cfg.Concentration)
	start := time.Now()

	result, err := sweep.Run(context.Background(), mdl, sweep.Config{
		Start: cfg.Sweep.Start,
		End:   cfg.Sweep.End,
		Steps: cfg.Sweep.Steps,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", len(result.Points))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	if result.Diagnostics.Degraded() {
		fmt.Printf("\nwarning: %d points used fallback computations\n",
			int(result.Metrics["fallback_points"]))
	}

	return nil
}

func runPoint(cmd *cobra.Command, args []string) error {
	potential, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid potential: %s", args[0])
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	mdl, err := buildModel(cfg)
	if err != nil {
		return err
	}

	p := sweep.Compute(mdl, potential)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "potential\t%+.4f V\n", p.Potential)
	fmt.Fprintf(w, "capacitance\t%.4f μF/cm²\n", p.Capacitance)
	fmt.Fprintf(w, "analytical capacitance\t%.4f μF/cm²\n", p.AnalyticalCapacitance)
	fmt.Fprintf(w, "charge density\t%+.6e C/m²\n", p.ChargeDensity)
	fmt.Fprintf(w, "surface volume fraction\t%.6f\n", p.SurfaceVolumeFraction)
	fmt.Fprintf(w, "reduced dielectric\t%.4f\n", p.ReducedDielectric)
	fmt.Fprintf(w, "debye length\t%.4e m\n", p.DebyeLength)
	fmt.Fprintf(w, "steric thickness\t%.4e m\n", p.StericThickness)
	return w.Flush()
}

func runProfile(cmd *cobra.Command, args []string) error {
	potential, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid potential: %s", args[0])
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	mdl, err := buildModel(cfg)
	if err != nil {
		return err
	}

	h := mdl.StericLayerThickness(potential)
	if h <= 0 || h != h {
		return fmt.Errorf("steric layer thickness undefined at %g V", potential)
	}

	const samples = 120
	conc := make([]float64, samples)
	pot := make([]float64, samples)
	field := make([]float64, samples)
	for i := 0; i < samples; i++ {
		x := 3 * h * float64(i) / float64(samples-1)
		conc[i] = mdl.ConcentrationProfile(x, potential)
		pot[i] = mdl.PotentialProfile(x, potential)
		field[i] = mdl.FieldProfile(x, potential)
	}

	fmt.Printf("profiles at %+.3f V over [0, 3H], H = %.3e m\n\n", potential, h)
	fmt.Println(asciigraph.Plot(conc, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("counterion concentration (mol/L)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(pot, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("electrostatic potential (V)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(field, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("electric field (V/m)")))

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}

	sweepCfg := sweep.Config{Start: cfg.Sweep.Start, End: cfg.Sweep.End, Steps: cfg.Sweep.Steps}

	csResult, err := sweep.Run(context.Background(), model.New(sys, model.StericCarnahanStarling), sweepCfg)
	if err != nil {
		return err
	}
	liuResult, err := sweep.Run(context.Background(), model.New(sys, model.StericLiu), sweepCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POTENTIAL\tC_CS\tC_LIU\tPHI0_CS\tPHI0_LIU")
	for i := range csResult.Points {
		cs, liu := csResult.Points[i], liuResult.Points[i]
		fmt.Fprintf(w, "%+.3f\t%.4f\t%.4f\t%.6f\t%.6f\n",
			cs.Potential, cs.Capacitance, liu.Capacitance,
			cs.SurfaceVolumeFraction, liu.SurfaceVolumeFraction)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	mdl, err := buildModel(cfg)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s / %s in %s", cfg.Cation, cfg.Anion, cfg.Solvent)
	m := viz.NewLive(mdl, sweep.Config{
		Start: cfg.Sweep.Start,
		End:   cfg.Sweep.End,
		Steps: cfg.Sweep.Steps,
	}, title)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listIons(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHARGE\tRADIUS(Å)\tPOLARIZABILITY(Å³)")
	for _, name := range echem.IonNames() {
		ion := echem.IonDatabase[name]
		fmt.Fprintf(w, "%s\t%+g\t%.2f\t%.3f\n", ion.Name, ion.Charge, ion.RadiusAng, ion.Polarizability)
	}
	return w.Flush()
}

func listSolvents(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIELECTRIC\tPOLARIZABILITY(Å³)")
	for _, name := range echem.SolventNames() {
		s := echem.SolventDatabase[name]
		fmt.Fprintf(w, "%s\t%.1f\t%.4f\n", s.Name, s.DielectricConstant, s.Polarizability)
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tCONC\tSTERIC\tRANGE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s/%s in %s\t%s\t%.2g M\t%s\t[%+.2f, %+.2f] V\n",
			run.ID,
			run.Cation, run.Anion, run.Solvent,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Concentration,
			run.StericModel,
			run.SweepStart, run.SweepEnd,
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

	points, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s / %s in %s, %g mol/L (%s)\n\n",
		meta.Cation, meta.Anion, meta.Solvent, meta.Concentration, meta.StericModel)

	caps := make([]float64, len(points))
	charges := make([]float64, len(points))
	for i, p := range points {
		caps[i] = p.Capacitance
		charges[i] = p.ChargeDensity
	}

	fmt.Println(asciigraph.Plot(caps, asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.Caption("differential capacitance (μF/cm²)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(charges, asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.Caption("charge density (C/m²)")))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	points, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, points)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	points, err := st.LoadCurve(runID)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"potential", "capacitance", "analytical_capacitance", "charge_density",
		"surface_volfrac", "reduced_dielectric", "debye_length", "steric_thickness"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Potential, 'f', 6, 64),
			strconv.FormatFloat(p.Capacitance, 'e', 9, 64),
			strconv.FormatFloat(p.AnalyticalCapacitance, 'e', 9, 64),
			strconv.FormatFloat(p.ChargeDensity, 'e', 9, 64),
			strconv.FormatFloat(p.SurfaceVolumeFraction, 'e', 9, 64),
			strconv.FormatFloat(p.ReducedDielectric, 'e', 9, 64),
			strconv.FormatFloat(p.DebyeLength, 'e', 9, 64),
			strconv.FormatFloat(p.StericThickness, 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
