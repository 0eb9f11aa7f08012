package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/curesim/internal/checks"
	"github.com/san-kum/curesim/internal/config"
	"github.com/san-kum/curesim/internal/cure"
	"github.com/san-kum/curesim/internal/logging"
	"github.com/san-kum/curesim/internal/material"
	"github.com/san-kum/curesim/internal/report"
	"github.com/san-kum/curesim/internal/server"
	"github.com/san-kum/curesim/internal/storage"
	"github.com/san-kum/curesim/internal/sweep"
	"github.com/san-kum/curesim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	logFormat  string
	configFile string
	preset     string

	phi   float64
	tempC float64

	axisName     string
	propertyName string
	rangeMin     float64
	rangeMax     float64
	steps        int
	fixed        float64
	noSave       bool

	outFile    string
	jsonOutput bool
	withChecks bool

	addr      string
	themeName string
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "curesim",
		Short: "cure-dependent material property lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logging.Setup(logging.Config{Level: logLevel, Format: logFormat})
			return err
		},
		RunE: exploreMaterial,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".curesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "material config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset material")
	rootCmd.Flags().Float64Var(&phi, "phi", 0.5, "initial cure fraction")
	rootCmd.Flags().Float64Var(&tempC, "temp", 150, "initial temperature (°C)")
	rootCmd.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name,
		fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate every property at one cure state",
		Args:  cobra.NoArgs,
		RunE:  evalMaterial,
	}
	evalCmd.Flags().Float64Var(&phi, "phi", 0.5, "cure fraction")
	evalCmd.Flags().Float64Var(&tempC, "temp", 150, "temperature (°C)")
	evalCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep phi or temperature and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&axisName, "axis", "phi", "swept axis (phi, temp)")
	sweepCmd.Flags().Float64Var(&rangeMin, "min", config.DefaultPhiMin, "start of the swept range")
	sweepCmd.Flags().Float64Var(&rangeMax, "max", config.DefaultPhiMax, "end of the swept range")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of points")
	sweepCmd.Flags().Float64Var(&fixed, "fixed", config.DefaultTempC, "value of the axis held fixed")
	sweepCmd.Flags().StringVar(&propertyName, "property", "", "property to plot (default all)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sweeps",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&propertyName, "property", "", "property to plot (default all)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored sweep to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored sweep to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset materials",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "run the behavioral checks",
		Args:  cobra.NoArgs,
		RunE:  runChecks,
	}
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "write a markdown report for a material",
		Args:  cobra.NoArgs,
		RunE:  writeReport,
	}
	reportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	reportCmd.Flags().BoolVar(&withChecks, "checks", true, "include behavioral checks")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive property explorer",
		Args:  cobra.NoArgs,
		RunE:  exploreMaterial,
	}
	exploreCmd.Flags().Float64Var(&phi, "phi", 0.5, "initial cure fraction")
	exploreCmd.Flags().Float64Var(&tempC, "temp", 150, "initial temperature (°C)")
	exploreCmd.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name,
		fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	saveConfigCmd := &cobra.Command{
		Use:   "save-config [path]",
		Short: "write the selected material config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve material evaluation over a websocket at /ws",
		Args:  cobra.NoArgs,
		RunE:  serveMaterial,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(evalCmd, sweepCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, checkCmd, reportCmd, exploreCmd, saveConfigCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the material: default preset, then --preset, then
// --config, each overriding the last.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, cure.ConfigError("preset", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func loadMaterial() (*config.Config, *material.Material, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	m, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	logging.L().WithFields(logrus.Fields{
		"material": m.Name,
		"models":   m.Describe(),
	}).Debug("material built")
	return cfg, m, nil
}

func evalMaterial(cmd *cobra.Command, args []string) error {
	_, m, err := loadMaterial()
	if err != nil {
		return err
	}

	props, err := m.Evaluate(phi, tempC)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(props)
	}

	fmt.Printf("%s at phi=%g, T=%g °C\n\n", m.Name, phi, tempC)
	rows := [][2]string{
		{"tg", fmt.Sprintf("%.6g °C", props.Tg)},
		{"cure rate", fmt.Sprintf("%.6g 1/s", props.CureRate)},
		{"modulus", fmt.Sprintf("%.6g", props.Modulus)},
		{"cte", fmt.Sprintf("%.6g 1/K", props.CTE)},
		{"specific heat", fmt.Sprintf("%.6g", props.SpecificHeat)},
	}
	for _, r := range rows {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", r[0])), valueStyle.Render(r[1]))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadMaterial()
	if err != nil {
		return err
	}

	axis, err := sweep.ParseAxis(axisName)
	if err != nil {
		return err
	}

	// Flags left at their defaults fall back to the material's sweep section.
	spec := sweep.Spec{Axis: axis, Min: rangeMin, Max: rangeMax, Steps: steps, Fixed: fixed}
	switch axis {
	case sweep.Phi:
		if !cmd.Flags().Changed("min") {
			spec.Min = cfg.Sweep.PhiMin
		}
		if !cmd.Flags().Changed("max") {
			spec.Max = cfg.Sweep.PhiMax
		}
		if !cmd.Flags().Changed("fixed") {
			spec.Fixed = cfg.Sweep.TempC
		}
	case sweep.Temperature:
		if !cmd.Flags().Changed("min") {
			spec.Min = cfg.Sweep.TempMin
		}
		if !cmd.Flags().Changed("max") {
			spec.Max = cfg.Sweep.TempMax
		}
		if !cmd.Flags().Changed("fixed") {
			spec.Fixed = (cfg.Sweep.PhiMin + cfg.Sweep.PhiMax) / 2
		}
	}
	if !cmd.Flags().Changed("steps") && cfg.Sweep.Steps > 0 {
		spec.Steps = cfg.Sweep.Steps
	}

	props, err := selectedProperties()
	if err != nil {
		return err
	}

	log := logging.L().WithFields(logrus.Fields{
		"material": m.Name,
		"axis":     spec.Axis.String(),
		"min":      spec.Min,
		"max":      spec.Max,
		"steps":    spec.Steps,
	})
	log.Info("sweep started")

	start := time.Now()
	res, err := sweep.Run(m, spec)
	if err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("sweep completed")

	plotResult(res, props)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res, m.Describe())
	if err != nil {
		return err
	}
	log.WithField("run", runID).Info("sweep stored")
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func selectedProperties() ([]sweep.Property, error) {
	if propertyName == "" {
		return sweep.Properties(), nil
	}
	p, err := sweep.ParseProperty(propertyName)
	if err != nil {
		return nil, err
	}
	return []sweep.Property{p}, nil
}

func plotResult(res *sweep.Result, props []sweep.Property) {
	for _, p := range props {
		ys := res.Series[p]
		lo, hi := res.Range(p)
		caption := fmt.Sprintf("%s vs %s [%g, %g] (%s)", p, res.Axis, res.X[0], res.X[len(res.X)-1], p.Unit())
		if lo == hi {
			fmt.Printf("%s: constant at %g\n\n", caption, lo)
			continue
		}
		graph := asciigraph.Plot(ys,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
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
	fmt.Fprintln(w, "ID\tMATERIAL\tTIME\tAXIS\tRANGE\tFIXED\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%d\n",
			run.ID,
			run.Material,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Axis,
			run.Min, run.Max,
			run.Fixed,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(res.X) == 0 {
		return fmt.Errorf("no data to plot")
	}

	props, err := selectedProperties()
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", meta.ID, meta.Material)
	plotResult(res, props)
	return nil
}

func toStdout() bool { return outFile == "" || outFile == "-" }

// output returns the writer for --out, or stdout.
func output() (io.WriteCloser, error) {
	if toStdout() {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(res.X) == 0 {
		return fmt.Errorf("no data to export")
	}

	if toStdout() {
		return storage.WriteCSV(os.Stdout, res)
	}
	if err := storage.ExportCSV(outFile, res); err != nil {
		return err
	}
	logging.L().WithFields(logrus.Fields{"run": args[0], "out": outFile}).Info("csv exported")
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	if toStdout() {
		return storage.WriteJSON(os.Stdout, res, meta.Models)
	}
	if err := storage.ExportJSON(outFile, res, meta.Models); err != nil {
		return err
	}
	logging.L().WithFields(logrus.Fields{"run": args[0], "out": outFile}).Info("json exported")
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tGLASS\tKINETICS\tMODULUS\tEXPANSION\tHEAT")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			cfg.Glass.Model,
			cfg.Kinetics.Model,
			cfg.Modulus.Model,
			cfg.Expansion.Model,
			cfg.HeatCapacity.Model,
		)
	}
	return w.Flush()
}

func runChecks(cmd *cobra.Command, args []string) error {
	outcomes := checks.Run()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcomes); err != nil {
			return err
		}
	} else {
		for _, o := range outcomes {
			mark := passStyle.Render("PASS")
			if !o.Passed {
				mark = failStyle.Render("FAIL")
			}
			fmt.Printf("%s  %-44s %s\n", mark, o.Name, labelStyle.Render(o.Detail))
		}
	}

	failed := make([]string, 0)
	for _, o := range outcomes {
		if !o.Passed {
			failed = append(failed, o.Name)
		}
	}
	logging.L().WithFields(logrus.Fields{
		"total":  len(outcomes),
		"failed": len(failed),
	}).Info("checks completed")

	if len(failed) > 0 {
		sort.Strings(failed)
		return fmt.Errorf("%d checks failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

func writeReport(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadMaterial()
	if err != nil {
		return err
	}

	r, err := report.Build(m, cfg.Sweep)
	if err != nil {
		return err
	}
	if withChecks {
		r.Checks = checks.Run()
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := r.Render(w, report.DefaultOptions()); err != nil {
		return err
	}
	logging.L().WithFields(logrus.Fields{
		"material": m.Name,
		"out":      outFile,
	}).Info("report written")
	return nil
}

// exploreMaterial opens the explorer on the selected material followed by
// every preset.
func exploreMaterial(cmd *cobra.Command, args []string) error {
	_, m, err := loadMaterial()
	if err != nil {
		return err
	}

	entries := []viz.Entry{{Name: m.Name, Material: m}}
	for _, name := range config.ListPresets() {
		if name == m.Name {
			continue
		}
		pm, err := config.GetPreset(name).Build()
		if err != nil {
			return err
		}
		entries = append(entries, viz.Entry{Name: name, Material: pm})
	}

	e, err := viz.NewExplorer(entries, phi, tempC)
	if err != nil {
		return err
	}
	if e, err = e.WithTheme(themeName); err != nil {
		return err
	}
	return viz.Run(e)
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Only buildable configs are written.
	if _, err := cfg.Build(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("saved %s to %s\n", cfg.Name, args[0])
	return nil
}

func serveMaterial(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Fail before listening if the material is invalid.
	if _, err := cfg.Build(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("serving %s on %s/ws\n", cfg.Name, addr)
	return server.New(cfg, logging.L()).Serve(ctx, addr)
}
