// Package main provides the CLI entrypoint for germstat.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/germstat/internal/config"
	"github.com/verte-zerg/germstat/internal/dataset"
	"github.com/verte-zerg/germstat/internal/model"
	"github.com/verte-zerg/germstat/internal/stats"
	"github.com/verte-zerg/germstat/internal/tui"
)

const (
	defaultSeeds       = 50
	defaultDayColumn   = "day"
	defaultCountColumn = "count"
	defaultExportPath  = "germination_table.csv"
	defaultTemplateOut = "germination_template.csv"
)

var (
	trialInput       string
	trialDayColumn   string
	trialCountColumn string
	trialSeeds       int
	trialUnweighted  bool
	trialExport      string

	reportInput       string
	reportDayColumn   string
	reportCountColumn string
	reportSeeds       int
	reportUnweighted  bool
	reportCharts      bool
	reportExport      string

	templateOut   string
	templateForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "germstat",
		Short:         "TUI germination trial workbench",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrialCmd,
	}

	rootCmd.Flags().StringVar(&trialInput, "input", "", "observation CSV to load (default: built-in template data)")
	rootCmd.Flags().StringVar(&trialDayColumn, "day-col", defaultDayColumn, "day column name or 1-based index")
	rootCmd.Flags().StringVar(&trialCountColumn, "count-col", defaultCountColumn, "count column name or 1-based index")
	rootCmd.Flags().IntVar(&trialSeeds, "seeds", defaultSeeds, "total seeds sown in the trial")
	rootCmd.Flags().BoolVar(&trialUnweighted, "unweighted", false, "also report the unweighted mean day variant")
	rootCmd.Flags().StringVar(&trialExport, "export", defaultExportPath, "default path for the augmented table export")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newTemplateCmd())

	return rootCmd
}

func runTrialCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "seeds", &trialSeeds, fileCfg.Trial.TotalSeeds)
	applyBoolConfig(cmd, "unweighted", &trialUnweighted, fileCfg.Trial.Unweighted)
	applyStringConfig(cmd, "day-col", &trialDayColumn, fileCfg.CSV.DayColumn)
	applyStringConfig(cmd, "count-col", &trialCountColumn, fileCfg.CSV.CountColumn)
	applyStringConfig(cmd, "export", &trialExport, fileCfg.Output.ExportPath)

	cfg := model.TrialConfig{
		TotalSeeds: trialSeeds,
		Unweighted: trialUnweighted,
	}
	if err := validateTrialConfig(cfg); err != nil {
		return err
	}

	rows := dataset.RowsFromObservations(dataset.Template())
	if trialInput != "" {
		rows, err = loadRows(trialInput, trialDayColumn, trialCountColumn)
		if err != nil {
			return err
		}
	}

	m := tui.NewModel(rows, cfg, trialExport)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the germination report for a CSV",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportInput, "input", "", "observation CSV to load (required)")
	cmd.Flags().StringVar(&reportDayColumn, "day-col", defaultDayColumn, "day column name or 1-based index")
	cmd.Flags().StringVar(&reportCountColumn, "count-col", defaultCountColumn, "count column name or 1-based index")
	cmd.Flags().IntVar(&reportSeeds, "seeds", defaultSeeds, "total seeds sown in the trial")
	cmd.Flags().BoolVar(&reportUnweighted, "unweighted", false, "also report the unweighted mean day variant")
	cmd.Flags().BoolVar(&reportCharts, "charts", false, "render the daily and cumulative charts")
	cmd.Flags().StringVar(&reportExport, "export", "", "write the augmented table CSV to this path")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "seeds", &reportSeeds, fileCfg.Trial.TotalSeeds)
	applyBoolConfig(cmd, "unweighted", &reportUnweighted, fileCfg.Trial.Unweighted)
	applyStringConfig(cmd, "day-col", &reportDayColumn, fileCfg.CSV.DayColumn)
	applyStringConfig(cmd, "count-col", &reportCountColumn, fileCfg.CSV.CountColumn)

	if reportInput == "" {
		return fmt.Errorf("--input is required")
	}
	cfg := model.TrialConfig{
		TotalSeeds: reportSeeds,
		Unweighted: reportUnweighted,
	}
	if err := validateTrialConfig(cfg); err != nil {
		return err
	}

	rows, err := loadRows(reportInput, reportDayColumn, reportCountColumn)
	if err != nil {
		return err
	}
	obs := dataset.Normalize(rows)
	if dropped := len(rows) - len(obs); dropped > 0 {
		logErrf("Ignored %d row(s) with unparseable day or count\n", dropped)
	}
	if model.TotalCount(obs) == 0 {
		return fmt.Errorf("no valid observations in %s", reportInput)
	}
	res := stats.Compute(obs, cfg)

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, cfg, res); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderTable(out, obs, res); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	if reportCharts {
		if err := stats.RenderCharts(out, obs, cfg, 0, 0, false); err != nil {
			return fmt.Errorf("failed to render charts: %w", err)
		}
	}
	if reportExport != "" {
		if err := exportAugmented(reportExport, obs, res); err != nil {
			return err
		}
		logErrf("Wrote %s\n", reportExport)
	}
	return nil
}

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a starter observation CSV",
		Args:  cobra.NoArgs,
		RunE:  runTemplateCmd,
	}
	cmd.Flags().StringVar(&templateOut, "out", defaultTemplateOut, "output path (- for stdout)")
	cmd.Flags().BoolVar(&templateForce, "force", false, "overwrite an existing file")
	return cmd
}

func runTemplateCmd(cmd *cobra.Command, _ []string) error {
	if templateOut == "-" {
		return dataset.WriteTemplate(cmd.OutOrStdout())
	}
	if !templateForce {
		if _, err := os.Stat(templateOut); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", templateOut)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat template: %w", err)
		}
	}
	f, err := os.Create(templateOut)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close template: %v\n", cerr)
		}
	}()
	if err := dataset.WriteTemplate(f); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	logErrf("Wrote %s\n", templateOut)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadRows(path, dayColumn, countColumn string) ([]dataset.Row, error) {
	table, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	dayIdx, err := dataset.ResolveColumn(table.Header, dayColumn, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve day column: %w", err)
	}
	countIdx, err := dataset.ResolveColumn(table.Header, countColumn, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve count column: %w", err)
	}
	return dataset.MapColumns(table, dayIdx, countIdx), nil
}

func exportAugmented(path string, obs []model.Observation, res stats.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close export file: %v\n", cerr)
		}
	}()
	if err := dataset.ExportTable(f, obs, res.CumulativeCounts, res.CumulativePct); err != nil {
		return fmt.Errorf("failed to export table: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# germstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[trial]
# total-seeds = %d        # Seeds sown per trial
# unweighted = false      # Also report the unweighted mean day variant

[csv]
# day-column = %q         # Day column name or 1-based index
# count-column = %q       # Count column name or 1-based index

[output]
# export-path = %q        # Default path for the augmented table export
`,
		defaultSeeds,
		defaultDayColumn,
		defaultCountColumn,
		defaultExportPath,
	)
}

func validateTrialConfig(cfg model.TrialConfig) error {
	if cfg.TotalSeeds < 1 {
		return fmt.Errorf("--seeds must be >= 1")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
