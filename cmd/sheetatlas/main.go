// Package main provides the CLI entry point for sheetatlas-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/config"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/merge"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/output"
)

var (
	configPath string
	outputPath string
	errorsPath string
	pretty     bool
	strategy   string
	headerRows int
	sampleSize int
	noMerge    bool
	sheetsDir  string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetatlas",
		Short: "Analyze the data quality of Excel workbooks",
		Long: `sheetatlas-go normalizes cell values, infers column types, flags
anomalies and resolves merged cells, then writes the report as JSON.`,
		SilenceUsage: true,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [input.xlsx]",
		Short: "Analyze a workbook and write a JSON report",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	flags := analyzeCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&errorsPath, "errors", "", "Write the combined error log to this file")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&strategy, "strategy", "", "Merge strategy: expand_value, keep_top_left, flatten_to_string, treat_as_header")
	flags.IntVar(&headerRows, "header-rows", 1, "Number of header rows")
	flags.IntVar(&sampleSize, "sample-size", 100, "Non-empty cells sampled per column")
	flags.BoolVar(&noMerge, "no-merge", false, "Leave merged ranges unresolved")
	flags.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(analyzeCmd)
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	opts, err := cfg.Options(logger.Named("sheetatlas"))
	if err != nil {
		return err
	}

	report, err := sheetatlas.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	jsonData, err := output.ToJSON(report, cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(report, sheetsDir, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if errorsPath != "" {
		data, err := output.ErrorsToJSON(report, cfg.Output.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := os.WriteFile(errorsPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write error log: %w", err)
		}
	}

	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		s, err := merge.ParseStrategy(strategy)
		if err != nil {
			return err
		}
		cfg.Merge.Strategy = string(s)
	}
	if flags.Changed("header-rows") {
		cfg.Merge.HeaderRows = headerRows
	}
	if flags.Changed("sample-size") {
		cfg.Analysis.SampleSize = sampleSize
	}
	if noMerge {
		cfg.Merge.Enabled = false
	}
	if pretty {
		cfg.Output.Pretty = true
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg.Validate()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel())
	zc.OutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

func writeSheetFiles(report *models.WorkbookReport, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for i := range report.Sheets {
		sheet := &report.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet.Name)+".json")
		if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName replaces path separators in sheet names.
func sheetFileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
