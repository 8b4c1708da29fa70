package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openkraft/csvcheck/internal/adapters/outbound/config"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/csvsource"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/history"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/locale"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/scanner"
	"github.com/openkraft/csvcheck/internal/application"
	"github.com/openkraft/csvcheck/internal/domain"
)

// reportOutput is the JSON document printed by validate.
type reportOutput struct {
	*domain.Report
	Status domain.Status         `json:"status"`
	Counts map[domain.Status]int `json:"counts"`
}

func newValidateCmd() *cobra.Command {
	var (
		path           string
		digitalObjects string
		source         string
		strict         bool
		saveHistory    bool
		sorted         bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file.csv> [file.csv] ...",
		Short: "Validate CSV import files",
		Long:  "Run the culture, language and digital object path checks over each CSV file and print a JSON report.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("digital-objects") {
				cfg.DigitalObjects = digitalObjects
			}
			if cmd.Flags().Changed("source") {
				cfg.Source = domain.SourceType(source)
			}
			if cmd.Flags().Changed("strict") {
				cfg.Strict = strict
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			svc := newValidateService(cfg, logger)
			report, err := svc.ValidateFiles(cmd.Context(), cfg, args)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if saveHistory {
				if err := history.New().Save(absPath, report.Entry()); err != nil {
					logger.Warn("saving history failed", zap.Error(err))
				}
			}

			out := report
			if sorted {
				out = report.Sorted()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(reportOutput{Report: out, Status: report.Status(), Counts: report.Counts()}); err != nil {
				return err
			}

			// Exit code based on status
			switch report.Status() {
			case domain.StatusError:
				return fmt.Errorf("validation failed: %d check(s) reported errors", report.Counts()[domain.StatusError])
			case domain.StatusWarn:
				if cfg.Strict {
					return fmt.Errorf("validation failed (strict): %d check(s) reported warnings", report.Counts()[domain.StatusWarn])
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Directory holding .csvcheck.yaml and the run history")
	cmd.Flags().StringVar(&digitalObjects, "digital-objects", "", "Folder holding the files referenced by digitalObjectPath")
	cmd.Flags().StringVar(&source, "source", string(domain.SourceInformationObject), "Entity type imported by the CSV files")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings")
	cmd.Flags().BoolVar(&saveHistory, "save-history", false, "Append a summary of this run to the history")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "Order each file's results by severity")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	return cmd
}

// newValidateService wires the outbound adapters selected by cfg.
func newValidateService(cfg domain.CheckConfig, logger *zap.Logger) *application.ValidateService {
	oracle := locale.WithExtras(locale.NewXText(), cfg.ExtraCultures, cfg.ExtraLanguages)
	return application.NewValidateService(
		oracle,
		scanner.New(cfg.ExcludePaths...),
		csvsource.NewOpener(),
		logger,
	)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}
