// Package commands implements CLI command handlers for depotstat.
package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/depotstat/pkg/config"
	"github.com/Sumatoshi-tech/depotstat/pkg/observability"
	"github.com/Sumatoshi-tech/depotstat/pkg/version"
)

// Process exit codes.
const (
	exitFailure           = 1
	exitValidationFailure = 2
)

const dotEnvFile = ".env"

// ErrValidationFailed is returned by validate when the input does not
// conform; main exits with status 2.
var ErrValidationFailed = errors.New("validation failed")

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if errors.Is(err, ErrValidationFailed) {
		return exitValidationFailure
	}

	return exitFailure
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath  string
	verbose     bool
	quiet       bool
	noColor     bool
	logJSON     bool
	metricsFile string

	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.ScanMetrics
	span      trace.Span
}

// NewRootCommand builds the depotstat command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "depotstat",
		Short: "depotstat - statistics for extracted game asset trees",
		Long: `depotstat walks extracted asset trees and dump files, tallies what it
finds and renders the tallies as tables, JSON/YAML, CSV, workbooks or charts.

Commands:
  scenes     Dialogue statistics of *.scnlocjson scene files
  quests     Node statistics of quest-phase dumps
  folders    Quest file inventory per quest folder
  assets     Asset type inventory per quest folder
  anims      Animation file listing and keyword classification
  merge      Concatenate text reports into one file
  validate   Check a scene file or quest-node dump against its schema`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: depotstat.yaml in ., ./config, ~/.config/depotstat)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only log warnings and errors")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write scan metrics in Prometheus text format to this file on exit")

	rootCmd.AddCommand(
		newScenesCommand(a),
		newQuestsCommand(a),
		newFoldersCommand(a),
		newAssetsCommand(a),
		newAnimsCommand(a),
		newMergeCommand(a),
		newValidateCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envErr := config.LoadDotEnv(dotEnvFile)
	if envErr != nil {
		return envErr
	}

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg

	obsCfg, err := a.observabilityConfig(cmd.Name())
	if err != nil {
		return err
	}

	providers, err := observability.Init(obsCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	a.providers = providers

	slog.SetDefault(providers.Logger)

	a.metrics, err = observability.NewScanMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	ctx, span := providers.Tracer.Start(cmd.Context(), "depotstat."+cmd.Name())
	a.span = span

	cmd.SetContext(ctx)

	return nil
}

func (a *app) observabilityConfig(command string) (observability.Config, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Command = command
	obsCfg.LogJSON = a.logJSON || a.cfg.Logging.Format == "json"

	level, err := observability.ParseLevel(a.cfg.Logging.Level)
	if err != nil {
		return obsCfg, fmt.Errorf("%w: %w", config.ErrInvalidLogLevel, err)
	}

	switch {
	case a.verbose:
		level = slog.LevelDebug
	case a.quiet:
		level = slog.LevelWarn
	}

	obsCfg.LogLevel = level

	return obsCfg, nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.span != nil {
		a.span.End()
	}

	var errs []error

	if a.metricsFile != "" {
		errs = append(errs, a.providers.WriteMetrics(a.metricsFile))
	}

	if a.providers.Shutdown != nil {
		errs = append(errs, a.providers.Shutdown(cmd.Context()))
	}

	return errors.Join(errs...)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version needs neither config nor observability.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "depotstat %s\n", version.String())

			return err
		},
	}
}
