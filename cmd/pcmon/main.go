package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/npratt/pcmon/internal/apiclient"
	"github.com/npratt/pcmon/internal/config"
)

var version = "dev"

// app carries the state shared by all commands of one invocation.
type app struct {
	v        *viper.Viper
	logLevel *slog.LevelVar
	logger   *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Diagnostics are logged as JSON to
// logOut; command output goes to the command's stdout.
func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{
		v:        viper.New(),
		logLevel: &slog.LevelVar{},
	}
	a.logger = newJSONLogger(logOut, a.logLevel)

	a.v.SetEnvPrefix("PCMON")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "pcmon",
		Short: "Live monitor for a producer/consumer simulation",
		Long: `pcmon polls a producer/consumer simulation service for its statistics and
rolling log, rebuilds each consumer's progress over time from the log, and
shows it all in a terminal dashboard.

Polling stops on its own once the produced and consumed counters stop
changing.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.v.GetBool(FlagVerbose) {
				a.logLevel.Set(slog.LevelDebug)
				a.logger.Debug("verbose logging enabled")
			}
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .pcmon/config.yaml)")
	rootCmd.PersistentFlags().String(FlagBaseURL, "", "Simulation API root (default: http://localhost:5000/api)")
	rootCmd.PersistentFlags().Duration(FlagTimeout, 0, "Per-request timeout")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pcmon %s\n", version)
		},
	}

	rootCmd.AddCommand(
		a.newWatchCmd(),
		a.newStatsCmd(),
		a.newLogsCmd(),
		a.newHealthCmd(),
		versionCmd,
	)
	return rootCmd
}

// bindFlags binds every local flag of cmd to viper.
func (a *app) bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})
}

// loadConfig loads the layered config and applies explicitly set flags on top.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(a.v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Apply CLI flag overrides (only if explicitly set)
	flags := cmd.Flags()
	if flags.Changed(FlagBaseURL) {
		cfg.API.BaseURL = a.v.GetString(FlagBaseURL)
	}
	if flags.Changed(FlagTimeout) {
		cfg.API.Timeout = a.v.GetDuration(FlagTimeout)
	}
	if flags.Changed(FlagStatsInterval) {
		cfg.Polling.StatsInterval = a.v.GetDuration(FlagStatsInterval)
	}
	if flags.Changed(FlagLogsInterval) {
		cfg.Polling.LogsInterval = a.v.GetDuration(FlagLogsInterval)
	}
	if flags.Changed(FlagStallThreshold) {
		cfg.Polling.StallThreshold = a.v.GetInt(FlagStallThreshold)
	}
	if flags.Changed(FlagChartHeight) {
		cfg.Chart.Height = a.v.GetInt(FlagChartHeight)
	}
	if flags.Changed(FlagDebugLog) {
		cfg.Paths.DebugLog = a.v.GetString(FlagDebugLog)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newClient creates the service client for cfg.
func newClient(cfg *config.Config) *apiclient.HTTPClient {
	return apiclient.NewHTTPClient(cfg.API.BaseURL, apiclient.WithTimeout(cfg.API.Timeout))
}

// shutdownTimeout bounds how long the plain watcher waits for in-flight
// requests after a signal.
const shutdownTimeout = 10 * time.Second
