package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/npratt/pcmon/internal/config"
	"github.com/npratt/pcmon/internal/poller"
	"github.com/npratt/pcmon/internal/shutdown"
	"github.com/npratt/pcmon/internal/tui"
)

func (a *app) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor the simulation until it stops making progress",
		Long: `Poll the simulation's statistics and log on independent timers.

With a terminal on stdout (or --tui) the dashboard shows counters, the
producer and consumer listings, the selected consumer's progress chart and
the raw log. Otherwise one JSON record per update is written to stdout.

Polling stops after --stall-threshold consecutive statistics polls report
the same produced and consumed counts (0 disables this).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			// Determine TUI mode: explicit flag > auto-detect from TTY
			tuiEnabled := a.v.GetBool(FlagTUI)
			if !cmd.Flags().Changed(FlagTUI) {
				tuiEnabled = term.IsTerminal(int(os.Stdout.Fd()))
			}

			if tuiEnabled {
				return a.watchTUI(cmd.Context(), cfg)
			}
			return a.watchPlain(cmd, cfg)
		},
	}

	cmd.Flags().Bool(FlagTUI, false, "Enable terminal UI (default: auto-detect)")
	cmd.Flags().Duration(FlagStatsInterval, 0, "Statistics poll interval (default: 1s)")
	cmd.Flags().Duration(FlagLogsInterval, 0, "Log poll interval (default: 2s)")
	cmd.Flags().Int(FlagStallThreshold, 0, "Unchanged statistics polls before stopping (default: 5)")
	cmd.Flags().Int(FlagChartHeight, 0, "Trend chart height in rows (default: 12)")
	cmd.Flags().String(FlagDebugLog, "", "TUI debug log path (default: .pcmon/pcmon-debug.log)")
	a.bindFlags(cmd)

	return cmd
}

// pollerOptions maps the polling config onto controller options.
func pollerOptions(cfg *config.Config, logger *slog.Logger) []poller.Option {
	return []poller.Option{
		poller.WithIntervals(cfg.Polling.StatsInterval, cfg.Polling.LogsInterval),
		poller.WithStallThreshold(cfg.Polling.StallThreshold),
		poller.WithLogger(logger),
	}
}

// watchPlain writes every update as a JSON record to stdout and runs until
// polling stops, the context ends, or a termination signal arrives.
func (a *app) watchPlain(cmd *cobra.Command, cfg *config.Config) error {
	sink := poller.NewLogSink(newJSONLogger(cmd.OutOrStdout(), slog.LevelInfo))
	ctrl := poller.New(newClient(cfg), sink, pollerOptions(cfg, a.logger)...)

	a.logger.Info("pcmon watching",
		"version", version,
		"base_url", cfg.API.BaseURL,
		"stats_interval", cfg.Polling.StatsInterval,
		"logs_interval", cfg.Polling.LogsInterval,
		"stall_threshold", cfg.Polling.StallThreshold,
	)

	return shutdown.RunWithGracefulShutdown(cmd.Context(), a.logger, shutdownTimeout, ctrl.Run)
}

// watchTUI runs the dashboard in the foreground with the poller in the
// background. Logs go to the rotating debug file so they cannot corrupt the
// screen.
func (a *app) watchTUI(ctx context.Context, cfg *config.Config) error {
	logResult, err := SetupTUILogger(cfg.Paths.DebugLog, a.logLevel, cfg.LogRotation)
	if err != nil {
		return err
	}
	defer func() { _ = logResult.Close() }()
	slog.SetDefault(logResult.Logger)

	updates := poller.NewChannelSink(poller.DefaultBufferSize)
	sink := poller.MultiSink{updates, poller.NewLogSink(logResult.Logger)}
	client := newClient(cfg)
	ctrl := poller.New(client, sink, pollerOptions(cfg, logResult.Logger)...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Run poller in background; closing the channel tells the TUI polling ended
	ctrlDone := make(chan error, 1)
	go func() {
		err := ctrl.Run(runCtx)
		updates.Close()
		ctrlDone <- err
	}()

	tuiApp := tui.New(updates.Updates(),
		tui.WithOnQuit(cancel),
		tui.WithSource(client.BaseURL()),
		tui.WithChartHeight(cfg.Chart.Height),
	)

	// Run TUI in foreground (blocks until quit)
	tuiErr := tuiApp.Run()

	// Ensure poller stops when TUI exits
	cancel()
	ctrlErr := <-ctrlDone

	return errors.Join(tuiErr, ctrlErr)
}
