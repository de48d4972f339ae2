package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/npratt/pcmon/internal/apiclient"
	"github.com/npratt/pcmon/internal/logparse"
	"github.com/npratt/pcmon/internal/termtext"
	"github.com/npratt/pcmon/internal/timeseries"
)

// healthyStatus is the status the service reports when it is up.
const healthyStatus = "ok"

func (a *app) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch the current statistics once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			stats, err := newClient(cfg).Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.v.GetBool(FlagJSON) {
				data, err := sonic.ConfigStd.MarshalIndent(stats, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal stats: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			printStats(out, stats)
			return nil
		},
	}
	cmd.Flags().Bool(FlagJSON, false, "Output statistics as JSON")
	a.bindFlags(cmd)
	return cmd
}

// printStats writes the human-readable statistics summary.
func printStats(w io.Writer, stats *apiclient.StatsResponse) {
	st := stats.Statistics
	fmt.Fprintf(w, "Produced: %d\n", st.TotalProduced)
	fmt.Fprintf(w, "Consumed: %d\n", st.TotalConsumed)
	fmt.Fprintf(w, "Efficiency: %.1f%%\n", st.EfficiencyPercent)
	fmt.Fprintf(w, "Throughput: %.2f/s\n", st.ThroughputPerSec)
	if stats.Metadata.TotalTimeSeconds > 0 {
		fmt.Fprintf(w, "Runtime: %.1fs\n", stats.Metadata.TotalTimeSeconds)
	}
	printEntities(w, "Producers", stats.Producers)
	printEntities(w, "Consumers", stats.Consumers)
}

func printEntities(w io.Writer, title string, entities []apiclient.Entity) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(entities) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, e := range entities {
		items := make([]string, len(e.Items))
		for i, it := range e.Items {
			items[i] = termtext.Clean(string(it))
		}
		fmt.Fprintf(w, "  %d: %d items [%s]\n", e.ID, e.Count, strings.Join(items, ", "))
	}
}

func (a *app) newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Fetch the current log snapshot once",
		Long: `Fetch the service's rolling log once and print the most recent lines.

With --series the log is instead reconstructed into each consumer's
progress series, printed as elapsed-seconds=processed pairs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			lines, err := newClient(cfg).Logs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.v.GetBool(FlagSeries) {
				printSeries(out, lines)
				return nil
			}
			printTail(out, lines, a.v.GetInt(FlagCount))
			return nil
		},
	}
	cmd.Flags().Int(FlagCount, 20, "Number of recent lines to show (0 = all)")
	cmd.Flags().Bool(FlagSeries, false, "Print reconstructed per-consumer series")
	a.bindFlags(cmd)
	return cmd
}

// printTail writes the last n lines (all lines when n <= 0).
func printTail(w io.Writer, lines []string, n int) {
	if len(lines) == 0 {
		fmt.Fprintln(w, "No log lines yet")
		return
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, line := range lines {
		fmt.Fprintln(w, termtext.Clean(line))
	}
}

// printSeries reconstructs lines and writes one row per consumer.
func printSeries(w io.Writer, lines []string) {
	r := timeseries.New()
	store := r.Reconstruct(lines)

	if anchor, ok := r.Anchor(); ok {
		fmt.Fprintf(w, "Start: %s\n", anchor.Format("15:04:05"))
	}
	ids := store.ConsumerIDs()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No consumer progress yet")
	}
	for _, id := range ids {
		points := make([]string, len(store[id]))
		for i, p := range store[id] {
			points[i] = fmt.Sprintf("%ds=%d", p.Elapsed, p.Count)
		}
		fmt.Fprintf(w, "Consumer %d: %s\n", id, strings.Join(points, " "))
	}
	fmt.Fprintf(w, "Defective: %d\n", logparse.CountRejected(lines))
}

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the simulation service is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			health, err := newClient(cfg).Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", termtext.Clean(health.Status))
			if health.Timestamp != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Timestamp: %s\n", termtext.Clean(health.Timestamp))
			}
			if health.Status != healthyStatus {
				return fmt.Errorf("service unhealthy: %s", termtext.Clean(health.Status))
			}
			return nil
		},
	}
}
