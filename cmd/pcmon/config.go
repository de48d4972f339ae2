package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagBaseURL = "base-url"
	FlagTimeout = "timeout"

	// Watch command flags
	FlagTUI            = "tui"
	FlagStatsInterval  = "stats-interval"
	FlagLogsInterval   = "logs-interval"
	FlagStallThreshold = "stall-threshold"
	FlagChartHeight    = "chart-height"
	FlagDebugLog       = "debug-log"

	// Logs command flags
	FlagCount  = "count"
	FlagSeries = "series"

	// Output format flags
	FlagJSON = "json"
)
