package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/npratt/pcmon/internal/testutil"
	"github.com/spf13/viper"
)

// isolate points the global and working-directory config lookups at empty
// temp directories so the developer's own files never leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	testutil.Chdir(t, dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Polling.StatsInterval != time.Second {
		t.Errorf("Polling.StatsInterval = %v, want 1s", cfg.Polling.StatsInterval)
	}
	if cfg.Polling.LogsInterval != 2*time.Second {
		t.Errorf("Polling.LogsInterval = %v, want 2s", cfg.Polling.LogsInterval)
	}
	if cfg.Polling.StallThreshold != 5 {
		t.Errorf("Polling.StallThreshold = %d, want 5", cfg.Polling.StallThreshold)
	}
}

func TestLoadConfig_ProjectFile(t *testing.T) {
	dir := isolate(t)

	testutil.WriteFile(t, dir, filepath.Join(ProjectConfigDir, ProjectConfigFile), `
api:
  base_url: http://sim.internal:8080/api
  timeout: 2s
polling:
  stats_interval: 500ms
  logs_interval: 3s
  stall_threshold: 8
`)

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.BaseURL != "http://sim.internal:8080/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("API.Timeout = %v, want 2s", cfg.API.Timeout)
	}
	if cfg.Polling.StatsInterval != 500*time.Millisecond {
		t.Errorf("Polling.StatsInterval = %v, want 500ms", cfg.Polling.StatsInterval)
	}
	if cfg.Polling.LogsInterval != 3*time.Second {
		t.Errorf("Polling.LogsInterval = %v, want 3s", cfg.Polling.LogsInterval)
	}
	if cfg.Polling.StallThreshold != 8 {
		t.Errorf("Polling.StallThreshold = %d, want 8", cfg.Polling.StallThreshold)
	}
	// Untouched sections keep their defaults.
	if cfg.Chart.Height != 12 {
		t.Errorf("Chart.Height = %d, want default 12", cfg.Chart.Height)
	}
}

func TestLoadConfig_GlobalThenProject(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	testutil.WriteFile(t, xdg, filepath.Join(GlobalConfigDir, GlobalConfigFile), `
polling:
  stats_interval: 4s
  logs_interval: 4s
`)
	testutil.WriteFile(t, dir, filepath.Join(ProjectConfigDir, ProjectConfigFile), `
polling:
  logs_interval: 6s
`)

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Polling.StatsInterval != 4*time.Second {
		t.Errorf("global value lost: StatsInterval = %v", cfg.Polling.StatsInterval)
	}
	if cfg.Polling.LogsInterval != 6*time.Second {
		t.Errorf("project should override global: LogsInterval = %v", cfg.Polling.LogsInterval)
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := testutil.WriteFile(t, dir, "custom.yaml", `
chart:
  height: 20
`)

	v := viper.New()
	v.Set("config", path)
	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Chart.Height != 20 {
		t.Errorf("Chart.Height = %d, want 20", cfg.Chart.Height)
	}
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	v := viper.New()
	v.Set("config", filepath.Join(dir, "nope.yaml"))
	if _, err := LoadConfig(v); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad duration", "polling:\n  stats_interval: soon\n", "decode config"},
		{"zero interval", "polling:\n  logs_interval: 0s\n", "logs_interval"},
		{"bad yaml", "polling: [\n", "read"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			testutil.WriteFile(t, dir, filepath.Join(ProjectConfigDir, ProjectConfigFile), tc.content)

			_, err := LoadConfig(viper.New())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("error %q should mention %q", err, tc.errPart)
			}
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("PCMON_POLLING_STALL_THRESHOLD", "0")

	v := viper.New()
	v.SetEnvPrefix("PCMON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Polling.StallThreshold != 0 {
		t.Errorf("StallThreshold = %d, want 0 from env", cfg.Polling.StallThreshold)
	}
}

func TestLoadConfig_BareSecondsDurations(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, filepath.Join(ProjectConfigDir, ProjectConfigFile), `
api:
  timeout: 3
polling:
  stats_interval: 0.5
  logs_interval: 1500ms
`)
	t.Setenv("PCMON_POLLING_STATS_INTERVAL", "2")

	v := viper.New()
	v.SetEnvPrefix("PCMON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"integer seconds from file", cfg.API.Timeout, 3 * time.Second},
		{"seconds from env beat file", cfg.Polling.StatsInterval, 2 * time.Second},
		{"go syntax still accepted", cfg.Polling.LogsInterval, 1500 * time.Millisecond},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestSecondsToDurationHook(t *testing.T) {
	hook := secondsToDurationHook()
	durType := reflect.TypeOf(time.Duration(0))

	tests := []struct {
		name string
		data interface{}
		want interface{}
	}{
		{"int", 4, 4 * time.Second},
		{"float", 0.25, 250 * time.Millisecond},
		{"numeric string", " 1.5 ", 1500 * time.Millisecond},
		{"unit string passes through", "2m", "2m"},
		{"duration passes through", 7 * time.Millisecond, 7 * time.Millisecond},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hook(reflect.TypeOf(tc.data), durType, tc.data)
			if err != nil {
				t.Fatalf("hook error: %v", err)
			}
			if got != tc.want {
				t.Errorf("hook(%v) = %v (%T), want %v (%T)", tc.data, got, got, tc.want, tc.want)
			}
		})
	}

	// Non-duration targets are untouched.
	if got, _ := hook(reflect.TypeOf(5), reflect.TypeOf(0), 5); got != 5 {
		t.Errorf("int target changed: %v", got)
	}
}
