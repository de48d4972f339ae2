package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config file locations.
const (
	// GlobalConfigDir is the directory under $XDG_CONFIG_HOME (or ~/.config)
	GlobalConfigDir = "pcmon"
	// GlobalConfigFile is the global config file name
	GlobalConfigFile = "config.yaml"
	// ProjectConfigDir is the working-directory config directory
	ProjectConfigDir = ".pcmon"
	// ProjectConfigFile is the working-directory config file name
	ProjectConfigFile = "config.yaml"
)

// configSource is one YAML file in the layering order.
type configSource struct {
	path     string
	required bool
}

// LoadConfig builds the effective configuration. Later layers win:
//  1. Default() values
//  2. $XDG_CONFIG_HOME/pcmon/config.yaml
//  3. .pcmon/config.yaml in the working directory
//  4. the file named by the "config" key (--config or PCMON_CONFIG)
//  5. PCMON_* environment variables, if v has AutomaticEnv enabled
//
// Only the explicit file must exist. Durations accept Go syntax ("1500ms")
// or a bare number of seconds. The result is validated.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := registerDefaults(v, Default()); err != nil {
		return nil, fmt.Errorf("register defaults: %w", err)
	}

	for _, src := range configSources(v) {
		if err := mergeFile(v, src); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// configSources lists the files to merge, lowest precedence first.
func configSources(v *viper.Viper) []configSource {
	var sources []configSource

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config")
		}
	}
	if configDir != "" {
		sources = append(sources, configSource{path: filepath.Join(configDir, GlobalConfigDir, GlobalConfigFile)})
	}

	sources = append(sources, configSource{path: filepath.Join(ProjectConfigDir, ProjectConfigFile)})

	if explicit := v.GetString("config"); explicit != "" {
		sources = append(sources, configSource{path: explicit, required: true})
	}
	return sources
}

// mergeFile reads one YAML file into v. Optional files that do not exist
// are skipped.
func mergeFile(v *viper.Viper, src configSource) error {
	data, err := os.ReadFile(src.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !src.required {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}

	fileViper := viper.New()
	fileViper.SetConfigType("yaml")
	if err := fileViper.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("read %s: %w", src.path, err)
	}
	return v.MergeConfigMap(fileViper.AllSettings())
}

// registerDefaults records every field of cfg as a viper default under its
// dotted key (e.g. "polling.stats_interval"). Registered keys are also the
// ones AutomaticEnv can override.
func registerDefaults(v *viper.Viper, cfg *Config) error {
	var tree map[string]interface{}
	if err := mapstructure.Decode(cfg, &tree); err != nil {
		return err
	}
	setDefaults(v, "", tree)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]interface{}) {
	for key, val := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := val.(map[string]interface{}); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook reads a bare number as seconds when the target is a
// time.Duration, so "stats_interval: 2" and PCMON_POLLING_STATS_INTERVAL=0.5
// both work. Values that already carry a unit are left for the next hook.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType || from == durationType {
			return data, nil
		}

		var secs float64
		switch from.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			secs = float64(reflect.ValueOf(data).Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			secs = float64(reflect.ValueOf(data).Uint())
		case reflect.Float32, reflect.Float64:
			secs = reflect.ValueOf(data).Float()
		case reflect.String:
			f, err := strconv.ParseFloat(strings.TrimSpace(reflect.ValueOf(data).String()), 64)
			if err != nil {
				return data, nil
			}
			secs = f
		default:
			return data, nil
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
}
