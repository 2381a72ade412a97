package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LOSSCALC_LOGGING_LEVEL.
const EnvPrefix = "LOSSCALC"

// Default application settings.
const (
	DefaultServerAddress   = ":8080"
	DefaultMaxBodySize     = "1M"
	DefaultMaxBodySizeByte = 1 << 20
	DefaultMemoSize        = 256
	DefaultStoreDriver     = "file"
	DefaultStorePath       = "cases"
	DefaultOutputFormat    = "console"
	DefaultOutputDir       = "reports"
)

// LoggingSettings configures the zap logger built by hosts.
type LoggingSettings struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputFile string `mapstructure:"output_file"`
}

// OutputSettings picks the default report format and directory.
type OutputSettings struct {
	Format    string `mapstructure:"format"`
	Directory string `mapstructure:"directory"`
}

// StoreSettings selects the case store backend. Driver is "file" (Path is a
// directory) or "sqlite" (Path is a database file).
type StoreSettings struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// ServerSettings configures the HTTP compute API.
type ServerSettings struct {
	Address     string `mapstructure:"address"`
	MaxBodySize string `mapstructure:"max_body_size"`
	MemoSize    int    `mapstructure:"memo_size"`
}

// EngineSettings maps onto calculation.ScenarioOptions.
type EngineSettings struct {
	RerunAncillary bool `mapstructure:"rerun_ancillary"`
	Parallel       bool `mapstructure:"parallel"`
	MaxWorkers     int  `mapstructure:"max_workers"`
	Debug          bool `mapstructure:"debug"`
}

// Settings is the application configuration shared by the CLI and server.
type Settings struct {
	Logging LoggingSettings `mapstructure:"logging"`
	Output  OutputSettings  `mapstructure:"output"`
	Store   StoreSettings   `mapstructure:"store"`
	Server  ServerSettings  `mapstructure:"server"`
	Engine  EngineSettings  `mapstructure:"engine"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.directory", DefaultOutputDir)
	v.SetDefault("store.driver", DefaultStoreDriver)
	v.SetDefault("store.path", DefaultStorePath)
	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)
	v.SetDefault("server.memo_size", DefaultMemoSize)
	v.SetDefault("engine.rerun_ancillary", false)
	v.SetDefault("engine.parallel", false)
	v.SetDefault("engine.max_workers", 0)
	v.SetDefault("engine.debug", false)
}

// LoadSettings reads settings from an optional YAML file, applies LOSSCALC_*
// environment overrides and fills defaults. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	switch s.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	switch s.Store.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("invalid store driver: %s", s.Store.Driver)
	}
	if _, err := ParseSize(s.Server.MaxBodySize); err != nil {
		return err
	}
	return nil
}

// MaxBodyBytes returns the request body limit in bytes.
func (s ServerSettings) MaxBodyBytes() int64 {
	n, err := ParseSize(s.MaxBodySize)
	if err != nil || n <= 0 {
		return DefaultMaxBodySizeByte
	}
	return n
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultMaxBodySizeByte, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
