// Package config handles the optional configuration file and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Front-end selection values for Config.FrontEnd.
const (
	FrontEndAsk      = "ask"
	FrontEndWindowed = "windowed"
	FrontEndText     = "text"
)

// Default values.
const (
	DefaultDataFile = "tasks.json"
	DefaultLogLevel = "info"
	DefaultFrontEnd = FrontEndAsk
)

// Config holds the full configuration.
type Config struct {
	// DataFile is the JSON file holding the task collection. Relative
	// paths resolve against the working directory.
	DataFile string `toml:"data_file"`

	// LogFile receives diagnostics. Empty disables logging.
	LogFile string `toml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// FrontEnd picks the interface at startup: ask, windowed, or text.
	FrontEnd string `toml:"front_end"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataFile: DefaultDataFile,
		LogFile:  defaultLogFile(),
		LogLevel: DefaultLogLevel,
		FrontEnd: DefaultFrontEnd,
	}
}

// DefaultPath returns the expected location of the configuration file, or
// empty when no user config directory is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tdm", "config.toml")
}

// Load reads the file at path over the defaults. A missing or empty path
// yields the defaults. On decode or validation failure the defaults are
// returned together with the error so the caller can warn and continue.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.FrontEnd {
	case FrontEndAsk, FrontEndWindowed, FrontEndText:
	default:
		return fmt.Errorf("front_end must be %s, %s, or %s; got %q",
			FrontEndAsk, FrontEndWindowed, FrontEndText, c.FrontEnd)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error; got %q", c.LogLevel)
	}
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	return nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tdm", "tdm.log")
}
