package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. TALLY_DATA_FILE.
const Prefix = "TALLY"

type Config struct {
	App struct {
		Name string `default:"Tally"`
	}

	Data struct {
		File string `default:"data/tally.txt"`
	}

	Export struct {
		Dir string `default:"exports"`
	}

	Log struct {
		File  string `default:"tally.log"`
		Level string `default:"info"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Data.File) == "" {
		problems = append(problems, "data file path must not be empty")
	}

	if strings.TrimSpace(c.Export.Dir) == "" {
		problems = append(problems, "export directory must not be empty")
	}

	if strings.TrimSpace(c.Log.File) == "" {
		problems = append(problems, "log file path must not be empty")
	}

	if _, err := c.LogLevel(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}

	return nil
}

// LogLevel parses Log.Level: debug, info, warn or error.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", c.Log.Level)
	}

	return level, nil
}
