package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HomeEnv overrides the data directory (default ~/.tasks).
const HomeEnv = "TASKS_HOME"

const (
	dirName        = ".tasks"
	configFileName = "config.yaml"
	dataFileName   = "projects.json"
	logFileName    = "tasks.log"
)

// Paths are the per-user locations resolved once at startup.
type Paths struct {
	Dir    string // ~/.tasks
	Config string // ~/.tasks/config.yaml
	Data   string // ~/.tasks/projects.json
	Log    string // ~/.tasks/tasks.log
}

// Resolve determines the per-user locations. It is the only place that
// looks at the environment or the home directory.
func Resolve() (Paths, error) {
	dir := strings.TrimSpace(os.Getenv(HomeEnv))
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	return PathsIn(dir), nil
}

// PathsIn lays out the default file names under dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:    dir,
		Config: filepath.Join(dir, configFileName),
		Data:   filepath.Join(dir, dataFileName),
		Log:    filepath.Join(dir, logFileName),
	}
}

// Config is the optional user configuration in config.yaml.
type Config struct {
	Version       int    `yaml:"version"`
	DataFile      string `yaml:"data_file,omitempty"`      // Overrides projects.json location
	LogFile       string `yaml:"log_file,omitempty"`       // Overrides tasks.log location
	LogLevel      string `yaml:"log_level,omitempty"`      // panic, fatal, error, warn, info, debug, trace
	ConfirmDelete *bool  `yaml:"confirm_delete,omitempty"` // Ask [y/N] before deleting a row (default true)
	DateFormat    string `yaml:"date_format,omitempty"`    // Go layout for the Created At column
}

// DefaultDateFormat renders task creation times.
const DefaultDateFormat = "2006-01-02 15:04:05"

// DefaultConfig returns the config written by `tasks init`.
func DefaultConfig() *Config {
	confirm := true
	return &Config{
		Version:       1,
		LogLevel:      "info",
		ConfirmDelete: &confirm,
		DateFormat:    DefaultDateFormat,
	}
}

// Load reads and parses the config file at the given path. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

var logLevels = []string{"panic", "fatal", "error", "warn", "warning", "info", "debug", "trace"}

func (c *Config) validate() error {
	if c.LogLevel != "" && !containsAny(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.DateFormat) == "" {
		c.DateFormat = DefaultDateFormat
	}
	return nil
}

// ShouldConfirmDelete reports whether deletions need a [y/N] answer.
func (c *Config) ShouldConfirmDelete() bool {
	return c.ConfirmDelete == nil || *c.ConfirmDelete
}

// DataPath is the document location: data_file when set, else the default.
func (c *Config) DataPath(p Paths) string {
	return expand(c.DataFile, p.Dir, p.Data)
}

// LogPath is the log file location: log_file when set, else the default.
func (c *Config) LogPath(p Paths) string {
	return expand(c.LogFile, p.Dir, p.Log)
}

// expand resolves "~/" against the user's home and relative paths against
// base. An empty value returns fallback.
func expand(value, base, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, value[2:])
		}
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(base, value)
}

// containsAny checks if any of the targets exist in the slice.
func containsAny(slice []string, targets ...string) bool {
	for _, s := range slice {
		for _, t := range targets {
			if s == t {
				return true
			}
		}
	}
	return false
}
