package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level minml.yaml configuration.
//
// Example minml.yaml:
//
//	eval:
//	  max_depth: 100000
//	  memoize: true
//	  memo_size: 4096
//	  timeout: 5s
//	  store: .minml/results.db
//	diagnostics:
//	  color: auto
//	log:
//	  level: info
type Config struct {
	Eval        EvalConfig        `yaml:"eval"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Log         LogConfig         `yaml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

type EvalConfig struct {
	MaxDepth int           `yaml:"max_depth"`
	Memoize  bool          `yaml:"memoize"`
	MemoSize int           `yaml:"memo_size"`
	Timeout  time.Duration `yaml:"timeout"` // zero means no limit

	// Store is a SQLite database of earlier results. A relative path is
	// taken from the directory of the configuration file.
	Store string `yaml:"store"`
}

type DiagnosticsConfig struct {
	Color string `yaml:"color"` // auto, always or never
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Eval: EvalConfig{
			MaxDepth: DefaultMaxDepth,
			MemoSize: DefaultMemoSize,
		},
		Diagnostics: DiagnosticsConfig{Color: "auto"},
		Log:         LogConfig{Level: LogLevelInfo},
	}
}

// Load reads and validates the configuration file at path. Settings the
// file omits keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses minml.yaml content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	cfg.setDefaults()
	if cfg.Eval.Store != "" && !filepath.IsAbs(cfg.Eval.Store) {
		cfg.Eval.Store = filepath.Join(filepath.Dir(path), cfg.Eval.Store)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads the configuration file in dir, or returns Default when
// there is none.
func Discover(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}
	return Default(), nil
}

func (c *Config) setDefaults() {
	if c.Eval.MaxDepth == 0 {
		c.Eval.MaxDepth = DefaultMaxDepth
	}
	if c.Eval.MemoSize == 0 {
		c.Eval.MemoSize = DefaultMemoSize
	}
	if c.Diagnostics.Color == "" {
		c.Diagnostics.Color = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = LogLevelInfo
	}
	c.Diagnostics.Color = strings.ToLower(c.Diagnostics.Color)
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	where := c.Path
	if where == "" {
		where = "config"
	}
	if c.Eval.MaxDepth < 1 {
		return fmt.Errorf("%s: eval.max_depth must be positive, got %d", where, c.Eval.MaxDepth)
	}
	if c.Eval.MemoSize < 1 {
		return fmt.Errorf("%s: eval.memo_size must be positive, got %d", where, c.Eval.MemoSize)
	}
	if c.Eval.Timeout < 0 {
		return fmt.Errorf("%s: eval.timeout must not be negative, got %s", where, c.Eval.Timeout)
	}
	switch c.Diagnostics.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%s: diagnostics.color must be auto, always or never, got %q", where, c.Diagnostics.Color)
	}
	switch c.Log.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%s: log.level %q is not one of debug, info, warn, error", where, c.Log.Level)
	}
	return nil
}
