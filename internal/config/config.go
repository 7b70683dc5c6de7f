package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the project root when no
// explicit --config path is given.
const DefaultFile = "guardian.yaml"

// Config carries the operational settings of a run. Detector rule tables are
// fixed in code; the config only switches components on and off and tunes
// the knobs the external tools expose.
type Config struct {
	Version string    `yaml:"version"`
	Scan    Scan      `yaml:"scan"`
	Linters Linters   `yaml:"linters"`
	Link    LinkCheck `yaml:"linkcheck"`
	Output  Output    `yaml:"output"`
}

// Scan configures the pattern-detector phase.
type Scan struct {
	// Detectors lists enabled dialect scanners. Listing order does not
	// matter; execution order stays fixed (python before javascript).
	Detectors   []string `yaml:"detectors" validate:"dive,oneof=python javascript"`
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// Linters configures the external-tool phase.
type Linters struct {
	Enabled          []string `yaml:"enabled" validate:"dive,oneof=flake8 eslint"`
	Flake8MaxLineLen int      `yaml:"flake8_max_line_length" validate:"gte=0"`
}

// LinkCheck configures the documentation link checker.
type LinkCheck struct {
	TimeoutSeconds    int      `yaml:"timeout_seconds" validate:"gte=1,lte=300"`
	Concurrency       int      `yaml:"concurrency" validate:"gte=1,lte=64"`
	RequestsPerSecond float64  `yaml:"requests_per_second" validate:"gte=0"`
	ExcludeDirs       []string `yaml:"exclude_dirs"`
}

// Output configures where the result sink writes.
type Output struct {
	ResultsFile  string `yaml:"results_file"`
	CriticalFile string `yaml:"critical_file"`
}

var validate = validator.New()

// Default returns the configuration used when no guardian.yaml exists.
// A CI run must work with zero configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Scan: Scan{
			Detectors: []string{"python", "javascript"},
			ExcludeDirs: []string{
				".git", ".svn", ".hg",
				"node_modules", "vendor", "target",
				"build", "dist", ".gradle",
				"__pycache__", ".pytest_cache",
				".idea", ".vscode",
			},
		},
		Linters: Linters{
			Enabled:          []string{"flake8", "eslint"},
			Flake8MaxLineLen: 100,
		},
		Link: LinkCheck{
			TimeoutSeconds:    5,
			Concurrency:       8,
			RequestsPerSecond: 0, // unlimited
			ExcludeDirs:       []string{filepath.Join(".github", "scripts")},
		},
		Output: Output{
			ResultsFile:  "scan-results.json",
			CriticalFile: "critical-issues.json",
		},
	}
}

// Load reads and validates a config file. Fields left empty in the file fall
// back to their defaults, so a partial guardian.yaml stays valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyFallbacks(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Discover loads <root>/guardian.yaml when present, defaults otherwise.
func Discover(root string) (*Config, error) {
	path := filepath.Join(root, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}
	return Load(path)
}

// applyFallbacks restores zero-valued knobs after yaml.Unmarshal cleared them
// because the file set a section but omitted fields inside it.
func applyFallbacks(cfg *Config) {
	def := Default()
	if cfg.Linters.Flake8MaxLineLen == 0 {
		cfg.Linters.Flake8MaxLineLen = def.Linters.Flake8MaxLineLen
	}
	if cfg.Link.TimeoutSeconds == 0 {
		cfg.Link.TimeoutSeconds = def.Link.TimeoutSeconds
	}
	if cfg.Link.Concurrency == 0 {
		cfg.Link.Concurrency = def.Link.Concurrency
	}
	if cfg.Output.ResultsFile == "" {
		cfg.Output.ResultsFile = def.Output.ResultsFile
	}
	if cfg.Output.CriticalFile == "" {
		cfg.Output.CriticalFile = def.Output.CriticalFile
	}
}

// DetectorEnabled reports whether the named dialect scanner should run.
func (c *Config) DetectorEnabled(name string) bool {
	return contains(c.Scan.Detectors, name)
}

// LinterEnabled reports whether the named external linter should run.
func (c *Config) LinterEnabled(name string) bool {
	return contains(c.Linters.Enabled, name)
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
