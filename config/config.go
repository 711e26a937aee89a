// Package config provides configuration loading and access for snapwell
// runs.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/snapwell/snap"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all parameters for a snapwell run.
type Config struct {
	GridFile    string `yaml:"grid_file"`
	RestartFile string `yaml:"restart_file"`
	InitFile    string `yaml:"init_file"`

	OutputDir string `yaml:"output_dir"`
	Overwrite bool   `yaml:"overwrite"`

	DeltaZ        float64       `yaml:"delta_z"`
	OwcOffset     float64       `yaml:"owc_offset"`
	OwcDefinition OwcDefinition `yaml:"owc_definition"`
	LogKeywords   []string      `yaml:"log_keywords"`

	WellpathFiles []WellPathConfig `yaml:"wellpath_files"`

	// Derived values computed after loading
	keywords []snap.Keyword
}

// OwcDefinition names the restart field and the value of it that
// defines the fluid contact.
type OwcDefinition struct {
	Keyword string  `yaml:"keyword"`
	Value   float64 `yaml:"value"`
}

// WellPathConfig is one well path entry: the file, the restart date to
// snap against, and optional per-well overrides.
type WellPathConfig struct {
	WellFile    string   `yaml:"well_file"`
	Date        string   `yaml:"date"`
	DepthType   string   `yaml:"depth_type"`
	WindowDepth *float64 `yaml:"window_depth"`

	// Per-well overrides of the global contact value and offset.
	OwcDefinition *float64 `yaml:"owc_definition"`
	OwcOffset     *float64 `yaml:"owc_offset"`

	// Derived values computed after loading
	ParsedDate time.Time `yaml:"-"`
}

// Window returns the depth window threshold, or -Inf when none is set.
func (w *WellPathConfig) Window() float64 {
	if w.WindowDepth == nil {
		return math.Inf(-1)
	}
	return *w.WindowDepth
}

// Load loads a run configuration from a YAML file, merging it over the
// embedded defaults.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	// Unmarshal into same struct - only overwrites fields present in file
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks required fields and computes derived values.
func (c *Config) validate() error {
	if c.GridFile == "" {
		return fmt.Errorf("no grid file specified in snapwell config")
	}
	if c.RestartFile == "" {
		return fmt.Errorf("no restart file specified in snapwell config")
	}
	if c.OwcDefinition.Keyword == "" {
		return fmt.Errorf("owc_definition must name a restart field")
	}
	if math.IsNaN(c.OwcDefinition.Value) || math.IsInf(c.OwcDefinition.Value, 0) {
		return fmt.Errorf("owc_definition value must be finite, not %v", c.OwcDefinition.Value)
	}

	c.keywords = c.keywords[:0]
	for _, name := range c.LogKeywords {
		kw, err := snap.ParseKeyword(name)
		if err != nil {
			return fmt.Errorf("log_keywords: %w", err)
		}
		c.keywords = append(c.keywords, kw)
	}

	for i := range c.WellpathFiles {
		w := &c.WellpathFiles[i]
		if w.WellFile == "" {
			return fmt.Errorf("wellpath %d: missing well_file", i+1)
		}
		date, err := ParseDate(w.Date)
		if err != nil {
			return fmt.Errorf("wellpath %d: %w", i+1, err)
		}
		w.ParsedDate = date
		switch w.DepthType {
		case "", "MD", "TVD":
		default:
			return fmt.Errorf(`wellpath %d: depth_type must be "MD" or "TVD", not %q`, i+1, w.DepthType)
		}
		if w.WindowDepth != nil && w.DepthType == "" {
			return fmt.Errorf("wellpath %d: window_depth needs a depth_type", i+1)
		}
	}
	return nil
}

// SetBasePath resolves every relative file path in the config against
// the given directory, typically the directory of the config file.
func (c *Config) SetBasePath(dir string) {
	c.GridFile = resolve(dir, c.GridFile)
	c.RestartFile = resolve(dir, c.RestartFile)
	if c.InitFile != "" {
		c.InitFile = resolve(dir, c.InitFile)
	}
	c.OutputDir = resolve(dir, c.OutputDir)
	for i := range c.WellpathFiles {
		c.WellpathFiles[i].WellFile = resolve(dir, c.WellpathFiles[i].WellFile)
	}
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Keywords returns the parsed log keywords.
func (c *Config) Keywords() []snap.Keyword {
	return c.keywords
}

// Policy assembles the snapping policy from the global settings.
func (c *Config) Policy() snap.Policy {
	return snap.Policy{
		OwcKeyword: c.OwcDefinition.Keyword,
		OwcValue:   c.OwcDefinition.Value,
		OwcOffset:  c.OwcOffset,
		Delta:      c.DeltaZ,
		Keywords:   c.Keywords(),
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ParseDate reads a date given as YYYY, YYYY-MM, or YYYY-MM-DD, with or
// without zero padding.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-1-2", "2006-1", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("provide a date on the form YYYY-MM-DD, YYYY-MM, or YYYY, not %q", s)
}

// ParseOwcDefinition reads a KEYWORD:value pair, e.g. "SWAT:0.7".
// Purely alphabetic keywords are uppercased.
func ParseOwcDefinition(s string) (OwcDefinition, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return OwcDefinition{}, fmt.Errorf("owc definition must be KEYWORD:value, not %q", s)
	}
	kw := strings.TrimSpace(parts[0])
	if kw == "" {
		return OwcDefinition{}, fmt.Errorf("owc definition must name a keyword, got %q", s)
	}
	alpha := true
	for _, r := range kw {
		if !unicode.IsLetter(r) {
			alpha = false
			break
		}
	}
	if alpha {
		kw = strings.ToUpper(kw)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return OwcDefinition{}, fmt.Errorf("owc definition value in %q: %w", s, err)
	}
	return OwcDefinition{Keyword: kw, Value: val}, nil
}
