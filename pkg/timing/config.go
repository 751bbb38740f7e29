package timing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries recorder tunables and report defaults, typically loaded
// from a YAML file shipped alongside a model run. Zero values fall back to
// the documented defaults.
type Config struct {
	// MaxDepth bounds nested-instrumented-call recording; see WithMaxDepth.
	MaxDepth int `yaml:"max_depth"`

	GroupBy         string  `yaml:"group_by"`
	SortBy          string  `yaml:"sort_by"`
	DisplayFraction float64 `yaml:"display_fraction"`
	FloatFormat     string  `yaml:"float_format"`

	// ArchiveDir is where run snapshots are persisted.
	ArchiveDir string `yaml:"archive_dir"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// NewRecorder builds a recorder honoring the config's recorder tunables.
func (c Config) NewRecorder(opts ...Option) *Recorder {
	all := make([]Option, 0, len(opts)+1)
	if c.MaxDepth > 0 {
		all = append(all, WithMaxDepth(c.MaxDepth))
	}
	all = append(all, opts...)
	return NewRecorder(all...)
}

// TableOptions translates the config's report defaults.
func (c Config) TableOptions() TableOptions {
	return TableOptions{
		GroupBy:         c.GroupBy,
		SortBy:          c.SortBy,
		DisplayFraction: c.DisplayFraction,
		FloatFormat:     c.FloatFormat,
	}
}
