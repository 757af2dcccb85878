package textbuf

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/textbuf/lines"
	"github.com/npillmayer/textbuf/linetree"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a VersionCache. The zero value of a field
// selects its default, see DefaultConfig.
type Config struct {
	// Capacity is the maximum number of children of a line tree node.
	Capacity int `yaml:"capacity"`
	// ChangeCountThreshold is the number of pending changes which may be
	// queued before a snapshot is created eagerly.
	ChangeCountThreshold int `yaml:"change_count_threshold"`
	// ChangeLengthThreshold is the deletion or insertion length of a single
	// change which triggers a snapshot right away.
	ChangeLengthThreshold int `yaml:"change_length_threshold"`
	// MaxVersions is the number of snapshots retained for change queries.
	MaxVersions int `yaml:"max_versions"`
	// Units names the offset measure: "utf16", "runes" or "bytes".
	Units string `yaml:"units"`
	// Measure, if set, is used instead of Units. It allows for measures
	// which are not known by name.
	Measure lines.Measure `yaml:"-"`
	// LineBreaks names the line terminator rules: "standard", "lf" or "unicode".
	LineBreaks string `yaml:"line_breaks"`
	// CheckEdits verifies every tree edit against a flat string (slow).
	CheckEdits bool `yaml:"check_edits"`
}

// Defaults for Config.
const (
	DefaultChangeCountThreshold  = 8
	DefaultChangeLengthThreshold = 256
	DefaultMaxVersions           = 8
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:              linetree.DefaultCapacity,
		ChangeCountThreshold:  DefaultChangeCountThreshold,
		ChangeLengthThreshold: DefaultChangeLengthThreshold,
		MaxVersions:           DefaultMaxVersions,
		Units:                 lines.UTF16.Name(),
		LineBreaks:            lines.Standard.String(),
	}
}

// LoadConfig reads a YAML configuration. Fields missing from the input keep
// their defaults, unknown fields are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg Config) normalized() Config {
	def := DefaultConfig()
	if cfg.Capacity == 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.ChangeCountThreshold == 0 {
		cfg.ChangeCountThreshold = def.ChangeCountThreshold
	}
	if cfg.ChangeLengthThreshold == 0 {
		cfg.ChangeLengthThreshold = def.ChangeLengthThreshold
	}
	if cfg.MaxVersions == 0 {
		cfg.MaxVersions = def.MaxVersions
	}
	return cfg
}

func (cfg Config) validate() error {
	_, err := cfg.treeConfig()
	return err
}

// treeConfig validates cfg and derives the configuration of line trees.
func (cfg Config) treeConfig() (linetree.Config, error) {
	cfg = cfg.normalized()
	if cfg.ChangeCountThreshold < 0 || cfg.ChangeLengthThreshold < 0 {
		return linetree.Config{}, fmt.Errorf("%w: negative change threshold", ErrInvalidConfig)
	}
	if cfg.MaxVersions < 1 {
		return linetree.Config{}, fmt.Errorf("%w: max versions %d", ErrInvalidConfig, cfg.MaxVersions)
	}
	m := cfg.Measure
	if m == nil {
		var err error
		if m, err = lines.ParseMeasure(cfg.Units); err != nil {
			return linetree.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	b, err := lines.ParseBreaks(cfg.LineBreaks)
	if err != nil {
		return linetree.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	tcfg := linetree.Config{
		Capacity:   cfg.Capacity,
		Measure:    m,
		Breaks:     b,
		CheckEdits: cfg.CheckEdits,
	}
	if _, err = linetree.New(tcfg); err != nil {
		return linetree.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return tcfg, nil
}
