package linetree

import (
	"fmt"

	"github.com/npillmayer/textbuf/lines"
)

const (
	// DefaultCapacity is the maximum number of children of a node.
	DefaultCapacity = 4
	// MinCapacity and MaxCapacity bound Config.Capacity.
	MinCapacity = 2
	MaxCapacity = 64
)

// Config configures a line tree.
type Config struct {
	// Capacity is the maximum fan-out of internal nodes. Zero selects DefaultCapacity.
	Capacity int
	// Measure counts offsets. Nil selects lines.UTF16.
	Measure lines.Measure
	// Breaks selects the line terminators.
	Breaks lines.Breaks
	// CheckEdits verifies every edit against a flat string splice and panics
	// on a mismatch. Expensive; meant for tests and debugging.
	CheckEdits bool
}

func (cfg Config) normalized() Config {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Measure == nil {
		cfg.Measure = lines.UTF16
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Capacity < MinCapacity || cfg.Capacity > MaxCapacity {
		return fmt.Errorf("%w: capacity %d not in [%d,%d]", ErrInvalidConfig,
			cfg.Capacity, MinCapacity, MaxCapacity)
	}
	switch cfg.Breaks {
	case lines.Standard, lines.LF, lines.Unicode:
	default:
		return fmt.Errorf("%w: unknown line breaks %d", ErrInvalidConfig, int(cfg.Breaks))
	}
	return nil
}
