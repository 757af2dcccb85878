package textbuf

import (
	"github.com/guiguan/caster"
	"github.com/npillmayer/textbuf/lines"
)

// Option configures a VersionCache.
type Option func(*VersionCache)

// WithConfig replaces the complete configuration. Options following it may
// change single values.
func WithConfig(cfg Config) Option {
	return func(vc *VersionCache) {
		vc.cfg = cfg
	}
}

// WithCapacity sets the maximum number of children of line tree nodes.
func WithCapacity(capacity int) Option {
	return func(vc *VersionCache) {
		vc.cfg.Capacity = capacity
	}
}

// WithMeasure selects the unit of all offsets. m need not be one of the
// measures of package lines.
func WithMeasure(m lines.Measure) Option {
	return func(vc *VersionCache) {
		vc.cfg.Units = m.Name()
		vc.cfg.Measure = m
	}
}

// WithBreaks selects the line terminators.
func WithBreaks(b lines.Breaks) Option {
	return func(vc *VersionCache) {
		vc.cfg.LineBreaks = b.String()
	}
}

// WithThresholds sets the number of pending changes and the length of a single
// change which trigger an eager snapshot.
func WithThresholds(changeCount, changeLength int) Option {
	return func(vc *VersionCache) {
		vc.cfg.ChangeCountThreshold = changeCount
		vc.cfg.ChangeLengthThreshold = changeLength
	}
}

// WithMaxVersions sets the number of retained snapshots.
func WithMaxVersions(n int) Option {
	return func(vc *VersionCache) {
		vc.cfg.MaxVersions = n
	}
}

// WithCheckEdits turns on verification of every tree edit.
func WithCheckEdits(check bool) Option {
	return func(vc *VersionCache) {
		vc.cfg.CheckEdits = check
	}
}

// WithBroadcaster makes the cache publish every new snapshot to cast.
// Publishing never blocks; subscribers which are not keeping up miss snapshots.
func WithBroadcaster(cast *caster.Caster) Option {
	return func(vc *VersionCache) {
		vc.cast = cast
	}
}
