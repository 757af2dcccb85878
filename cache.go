package textbuf

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/guiguan/caster"
	"github.com/npillmayer/textbuf/lines"
	"github.com/npillmayer/textbuf/linetree"
)

// VersionCache owns the sequence of snapshots of a single document.
//
// Every edit is applied to a working tree right away, which validates it, and
// queued. A new snapshot wraps the working tree together with the queued
// changes. A limited number of snapshots is retained to answer queries for
// the change between versions. All operations are safe for concurrent use.
type VersionCache struct {
	mu         sync.Mutex
	id         uuid.UUID
	cfg        Config
	treeCfg    linetree.Config
	pending    []Change
	head       *linetree.Tree // text with all pending changes applied
	versions   map[int]*Snapshot
	minVersion int
	current    int
	cast       *caster.Caster
}

// NewVersionCache creates a version cache for an empty document.
// The document is at version 0.
func NewVersionCache(opts ...Option) (*VersionCache, error) {
	return FromString("", opts...)
}

// FromString creates a version cache holding text as version 0.
func FromString(text string, opts ...Option) (*VersionCache, error) {
	vc := &VersionCache{
		id:  uuid.New(),
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(vc)
	}
	vc.cfg = vc.cfg.normalized()
	var err error
	if vc.treeCfg, err = vc.cfg.treeConfig(); err != nil {
		return nil, err
	}
	tree, err := linetree.FromText(vc.treeCfg, text)
	if err != nil {
		return nil, err
	}
	vc.versions = map[int]*Snapshot{0: {tree: tree, cache: vc}}
	vc.head = tree
	tracer().Debugf("version cache %s: loaded %d lines", vc.id, tree.LineCount())
	return vc, nil
}

// ID identifies the version cache.
func (vc *VersionCache) ID() uuid.UUID {
	return vc.id
}

// Config returns the effective configuration.
func (vc *VersionCache) Config() Config {
	return vc.cfg
}

// Measure returns the measure offsets are counted in.
func (vc *VersionCache) Measure() lines.Measure {
	return vc.treeCfg.Measure
}

// Version returns the current version, i.e. the version of the latest
// snapshot. Pending changes are not counted.
func (vc *VersionCache) Version() int {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.current
}

// MinVersion returns the oldest version for which change ranges are available.
func (vc *VersionCache) MinVersion() int {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.minVersion
}

// PendingCount returns the number of queued changes.
func (vc *VersionCache) PendingCount() int {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return len(vc.pending)
}

// Len returns the length of the text including all pending changes.
func (vc *VersionCache) Len() int {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.head.Len()
}

// Edit queues a change: deleteLength units at pos are replaced by
// insertedText. Positions refer to the text with all previously queued changes
// applied. pos == Len() appends. A change outside of the text, or with an end
// inside a character, is rejected with ErrOutOfRange and not queued.
//
// If the queue grows beyond the change count threshold, or the change deletes
// or inserts more than the change length threshold, a new snapshot is
// created right away.
func (vc *VersionCache) Edit(pos, deleteLength int, insertedText string) error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	head, err := vc.head.Edit(pos, deleteLength, insertedText)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	c := Change{
		Pos:          pos,
		DeleteLength: deleteLength,
		InsertedText: insertedText,
		insertedLen:  vc.treeCfg.Measure.Count(insertedText),
	}
	vc.pending = append(vc.pending, c)
	vc.head = head
	if len(vc.pending) > vc.cfg.ChangeCountThreshold ||
		deleteLength > vc.cfg.ChangeLengthThreshold ||
		c.insertedLen > vc.cfg.ChangeLengthThreshold {
		tracer().Debugf("version cache %s: eager snapshot with %d pending changes",
			vc.id, len(vc.pending))
		vc.snapshotLocked()
	}
	return nil
}

// Snapshot returns a snapshot of the document with all queued changes applied.
// Without queued changes, the latest snapshot is returned.
func (vc *VersionCache) Snapshot() *Snapshot {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.snapshotLocked()
}

func (vc *VersionCache) snapshotLocked() *Snapshot {
	latest := vc.versions[vc.current]
	assert(latest != nil, "version cache: latest snapshot missing")
	if len(vc.pending) == 0 {
		return latest
	}
	changes := vc.pending
	vc.pending = nil
	return vc.pushSnapshot(vc.head, changes)
}

// pushSnapshot appends a snapshot as the next version and drops snapshots
// falling out of the window of retained versions.
func (vc *VersionCache) pushSnapshot(tree *linetree.Tree, changes []Change) *Snapshot {
	version := vc.current + 1
	snap := &Snapshot{
		version: version,
		tree:    tree,
		changes: changes,
		cache:   vc,
	}
	vc.versions[version] = snap
	vc.current = version
	vc.head = tree
	if vc.current-vc.minVersion >= vc.cfg.MaxVersions {
		oldMin := vc.minVersion
		vc.minVersion = vc.current - vc.cfg.MaxVersions + 1
		for v := oldMin; v < vc.minVersion; v++ {
			delete(vc.versions, v)
		}
	}
	tracer().Debugf("version cache %s: snapshot version %d, %d changes", vc.id, version, len(changes))
	if vc.cast != nil && !vc.cast.TryPub(snap) {
		tracer().Debugf("version cache %s: snapshot %d not broadcast", vc.id, version)
	}
	return snap
}

// Reload replaces the complete text. Queued changes and all history are
// discarded: the new snapshot is the only one available for change queries.
func (vc *VersionCache) Reload(text string) *Snapshot {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	tree, err := linetree.FromText(vc.treeCfg, text)
	assert(err == nil, "version cache: tree configuration became invalid")
	vc.pending = nil
	vc.versions = make(map[int]*Snapshot, vc.cfg.MaxVersions)
	vc.current++
	vc.minVersion = vc.current
	snap := &Snapshot{version: vc.current, tree: tree, cache: vc}
	vc.versions[vc.current] = snap
	vc.head = tree
	tracer().Infof("version cache %s: reloaded at version %d", vc.id, vc.current)
	if vc.cast != nil {
		vc.cast.TryPub(snap)
	}
	return snap
}

// ChangesBetween returns the net change between two versions. If oldVersion
// is not older than newVersion, the result is Unchanged. If oldVersion is no
// longer retained, ErrHistoryUnavailable is returned. Pending changes are not
// considered.
func (vc *VersionCache) ChangesBetween(oldVersion, newVersion int) (ChangeRange, error) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if oldVersion >= newVersion {
		return Unchanged, nil
	}
	if newVersion > vc.current {
		return Unchanged, fmt.Errorf("%w: version %d, current version is %d",
			ErrOutOfRange, newVersion, vc.current)
	}
	if oldVersion < vc.minVersion {
		return Unchanged, fmt.Errorf("%w: version %d, oldest version is %d",
			ErrHistoryUnavailable, oldVersion, vc.minVersion)
	}
	var ranges []ChangeRange
	for v := oldVersion + 1; v <= newVersion; v++ {
		snap := vc.versions[v]
		assert(snap != nil, "version cache: retained version missing")
		for _, c := range snap.changes {
			ranges = append(ranges, c.ChangeRange())
		}
	}
	return Collapse(ranges), nil
}
