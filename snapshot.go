package textbuf

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/npillmayer/textbuf/lines"
	"github.com/npillmayer/textbuf/linetree"
)

// Snapshot is an immutable version of a document. Snapshots are safe for
// concurrent use and stay valid when the document is edited further.
type Snapshot struct {
	version int
	tree    *linetree.Tree
	changes []Change // changes since the previous version
	cache   *VersionCache
}

// Version returns the version of the snapshot.
func (s *Snapshot) Version() int {
	return s.version
}

// CacheID identifies the version cache the snapshot belongs to.
func (s *Snapshot) CacheID() uuid.UUID {
	return s.cache.id
}

// Tree returns the line tree holding the text of the snapshot.
func (s *Snapshot) Tree() *linetree.Tree {
	return s.tree
}

// Len returns the length of the text.
func (s *Snapshot) Len() int {
	return s.tree.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return s.tree.LineCount()
}

// Text returns the text in range [start, end).
func (s *Snapshot) Text(start, end int) (string, error) {
	if end < start {
		return "", fmt.Errorf("%w: range [%d,%d)", ErrOutOfRange, start, end)
	}
	text, err := s.tree.Text(start, end-start)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return text, nil
}

func (s *Snapshot) String() string {
	return s.tree.String()
}

// LineInfo returns information about a 1-based line. A line past the end of
// the text reports an offset of Len() and no text.
func (s *Snapshot) LineInfo(line int) (linetree.LineInfo, error) {
	info, err := s.tree.LineNumberToInfo(line)
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return info, nil
}

// OffsetToLineCol translates an offset into a 1-based line and a zero-based
// column.
func (s *Snapshot) OffsetToLineCol(offset int) (line, col int, err error) {
	if line, col, err = s.tree.OffsetToLineCol(offset); err != nil {
		err = fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return
}

// LineColToOffset translates a 1-based line and a zero-based column into an
// offset.
func (s *Snapshot) LineColToOffset(line, col int) (int, error) {
	offset, err := s.tree.LineColToOffset(line, col)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return offset, nil
}

// LineSpan returns offset and length of a 1-based line, including its terminator.
func (s *Snapshot) LineSpan(line int) (start, length int, err error) {
	if start, length, err = s.tree.LineSpan(line); err != nil {
		err = fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return
}

// DisplayColumn returns the terminal cell column of an offset, i.e. the
// display width of the part of its line preceding the offset.
func (s *Snapshot) DisplayColumn(offset int) (int, error) {
	line, col, err := s.OffsetToLineCol(offset)
	if err != nil {
		return 0, err
	}
	info, _ := s.tree.LineNumberToInfo(line)
	cfg := s.tree.Config()
	prefix := info.Text[:cfg.Measure.ByteIndex(info.Text, col)]
	return lines.DisplayWidth(lines.TrimTerminator(prefix, cfg.Breaks)), nil
}

// RangeLines returns an iterator over the 1-based line numbers and the
// lines of the text.
func (s *Snapshot) RangeLines() iter.Seq2[int, string] {
	return s.tree.RangeLines()
}

// Changes returns the changes which led from the previous version to this one.
func (s *Snapshot) Changes() []Change {
	return append([]Change(nil), s.changes...)
}

// ChangeRangeSinceVersion returns the net change from an older version of the
// document to this snapshot. ErrHistoryUnavailable signals that the client has
// to re-read the full text.
func (s *Snapshot) ChangeRangeSinceVersion(older int) (ChangeRange, error) {
	return s.cache.ChangesBetween(older, s.version)
}

// ChangeRangeSince returns the net change from an older snapshot of the same
// document to this snapshot.
func (s *Snapshot) ChangeRangeSince(older *Snapshot) (ChangeRange, error) {
	if older.cache.id != s.cache.id {
		return Unchanged, fmt.Errorf("%w: %s vs %s", ErrForeignSnapshot, older.cache.id, s.cache.id)
	}
	return s.ChangeRangeSinceVersion(older.version)
}
