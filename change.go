package textbuf

import "fmt"

// Change is a single edit of a document, as queued by VersionCache.Edit.
type Change struct {
	Pos          int    // start of the deleted range
	DeleteLength int    // length of the deleted range
	InsertedText string // text inserted at Pos
	insertedLen  int    // length of InsertedText in offset units
}

// InsertedLength returns the length of the inserted text in offset units.
func (c Change) InsertedLength() int {
	return c.insertedLen
}

// ChangeRange returns the change as a span of the old text and the length
// of its replacement.
func (c Change) ChangeRange() ChangeRange {
	return ChangeRange{
		Span:      Span{Start: c.Pos, Length: c.DeleteLength},
		NewLength: c.insertedLen,
	}
}

func (c Change) String() string {
	return fmt.Sprintf("{%d,-%d,+%q}", c.Pos, c.DeleteLength, c.InsertedText)
}

// Span is a range of text.
type Span struct {
	Start  int
	Length int
}

// End returns the offset following the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// ChangeRange describes the net effect of one or more edits: Span of the old
// text has been replaced by NewLength units of new text.
type ChangeRange struct {
	Span      Span
	NewLength int
}

// Unchanged is the change range of a text which did not change.
var Unchanged = ChangeRange{}

// IsUnchanged is true for Unchanged.
func (cr ChangeRange) IsUnchanged() bool {
	return cr == Unchanged
}

// NewSpan returns the range of the new text which replaced Span.
func (cr ChangeRange) NewSpan() Span {
	return Span{Start: cr.Span.Start, Length: cr.NewLength}
}

func (cr ChangeRange) String() string {
	return fmt.Sprintf("[%d,+%d) -> %d", cr.Span.Start, cr.Span.Length, cr.NewLength)
}

// Collapse merges a sequence of change ranges, each relative to the text
// produced by its predecessors, into a single range relative to the text
// before the first one. The result covers the union of all edits. An empty
// sequence yields Unchanged.
//
// Consider two consecutive changes. The first one replaced [oldStart1,oldEnd1)
// by text ending at newEnd1; the second one, in terms of the intermediate text,
// replaced [oldStart2,oldEnd2) by text ending at newEnd2. Relative to the
// original text, the merged change starts at min(oldStart1, oldStart2). Its old
// end is oldEnd1, moved by the part of the second change extending beyond the
// first change's new text: max(oldEnd1, oldEnd1 + oldEnd2 - newEnd1). Its new end
// is newEnd2, moved likewise by the part of the first change's new text
// extending beyond the second change: max(newEnd2, newEnd2 + newEnd1 - oldEnd2).
func Collapse(ranges []ChangeRange) ChangeRange {
	switch len(ranges) {
	case 0:
		return Unchanged
	case 1:
		return ranges[0]
	}
	first := ranges[0]
	oldStart := first.Span.Start
	oldEnd := first.Span.End()
	newEnd := oldStart + first.NewLength
	for _, next := range ranges[1:] {
		oldStart1, oldEnd1, newEnd1 := oldStart, oldEnd, newEnd
		oldStart2, oldEnd2 := next.Span.Start, next.Span.End()
		newEnd2 := oldStart2 + next.NewLength
		oldStart = min(oldStart1, oldStart2)
		oldEnd = max(oldEnd1, oldEnd1+(oldEnd2-newEnd1))
		newEnd = max(newEnd2, newEnd2+(newEnd1-oldEnd2))
	}
	return ChangeRange{
		Span:      Span{Start: oldStart, Length: oldEnd - oldStart},
		NewLength: newEnd - oldStart,
	}
}
