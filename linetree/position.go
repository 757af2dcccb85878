package linetree

import "fmt"

// LineInfo describes a line of a tree.
type LineInfo struct {
	Line   int    // 1-based line number
	Offset int    // offset of the first character of the line
	Text   string // text of the line, including its terminator
}

// HasText is false for a line past the end of the text.
func (li LineInfo) HasText() bool {
	return li.Text != ""
}

// LineNumberToInfo returns information about a 1-based line number. For a
// line past the end of the text, Offset is Len() and the info has no text.
func (t *Tree) LineNumberToInfo(line int) (LineInfo, error) {
	if line < 1 {
		return LineInfo{}, fmt.Errorf("%w: line %d", ErrOutOfRange, line)
	}
	offset, leaf := t.root.lineNumberToInfo(line, 0)
	if leaf == nil {
		return LineInfo{Line: line, Offset: t.Len()}, nil
	}
	return LineInfo{Line: line, Offset: offset, Text: leaf.text}, nil
}

// OffsetToLineCol translates an offset into a 1-based line number and a
// zero-based column. An offset equal to Len() maps to the end of the last
// line; for an empty tree this is (1, 0).
func (t *Tree) OffsetToLineCol(offset int) (line, col int, err error) {
	if offset < 0 || offset > t.Len() {
		return 0, 0, fmt.Errorf("%w: offset %d in text of length %d", ErrOutOfRange,
			offset, t.Len())
	}
	loc := t.root.charOffsetToLineInfo(1, offset)
	return loc.line, loc.column, nil
}

// LineColToOffset translates a 1-based line number and a zero-based column
// into an offset. The column may point past the end of the line, as long as
// the resulting offset is inside the text.
func (t *Tree) LineColToOffset(line, col int) (int, error) {
	if line < 1 || col < 0 {
		return 0, fmt.Errorf("%w: line %d, column %d", ErrOutOfRange, line, col)
	}
	info, err := t.LineNumberToInfo(line)
	if err != nil {
		return 0, err
	}
	if offset := info.Offset + col; offset <= t.Len() {
		return offset, nil
	}
	return 0, fmt.Errorf("%w: line %d, column %d beyond text of length %d",
		ErrOutOfRange, line, col, t.Len())
}

// LineSpan returns the offset and the length of a 1-based line, including
// its terminator.
func (t *Tree) LineSpan(line int) (start, length int, err error) {
	if line < 1 || line > t.LineCount() {
		return 0, 0, fmt.Errorf("%w: line %d of %d", ErrOutOfRange, line, t.LineCount())
	}
	start, leaf := t.root.lineNumberToInfo(line, 0)
	assert(leaf != nil, "line tree: line not found")
	return start, leaf.charCount(), nil
}

// onCharBoundary reports whether offset, which has to be inside [0, Len()],
// does not fall inside a character, e.g. between the halves of a surrogate pair.
func (t *Tree) onCharBoundary(offset int) bool {
	loc := t.root.charOffsetToLineInfo(1, offset)
	if loc.leaf == nil || loc.column == 0 {
		return true
	}
	m, text := t.cfg.Measure, loc.leaf.text
	return m.Count(text[:m.ByteIndex(text, loc.column)]) == loc.column
}
