package linetree

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbuf/lines"
)

func numberedLines(n int) []string {
	lns := make([]string, n)
	for i := range lns {
		lns[i] = fmt.Sprintf("line %d\n", i+1)
	}
	return lns
}

func mustLoad(t *testing.T, cfg Config, lns []string) *Tree {
	t.Helper()
	tree, err := Load(cfg, lns)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err = tree.Check(); err != nil {
		t.Fatalf("loaded tree broken: %v", err)
	}
	return tree
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{Capacity: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for capacity 1, got %v", err)
	}
	if _, err := New(Config{Capacity: 65}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for capacity 65, got %v", err)
	}
	if _, err := New(Config{Breaks: lines.Breaks(17)}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown breaks, got %v", err)
	}
	tree, err := New(Config{})
	if err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}
	if tree.Config().Capacity != DefaultCapacity || tree.Config().Measure != lines.UTF16 {
		t.Errorf("expected defaults to be filled in, have %+v", tree.Config())
	}
}

func TestEmptyTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbuf")
	defer teardown()
	//
	tree, _ := New(Config{})
	if tree.Len() != 0 || tree.LineCount() != 0 || tree.Height() != 0 || !tree.IsEmpty() {
		t.Errorf("expected empty tree, have len=%d, lines=%d, height=%d", tree.Len(),
			tree.LineCount(), tree.Height())
	}
	if s := tree.String(); s != "" {
		t.Errorf("expected empty text, have %q", s)
	}
	line, col, err := tree.OffsetToLineCol(0)
	if err != nil || line != 1 || col != 0 {
		t.Errorf("expected offset 0 to map to (1,0), have (%d,%d), %v", line, col, err)
	}
	if err = tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestLoadBuildsBalancedTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbuf")
	defer teardown()
	//
	cases := []struct {
		lines, capacity, height int
	}{
		{1, 4, 2},
		{3, 4, 2},
		{4, 4, 3},
		{16, 4, 4},
		{20, 4, 4},
		{100, 8, 4},
		{7, 2, 5},
	}
	for _, c := range cases {
		tree := mustLoad(t, Config{Capacity: c.capacity}, numberedLines(c.lines))
		if tree.LineCount() != c.lines {
			t.Errorf("expected %d lines, have %d", c.lines, tree.LineCount())
		}
		if tree.Height() != c.height {
			t.Errorf("%d lines, capacity %d: expected height %d, have %d", c.lines,
				c.capacity, c.height, tree.Height())
		}
		if tree.String() != strings.Join(numberedLines(c.lines), "") {
			t.Errorf("%d lines: text differs from input", c.lines)
		}
	}
}

func TestFromText(t *testing.T) {
	tree, err := FromText(Config{}, "abc\r\ndef\rxyz")
	if err != nil {
		t.Fatal(err)
	}
	if tree.LineCount() != 3 || tree.Len() != 12 {
		t.Errorf("expected 3 lines of 12 chars, have %d lines of %d chars",
			tree.LineCount(), tree.Len())
	}
	lf, _ := FromText(Config{Breaks: lines.LF}, "abc\r\ndef\rxyz")
	if lf.LineCount() != 2 {
		t.Errorf("expected 2 lines with LF breaks, have %d", lf.LineCount())
	}
}

func TestText(t *testing.T) {
	tree := mustLoad(t, Config{}, numberedLines(20))
	all := tree.String()
	for _, r := range [][2]int{{0, 0}, {0, 7}, {3, 10}, {5, 40}, {70, 30}, {0, len(all)}} {
		s, err := tree.Text(r[0], r[1])
		if err != nil {
			t.Fatalf("Text(%d,%d) failed: %v", r[0], r[1], err)
		}
		if s != all[r[0]:r[0]+r[1]] {
			t.Errorf("Text(%d,%d) = %q, expected %q", r[0], r[1], s, all[r[0]:r[0]+r[1]])
		}
	}
	if _, err := tree.Text(len(all)-1, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for range past end, got %v", err)
	}
	if _, err := tree.Text(-1, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for negative start, got %v", err)
	}
}

func TestTextWithSurrogates(t *testing.T) {
	tree, _ := FromText(Config{}, "a😀b\nc\n")
	if tree.Len() != 7 {
		t.Fatalf("expected UTF-16 length 7, have %d", tree.Len())
	}
	s, _ := tree.Text(1, 3)
	if s != "😀b" {
		t.Errorf("expected '😀b', have %q", s)
	}
	runes, _ := FromText(Config{Measure: lines.Runes}, "a😀b\nc\n")
	if runes.Len() != 6 {
		t.Errorf("expected rune length 6, have %d", runes.Len())
	}
}

func TestWalkStopsEarly(t *testing.T) {
	tree := mustLoad(t, Config{}, numberedLines(20))
	var visited []string
	err := tree.Walk(0, tree.Len(), func(line string, relStart, relLength int) bool {
		visited = append(visited, line)
		return len(visited) < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(visited) != 3 || visited[2] != "line 3\n" {
		t.Errorf("expected walk to stop after 3 lines, visited %q", visited)
	}
	if !tree.Every(0, tree.Len(), func(line string, _, _ int) bool { return strings.HasPrefix(line, "line") }) {
		t.Errorf("expected every line to start with 'line'")
	}
	if tree.Every(0, tree.Len(), func(line string, _, _ int) bool { return line != "line 9\n" }) {
		t.Errorf("expected Every to fail at line 9")
	}
	if tree.Every(tree.Len(), 1, func(string, int, int) bool { return true }) {
		t.Errorf("expected Every to fail for a range past the end")
	}
}

func TestWalkRelativeRanges(t *testing.T) {
	tree := mustLoad(t, Config{}, []string{"abc\n", "def\n", "ghi\n"})
	type visit struct{ start, length int }
	var visits []visit
	_ = tree.Walk(2, 7, func(line string, relStart, relLength int) bool {
		visits = append(visits, visit{relStart, relLength})
		return true
	})
	expected := []visit{{2, 2}, {0, 4}, {0, 1}}
	if fmt.Sprint(visits) != fmt.Sprint(expected) {
		t.Errorf("expected relative ranges %v, have %v", expected, visits)
	}
}

func TestRangeLines(t *testing.T) {
	tree := mustLoad(t, Config{Capacity: 3}, numberedLines(11))
	n := 0
	for i, line := range tree.RangeLines() {
		n++
		if i != n || line != fmt.Sprintf("line %d\n", n) {
			t.Errorf("expected line %d, have %d: %q", n, i, line)
		}
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Errorf("expected iteration to stop after 5 lines, have %d", n)
	}
}

func TestLineNumberToInfo(t *testing.T) {
	tree := mustLoad(t, Config{}, numberedLines(12))
	info, err := tree.LineNumberToInfo(10)
	if err != nil {
		t.Fatal(err)
	}
	if info.Offset != 9*7 || info.Text != "line 10\n" || !info.HasText() {
		t.Errorf("unexpected info for line 10: %+v", info)
	}
	info, _ = tree.LineNumberToInfo(13)
	if info.Offset != tree.Len() || info.HasText() {
		t.Errorf("expected line past end to report end of text without text, have %+v", info)
	}
	if _, err = tree.LineNumberToInfo(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for line 0, got %v", err)
	}
	start, length, err := tree.LineSpan(2)
	if err != nil || start != 7 || length != 7 {
		t.Errorf("expected line 2 to span [7,+7), have [%d,+%d), %v", start, length, err)
	}
	if _, _, err = tree.LineSpan(13); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for LineSpan(13), got %v", err)
	}
}

func TestOffsetLineColInverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbuf")
	defer teardown()
	//
	tree, _ := FromText(Config{}, "ab\n\ncd😀e\r\nfgh")
	for o := 0; o <= tree.Len(); o++ {
		line, col, err := tree.OffsetToLineCol(o)
		if err != nil {
			t.Fatalf("OffsetToLineCol(%d) failed: %v", o, err)
		}
		back, err := tree.LineColToOffset(line, col)
		if err != nil || back != o {
			t.Errorf("offset %d -> (%d,%d) -> %d, %v", o, line, col, back, err)
		}
	}
	line, col, _ := tree.OffsetToLineCol(tree.Len())
	if line != 4 || col != 3 {
		t.Errorf("expected end of text at (4,3), have (%d,%d)", line, col)
	}
	line, col, _ = tree.OffsetToLineCol(4)
	if line != 3 || col != 0 {
		t.Errorf("expected offset 4 at (3,0), have (%d,%d)", line, col)
	}
	if _, _, err := tree.OffsetToLineCol(tree.Len() + 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := tree.LineColToOffset(4, 4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for column past end of text, got %v", err)
	}
}

func TestCheckDetectsStaleCounts(t *testing.T) {
	tree := mustLoad(t, Config{}, numberedLines(9))
	inner := tree.root.children[0].(*lineNode)
	inner.totalChars++
	if err := tree.Check(); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for stale counts, got %v", err)
	}
}

func TestCheckDetectsMissingTerminator(t *testing.T) {
	tree := mustLoad(t, Config{}, []string{"abc\n", "def\n"})
	tree.root.children[0].(*lineLeaf).setText("abc", lines.UTF16)
	tree.root.sealed = false
	tree.root.seal()
	if err := tree.Check(); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for inner line without terminator, got %v", err)
	}
}

func TestCheckDetectsSplitCarriageReturnLineFeed(t *testing.T) {
	mustLoad(t, Config{}, []string{"a\r\n", "\r\n"})
	split, err := Load(Config{}, []string{"a\r", "\n"})
	if err != nil {
		t.Fatal(err)
	}
	if err = split.Check(); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for CR and LF in different lines, got %v", err)
	}
}

func TestUnsealedNodeAsserts(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected reading counts of an unsealed node to panic")
		}
	}()
	n := newNode(nil)
	_ = n.charCount()
}

func TestToDot(t *testing.T) {
	tree := mustLoad(t, Config{}, numberedLines(6))
	edited, _ := tree.Edit(0, 0, "x")
	var buf bytes.Buffer
	if err := ToDotShared(edited, tree, &buf); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, "strict digraph {") || !strings.Contains(dot, "->") {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
	if !strings.Contains(dot, "#CCDDFF") {
		t.Errorf("expected shared nodes to be highlighted")
	}
}
