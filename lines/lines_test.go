package lines

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSplitKeepsTerminators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbuf")
	defer teardown()
	//
	cases := []struct {
		text   string
		breaks Breaks
		want   []string
	}{
		{"", Standard, nil},
		{"abc", Standard, []string{"abc"}},
		{"abc\n", Standard, []string{"abc\n"}},
		{"abc\ndef\n", Standard, []string{"abc\n", "def\n"}},
		{"abc\ndef", Standard, []string{"abc\n", "def"}},
		{"a\r\nb\rc\n", Standard, []string{"a\r\n", "b\r", "c\n"}},
		{"a\r\nb\rc\n", LF, []string{"a\r\n", "b\rc\n"}},
		{"\n\n", Standard, []string{"\n", "\n"}},
		{"a\u2028b\u2029c\u0085d", Unicode, []string{"a\u2028", "b\u2029", "c\u0085", "d"}},
		{"a\u2028b", Standard, []string{"a\u2028b"}},
	}
	for i, c := range cases {
		got := Split(c.text, c.breaks)
		if strings.Join(got, "|") != strings.Join(c.want, "|") || len(got) != len(c.want) {
			t.Errorf("case %d: Split(%q, %s) = %q, want %q", i, c.text, c.breaks, got, c.want)
		}
	}
}

func TestTerminatorLength(t *testing.T) {
	cases := []struct {
		line   string
		breaks Breaks
		want   int
	}{
		{"abc", Standard, 0},
		{"abc\n", Standard, 1},
		{"abc\r\n", Standard, 2},
		{"abc\r", Standard, 1},
		{"abc\r", LF, 0},
		{"abc\u2029", Unicode, 3},
		{"abc\u2029", Standard, 0},
		{"", Standard, 0},
	}
	for i, c := range cases {
		if got := TerminatorLength(c.line, c.breaks); got != c.want {
			t.Errorf("case %d: TerminatorLength(%q) = %d, want %d", i, c.line, got, c.want)
		}
	}
	if s := TrimTerminator("xy\r\n", Standard); s != "xy" {
		t.Errorf("expected trimmed line 'xy', got %q", s)
	}
}

func TestIsSingleLine(t *testing.T) {
	if !IsSingleLine("abc\n", Standard) {
		t.Errorf("expected 'abc\\n' to be a single line")
	}
	if IsSingleLine("a\nb", Standard) {
		t.Errorf("expected 'a\\nb' to be two lines")
	}
	if IsSingleLine("", Standard) {
		t.Errorf("expected empty string not to be a line")
	}
}

func TestMeasureCount(t *testing.T) {
	s := "aä€😀\n" // 1+2+3+4+1 bytes, 5 runes, 6 UTF-16 units
	if n := Bytes.Count(s); n != 11 {
		t.Errorf("bytes: expected 11, got %d", n)
	}
	if n := Runes.Count(s); n != 5 {
		t.Errorf("runes: expected 5, got %d", n)
	}
	if n := UTF16.Count(s); n != 6 {
		t.Errorf("utf16: expected 6, got %d", n)
	}
}

func TestMeasureByteIndex(t *testing.T) {
	s := "aä😀b"
	cases := []struct {
		m    Measure
		n    int
		want int
	}{
		{UTF16, 0, 0},
		{UTF16, 1, 1},
		{UTF16, 2, 3},
		{UTF16, 3, 3}, // inside the surrogate pair, rounds down
		{UTF16, 4, 7},
		{UTF16, 5, 8},
		{UTF16, 9, 8},
		{Runes, 2, 3},
		{Runes, 3, 7},
		{Runes, 4, 8},
		{Bytes, 5, 5},
		{Bytes, -1, 0},
		{Bytes, 99, 8},
	}
	for i, c := range cases {
		if got := c.m.ByteIndex(s, c.n); got != c.want {
			t.Errorf("case %d: %s.ByteIndex(%d) = %d, want %d", i, c.m.Name(), c.n, got, c.want)
		}
	}
}

func TestMeasureLastCharWidth(t *testing.T) {
	if w := UTF16.LastCharWidth("x😀"); w != 2 {
		t.Errorf("utf16: expected 2, got %d", w)
	}
	if w := Bytes.LastCharWidth("x€"); w != 3 {
		t.Errorf("bytes: expected 3, got %d", w)
	}
	if w := Runes.LastCharWidth("x€"); w != 1 {
		t.Errorf("runes: expected 1, got %d", w)
	}
	if w := UTF16.LastCharWidth(""); w != 0 {
		t.Errorf("expected 0 for empty string, got %d", w)
	}
}

func TestParseNames(t *testing.T) {
	m, err := ParseMeasure("Runes")
	if err != nil || m != Runes {
		t.Errorf("expected runes measure, got %v, %v", m, err)
	}
	if _, err = ParseMeasure("furlongs"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
	b, err := ParseBreaks("unicode")
	if err != nil || b != Unicode {
		t.Errorf("expected unicode breaks, got %v, %v", b, err)
	}
	if _, err = ParseBreaks("crlf-only"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestDisplayWidth(t *testing.T) {
	if w := DisplayWidth("abc"); w != 3 {
		t.Errorf("expected width 3, got %d", w)
	}
	if w := DisplayWidth("日本"); w != 4 {
		t.Errorf("expected wide characters to take 2 cells each, got %d", w)
	}
	if w := DisplayWidth(""); w != 0 {
		t.Errorf("expected width 0, got %d", w)
	}
}
