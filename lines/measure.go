package lines

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrUnknownName is flagged for names of measures or break rules which are
// not known to this package.
var ErrUnknownName = errors.New("lines: unknown name")

// Measure counts text in offset units and maps unit offsets back to byte
// offsets within a string.
//
// A unit offset which falls inside a character is rounded down to the start
// of that character.
type Measure interface {
	// Count returns the length of s in units.
	Count(s string) int
	// ByteIndex returns the byte offset of unit offset n in s, clamped to [0, len(s)].
	ByteIndex(s string, n int) int
	// LastCharWidth returns the width in units of the last character of s.
	LastCharWidth(s string) int
	// Name identifies the measure.
	Name() string
}

// Pre-manufactured measures.
var (
	Bytes Measure = bytesMeasure{}
	Runes Measure = runesMeasure{}
	UTF16 Measure = utf16Measure{}
)

// ParseMeasure returns the measure with the given name.
// The empty name selects UTF16.
func ParseMeasure(name string) (Measure, error) {
	switch strings.ToLower(name) {
	case "", "utf16", "utf-16":
		return UTF16, nil
	case "runes":
		return Runes, nil
	case "bytes":
		return Bytes, nil
	}
	return UTF16, fmt.Errorf("%w: measure %q", ErrUnknownName, name)
}

// --- Bytes -----------------------------------------------------------------

type bytesMeasure struct{}

func (bytesMeasure) Name() string       { return "bytes" }
func (bytesMeasure) Count(s string) int { return len(s) }

func (bytesMeasure) ByteIndex(s string, n int) int {
	return clamp(n, 0, len(s))
}

func (bytesMeasure) LastCharWidth(s string) int {
	_, size := utf8.DecodeLastRuneInString(s)
	return size
}

// --- Runes -----------------------------------------------------------------

type runesMeasure struct{}

func (runesMeasure) Name() string       { return "runes" }
func (runesMeasure) Count(s string) int { return utf8.RuneCountInString(s) }

func (runesMeasure) ByteIndex(s string, n int) int {
	if n <= 0 {
		return 0
	}
	k := 0
	for i := range s {
		if k == n {
			return i
		}
		k++
	}
	return len(s)
}

func (runesMeasure) LastCharWidth(s string) int {
	if s == "" {
		return 0
	}
	return 1
}

// --- UTF-16 ----------------------------------------------------------------

type utf16Measure struct{}

func (utf16Measure) Name() string { return "utf16" }

func (utf16Measure) Count(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Width(r)
	}
	return n
}

func (utf16Measure) ByteIndex(s string, n int) int {
	if n <= 0 {
		return 0
	}
	units := 0
	for i, r := range s {
		if units >= n {
			return i
		}
		w := utf16Width(r)
		if units+w > n {
			return i // inside a surrogate pair
		}
		units += w
	}
	return len(s)
}

func (utf16Measure) LastCharWidth(s string) int {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return utf16Width(r)
}

// utf16Width is the number of UTF-16 code units for r. Invalid UTF-8 decodes to
// the replacement character and counts as one unit.
func utf16Width(r rune) int {
	if w := utf16.RuneLen(r); w > 0 {
		return w
	}
	return 1
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
