package lines

import (
	"fmt"
	"strings"
)

// Breaks selects the set of line terminators.
//
// The zero value is Standard.
type Breaks int

const (
	// Standard recognizes "\n", "\r\n" and a lone "\r".
	Standard Breaks = iota
	// LF recognizes "\n" only.
	LF
	// Unicode recognizes Standard terminators plus NEL (U+0085),
	// LINE SEPARATOR (U+2028) and PARAGRAPH SEPARATOR (U+2029).
	Unicode
)

func (b Breaks) String() string {
	switch b {
	case Standard:
		return "standard"
	case LF:
		return "lf"
	case Unicode:
		return "unicode"
	}
	return fmt.Sprintf("Breaks(%d)", int(b))
}

// ParseBreaks returns the terminator rules for a name as produced by String.
// The empty name selects Standard.
func ParseBreaks(name string) (Breaks, error) {
	switch strings.ToLower(name) {
	case "", "standard":
		return Standard, nil
	case "lf":
		return LF, nil
	case "unicode":
		return Unicode, nil
	}
	tracer().Errorf("unknown line break rules %q", name)
	return Standard, fmt.Errorf("%w: line breaks %q", ErrUnknownName, name)
}

// terminatorAt returns the length in bytes of the line terminator starting at
// byte i of s, or 0 if none starts there.
func (b Breaks) terminatorAt(s string, i int) int {
	switch s[i] {
	case '\n':
		return 1
	case '\r':
		if b == LF {
			return 0
		}
		if i+1 < len(s) && s[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xc2: // NEL is C2 85
		if b == Unicode && i+1 < len(s) && s[i+1] == 0x85 {
			return 2
		}
	case 0xe2: // LS and PS are E2 80 A8 and E2 80 A9
		if b == Unicode && i+2 < len(s) && s[i+1] == 0x80 && (s[i+2] == 0xa8 || s[i+2] == 0xa9) {
			return 3
		}
	}
	return 0
}

// Split splits text into logical lines. Every line keeps its terminator.
// An empty segment after a final terminator is dropped, so the result has a
// last line without terminator only if text ends with content after the last
// terminator. The empty string yields no lines.
func Split(text string, breaks Breaks) []string {
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(text); {
		n := breaks.terminatorAt(text, i)
		if n == 0 {
			i++
			continue
		}
		i += n
		out = append(out, text[start:i])
		start = i
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// TerminatorLength returns the length in bytes of the terminator at the end of
// line, or 0 if line does not end with one.
func TerminatorLength(line string, breaks Breaks) int {
	n := len(line)
	if n == 0 {
		return 0
	}
	// longest candidates first, so that "\r\n" is not taken for "\n"
	for _, k := range [...]int{3, 2, 1} {
		if n >= k && breaks.terminatorAt(line, n-k) == k {
			return k
		}
	}
	return 0
}

// TrimTerminator returns line without its trailing terminator.
func TrimTerminator(line string, breaks Breaks) string {
	return line[:len(line)-TerminatorLength(line, breaks)]
}

// IsSingleLine reports whether s is exactly one logical line, i.e. non-empty
// and free of terminators except possibly at its end.
func IsSingleLine(s string, breaks Breaks) bool {
	return len(Split(s, breaks)) == 1
}
