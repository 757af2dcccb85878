/*
Package lines splits text into logical lines and measures line text in the
offset units shared by every query of a text buffer.

A logical line keeps its terminator. Which byte sequences count as a
terminator is selected by Breaks, so no platform newline convention is built
into the splitting. Offsets are counted by a Measure: bytes, runes, or UTF-16
code units (the unit used by most editor protocols).

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package lines

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}
