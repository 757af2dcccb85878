/*
Package textfile loads UTF-8 text files into version caches.

Files are read in fragments, sized according to the file size, by a
background reader. Loading is synchronous for the client: Load returns when
the complete text is available.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}
