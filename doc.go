/*
Package textbuf holds the live text of open documents as versioned, line-indexed
snapshots.

A VersionCache owns the edit history of one document. Edits are queued as
changes and folded into a new immutable Snapshot on demand, or eagerly as soon
as too many changes (or too large ones) have piled up. Every Snapshot wraps a
persistent line tree (package linetree): a new version shares all untouched
subtrees with its predecessor, so older snapshots stay valid and cheap to
query while the document keeps changing.

Clients performing incremental work on a document, e.g. re-analysis of
source code, ask for the net change between two versions:

	old := cache.Snapshot()
	cache.Edit(10, 3, "foo")
	cache.Edit(42, 0, "\n")
	cr, err := cache.Snapshot().ChangeRangeSince(old)

The result is a single ChangeRange covering all edits in between. If the
history needed to answer the question is gone (after a Reload, or because old
has fallen out of the window of retained versions), ErrHistoryUnavailable is
returned and the client has to re-read the complete text.

Offsets of all operations are counted in the units of the configured measure,
UTF-16 code units by default. Lines are numbered starting with 1, columns
start at 0.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package textbuf

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}

// BufferError is an error type for the textbuf module
type BufferError string

func (e BufferError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever a position, length, line or version is
// outside of the known text or history. Clients should resynchronize the
// document.
const ErrOutOfRange = BufferError("position out of range")

// ErrHistoryUnavailable is flagged if a change range is requested for a
// version which is no longer retained. Clients have to re-read the full text.
const ErrHistoryUnavailable = BufferError("version history unavailable")

// ErrForeignSnapshot is flagged whenever snapshots of different version
// caches are compared.
const ErrForeignSnapshot = BufferError("snapshot belongs to a different version cache")

// ErrInvalidConfig is flagged for invalid configuration values.
const ErrInvalidConfig = BufferError("invalid configuration")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
