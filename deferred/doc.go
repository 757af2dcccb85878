/*
Package deferred runs work on document snapshots after a delay, and lets
long-running work be cancelled cooperatively.

Snapshots of a text buffer never change, so work may be deferred safely: if
new edits arrive before a scheduled operation runs, the operation is simply
re-scheduled for the newest snapshot, and an operation already running on an
older snapshot keeps seeing a consistent text. Such a stale operation is
asked to stop by setting its cancellation token. Cancellation is a request
only; the operation has to poll its token.

A Watcher combines both: it subscribes to the snapshot broadcast of a version
cache and hands the newest snapshot to an Analyzer once the document has
been quiet for a while.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package deferred

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}
