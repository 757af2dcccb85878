/*
Package linetree implements a persistent, line-indexed B-tree for text buffers.

Every leaf of the tree holds exactly one logical line of text, including its
terminator. Internal nodes hold up to Capacity children and cache the sums of
character and line counts of their subtrees. Offsets are counted in the units
of the tree's lines.Measure.

Trees are immutable. Edit returns a new tree which shares every subtree lying
entirely before or after the edited range with its predecessor; only the path
between the first and the last touched line is rebuilt, plus any siblings
created by node overflow. Nodes carry no parent pointers, so a subtree may be
part of any number of tree generations at the same time. Traversal state for
an edit is kept on an explicit stack by the edit walker.

A range walk classifies every child it meets relative to the walked range:

	PreStart   entirely before the range
	Start      contains the range start, range continues in a later sibling
	Entire     contains the complete range
	Mid        entirely inside the range
	End        contains the range end
	PostEnd    entirely after the range

Reads and the edit surgery share this traversal.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package linetree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbuf'
func tracer() tracing.Trace {
	return tracing.Select("textbuf")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
