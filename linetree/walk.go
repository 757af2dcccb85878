package linetree

import "fmt"

// Section classifies a child relative to a walked range.
type Section int8

// Sections of a range walk, see the package documentation.
const (
	PreStart Section = iota
	Start
	Entire
	Mid
	End
	PostEnd
)

func (s Section) String() string {
	switch s {
	case PreStart:
		return "PreStart"
	case Start:
		return "Start"
	case Entire:
		return "Entire"
	case Mid:
		return "Mid"
	case End:
		return "End"
	case PostEnd:
		return "PostEnd"
	}
	return fmt.Sprintf("Section(%d)", int8(s))
}

// walker receives the callbacks of a range walk.
//
// pre is called for every child of a visited node, together with the child's
// section. If it returns true for a child which overlaps the range, the walk
// descends into the child and calls post afterwards. Children before and after
// the range are never descended into. leaf is called for every leaf the walk
// reaches, with the range relative to the start of the leaf.
type walker interface {
	pre(relStart, relLength int, child lineCollection, parent *lineNode, section Section) bool
	post(relStart, relLength int, child lineCollection, parent *lineNode, section Section)
	leaf(relStart, relLength int, l *lineLeaf)
	done() bool
}

// walk visits the range [rangeStart, rangeStart+rangeLength) relative to n.
// The range start has to be inside n, the range must not extend past the end
// of n.
//
// The child containing the start is found by scanning the children and
// accumulating their character counts.
func (n *lineNode) walk(rangeStart, rangeLength int, w walker) {
	if len(n.children) == 0 {
		return
	}
	i := 0
	childChars := n.children[i].charCount()
	adjustedStart := rangeStart
	for adjustedStart >= childChars {
		n.skipChild(adjustedStart, rangeLength, i, w, PreStart)
		adjustedStart -= childChars
		i++
		assert(i < len(n.children), "walk: range start beyond node")
		childChars = n.children[i].charCount()
	}
	if adjustedStart+rangeLength <= childChars {
		// start and end of range in the same subtree
		if n.execWalk(adjustedStart, rangeLength, w, i, Entire) {
			return
		}
	} else {
		// start and end of range in different subtrees, possibly with subtrees in between
		if n.execWalk(adjustedStart, childChars-adjustedStart, w, i, Start) {
			return
		}
		adjustedLength := rangeLength - (childChars - adjustedStart)
		i++
		assert(i < len(n.children), "walk: range end beyond node")
		childChars = n.children[i].charCount()
		for adjustedLength > childChars {
			if n.execWalk(0, childChars, w, i, Mid) {
				return
			}
			adjustedLength -= childChars
			i++
			assert(i < len(n.children), "walk: range end beyond node")
			childChars = n.children[i].charCount()
		}
		if adjustedLength > 0 {
			if n.execWalk(0, adjustedLength, w, i, End) {
				return
			}
		}
	}
	for j := i + 1; j < len(n.children); j++ {
		n.skipChild(0, 0, j, w, PostEnd)
	}
}

// execWalk visits child i, returns true if the walker is done.
func (n *lineNode) execWalk(relStart, relLength int, w walker, i int, section Section) bool {
	child := n.children[i]
	if w.pre(relStart, relLength, child, n, section) {
		child.walk(relStart, relLength, w)
		w.post(relStart, relLength, child, n, section)
	}
	return w.done()
}

func (n *lineNode) skipChild(relStart, relLength int, i int, w walker, section Section) {
	if !w.done() {
		w.pre(relStart, relLength, n.children[i], n, section)
	}
}

// leafVisitor adapts a function on leaves to the walker interface.
type leafVisitor struct {
	fn      func(relStart, relLength int, l *lineLeaf) bool
	stopped bool
}

func (v *leafVisitor) pre(int, int, lineCollection, *lineNode, Section) bool { return true }
func (v *leafVisitor) post(int, int, lineCollection, *lineNode, Section)     {}
func (v *leafVisitor) done() bool                                            { return v.stopped }

func (v *leafVisitor) leaf(relStart, relLength int, l *lineLeaf) {
	if !v.fn(relStart, relLength, l) {
		v.stopped = true
	}
}
