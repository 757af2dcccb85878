package linetree

import "github.com/npillmayer/textbuf/lines"

// lineCollection is either a *lineLeaf or a *lineNode.
type lineCollection interface {
	isLeaf() bool
	charCount() int
	lineCount() int
	walk(rangeStart, rangeLength int, w walker)
}

// lineLeaf holds a single logical line, including its terminator.
//
// A leaf is never changed after it has become part of a tree. The edit walker
// creates a fresh leaf for the start of an edited range and sets its text
// before the new tree is returned.
type lineLeaf struct {
	text  string
	chars int // length of text in measure units
}

func newLeaf(text string, m lines.Measure) *lineLeaf {
	return &lineLeaf{text: text, chars: m.Count(text)}
}

func (l *lineLeaf) setText(text string, m lines.Measure) {
	l.text = text
	l.chars = m.Count(text)
}

func (l *lineLeaf) isLeaf() bool   { return true }
func (l *lineLeaf) charCount() int { return l.chars }
func (l *lineLeaf) lineCount() int { return 1 }

func (l *lineLeaf) walk(rangeStart, rangeLength int, w walker) {
	w.leaf(rangeStart, rangeLength, l)
}

// lineNode is an internal node with an ordered list of children.
//
// Counts are derived from the children when a node is sealed. Every mutation
// of the child list unseals the node, and reading counts from an unsealed node
// is an internal error. A tree seals all of its nodes before it is handed out,
// so nodes reachable from a tree are sealed and never change again.
type lineNode struct {
	children   []lineCollection
	totalChars int
	totalLines int
	sealed     bool
}

// newNode creates an unsealed node holding a copy of children.
func newNode(children []lineCollection) *lineNode {
	return &lineNode{children: append([]lineCollection(nil), children...)}
}

func (n *lineNode) isLeaf() bool { return false }

func (n *lineNode) charCount() int {
	assert(n.sealed, "line node: reading counts of unsealed node")
	return n.totalChars
}

func (n *lineNode) lineCount() int {
	assert(n.sealed, "line node: reading counts of unsealed node")
	return n.totalLines
}

// seal recomputes the counts of n and of all unsealed nodes below n.
func (n *lineNode) seal() {
	if n.sealed {
		return
	}
	n.totalChars, n.totalLines = 0, 0
	for _, child := range n.children {
		if inner, ok := child.(*lineNode); ok {
			inner.seal()
		}
		n.totalChars += child.charCount()
		n.totalLines += child.lineCount()
	}
	n.sealed = true
}

// add appends a child. There must be room for it.
func (n *lineNode) add(child lineCollection, capacity int) {
	assert(child != nil, "line node: adding nil child")
	n.children = append(n.children, child)
	n.sealed = false
	assert(len(n.children) <= capacity, "line node: capacity exceeded")
}

func (n *lineNode) remove(child lineCollection) {
	i := n.findChildIndex(child)
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.sealed = false
}

func (n *lineNode) findChildIndex(child lineCollection) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	assert(false, "line node: child not found")
	return -1
}

// splitAfter moves all children following index i into a new node and
// returns that node, or nil if i is the last child.
func (n *lineNode) splitAfter(i int) *lineNode {
	var split *lineNode
	if i+1 < len(n.children) {
		split = newNode(n.children[i+1:])
	}
	n.children = n.children[:i+1]
	n.sealed = false
	return split
}

// insertAt inserts nodes as siblings directly following child. Children which
// do not fit into n are returned, packed into new nodes of at most capacity
// children each, in order. The caller has to insert them as siblings
// following n, one level up.
func (n *lineNode) insertAt(child lineCollection, nodes []lineCollection, capacity int) []lineCollection {
	n.sealed = false
	if len(nodes) == 0 {
		return nil
	}
	i := n.findChildIndex(child)
	if len(n.children)+len(nodes) <= capacity {
		tail := append([]lineCollection(nil), n.children[i+1:]...)
		n.children = append(append(n.children[:i+1], nodes...), tail...)
		return nil
	}
	shift := n.splitAfter(i)
	k := 0
	for len(n.children) < capacity && k < len(nodes) {
		n.children = append(n.children, nodes[k])
		k++
	}
	var overflow []lineCollection
	for k < len(nodes) {
		end := min(k+capacity, len(nodes))
		overflow = append(overflow, newNode(nodes[k:end]))
		k = end
	}
	if shift != nil {
		overflow = append(overflow, shift)
	}
	return overflow
}

// lineNumberToInfo finds the leaf for a 1-based line number relative to n.
// posAcc is accumulated into the absolute offset of the leaf start. If the line
// is past the end of n, the returned leaf is nil.
func (n *lineNode) lineNumberToInfo(relLine, posAcc int) (int, *lineLeaf) {
	for _, child := range n.children {
		childLines := child.lineCount()
		if childLines >= relLine {
			if child.isLeaf() {
				return posAcc, child.(*lineLeaf)
			}
			return child.(*lineNode).lineNumberToInfo(relLine, posAcc)
		}
		relLine -= childLines
		posAcc += child.charCount()
	}
	return posAcc, nil
}

// lineLocation is the result of translating an offset into a line position.
type lineLocation struct {
	line   int       // 1-based
	column int       // 0-based, in measure units
	leaf   *lineLeaf // nil if the offset is at or past the end of the text
}

// charOffsetToLineInfo translates an offset relative to n into a line
// location. lineAcc is the absolute line number of the first line of n.
func (n *lineNode) charOffsetToLineInfo(lineAcc, rel int) lineLocation {
	if len(n.children) == 0 { // empty document
		return lineLocation{line: lineAcc, column: rel}
	}
	for _, child := range n.children {
		if child.charCount() > rel {
			if child.isLeaf() {
				return lineLocation{line: lineAcc, column: rel, leaf: child.(*lineLeaf)}
			}
			return child.(*lineNode).charOffsetToLineInfo(lineAcc, rel)
		}
		rel -= child.charCount()
		lineAcc += child.lineCount()
	}
	// offset at end of n: report the end of the last line
	lc := n.lineCount()
	_, last := n.lineNumberToInfo(lc, 0)
	assert(last != nil, "line node: last line not found")
	return lineLocation{line: lineAcc - 1, column: last.charCount()}
}
