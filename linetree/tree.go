package linetree

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/textbuf/lines"
)

// Tree is an immutable, line-indexed text tree.
//
// The root is always an internal node. A tree without text has a root without
// children. Trees are safe for concurrent reading.
type Tree struct {
	cfg  Config
	root *lineNode
}

// New creates an empty tree with validated configuration.
func New(cfg Config) (*Tree, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return newTree(cfg, &lineNode{}), nil
}

// Load creates a tree from a sequence of lines, see (*Tree).Load.
func Load(cfg Config, lns []string) (*Tree, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return t.Load(lns), nil
}

// FromText creates a tree holding text.
func FromText(cfg Config, text string) (*Tree, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return t.Load(lines.Split(text, t.cfg.Breaks)), nil
}

// newTree seals root and wraps it into a tree.
func newTree(cfg Config, root *lineNode) *Tree {
	root.seal()
	return &Tree{cfg: cfg, root: root}
}

// Load returns a new tree with the configuration of t, holding lns. Each
// element of lns has to be a single logical line; the receiver is not changed.
//
// The tree is built bottom-up: leaves are grouped into nodes of Capacity
// children, which are grouped again, until a single root remains.
func (t *Tree) Load(lns []string) *Tree {
	if len(lns) == 0 {
		return newTree(t.cfg, &lineNode{})
	}
	nodes := make([]lineCollection, len(lns))
	for i, line := range lns {
		nodes[i] = newLeaf(line, t.cfg.Measure)
	}
	root := t.buildFromBottom(nodes)
	tracer().Debugf("line tree: loaded %d lines", len(lns))
	return newTree(t.cfg, root)
}

func (t *Tree) buildFromBottom(nodes []lineCollection) *lineNode {
	capacity := t.cfg.Capacity
	if len(nodes) < capacity {
		return newNode(nodes)
	}
	interior := make([]lineCollection, 0, (len(nodes)+capacity-1)/capacity)
	for i := 0; i < len(nodes); i += capacity {
		end := min(i+capacity, len(nodes))
		interior = append(interior, newNode(nodes[i:end]))
	}
	return t.buildFromBottom(interior)
}

// Config returns the effective configuration of the tree.
func (t *Tree) Config() Config {
	return t.cfg
}

// Len returns the length of the text in measure units.
func (t *Tree) Len() int {
	return t.root.charCount()
}

// LineCount returns the number of lines.
func (t *Tree) LineCount() int {
	return t.root.lineCount()
}

// IsEmpty reports whether the tree holds no text.
func (t *Tree) IsEmpty() bool {
	return len(t.root.children) == 0
}

// Height returns the number of levels of the tree, counting the leaves.
// An empty tree has height 0.
func (t *Tree) Height() int {
	h := 0
	var n lineCollection = t.root
	for {
		h++
		inner, ok := n.(*lineNode)
		if !ok {
			return h
		}
		if len(inner.children) == 0 {
			return 0
		}
		n = inner.children[0]
	}
}

// Walk visits the lines overlapping [start, start+length) in order. For each line
// fn receives the line text and the part of the range falling into the line,
// relative to the start of the line. Returning false from fn stops the walk.
func (t *Tree) Walk(start, length int, fn func(line string, relStart, relLength int) bool) error {
	if err := t.checkRange(start, length); err != nil {
		return err
	}
	if length == 0 || start >= t.Len() {
		return nil
	}
	t.root.walk(start, length, &leafVisitor{fn: func(relStart, relLength int, l *lineLeaf) bool {
		return fn(l.text, relStart, relLength)
	}})
	return nil
}

// Every calls fn for the lines overlapping [start, start+length), like Walk,
// and reports whether fn returned true for all of them. An invalid range
// yields false.
func (t *Tree) Every(start, length int, fn func(line string, relStart, relLength int) bool) bool {
	all := true
	err := t.Walk(start, length, func(line string, relStart, relLength int) bool {
		all = fn(line, relStart, relLength)
		return all
	})
	return err == nil && all
}

// Text returns the text in range [start, start+length).
func (t *Tree) Text(start, length int) (string, error) {
	var sb strings.Builder
	m := t.cfg.Measure
	err := t.Walk(start, length, func(line string, relStart, relLength int) bool {
		from := m.ByteIndex(line, relStart)
		to := from + m.ByteIndex(line[from:], relLength)
		sb.WriteString(line[from:to])
		return true
	})
	return sb.String(), err
}

// String returns the complete text.
func (t *Tree) String() string {
	var sb strings.Builder
	for _, line := range t.RangeLines() {
		sb.WriteString(line)
	}
	return sb.String()
}

// RangeLines returns an iterator over all lines, together with their 1-based
// line numbers.
func (t *Tree) RangeLines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lineno := 0
		var visit func(n lineCollection) bool
		visit = func(n lineCollection) bool {
			if n.isLeaf() {
				lineno++
				return yield(lineno, n.(*lineLeaf).text)
			}
			for _, child := range n.(*lineNode).children {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(t.root)
	}
}

func (t *Tree) checkRange(start, length int) error {
	if start < 0 || length < 0 || start+length > t.Len() {
		return fmt.Errorf("%w: range [%d,+%d) in text of length %d", ErrOutOfRange,
			start, length, t.Len())
	}
	return nil
}

// lastLine returns the text of the last line, or "" for an empty tree.
func (t *Tree) lastLine() string {
	_, leaf := t.root.lineNumberToInfo(t.LineCount(), 0)
	if leaf == nil {
		return ""
	}
	return leaf.text
}
