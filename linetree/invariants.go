package linetree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/textbuf/lines"
)

// Check verifies the structural invariants of the tree:
//
//   - every node except the root has between 1 and Capacity children
//   - all leaves are at the same depth
//   - cached counts equal the sums over the children
//   - every leaf holds exactly one line, and only the last leaf may lack a terminator
//   - no CR ending a line is followed by an LF starting the next one
//
// It returns an error wrapping ErrInvariant for the first violation found.
func (t *Tree) Check() error {
	c := checker{cfg: t.cfg, leafDepth: -1}
	if len(t.root.children) > t.cfg.Capacity {
		return fmt.Errorf("%w: root has %d children", ErrInvariant, len(t.root.children))
	}
	if _, _, err := c.check(t.root, 0); err != nil {
		return err
	}
	if c.leaves != t.LineCount() {
		return fmt.Errorf("%w: %d leaves, but %d lines", ErrInvariant, c.leaves, t.LineCount())
	}
	return nil
}

type checker struct {
	cfg       Config
	leafDepth int
	leaves    int
	lastText  string
}

func (c *checker) check(node lineCollection, depth int) (chars, lns int, err error) {
	if leaf, ok := node.(*lineLeaf); ok {
		return c.checkLeaf(leaf, depth)
	}
	n := node.(*lineNode)
	if !n.sealed {
		return 0, 0, fmt.Errorf("%w: unsealed node at depth %d", ErrInvariant, depth)
	}
	if depth > 0 && (len(n.children) == 0 || len(n.children) > c.cfg.Capacity) {
		return 0, 0, fmt.Errorf("%w: node at depth %d has %d children", ErrInvariant,
			depth, len(n.children))
	}
	for _, child := range n.children {
		cc, cl, err := c.check(child, depth+1)
		if err != nil {
			return 0, 0, err
		}
		chars += cc
		lns += cl
	}
	if chars != n.totalChars || lns != n.totalLines {
		return 0, 0, fmt.Errorf("%w: node at depth %d counts (%d,%d), children sum to (%d,%d)",
			ErrInvariant, depth, n.totalChars, n.totalLines, chars, lns)
	}
	return chars, lns, nil
}

func (c *checker) checkLeaf(leaf *lineLeaf, depth int) (int, int, error) {
	if c.leafDepth < 0 {
		c.leafDepth = depth
	} else if c.leafDepth != depth {
		return 0, 0, fmt.Errorf("%w: leaf at depth %d, expected %d", ErrInvariant,
			depth, c.leafDepth)
	}
	if leaf.text == "" {
		return 0, 0, fmt.Errorf("%w: empty leaf", ErrInvariant)
	}
	if leaf.chars != c.cfg.Measure.Count(leaf.text) {
		return 0, 0, fmt.Errorf("%w: leaf %q has stale count %d", ErrInvariant, leaf.text, leaf.chars)
	}
	if !lines.IsSingleLine(leaf.text, c.cfg.Breaks) {
		return 0, 0, fmt.Errorf("%w: leaf %q holds more than one line", ErrInvariant, leaf.text)
	}
	if c.leaves > 0 && lines.TerminatorLength(c.lastText, c.cfg.Breaks) == 0 {
		return 0, 0, fmt.Errorf("%w: line %d %q lacks a terminator", ErrInvariant,
			c.leaves, c.lastText)
	}
	if c.leaves > 0 && c.cfg.Breaks != lines.LF &&
		strings.HasSuffix(c.lastText, "\r") && strings.HasPrefix(leaf.text, "\n") {
		return 0, 0, fmt.Errorf("%w: CR of line %d and LF of line %d form one terminator",
			ErrInvariant, c.leaves, c.leaves+1)
	}
	c.leaves++
	c.lastText = leaf.text
	return leaf.chars, 1, nil
}
