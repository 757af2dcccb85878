package linetree

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/textbuf/lines"
)

// Edit returns a new tree with deleteLength units at pos replaced by newText.
// The receiver is not changed; the new tree shares all subtrees outside of
// the edited range with the receiver.
//
// pos and deleteLength have to describe a range inside the text, with both
// ends on character boundaries, otherwise ErrOutOfRange is returned. pos == Len() appends to the text.
func (t *Tree) Edit(pos, deleteLength int, newText string) (*Tree, error) {
	if pos < 0 || deleteLength < 0 || pos+deleteLength > t.Len() {
		return nil, fmt.Errorf("%w: edit at %d deleting %d in text of length %d",
			ErrOutOfRange, pos, deleteLength, t.Len())
	}
	if !t.onCharBoundary(pos) || !t.onCharBoundary(pos+deleteLength) {
		return nil, fmt.Errorf("%w: edit at %d deleting %d splits a character",
			ErrOutOfRange, pos, deleteLength)
	}
	if t.IsEmpty() {
		if newText == "" {
			return t, nil
		}
		return t.Load(lines.Split(newText, t.cfg.Breaks)), nil
	}
	var checkText string
	if t.cfg.CheckEdits {
		source, m := t.String(), t.cfg.Measure
		from := m.ByteIndex(source, pos)
		to := from + m.ByteIndex(source[from:], deleteLength)
		checkText = source[:from] + newText + source[to:]
	}
	suppressTrailingText := false
	if pos >= t.Len() {
		// Appending at the end of the text: there is no child to walk into,
		// so re-insert the last character of the text together with newText.
		last := t.lastLine()
		_, size := utf8.DecodeLastRuneInString(last)
		pos = t.Len() - t.cfg.Measure.LastCharWidth(last)
		newText = last[len(last)-size:] + newText
		deleteLength = 0
		suppressTrailingText = true
	} else if deleteLength > 0 {
		// If the deleted range ends at the start of a line, that line merges
		// with the line containing pos. Move the range end past the line.
		loc := t.root.charOffsetToLineInfo(1, pos+deleteLength)
		if loc.column == 0 && loc.leaf != nil {
			deleteLength += loc.leaf.charCount()
			newText += loc.leaf.text
		}
	}
	if !suppressTrailingText && t.endsInLoneCR(pos) {
		// The new text may continue a CR terminator with LF, so the line
		// before pos is rebuilt, too.
		pos--
		deleteLength++
		newText = "\r" + newText
	}
	w := newEditWalker(t.cfg)
	t.root.walk(pos, deleteLength, w)
	result := w.insertLines(newText, suppressTrailingText)
	if t.cfg.CheckEdits {
		if got := result.String(); got != checkText {
			panic(fmt.Sprintf("line tree: buffer edit mismatch, expected %q, got %q", checkText, got))
		}
	}
	return result, nil
}

// editWalker collects the pieces of a tree which are not touched by an edit.
//
// The walker builds the new tree while walking the edit range of the old one.
// Children before and after the range are re-linked into fresh copies of the
// nodes on the path to the range start. Nodes on the path to the range end
// are copied into endBranch. The leaf at the range start (the tail of
// startPath) receives the replacement text in insertLines.
type editWalker struct {
	cfg          Config
	root         *lineNode
	startPath    []lineCollection // fresh nodes from root to the start leaf
	endBranch    []*lineNode      // fresh nodes on the path to the range end
	branchNode   *lineNode        // fresh node where start and end paths diverge
	atBranch     lineCollection   // old child of the branch node containing the start
	stack        []lineCollection // fresh nodes corresponding to the walk position
	state        Section          // Entire, Start or End
	initialText  string
	trailingText string
}

func newEditWalker(cfg Config) *editWalker {
	root := &lineNode{}
	return &editWalker{
		cfg:       cfg,
		root:      root,
		startPath: []lineCollection{root},
		stack:     []lineCollection{root},
		state:     Entire,
	}
}

func (w *editWalker) done() bool { return false }

func fresh(node lineCollection) lineCollection {
	if node.isLeaf() {
		return &lineLeaf{}
	}
	return &lineNode{}
}

func (w *editWalker) pre(_, _ int, child lineCollection, _ *lineNode, section Section) bool {
	current, ok := w.stack[len(w.stack)-1].(*lineNode)
	assert(ok, "edit walker: current node is not an inner node")
	if w.state == Entire && section == Start {
		// the range spans more than one line
		w.state = Start
		w.branchNode = current
		w.atBranch = child
	}
	capacity := w.cfg.Capacity
	var copied lineCollection
	descend := true
	switch section {
	case PreStart:
		descend = false
		if w.state != End {
			current.add(child, capacity)
		}
	case Start:
		if w.state == End {
			descend = false
		} else {
			copied = fresh(child)
			current.add(copied, capacity)
			w.startPath = append(w.startPath, copied)
		}
	case Entire:
		if w.state != End {
			copied = fresh(child)
			current.add(copied, capacity)
			w.startPath = append(w.startPath, copied)
		} else if !child.isLeaf() {
			copied = fresh(child)
			current.add(copied, capacity)
			w.endBranch = append(w.endBranch, copied.(*lineNode))
		}
	case Mid:
		descend = false
	case End:
		if w.state != End {
			descend = false
		} else if !child.isLeaf() {
			copied = fresh(child)
			current.add(copied, capacity)
			w.endBranch = append(w.endBranch, copied.(*lineNode))
		}
	case PostEnd:
		descend = false
		if w.state != Start {
			current.add(child, capacity)
		}
	}
	if descend {
		w.stack = append(w.stack, copied) // nil for a leaf on the end path
	}
	return descend
}

func (w *editWalker) post(_, _ int, child lineCollection, _ *lineNode, _ Section) {
	// The start path is complete; if the range spans lines, look for its end.
	if child == w.atBranch {
		w.state = End
	}
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *editWalker) leaf(relStart, relLength int, l *lineLeaf) {
	m := w.cfg.Measure
	from := m.ByteIndex(l.text, relStart)
	to := from + m.ByteIndex(l.text[from:], relLength)
	switch w.state {
	case Start:
		w.initialText = l.text[:from]
	case Entire:
		w.initialText = l.text[:from]
		w.trailingText = l.text[to:]
	default:
		w.trailingText = l.text[to:]
	}
}

// insertLines grafts the replacement lines into the new tree and returns it.
func (w *editWalker) insertLines(newText string, suppressTrailingText bool) *Tree {
	if suppressTrailingText {
		w.trailingText = ""
	}
	lns := lines.Split(w.initialText+newText+w.trailingText, w.cfg.Breaks)
	w.pruneEndBranch()
	leaf, ok := w.startPath[len(w.startPath)-1].(*lineLeaf)
	assert(ok, "edit walker: start path does not end in a leaf")
	capacity := w.cfg.Capacity
	if len(lns) == 0 {
		// no content left for the start leaf
		w.startPath[len(w.startPath)-2].(*lineNode).remove(leaf)
		w.pruneStartPath()
		return newTree(w.cfg, w.root)
	}
	leaf.setText(lns[0], w.cfg.Measure)
	if len(lns) == 1 {
		return newTree(w.cfg, w.root)
	}
	inserted := make([]lineCollection, len(lns)-1)
	for i, line := range lns[1:] {
		inserted[i] = newLeaf(line, w.cfg.Measure)
	}
	var startNode lineCollection = leaf
	for i := len(w.startPath) - 2; i >= 0; i-- {
		node := w.startPath[i].(*lineNode)
		inserted = node.insertAt(startNode, inserted, capacity)
		startNode = node
	}
	for len(inserted) > 0 { // overflow at the root: grow the tree
		root := &lineNode{}
		root.add(w.root, capacity)
		inserted = root.insertAt(w.root, inserted, capacity)
		w.root = root
		tracer().Debugf("line tree: new root after overflow")
	}
	return newTree(w.cfg, w.root)
}

// pruneEndBranch removes the topmost node of the end path which has been
// emptied by the edit.
func (w *editWalker) pruneEndBranch() {
	zero := -1
	for k := len(w.endBranch) - 1; k >= 0; k-- {
		w.endBranch[k].seal()
		if w.endBranch[k].charCount() == 0 {
			zero = k
		}
	}
	if zero < 0 {
		return
	}
	parent := w.branchNode
	if zero > 0 {
		parent = w.endBranch[zero-1]
	}
	assert(parent != nil, "edit walker: end branch without branch node")
	parent.remove(w.endBranch[zero])
	for k := 0; k < zero; k++ { // counts above the removed node are stale
		w.endBranch[k].sealed = false
	}
}

// pruneStartPath removes nodes from the start path which have been left
// without children. Only the root may be empty.
func (w *editWalker) pruneStartPath() {
	for i := len(w.startPath) - 2; i > 0; i-- {
		node := w.startPath[i].(*lineNode)
		if len(node.children) > 0 {
			return
		}
		w.startPath[i-1].(*lineNode).remove(node)
	}
}

// endsInLoneCR reports whether pos is the start of a line and the line before
// is terminated by a single CR.
func (t *Tree) endsInLoneCR(pos int) bool {
	if t.cfg.Breaks == lines.LF {
		return false
	}
	loc := t.root.charOffsetToLineInfo(1, pos)
	if loc.column != 0 || loc.line < 2 {
		return false
	}
	_, prev := t.root.lineNumberToInfo(loc.line-1, 0)
	return prev != nil && strings.HasSuffix(prev.text, "\r")
}
