package linetree

import (
	"fmt"
	"io"
	"strings"
)

type nodeids struct {
	idTable map[lineCollection]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[lineCollection]int),
		max:     1,
	}
}

func (ids *nodeids) alloc(node lineCollection) int {
	if id := ids.idTable[node]; id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// ToDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes).
func ToDot(t *Tree, w io.Writer) error {
	return ToDotShared(t, nil, w)
}

// ToDotShared is like ToDot, but highlights every node of t which is shared
// with tree older. older may be nil.
func ToDotShared(t, older *Tree, w io.Writer) error {
	shared := make(map[lineCollection]bool)
	if older != nil {
		collect(older.root, shared)
	}
	var sb strings.Builder
	sb.WriteString("strict digraph {\n")
	sb.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable()
	var nodelist, edgelist strings.Builder
	var visit func(n lineCollection, pos int)
	visit = func(n lineCollection, pos int) {
		id := ids.alloc(n)
		styles := nodeDotStyles(n.isLeaf(), shared[n])
		if n.isLeaf() {
			label := fmt.Sprintf("%d @%d\\n“%s”", n.charCount(), pos, strstart(n.(*lineLeaf).text))
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, label, styles)
			return
		}
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%d/%d\" %s];\n", id, n.charCount(), n.lineCount(), styles)
		for _, child := range n.(*lineNode).children {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(child))
			visit(child, pos)
			pos += child.charCount()
		}
	}
	visit(t.root, 0)
	sb.WriteString(nodelist.String())
	sb.WriteString(edgelist.String())
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	if err != nil {
		tracer().Errorf("line tree DOT: %s", err.Error())
	}
	return err
}

func collect(n lineCollection, set map[lineCollection]bool) {
	set[n] = true
	if inner, ok := n.(*lineNode); ok {
		for _, child := range inner.children {
			collect(child, set)
		}
	}
}

func nodeDotStyles(isleaf bool, shared bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	if shared {
		s += ",fillcolor=\"#CCDDFF\""
	} else {
		s += ",fillcolor=\"#FFBB88\""
	}
	return s
}

// strstart returns the start of a line, escaped for a DOT label.
func strstart(text string) string {
	if r := []rune(text); len(r) > 10 {
		text = string(r[:10]) + "…"
	}
	text = strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\\\n", "\r", "\\\\r").Replace(text)
	return text
}
