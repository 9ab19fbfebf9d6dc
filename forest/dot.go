package forest

import (
	"fmt"
	"io"
)

// WriteDot exports a Parse to an io.Writer in GraphViz DOT format. A
// self-contained text dump that needs no external graph-rendering library
// to produce, it complements forestdump's terminal renderer for callers who
// want to pipe output into `dot`.
func WriteDot(w io.Writer, p *Parse) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, `  node [fontname="Helvetica",shape=box,fontsize=10];`)
	for _, r := range p.Roots() {
		writeDotNode(w, r)
	}
	fmt.Fprintln(w, "}")
}

func writeDotNode(w io.Writer, n *Node) {
	style := ""
	switch n.Kind() {
	case TrashKind:
		style = `,style=filled,fillcolor="#f4cccc"`
	case BoundaryKind:
		style = `,style=filled,fillcolor="#cfe2f3"`
	case LeafKind:
		style = `,style=filled,fillcolor="#d9ead3"`
	}
	if n.Failed() {
		style += `,color=red,penwidth=2`
	}
	fmt.Fprintf(w, "  \"%v\" [label=\"%s\\n%s\"%s];\n", n.Position(), n.Name(), n.Text(), style)
	for _, c := range n.Children() {
		writeDotNode(w, c)
		fmt.Fprintf(w, "  \"%v\" -> \"%v\";\n", n.Position(), c.Position())
	}
}
