package forestdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/canopy-parse/canopy/forest"
)

// style colors one node's label by kind: failed nodes red, boundaries blue,
// leaves green as in WriteDot, but trash gray where WriteDot fills it pink.
func style(n *forest.Node) func(a ...interface{}) string {
	switch {
	case n.Failed():
		return pterm.FgRed.Sprint
	case n.IsTrash():
		return pterm.FgGray.Sprint
	case n.IsBoundary():
		return pterm.FgBlue.Sprint
	case n.IsLeaf():
		return pterm.FgGreen.Sprint
	default:
		return pterm.FgDefault.Sprint
	}
}

// Print writes an indented outline of every root in p to w, one line per
// node, annotated with its position and text.
func Print(w io.Writer, p *forest.Parse) {
	for _, r := range p.Roots() {
		printNode(w, r, 0)
	}
}

func printNode(w io.Writer, n *forest.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := style(n)(fmt.Sprintf("%s %v", n.Name(), n.Position()))
	fmt.Fprintf(w, "%s%s %q\n", indent, label, n.Text())
	for _, c := range n.Children() {
		printNode(w, c, depth+1)
	}
}

// Summary writes a one-line pterm panel reporting a parse's size, errors
// and pending-predicate count, suitable for REPL status lines.
func Summary(w io.Writer, p *forest.Parse) {
	line := fmt.Sprintf("roots=%d size=%d errors=%d pending=%d",
		len(p.Roots()), p.Size(), p.IncorrectnessCount(), p.PendingCount())
	if p.Success() {
		pterm.Success.WithWriter(w).Println(line)
	} else {
		pterm.Warning.WithWriter(w).Println(line)
	}
}

// Dot writes p in GraphViz DOT format to w. A thin pass-through to
// forest.WriteDot kept here so callers importing forestdump for terminal
// output don't also need to import forest directly.
func Dot(w io.Writer, p *forest.Parse) {
	forest.WriteDot(w, p)
}
