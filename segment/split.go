package segment

import "github.com/canopy-parse/canopy/forest"

// piece is one (start, end) span of one lex variant's root sequence,
// either a run of ordinary leaves or a single splitting node.
type piece struct {
	start, end int
	roots      []*forest.Node
}

// splits a trash node as a boundary: both box a span that may never be the
// child of another node, so both divide a parse into segments.
func splits(n *forest.Node) bool {
	return n.IsBoundary() || n.IsTrash()
}

// splitByBoundary walks p's roots left to right, alternating text pieces
// and single-node boundary pieces. Two adjacent boundaries produce an
// empty text piece between them.
func splitByBoundary(p *forest.Parse) []piece {
	var pieces []piece
	var run []*forest.Node
	prevWasBoundary := false
	prevEnd := 0

	flush := func() {
		if len(run) == 0 {
			return
		}
		pieces = append(pieces, piece{start: run[0].Start(), end: run[len(run)-1].End(), roots: run})
		run = nil
	}

	for _, r := range p.Roots() {
		if splits(r) {
			if len(run) == 0 && prevWasBoundary {
				pieces = append(pieces, piece{start: prevEnd, end: prevEnd})
			}
			flush()
			pieces = append(pieces, piece{start: r.Start(), end: r.End(), roots: []*forest.Node{r}})
			prevWasBoundary = true
			prevEnd = r.End()
			continue
		}
		run = append(run, r)
		prevWasBoundary = false
	}
	flush()
	return pieces
}

// subParse rebuilds a piece's roots as a standalone Parse over the same
// text, decoupled from the tokenized parse it came from so each segment's
// reduction search clones only its own arena.
func subParse(text string, rs []*forest.Node) *forest.Parse {
	p := forest.NewEmpty(text)
	for _, r := range rs {
		p = p.AppendLeaf(r.Kind(), r.Rule(), r.Start(), r.End())
	}
	return p
}
