package grammar

import "github.com/canopy-parse/canopy/forest"

// Unbounded marks an atom's Max as infinite ({n,} or '+'/'*').
const Unbounded = -1

// Atom is one repetition-annotated element of a rule body.
type Atom struct {
	Seeking string // the symbol this atom seeks
	Min     int
	Max     int // Unbounded for infinity
	Literal bool
	Next    *Atom // successor atom in the same subrule, nil if last
	Parent  *Rule
}

// maxConsumption is the derived greedy-ordering key used to sort starters:
// (max==unbounded ? 10 : max) + next atom's max_consumption.
func (a *Atom) maxConsumption() int {
	m := a.Max
	if m == Unbounded {
		m = 10
	}
	if a.Next != nil {
		m += a.Next.maxConsumption()
	}
	return m
}

// traversibleNamed reports whether node matches this atom's seeking symbol
// and is eligible to be consumed by it: traversible and not already failed.
func (a *Atom) traversibleNamed(n *forest.Node) bool {
	kind := n.Kind()
	return (kind == forest.LeafKind || kind == forest.NonterminalKind) &&
		!n.Failed() && n.Name() == a.Seeking
}

// isIgnorable reports whether n should be skipped over while matching.
func isIgnorable(n *forest.Node) bool {
	return n.Ignorable()
}

// Match greedily consumes up to Max consecutive nodes named a.Seeking,
// starting at offset within nodes (skipping ignorables), requires at least
// Min, then threads the resulting offset through a.Next. It returns the
// offset just behind the whole chain's match, or ok=false on mismatch.
func (a *Atom) Match(nodes []*forest.Node, offset int) (int, bool) {
	if offset >= len(nodes) {
		if a.Min == 0 {
			if a.Next == nil {
				return offset, true
			}
			return a.Next.Match(nodes, offset)
		}
		return offset, false
	}
	pos := offset
	end := offset
	count := 0
	for pos < len(nodes) {
		n := nodes[pos]
		if isIgnorable(n) {
			pos++
			continue
		}
		if a.Max != Unbounded && count >= a.Max {
			break
		}
		if !a.traversibleNamed(n) {
			break
		}
		count++
		pos++
		end = pos
	}
	if count < a.Min {
		return offset, false
	}
	if a.Next == nil {
		return end, true
	}
	return a.Next.Match(nodes, end)
}
