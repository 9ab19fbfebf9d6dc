package reduce

import (
	"github.com/canopy-parse/canopy/forest"
	"github.com/canopy-parse/canopy/grammar"
)

// Iterator walks one parse looking for the next reduction: a (root index,
// starter atom) pair whose atom matches the roots starting there. Calling
// Next repeatedly resumes from where the previous call left off, so the
// same Iterator value can be driven across many picker steps.
type Iterator struct {
	seq int // tie-breaker for Picker's sorted set

	grammar     *grammar.Grammar
	parse       *forest.Parse
	doLoopCheck bool

	rootIndex    int
	starterIndex int

	producedChild bool
}

// NewIterator creates an Iterator over parse, starting its search at root 0.
func NewIterator(g *grammar.Grammar, parse *forest.Parse, seq int) *Iterator {
	return &Iterator{
		seq:         seq,
		grammar:     g,
		parse:       parse,
		doLoopCheck: g.DoUnaryBranchCheck(),
	}
}

// Parse returns the parse this iterator searches.
func (it *Iterator) Parse() *forest.Parse { return it.parse }

// ProducedChild reports whether this iterator has ever returned a
// successful reduction.
func (it *Iterator) ProducedChild() bool { return it.producedChild }

// Next advances the iterator's cursors to the next applicable reduction and
// returns the resulting parse, or (nil, false) once the cursors exhaust.
func (it *Iterator) Next(h *Hopper) (*forest.Parse, bool) {
	roots := it.parse.Roots()
	for it.rootIndex < len(roots) {
		name := roots[it.rootIndex].Name()
		starters := it.grammar.Starters(name)
		for it.starterIndex < len(starters) {
			atom := starters[it.starterIndex]
			it.starterIndex++
			end, matched := atom.Match(roots, it.rootIndex)
			if !matched {
				continue
			}
			next, vetted := h.vet(it.parse, it.rootIndex, end, atom.Parent, it.doLoopCheck)
			if vetted {
				it.producedChild = true
				return next, true
			}
		}
		it.starterIndex = 0
		it.rootIndex++
	}
	return nil, false
}
