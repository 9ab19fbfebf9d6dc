package lex

import (
	"github.com/canopy-parse/canopy/forest"
	"github.com/canopy-parse/canopy/grammar"
)

// workItem is one entry of the tokenizer's breadth-first worklist: a
// partially tokenized parse, plus the offset its next leaf span must start
// at.
type workItem struct {
	offset int
	parse  *forest.Parse
}

// Tokenize produces every maximally un-reduced parse of text against g's
// committed leaf set: one parse per fully-covering sequence of leaf,
// boundary and trash spans. Multiple outputs occur exactly when leaf
// patterns overlap at some offset.
func Tokenize(g *grammar.Grammar, text string) ([]*forest.Parse, error) {
	matchers, err := newLeafMatchers(g)
	if err != nil {
		return nil, err
	}

	queue := []workItem{{offset: 0, parse: forest.NewEmpty(text)}}
	var results []*forest.Parse

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.offset >= len(text) {
			results = append(results, cur.parse)
			continue
		}

		matched := false
		for _, m := range matchers {
			end, ok := m.matchAt(text, cur.offset)
			if !ok {
				continue
			}
			if !preconditionsAccept(m.leaf, cur.offset, end, text) {
				continue
			}
			matched = true
			kind := forest.LeafKind
			if m.leaf.IsBoundary() {
				kind = forest.BoundaryKind
			}
			next := cur.parse.AppendLeaf(kind, m.leaf, cur.offset, end)
			if end >= len(text) {
				results = append(results, next)
			} else {
				queue = append(queue, workItem{offset: end, parse: next})
			}
		}

		if matched {
			continue
		}

		end := nextMatchBegin(matchers, text, cur.offset)
		trash := cur.parse.AppendLeaf(forest.TrashKind, g.TrashLeaf(), cur.offset, end)
		if end >= len(text) {
			results = append(results, trash)
		} else {
			queue = append(queue, workItem{offset: end, parse: trash})
		}
	}
	tracer().Debugf("tokenize: %d input byte(s), %d maximal parse(s)", len(text), len(results))
	return results, nil
}

// preconditionsAccept evaluates every precondition a leaf carries over its
// prospective span (with no children, as leaf tokens have none); any Fail
// rejects the branch before a node is ever built.
func preconditionsAccept(l *grammar.Leaf, start, end int, text string) bool {
	for _, p := range l.Preconditions() {
		if p(l.RuleName(), start, end, text, nil) == forest.Fail {
			return false
		}
	}
	return true
}

// nextMatchBegin finds the smallest offset at or after from+1 where some
// leaf matches, bounding the trash span produced when nothing matches at
// from itself.
func nextMatchBegin(matchers []*leafMatcher, text string, from int) int {
	for pos := from + 1; pos < len(text); pos++ {
		for _, m := range matchers {
			if _, ok := m.matchAt(text, pos); ok {
				return pos
			}
		}
	}
	return len(text)
}
