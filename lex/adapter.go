package lex

import (
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/canopy-parse/canopy/grammar"
)

// leafMatcher wraps one grammar leaf in its own single-pattern lexmachine
// lexer: a distinct *Lexer per pattern keeps every leaf's DFA independent,
// so matchAt can ask "does this one leaf match here" without the
// combined-lexer priority rules that a single shared lexmachine.Lexer
// would impose.
type leafMatcher struct {
	leaf  *grammar.Leaf
	lexer *lexmachine.Lexer
}

// keepMatch is a lexmachine.Action that hands the raw match back to the
// caller instead of wrapping it in a lexmachine.Token; matchAt only needs
// the matched byte length.
func keepMatch(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return m, nil
}

func newLeafMatcher(l *grammar.Leaf) (*leafMatcher, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(l.RawPattern), keepMatch)
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return &leafMatcher{leaf: l, lexer: lx}, nil
}

// matchAt reports the end offset of a match of m's leaf pattern beginning
// exactly at text[offset:], or ok=false. lexmachine's scanner errors with
// machines.UnconsumedInput rather than skipping ahead when nothing matches
// at its current position, so a successful Next() necessarily matched at
// offset 0 of the slice handed to Scanner.
func (m *leafMatcher) matchAt(text string, offset int) (end int, ok bool) {
	scanner, err := m.lexer.Scanner([]byte(text[offset:]))
	if err != nil {
		return offset, false
	}
	tok, err, eof := scanner.Next()
	if err != nil || eof || tok == nil {
		return offset, false
	}
	match, isMatch := tok.(*machines.Match)
	if !isMatch {
		return offset, false
	}
	return offset + len(match.Bytes), true
}

// newLeafMatchers compiles one matcher per non-trash leaf declared on g.
func newLeafMatchers(g *grammar.Grammar) ([]*leafMatcher, error) {
	leaves := g.Leaves()
	out := make([]*leafMatcher, 0, len(leaves))
	for _, l := range leaves {
		if l.IsTrash() {
			continue
		}
		m, err := newLeafMatcher(l)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
