package canopy

import (
	"sort"

	"github.com/canopy-parse/canopy/forest"
	"github.com/canopy-parse/canopy/grammar"
	"github.com/canopy-parse/canopy/lex"
	"github.com/canopy-parse/canopy/reduce"
	"github.com/canopy-parse/canopy/segment"
)

// Engine runs the full pipeline—tokenize, segment, reduce, compose—over a
// committed grammar.
type Engine struct {
	grammar *grammar.Grammar
	filters []string
}

// NewEngine wraps a grammar. The grammar is committed if it isn't already.
func NewEngine(g *grammar.Grammar) (*Engine, error) {
	if err := g.Commit(); err != nil {
		return nil, err
	}
	return &Engine{grammar: g, filters: reduce.DefaultFilters}, nil
}

// Grammar returns the engine's underlying grammar.
func (e *Engine) Grammar() *grammar.Grammar { return e.grammar }

// First returns the single best parse of text, or an error if tokenizing
// failed or no whole parse was produced.
func (e *Engine) First(text string) (*forest.Parse, error) {
	results, err := e.Parse(text, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &NoParseError{Text: text}
	}
	return results[0], nil
}

// Parse returns up to n whole parses of text, ranked by the dominance
// filter, composed from every independently-searched segment.
func (e *Engine) Parse(text string, n int) ([]*forest.Parse, error) {
	for _, f := range e.filters {
		known := false
		for _, d := range reduce.DefaultFilters {
			if f == d {
				known = true
			}
		}
		if !known {
			return nil, grammar.ErrUnknownFilter
		}
	}
	variants, err := lex.Tokenize(e.grammar, text)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, &NoParseError{Text: text}
	}

	initial := segment.Build(e.grammar, e.filters, n, variants)
	e.drive(initial, n)

	var composed []*forest.Parse
	for _, s := range initial {
		composed = append(composed, segment.Compose(s)...)
	}

	final := reduce.NewHopper(n, e.filters)
	for _, p := range composed {
		final.Admit(p)
	}
	results := final.Results()
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].IncorrectnessCount() < results[j].IncorrectnessCount()
	})
	tracer().Debugf("Parse: %d byte(s), %d variant(s), %d whole parse(s)", len(text), len(variants), len(results))
	return results, nil
}

// drive repeatedly advances the not-yet-done segment of least weight (mass
// times current hopper size), mirroring Picker.Run's satisfaction-aware loop
// one level up. A segment's own continuations are not reachable until the
// segment itself is built, so the scheduling pool ranges over every segment
// reachable from initial, not just the initial (start-of-input) ones; the
// Σ total_parses termination bound, however, is computed over initial alone
// since each root's TotalParses already folds in its continuations'
// contributions. When n is unbounded, every reachable segment is driven to
// completion.
func (e *Engine) drive(initial []*segment.Segment, n int) {
	all := reachable(initial)
	for {
		if allDone(all) {
			return
		}
		if n > 0 && totalParses(initial) >= n {
			return
		}
		pick := leastWeightNotDone(all)
		if pick == nil {
			return
		}
		pick.Next()
	}
}

func allDone(segments []*segment.Segment) bool {
	for _, s := range segments {
		if !s.Done() {
			return false
		}
	}
	return true
}

func totalParses(initial []*segment.Segment) int {
	sum := 0
	for _, s := range initial {
		sum += s.TotalParses()
	}
	return sum
}

func leastWeightNotDone(segments []*segment.Segment) *segment.Segment {
	var pick *segment.Segment
	for _, s := range segments {
		if s.Done() {
			continue
		}
		if pick == nil || s.Weight() < pick.Weight() {
			pick = s
		}
	}
	return pick
}

func reachable(initial []*segment.Segment) []*segment.Segment {
	seen := map[*segment.Segment]bool{}
	var out []*segment.Segment
	var walk func(s *segment.Segment)
	walk = func(s *segment.Segment) {
		if seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
		for _, c := range s.Continuations {
			walk(c)
		}
	}
	for _, s := range initial {
		walk(s)
	}
	return out
}
