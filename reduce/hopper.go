package reduce

import (
	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/gconf"

	"github.com/canopy-parse/canopy/forest"
)

// DefaultFilters is the dominance filter's fixed priority order.
var DefaultFilters = []string{"correctness", "completion", "size", "pending"}

// dominanceKeys is one parse's value on each of the four ranking axes,
// lower always better.
type dominanceKeys struct {
	correctness int
	completion  int
	size        int
	pending     int
}

func keysOf(p *forest.Parse) dominanceKeys {
	return dominanceKeys{
		correctness: p.IncorrectnessCount(),
		completion:  p.Length(),
		size:        p.Size(),
		pending:     p.PendingCount(),
	}
}

// preconditioned is satisfied by any grammar.Rule or grammar.Leaf.
type preconditioned interface {
	Preconditions() []forest.Precondition
}

func preconditionsOf(rule forest.RuleRef) []forest.Precondition {
	if pc, ok := rule.(preconditioned); ok {
		return pc.Preconditions()
	}
	return nil
}

// Hopper holds up to n best parses under the dominance filter: correctness,
// completion, size, pending, compared lexicographically in that order. An
// empty filters slice disables dominance entirely; every completed parse
// is admitted.
type Hopper struct {
	n       int
	filters []string

	bins           []*forest.Parse
	haveThresholds bool
	thresholds     dominanceKeys

	seen map[string]bool
}

// NewHopper creates a Hopper bounded to n parses (n<=0 means unbounded),
// ranked by filters (nil or empty disables dominance).
func NewHopper(n int, filters []string) *Hopper {
	return &Hopper{n: n, filters: filters, seen: map[string]bool{}}
}

func (h *Hopper) active(name string) bool {
	for _, f := range h.filters {
		if f == name {
			return true
		}
	}
	return false
}

// compare returns -1 if a dominates b, 1 if b dominates a, 0 if tied on
// every active key.
func (h *Hopper) compare(a, b dominanceKeys) int {
	type pair struct{ name string; av, bv int }
	for _, p := range []pair{
		{"correctness", a.correctness, b.correctness},
		{"completion", a.completion, b.completion},
		{"size", a.size, b.size},
		{"pending", a.pending, b.pending},
	} {
		if !h.active(p.name) {
			continue
		}
		if p.av < p.bv {
			return -1
		}
		if p.av > p.bv {
			return 1
		}
	}
	return 0
}

// Admit offers parse to the hopper, applying the dominance filter.
func (h *Hopper) Admit(p *forest.Parse) bool {
	if len(h.filters) == 0 {
		h.bins = append(h.bins, p)
		tracer().Debugf("hopper: admit %q (dominance disabled)", p.Summary())
		return true
	}
	keys := keysOf(p)
	if !h.haveThresholds {
		h.thresholds = keys
		h.haveThresholds = true
		h.bins = append(h.bins, p)
		tracer().Debugf("hopper: admit %q (first threshold %+v)", p.Summary(), keys)
		return true
	}
	switch h.compare(keys, h.thresholds) {
	case -1:
		h.thresholds = keys
		kept := make([]*forest.Parse, 0, len(h.bins)+1)
		purged := 0
		for _, old := range h.bins {
			if h.compare(keysOf(old), keys) <= 0 {
				kept = append(kept, old)
			} else {
				purged++
			}
		}
		h.bins = append(kept, p)
		tracer().Debugf("hopper: admit %q, tighten threshold to %+v, purge %d", p.Summary(), keys, purged)
		return true
	case 1:
		tracer().Debugf("hopper: reject %q, dominated by threshold %+v", p.Summary(), h.thresholds)
		return false
	default:
		if h.n > 0 && len(h.bins) >= h.n {
			tracer().Debugf("hopper: reject %q, tied but hopper already holds %d", p.Summary(), h.n)
			return false
		}
		h.bins = append(h.bins, p)
		tracer().Debugf("hopper: admit %q, tied with threshold %+v", p.Summary(), keys)
		return true
	}
}

// Continuable reports whether parse may still improve enough to be
// admitted: its correctness and (usually) size must not already exceed the
// hopper's thresholds. Once a single fully-reduced parse exists
// (completion threshold == 1), size stops gating so other equally complete
// candidates stay in the running regardless of how large they are.
func (h *Hopper) Continuable(p *forest.Parse) bool {
	if !h.haveThresholds {
		return true
	}
	keys := keysOf(p)
	if h.active("correctness") && keys.correctness > h.thresholds.correctness {
		return false
	}
	if h.active("completion") && h.thresholds.completion == 1 {
		return true
	}
	if h.active("size") && keys.size > h.thresholds.size {
		return false
	}
	return true
}

// Satisfied reports whether the hopper has reached its requested count with
// zero-valued correctness and pending thresholds.
func (h *Hopper) Satisfied() bool {
	if h.n <= 0 || len(h.bins) < h.n {
		return false
	}
	if h.active("correctness") && h.thresholds.correctness != 0 {
		return false
	}
	if h.active("pending") && h.thresholds.pending != 0 {
		return false
	}
	return true
}

// Results returns the parses currently held.
func (h *Hopper) Results() []*forest.Parse {
	return append([]*forest.Parse(nil), h.bins...)
}

// Size is the number of parses currently held.
func (h *Hopper) Size() int { return len(h.bins) }

// vet implements the candidate-admission algorithm: precondition check,
// deduplication against the seen-summary memo, then the actual splice.
func (h *Hopper) vet(p *forest.Parse, i, j int, rule forest.RuleRef, loopCheck bool) (*forest.Parse, bool) {
	tracer().Debugf("hopper: candidate %s[%d,%d)", rule.RuleName(), i, j)
	roots := p.Roots()
	children := roots[i:j]
	for _, pc := range preconditionsOf(rule) {
		if pc(rule.RuleName(), roots[i].Start(), roots[j-1].End(), p.Text(), children) == forest.Fail {
			tracer().Debugf("hopper: vet reject %s[%d,%d): precondition failed", rule.RuleName(), i, j)
			return nil, false
		}
	}
	summary := forest.CandidateSummary(p, i, j, rule.RuleName())
	key := candidateKey(summary)
	if h.seen[key] {
		tracer().Debugf("hopper: vet reject %s[%d,%d): already seen %q", rule.RuleName(), i, j, summary)
		return nil, false
	}
	next, ok := p.Add(i, j, rule, loopCheck)
	if !ok {
		tracer().Debugf("hopper: vet reject %s[%d,%d): loop check", rule.RuleName(), i, j)
		return nil, false
	}
	h.seen[key] = true
	h.capCache()
	return next, true
}

// capCache clears the seen-summary memo once it outgrows
// gconf.GetInt("canopy.max-candidate-cache"), a soft cap of 0 or less
// disables the cap. The memo is purely an optimization — dropping entries
// only costs re-discovering a handful of already-rejected candidates.
func (h *Hopper) capCache() {
	max := gconf.GetInt("canopy.max-candidate-cache")
	if max > 0 && len(h.seen) > max {
		tracer().Debugf("hopper: candidate cache exceeded %d entries, clearing", max)
		h.seen = map[string]bool{}
	}
}

// candidateKey hashes a candidate summary into a fixed-form dedup key.
func candidateKey(summary string) string {
	h, err := structhash.Hash(struct{ Summary string }{Summary: summary}, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	return h
}
