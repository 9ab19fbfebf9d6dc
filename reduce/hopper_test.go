package reduce

import (
	"testing"

	"github.com/canopy-parse/canopy/forest"
)

type stubRule struct {
	name          string
	preconditions []forest.Precondition
}

func (s *stubRule) RuleName() string                     { return s.name }
func (s *stubRule) NodeTests() []forest.NodeTest          { return nil }
func (s *stubRule) AncestorTests() []forest.AncestorTest  { return nil }
func (s *stubRule) Preconditions() []forest.Precondition  { return s.preconditions }

func leaves(text string, names ...string) *forest.Parse {
	p := forest.NewEmpty(text)
	offset := 0
	for _, n := range names {
		end := offset + len(n)
		p = p.AppendLeaf(forest.LeafKind, &stubRule{name: n}, offset, end)
		offset = end
	}
	return p
}

func TestHopperAdmitsFirstUnconditionally(t *testing.T) {
	h := NewHopper(1, DefaultFilters)
	p := leaves("ab", "a", "b")
	if !h.Admit(p) {
		t.Fatal("expected the first parse admitted to a fresh hopper to succeed")
	}
	if h.Size() != 1 {
		t.Fatalf("expected size 1, got %d", h.Size())
	}
}

func TestHopperRejectsDominated(t *testing.T) {
	h := NewHopper(1, DefaultFilters)
	good := leaves("ab", "a", "b")
	good, ok := good.Add(0, 2, &stubRule{name: "S"}, false)
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	if !h.Admit(good) {
		t.Fatal("expected the fully reduced parse to be admitted")
	}

	worse := leaves("ab", "a", "b") // still 2 roots, strictly less complete
	if h.Admit(worse) {
		t.Error("expected a less-complete parse to be rejected once a fully reduced one sets the threshold")
	}
}

func TestHopperTiesAreBothKept(t *testing.T) {
	h := NewHopper(2, DefaultFilters)
	a := leaves("ab", "a", "b")
	a, _ = a.Add(0, 2, &stubRule{name: "S"}, false)
	b := leaves("ba", "b", "a")
	b, _ = b.Add(0, 2, &stubRule{name: "S"}, false)

	if !h.Admit(a) || !h.Admit(b) {
		t.Fatal("expected two equally-ranked parses to both be admitted")
	}
	if h.Size() != 2 {
		t.Errorf("expected 2 tied results, got %d", h.Size())
	}
}

func TestHopperVetRejectsPreconditionFailure(t *testing.T) {
	h := NewHopper(1, DefaultFilters)
	p := leaves("ab", "a", "b")
	rule := &stubRule{name: "S", preconditions: []forest.Precondition{
		func(name string, start, end int, text string, children []*forest.Node) forest.Outcome {
			return forest.Fail
		},
	}}
	if _, ok := h.vet(p, 0, 2, rule, false); ok {
		t.Error("expected a failing precondition to reject the candidate before Add runs")
	}
}

func TestHopperVetDedupsBySummary(t *testing.T) {
	h := NewHopper(1, DefaultFilters)
	p := leaves("ab", "a", "b")
	rule := &stubRule{name: "S"}
	if _, ok := h.vet(p, 0, 2, rule, false); !ok {
		t.Fatal("expected first candidate to be vetted successfully")
	}
	if _, ok := h.vet(p, 0, 2, rule, false); ok {
		t.Error("expected an identical candidate to be rejected as already seen")
	}
}

func TestHopperSatisfiedRequiresCountAndCleanThresholds(t *testing.T) {
	h := NewHopper(1, DefaultFilters)
	if h.Satisfied() {
		t.Error("expected an empty hopper not to be satisfied")
	}
	p := leaves("ab", "a", "b")
	p, _ = p.Add(0, 2, &stubRule{name: "S"}, false)
	h.Admit(p)
	if !h.Satisfied() {
		t.Error("expected a hopper holding n clean parses to be satisfied")
	}
}
