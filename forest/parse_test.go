package forest

import "testing"

// stubRule is a minimal forest.RuleRef for tests that don't need package
// grammar.
type stubRule struct {
	name          string
	nodeTests     []NodeTest
	ancestorTests []AncestorTest
}

func (s *stubRule) RuleName() string             { return s.name }
func (s *stubRule) NodeTests() []NodeTest        { return s.nodeTests }
func (s *stubRule) AncestorTests() []AncestorTest { return s.ancestorTests }

func appendLeaves(text string, names ...string) *Parse {
	p := NewEmpty(text)
	offset := 0
	for _, n := range names {
		end := offset + len(n)
		p = p.AppendLeaf(LeafKind, &stubRule{name: n}, offset, end)
		offset = end
	}
	return p
}

func TestAppendLeafAccumulatesRoots(t *testing.T) {
	p := appendLeaves("ab", "a", "b")
	if p.Length() != 2 {
		t.Fatalf("expected 2 roots, got %d", p.Length())
	}
	if p.Size() != 2 {
		t.Fatalf("expected size 2 for two leaves, got %d", p.Size())
	}
}

func TestAddReducesRootsIntoOneNonterminal(t *testing.T) {
	p := appendLeaves("ab", "a", "b")
	next, ok := p.Add(0, 2, &stubRule{name: "S"}, false)
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	if next.Length() != 1 {
		t.Fatalf("expected 1 root after reduction, got %d", next.Length())
	}
	root := next.Roots()[0]
	if root.Name() != "S" || len(root.Children()) != 2 {
		t.Fatalf("expected S with 2 children, got %s with %d children", root.Name(), len(root.Children()))
	}
	if root.Start() != 0 || root.End() != 2 {
		t.Errorf("expected root span [0,2), got [%d,%d)", root.Start(), root.End())
	}
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	p := appendLeaves("ab", "a", "b")
	_, ok := p.Add(0, 2, &stubRule{name: "S"}, false)
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	if p.Length() != 2 {
		t.Errorf("expected original parse to be unchanged, got length %d", p.Length())
	}
}

func TestNodeTestFailureMarksNodeFailed(t *testing.T) {
	p := appendLeaves("ab", "a", "b")
	rule := &stubRule{name: "S", nodeTests: []NodeTest{
		func(n *Node) Verdict { return Verdict{Outcome: Fail} },
	}}
	next, ok := p.Add(0, 2, rule, false)
	if !ok {
		t.Fatal("expected Add to succeed even when a node test fails")
	}
	if !next.Errors() {
		t.Error("expected a failed node test to count toward IncorrectnessCount")
	}
	if next.Roots()[0].Failed() != true {
		t.Error("expected the reduced node itself to report Failed()")
	}
}

func TestUnarySpineLoopRejected(t *testing.T) {
	p := appendLeaves("a", "a")
	next, ok := p.Add(0, 1, &stubRule{name: "X"}, true)
	if !ok {
		t.Fatal("expected first unary reduction to succeed")
	}
	if _, ok := next.Add(0, 1, &stubRule{name: "X"}, true); ok {
		t.Error("expected a second X->X unary reduction to be rejected by loop check")
	}
}

func TestUnarySpineLoopAllowedWithoutCheck(t *testing.T) {
	p := appendLeaves("a", "a")
	next, ok := p.Add(0, 1, &stubRule{name: "X"}, false)
	if !ok {
		t.Fatal("expected first unary reduction to succeed")
	}
	if _, ok := next.Add(0, 1, &stubRule{name: "X"}, false); !ok {
		t.Error("expected the loop to be permitted when loopCheck is false")
	}
}

func TestPendingAncestorTestMigratesOnReparent(t *testing.T) {
	calls := 0
	test := AncestorTest(func(ancestor, descendant *Node) (Verdict, bool) {
		calls++
		return Verdict{Outcome: Pass}, true
	})
	p := appendLeaves("ab", "a", "b")
	leafRule := &stubRule{name: "a", ancestorTests: []AncestorTest{test}}
	p2 := p.clone(nil)
	p2.arena[p2.roots[0]].rule = leafRule
	p2.arena[p2.roots[0]].pending = []pendingEntry{{test: test}}

	next, ok := p2.Add(0, 2, &stubRule{name: "S"}, false)
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	if calls != 1 {
		t.Fatalf("expected the pending ancestor test to run once, got %d", calls)
	}
	child := next.Roots()[0].Children()[0]
	if child.HasPendingTests() {
		t.Error("expected the pending test to be resolved, not remain pending")
	}
}

func TestSummaryInjectivity(t *testing.T) {
	a := appendLeaves("ab", "a", "b")
	b := appendLeaves("ba", "b", "a")
	if a.Summary() == b.Summary() {
		t.Errorf("expected distinct root orderings to produce distinct summaries, both were %q", a.Summary())
	}
	c := appendLeaves("ab", "a", "b")
	if a.Summary() != c.Summary() {
		t.Errorf("expected identical structure to produce identical summaries, got %q vs %q", a.Summary(), c.Summary())
	}
}
