package forest

import "testing"

func buildNonterminal(t *testing.T) *Node {
	t.Helper()
	p := appendLeaves("ab", "a", "b")
	next, ok := p.Add(0, 2, &stubRule{name: "S"}, false)
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	return next.Roots()[0]
}

func TestNodeAccessorsOnNonterminal(t *testing.T) {
	s := buildNonterminal(t)
	if s.Height() != 1 {
		t.Errorf("expected height 1, got %d", s.Height())
	}
	if s.Size() != 3 {
		t.Errorf("expected size 3 (S + 2 leaves), got %d", s.Size())
	}
	if len(s.Leaves()) != 2 {
		t.Errorf("expected 2 leaves under S, got %d", len(s.Leaves()))
	}
	if s.Text() != "ab" {
		t.Errorf("expected text %q, got %q", "ab", s.Text())
	}
}

func TestNodeParentAndRoot(t *testing.T) {
	s := buildNonterminal(t)
	child := s.Children()[0]
	if child.Parent() == nil || child.Parent().Name() != "S" {
		t.Fatal("expected child's parent to be S")
	}
	if child.Root().Name() != "S" {
		t.Errorf("expected child's root to be S, got %s", child.Root().Name())
	}
	if child.Depth() != 1 {
		t.Errorf("expected child depth 1, got %d", child.Depth())
	}
	if s.Depth() != 0 {
		t.Errorf("expected root depth 0, got %d", s.Depth())
	}
}

func TestNodeSiblings(t *testing.T) {
	s := buildNonterminal(t)
	a, b := s.Children()[0], s.Children()[1]
	if !a.FirstChild() || a.LastChild() {
		t.Error("expected a to be first, not last")
	}
	if b.FirstChild() || !b.LastChild() {
		t.Error("expected b to be last, not first")
	}
	if a.Later() == nil || a.Later().Name() != b.Name() {
		t.Error("expected a's later sibling to be b")
	}
	if b.Prior() == nil || b.Prior().Name() != a.Name() {
		t.Error("expected b's prior sibling to be a")
	}
}

func TestPositionStableAcrossClone(t *testing.T) {
	p := appendLeaves("abc", "a", "b", "c")
	leafPos := p.Roots()[0].Position()
	next, ok := p.Add(1, 3, &stubRule{name: "S"}, false)
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	if next.Roots()[0].Position() != leafPos {
		t.Error("expected an untouched leaf's Position to survive a clone that reduces its siblings")
	}
}

func TestIgnorableLeafIsNotSignificant(t *testing.T) {
	p := NewEmpty(" ")
	p = p.AppendLeaf(LeafKind, &ignorableRule{stubRule{name: "_ws"}}, 0, 1)
	n := p.Roots()[0]
	if !n.Ignorable() || n.Significant() {
		t.Error("expected an ignorable leaf to be non-significant")
	}
}

type ignorableRule struct{ stubRule }

func (r *ignorableRule) IsIgnorable() bool { return true }
