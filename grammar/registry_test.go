package grammar

import (
	"testing"

	"github.com/canopy-parse/canopy/forest"
)

func TestResolveNamedNodeTest(t *testing.T) {
	g := New("g")
	g.Registry.RegisterNodeTest("always-pass", func(n *forest.Node) forest.Verdict {
		return forest.Verdict{Outcome: forest.Pass}
	})
	if err := g.Leaf("x", "x"); err != nil {
		t.Fatalf("x: %v", err)
	}
	if err := g.Rule("S", "x", WithNodeTestNames("always-pass")); err != nil {
		t.Fatalf("S: %v", err)
	}
	if err := g.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(g.LookupRule("S").NodeTests()) != 1 {
		t.Error("expected the named node test to resolve onto rule S")
	}
}

func TestUndefinedNamedTestRejectedAtCommit(t *testing.T) {
	g := New("g")
	if err := g.Leaf("x", "x"); err != nil {
		t.Fatalf("x: %v", err)
	}
	if err := g.Rule("S", "x", WithNodeTestNames("does-not-exist")); err != nil {
		t.Fatalf("S: %v", err)
	}
	if err := g.Commit(); err == nil {
		t.Error("expected Commit to reject a reference to an unregistered node test")
	}
}
