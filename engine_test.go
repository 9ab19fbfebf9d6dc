package canopy

import (
	"testing"

	"github.com/canopy-parse/canopy/grammar"
)

func sumGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New("sum")
	if err := g.Leaf("number", `\d+`); err != nil {
		t.Fatalf("number: %v", err)
	}
	if err := g.Rule("Sum", "Sum '+' number | number"); err != nil {
		t.Fatalf("Sum: %v", err)
	}
	return g
}

func TestEngineFirstReducesWholeInput(t *testing.T) {
	g := sumGrammar(t)
	e, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	parse, err := e.First("1 + 2 + 3")
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if parse.Length() != 1 || parse.Roots()[0].Name() != "Sum" {
		t.Fatalf("expected a single Sum root, got length=%d name=%s", parse.Length(), parse.Roots()[0].Name())
	}
	if parse.Roots()[0].Text() != "1 + 2 + 3" {
		t.Errorf("expected the root to cover the whole input, got %q", parse.Roots()[0].Text())
	}
}

func TestEngineParseReturnsUpToN(t *testing.T) {
	g := sumGrammar(t)
	e, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	results, err := e.Parse("1 + 2", 3)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if len(results) > 3 {
		t.Errorf("expected at most 3 results, got %d", len(results))
	}
}

func TestEngineSegmentsAcrossBoundary(t *testing.T) {
	g := grammar.New("two-statements")
	if err := g.Leaf("word", `[a-z]+`); err != nil {
		t.Fatalf("word: %v", err)
	}
	if err := g.Boundary("semi", `;`); err != nil {
		t.Fatalf("semi: %v", err)
	}
	if err := g.Rule("Stmt", "word"); err != nil {
		t.Fatalf("Stmt: %v", err)
	}
	e, err := NewEngine(g)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	parse, err := e.First("abc;def")
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if parse.Length() != 3 {
		t.Fatalf("expected 3 roots (Stmt, semi, Stmt), got %d", parse.Length())
	}
	if parse.Roots()[0].Name() != "Stmt" || parse.Roots()[2].Name() != "Stmt" {
		t.Errorf("expected Stmt roots on either side of the boundary, got %s and %s",
			parse.Roots()[0].Name(), parse.Roots()[2].Name())
	}
}
