package lex

import (
	"testing"

	"github.com/canopy-parse/canopy/grammar"
)

func commit(t *testing.T, g *grammar.Grammar) {
	t.Helper()
	if err := g.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestTokenizeSingleUnambiguousLeaf(t *testing.T) {
	g := grammar.New("g")
	if err := g.Leaf("word", `[a-z]+`); err != nil {
		t.Fatalf("declaring word: %v", err)
	}
	commit(t, g)

	results, err := Tokenize(g, "hello")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 maximal parse, got %d", len(results))
	}
	roots := results[0].Roots()
	if len(roots) != 1 || roots[0].Name() != "word" || roots[0].Text() != "hello" {
		t.Errorf("expected a single word leaf covering \"hello\", got %v", roots)
	}
}

func TestTokenizeAmbiguousOverlap(t *testing.T) {
	g := grammar.New("g")
	if err := g.Leaf("ab", `ab`); err != nil {
		t.Fatalf("declaring ab: %v", err)
	}
	if err := g.Leaf("a", `a`); err != nil {
		t.Fatalf("declaring a: %v", err)
	}
	if err := g.Leaf("b", `b`); err != nil {
		t.Fatalf("declaring b: %v", err)
	}
	g.KeepWhitespace()
	commit(t, g)

	results, err := Tokenize(g, "ab")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 maximal parses (ab | a+b), got %d", len(results))
	}
}

func TestTokenizeTrashOnUnmatchedInput(t *testing.T) {
	g := grammar.New("g")
	if err := g.Leaf("word", `[a-z]+`); err != nil {
		t.Fatalf("declaring word: %v", err)
	}
	g.KeepWhitespace()
	commit(t, g)

	results, err := Tokenize(g, "a#b")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 maximal parse, got %d", len(results))
	}
	roots := results[0].Roots()
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots (a, trash, b), got %d", len(roots))
	}
	if !roots[1].IsTrash() || roots[1].Text() != "#" {
		t.Errorf("expected middle root to be trash covering %q, got kind=%v text=%q", "#", roots[1].Kind(), roots[1].Text())
	}
}

func TestTokenizeWhitespaceIsIgnorable(t *testing.T) {
	g := grammar.New("g")
	if err := g.Leaf("word", `[a-z]+`); err != nil {
		t.Fatalf("declaring word: %v", err)
	}
	commit(t, g)

	results, err := Tokenize(g, "a b")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(results) != 1 {
		t.Fatal("expected 1 maximal parse")
	}
	roots := results[0].Roots()
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots (word, ws, word), got %d", len(roots))
	}
	if !roots[1].Ignorable() {
		t.Error("expected the whitespace root to be ignorable")
	}
}

func TestTokenizeBoundarySplits(t *testing.T) {
	g := grammar.New("g")
	if err := g.Leaf("word", `[a-z]+`); err != nil {
		t.Fatalf("declaring word: %v", err)
	}
	if err := g.Boundary("semi", `;`); err != nil {
		t.Fatalf("declaring semi: %v", err)
	}
	g.KeepWhitespace()
	commit(t, g)

	results, err := Tokenize(g, "a;b")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(results) != 1 {
		t.Fatal("expected 1 maximal parse")
	}
	roots := results[0].Roots()
	if len(roots) != 3 || !roots[1].IsBoundary() {
		t.Fatalf("expected 3 roots with a boundary in the middle, got %v", roots)
	}
}
