package reduce

import (
	"testing"

	"github.com/canopy-parse/canopy/forest"
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
	if err := g.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return g
}

func numberParse(numbers ...string) *forest.Parse {
	p := forest.NewEmpty("")
	offset := 0
	for i, n := range numbers {
		if i > 0 {
			p = p.AppendLeaf(forest.LeafKind, &stubRule{name: "+"}, offset, offset+1)
			offset++
		}
		p = p.AppendLeaf(forest.LeafKind, &stubRule{name: "number"}, offset, offset+len(n))
		offset += len(n)
	}
	return p
}

func TestIteratorProducesReductionForSingleNumber(t *testing.T) {
	g := sumGrammar(t)
	p := numberParse("7")
	h := NewHopper(0, nil)
	it := NewIterator(g, p, 0)
	next, ok := it.Next(h)
	if !ok {
		t.Fatal("expected the iterator to find the Sum->number reduction")
	}
	if next.Roots()[0].Name() != "Sum" {
		t.Errorf("expected a Sum root, got %s", next.Roots()[0].Name())
	}
	if !it.ProducedChild() {
		t.Error("expected ProducedChild to report true after a successful reduction")
	}
}

func TestIteratorExhaustsWithoutMatch(t *testing.T) {
	g := sumGrammar(t)
	p := forest.NewEmpty("")
	p = p.AppendLeaf(forest.LeafKind, &stubRule{name: "unrelated"}, 0, 1)
	h := NewHopper(0, nil)
	it := NewIterator(g, p, 0)
	if _, ok := it.Next(h); ok {
		t.Error("expected no reduction to apply to an unrelated leaf")
	}
	if it.ProducedChild() {
		t.Error("expected ProducedChild to remain false")
	}
}

func TestPickerDrivesSumToCompletion(t *testing.T) {
	g := sumGrammar(t)
	p := numberParse("1", "2", "3")
	h := NewHopper(1, DefaultFilters)
	pk := NewPicker(h)
	pk.Seed(g, []*forest.Parse{p})
	pk.Run()

	results := h.Results()
	if len(results) == 0 {
		t.Fatal("expected at least one completed parse")
	}
	best := results[0]
	if best.Length() != 1 || best.Roots()[0].Name() != "Sum" {
		t.Errorf("expected a single Sum root covering the whole input, got length=%d name=%s", best.Length(), best.Roots()[0].Name())
	}
}
