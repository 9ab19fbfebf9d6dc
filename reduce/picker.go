package reduce

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/gconf"

	"github.com/canopy-parse/canopy/forest"
	"github.com/canopy-parse/canopy/grammar"
)

// Picker drives the reduction search: a sorted set of iterators keyed by
// (errors, length, insertion order) smallest first, feeding a shared
// Hopper.
type Picker struct {
	set    *treeset.Set
	hopper *Hopper
	nextID int
}

func iteratorKey(it *Iterator) (errors, length, seq int) {
	p := it.Parse()
	return p.IncorrectnessCount(), p.Length(), it.seq
}

func iteratorComparator(a, b interface{}) int {
	ae, al, aseq := iteratorKey(a.(*Iterator))
	be, bl, bseq := iteratorKey(b.(*Iterator))
	if c := utils.IntComparator(ae, be); c != 0 {
		return c
	}
	if c := utils.IntComparator(al, bl); c != 0 {
		return c
	}
	return utils.IntComparator(aseq, bseq)
}

// NewPicker creates an empty picker over hopper.
func NewPicker(hopper *Hopper) *Picker {
	return &Picker{set: treeset.NewWith(iteratorComparator), hopper: hopper}
}

// Seed inserts one iterator per tokenized parse, each starting its own
// search.
func (pk *Picker) Seed(g *grammar.Grammar, parses []*forest.Parse) {
	for _, p := range parses {
		pk.push(NewIterator(g, p, pk.nextID))
		pk.nextID++
	}
}

func (pk *Picker) push(it *Iterator) {
	pk.set.Add(it)
}

// Step pops the best iterator and advances the search by one reduction.
// Returns false once the picker has no more work.
func (pk *Picker) Step() bool {
	values := pk.set.Values()
	if len(values) == 0 {
		return false
	}
	it := values[0].(*Iterator)
	pk.set.Remove(it)

	if !pk.hopper.Continuable(it.Parse()) {
		pk.hopper.Admit(it.Parse())
		return true
	}

	next, ok := it.Next(pk.hopper)
	if !ok {
		if !it.ProducedChild() {
			pk.hopper.Admit(it.Parse())
		}
		return true
	}
	pk.push(it)
	pk.push(NewIterator(it.grammar, next, pk.nextID))
	pk.nextID++
	return true
}

// HasWork reports whether any iterator remains in the picker.
func (pk *Picker) HasWork() bool { return pk.set.Size() > 0 }

// Stuck reports whether the picker has exhausted its worklist without its
// hopper ever admitting a single parse. When
// gconf.GetBool("canopy.panic-on-stuck-picker") is set, it panics instead of
// returning — a debugging escape hatch for chasing down a misbehaving
// grammar, rather than leaving the caller silently holding an empty result.
func (pk *Picker) Stuck() bool {
	if pk.HasWork() || pk.hopper.Size() > 0 {
		return false
	}
	if gconf.GetBool("canopy.panic-on-stuck-picker") {
		panic("canopy: picker exhausted its worklist without admitting a single parse")
	}
	return true
}

// Run drives Step until the picker empties or the hopper reports satisfied.
func (pk *Picker) Run() {
	for pk.set.Size() > 0 && !pk.hopper.Satisfied() {
		if !pk.Step() {
			return
		}
	}
}
