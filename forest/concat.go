package forest

// Concat merges two parses over the same underlying text into one, placing
// b's roots after a's. Used to compose per-segment results back into whole
// parses once every segment has been searched independently. Unlike Add
// and AppendLeaf, which clone only touched entries, Concat rebuilds the
// whole arena once, which is acceptable since it runs only at final
// composition, not during the search itself.
func Concat(a, b *Parse) *Parse {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	arena := make([]nodeRecord, 0, len(a.arena)+len(b.arena))
	arena = append(arena, a.arena...)
	offset := NodeID(len(a.arena))
	for _, rec := range b.arena {
		nr := rec.clone()
		if nr.parent != None {
			nr.parent += offset
		}
		for i := range nr.children {
			nr.children[i] += offset
		}
		arena = append(arena, nr)
	}
	roots := append([]NodeID(nil), a.roots...)
	for _, r := range b.roots {
		roots = append(roots, r+offset)
	}
	np := &Parse{text: a.text, arena: arena, roots: roots}
	np.recompute()
	return np
}
