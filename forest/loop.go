package forest

// unarySpineRepeats walks the unary chain starting at id (a node whose
// every ancestor-to-self link has exactly one child) and reports whether
// any two nodes on that chain share a name.
func unarySpineRepeats(p *Parse, id NodeID) bool {
	seen := map[string]bool{}
	cur := id
	for {
		rec := &p.arena[cur]
		name := ""
		if rec.rule != nil {
			name = rec.rule.RuleName()
		}
		if seen[name] {
			return true
		}
		seen[name] = true
		if rec.kind != NonterminalKind || len(rec.children) != 1 {
			return false
		}
		cur = rec.children[0]
	}
}
