package grammar

// runLoopDetection chases the Branch edges contributed by every
// unary-candidate rule (sum of atom minimums < 2) and sets
// doUnaryBranchCheck if any symbol can reach itself. When the flag is
// unset, forest.Parse.Add can skip the per-node unary-spine-repeat check
// entirely.
func (g *Grammar) runLoopDetection() {
	edges := map[string][]string{}
	for _, name := range g.ruleOrder {
		for _, b := range g.rules[name].Branches() {
			edges[b.From] = append(edges[b.From], b.To)
		}
	}
	for start := range edges {
		if reaches(edges, start, start) {
			g.doUnaryBranchCheck = true
			return
		}
	}
}

// reaches reports whether from can reach target via one or more edges,
// using a visited set to stay terminating on cyclic graphs.
func reaches(edges map[string][]string, from, target string) bool {
	visited := map[string]bool{}
	var walk func(n string) bool
	walk = func(n string) bool {
		for _, next := range edges[n] {
			if next == target {
				return true
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			if walk(next) {
				return true
			}
		}
		return false
	}
	return walk(from)
}
