package forest

import "fmt"

// Parse is an ordered forest of root nodes covering a prefix of the input
// text. Parses are immutable after construction; Add always returns a new
// Parse, sharing untouched arena entries with the receiver.
type Parse struct {
	text  string
	arena []nodeRecord
	roots []NodeID

	length             int
	size               int
	incorrectnessCount int
	pendingCount       int
	summary            string
}

// NewEmpty creates an empty parse over text, with no roots. Tokenizers
// extend it leaf by leaf; the reduction search extends it nonterminal by
// nonterminal.
func NewEmpty(text string) *Parse {
	return &Parse{text: text}
}

// Text is the input string this parse covers (or a prefix of it).
func (p *Parse) Text() string { return p.text }

// Roots returns the parse's root nodes, left to right.
func (p *Parse) Roots() []*Node {
	out := make([]*Node, len(p.roots))
	for i, id := range p.roots {
		out[i] = &Node{parse: p, id: id}
	}
	return out
}

// Length is the number of root nodes.
func (p *Parse) Length() int { return p.length }

// Size is the total node count across all roots' subtrees.
func (p *Parse) Size() int { return p.size }

// IncorrectnessCount is the number of roots with a failed test somewhere
// on their spine-to-root.
func (p *Parse) IncorrectnessCount() int { return p.incorrectnessCount }

// PendingCount is the number of roots still carrying pending structural
// tests.
func (p *Parse) PendingCount() int { return p.pendingCount }

// Summary is the canonical string form of this parse.
func (p *Parse) Summary() string {
	if p.summary == "" && len(p.roots) == 0 {
		return ""
	}
	return p.summary
}

// Errors reports whether any root is a trash node or carries a failed test.
func (p *Parse) Errors() bool {
	if p.incorrectnessCount > 0 {
		return true
	}
	for _, id := range p.roots {
		if p.arena[id].kind == TrashKind {
			return true
		}
	}
	return false
}

// Success is the complement of Errors, also requiring no pending tests.
func (p *Parse) Success() bool {
	return !p.Errors() && p.pendingCount == 0
}

// Failure is the complement of Success.
func (p *Parse) Failure() bool {
	return !p.Success()
}

// Nodes returns every node of the parse in document order (pre-order over
// the root forest).
func (p *Parse) Nodes() []*Node {
	var out []*Node
	for _, r := range p.Roots() {
		out = append(out, r.Subtree()...)
	}
	return out
}

// FindSpan returns every root-level node whose [start,end) exactly matches
// the given interval, a structural query complementing Find.
func (p *Parse) FindSpan(start, end int) []*Node {
	var out []*Node
	for _, r := range p.Roots() {
		if r.Start() == start && r.End() == end {
			out = append(out, r)
		}
	}
	return out
}

// clone returns a Parse with its own arena and root slice, sharing
// attribute maps and child slices with the receiver for every entry that
// is not about to be mutated. Callers mutate only entries named in
// touched.
func (p *Parse) clone(touched map[NodeID]bool) *Parse {
	np := &Parse{
		text:  p.text,
		arena: make([]nodeRecord, len(p.arena)),
		roots: append([]NodeID(nil), p.roots...),
	}
	copy(np.arena, p.arena)
	for id := range touched {
		np.arena[id] = p.arena[id].clone()
	}
	return np
}

// AppendLeaf extends the parse with one leaf/trash/boundary node at the
// end of the root list. Used by the tokenizer; never fails.
func (p *Parse) AppendLeaf(kind Kind, rule RuleRef, start, end int) *Parse {
	np := p.clone(nil)
	id := NodeID(len(np.arena))
	np.arena = append(np.arena, nodeRecord{
		kind:       kind,
		rule:       rule,
		start:      start,
		end:        end,
		parent:     None,
		attributes: map[string]interface{}{},
	})
	np.roots = append(np.roots, id)
	runNodeTests(np, id, rule.NodeTests())
	runProcessor(np, id)
	np.recompute()
	return np
}

// Add splices roots[i:j) into a single new nonterminal built from rule,
// running node tests and migrating pending structural tests. loopCheck
// enables the unary-spine rejection. Returns (nil, false) if the loop check
// rejects the reduction; Add never fails for any other reason (precondition
// and dedup checks are the caller's responsibility, performed by the
// reduction search before it calls Add).
func (p *Parse) Add(i, j int, rule RuleRef, loopCheck bool) (*Parse, bool) {
	childIDs := append([]NodeID(nil), p.roots[i:j]...)
	touched := make(map[NodeID]bool, len(childIDs))
	for _, id := range childIDs {
		touched[id] = true
	}
	np := p.clone(touched)

	newID := NodeID(len(np.arena))
	np.arena = append(np.arena, nodeRecord{
		kind:       NonterminalKind,
		rule:       rule,
		start:      np.arena[childIDs[0]].start,
		end:        np.arena[childIDs[len(childIDs)-1]].end,
		children:   childIDs,
		parent:     None,
		attributes: map[string]interface{}{},
	})
	for _, id := range childIDs {
		np.arena[id].parent = newID
	}

	newNode := &Node{parse: np, id: newID}
	runNodeTests(np, newID, rule.NodeTests())
	migratePending(np, newID, childIDs)
	for _, t := range rule.AncestorTests() {
		np.arena[newID].pending = append(np.arena[newID].pending, pendingEntry{test: t, origin: newNode.Position()})
	}
	runProcessor(np, newID)

	if loopCheck && unarySpineRepeats(np, newID) {
		return nil, false
	}

	np.roots = append(append(append([]NodeID(nil), p.roots[:i]...), newID), p.roots[j:]...)
	np.recompute()
	return np, true
}

func runNodeTests(p *Parse, id NodeID, tests []NodeTest) {
	if len(tests) == 0 {
		return
	}
	n := &Node{parse: p, id: id}
	rec := &p.arena[id]
	for _, test := range tests {
		v := test(n)
		switch v.Outcome {
		case Fail:
			rec.failedTest = true
			rec.failures = append(rec.failures, append([]interface{}{}, v.Extra...))
			return
		case Pass:
			rec.satisfied = append(rec.satisfied, append([]interface{}{}, v.Extra...))
		case Ignore:
			// silent
		}
	}
}

// processable is satisfied by any grammar.Rule or grammar.Leaf carrying a
// side-effecting post-test hook.
type processable interface {
	Processor() Processor
}

// runProcessor invokes id's processor, if it has one, but only when id has
// not already failed a node test.
func runProcessor(p *Parse, id NodeID) {
	rec := &p.arena[id]
	if rec.failedTest {
		return
	}
	pr, ok := rec.rule.(processable)
	if !ok {
		return
	}
	if proc := pr.Processor(); proc != nil {
		proc(&Node{parse: p, id: id})
	}
}

// migratePending runs each child's pending ancestor tests against the
// freshly built parent, recording the outcome on both, or re-queuing the
// test on the parent when still undecidable.
func migratePending(p *Parse, parentID NodeID, childIDs []NodeID) {
	parent := &Node{parse: p, id: parentID}
	for _, cid := range childIDs {
		child := &Node{parse: p, id: cid}
		crec := &p.arena[cid]
		remaining := crec.pending[:0]
		for _, pe := range crec.pending {
			verdict, decided := pe.test(parent, child)
			if !decided {
				remaining = append(remaining, pe)
				continue
			}
			switch verdict.Outcome {
			case Pass:
				prec := &p.arena[parentID]
				prec.satisfiedAncestor = append(prec.satisfiedAncestor, append([]interface{}{child.Position()}, verdict.Extra...))
				crec.satisfiedDescendant = append(crec.satisfiedDescendant, append([]interface{}{parent.Position()}, verdict.Extra...))
			case Fail:
				prec := &p.arena[parentID]
				prec.failedAncestor = append(prec.failedAncestor, append([]interface{}{child.Position()}, verdict.Extra...))
				crec.failedDescendant = append(crec.failedDescendant, append([]interface{}{parent.Position()}, verdict.Extra...))
				prec.failedTest = true
				crec.failedTest = true
			case Ignore:
				// silent, test consumed without effect
			}
		}
		crec.pending = remaining
		// re-propagate any tests still pending up to the new parent.
		if len(remaining) > 0 {
			parentRec := &p.arena[parentID]
			parentRec.pending = append(parentRec.pending, remaining...)
		}
	}
	_ = parent
}

// recompute refreshes the parse-level memoized fields from scratch. This is
// a straightforward, not spine-incremental, implementation: correctness
// first, full recompute is O(parse size) which is acceptable here.
func (p *Parse) recompute() {
	p.length = len(p.roots)
	size := 0
	incorrect := 0
	pending := 0
	parts := make([]string, len(p.roots))
	for i, id := range p.roots {
		n := &Node{parse: p, id: id}
		size += n.Size()
		if nodeOrSpineFailed(p, id) {
			incorrect++
		}
		if hasPendingInSubtree(n) {
			pending++
		}
		parts[i] = summaryOf(n)
	}
	p.size = size
	p.incorrectnessCount = incorrect
	p.pendingCount = pending
	p.summary = joinSummaries(parts)
}

func nodeOrSpineFailed(p *Parse, id NodeID) bool {
	return p.arena[id].failedTest
}

func hasPendingInSubtree(n *Node) bool {
	if n.HasPendingTests() {
		return true
	}
	for _, c := range n.Children() {
		if hasPendingInSubtree(c) {
			return true
		}
	}
	return false
}

func (p *Parse) String() string {
	return fmt.Sprintf("Parse{len=%d size=%d summary=%q}", p.length, p.size, p.summary)
}
