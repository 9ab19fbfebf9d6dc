package forest

import (
	"strconv"
	"strings"
)

// summaryOf builds the canonical string form of a node: a leaf/trash/
// boundary node summarizes to "name:text" (text quoted so that delimiter
// characters in the captured text can never be mistaken for summary
// syntax), a nonterminal to "name[child1,child2,...]". Two nodes with equal
// summaries have equal structural shape: same rules at every node, same
// leaf text at every leaf.
func summaryOf(n *Node) string {
	if n.rec().kind != NonterminalKind {
		return n.Name() + ":" + strconv.Quote(n.Text())
	}
	children := n.Children()
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = summaryOf(c)
	}
	var b strings.Builder
	b.WriteString(n.Name())
	b.WriteByte('[')
	b.WriteString(strings.Join(parts, ","))
	b.WriteByte(']')
	return b.String()
}

// joinSummaries joins root summaries with ";".
func joinSummaries(parts []string) string {
	return strings.Join(parts, ";")
}

// CandidateSummary computes the summary a prospective reduction would
// produce before actually splicing: the parse's current summary with roots
// [i,j) replaced by a single placeholder summarizing the rule+children, all
// without allocating a new Parse. The reduce package's Hopper memoizes
// exactly this string to reject candidates it has already seen.
func CandidateSummary(p *Parse, i, j int, ruleName string) string {
	parts := make([]string, 0, len(p.roots)-(j-i)+1)
	for k := 0; k < i; k++ {
		parts = append(parts, summaryOf(&Node{parse: p, id: p.roots[k]}))
	}
	childParts := make([]string, 0, j-i)
	for k := i; k < j; k++ {
		childParts = append(childParts, summaryOf(&Node{parse: p, id: p.roots[k]}))
	}
	parts = append(parts, ruleName+"["+strings.Join(childParts, ",")+"]")
	for k := j; k < len(p.roots); k++ {
		parts = append(parts, summaryOf(&Node{parse: p, id: p.roots[k]}))
	}
	return joinSummaries(parts)
}
