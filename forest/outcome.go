package forest

// Kind discriminates the four node shapes a Node can take.
type Kind uint8

const (
	// LeafKind is a terminal span matched by a leaf pattern.
	LeafKind Kind = iota
	// NonterminalKind is a reduction over a contiguous slice of roots.
	NonterminalKind
	// TrashKind boxes a run of input characters no leaf rule matched.
	TrashKind
	// BoundaryKind is a leaf declared as a segment boundary.
	BoundaryKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case NonterminalKind:
		return "nonterminal"
	case TrashKind:
		return "trash"
	case BoundaryKind:
		return "boundary"
	default:
		return "unknown"
	}
}

// Traversible reports whether a node of this kind may become the child of
// another node: boundary and trash nodes never are.
func (k Kind) Traversible() bool {
	return k == LeafKind || k == NonterminalKind
}

// Outcome is the three-valued result of a predicate evaluation.
type Outcome uint8

const (
	// Ignore means the predicate declined to render a verdict; silent.
	Ignore Outcome = iota
	// Pass means the predicate was satisfied.
	Pass
	// Fail means the predicate was violated.
	Fail
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return "ignore"
	}
}

// Verdict is the full return value of a test: an Outcome plus whatever
// extra diagnostic payload the test wants attached to attributes[:failures]
// or attributes[:satisfied].
type Verdict struct {
	Outcome Outcome
	Extra   []interface{}
}

// Pending is the verdict a structural test returns alongside decided=false
// when it cannot yet decide. Whether the test stays on the pending list is
// determined by that bool alone: Pending returned with decided=true is
// consumed like Ignore.
var Pending = Verdict{Outcome: Ignore, Extra: nil}

// RuleRef is the minimal interface a grammar rule or leaf must satisfy to be
// attached to a Node. It is declared here, not in package grammar, so that
// forest never has to import grammar: grammar.Rule and grammar.Leaf both
// implement it.
type RuleRef interface {
	// RuleName is the symbol this rule or leaf produces.
	RuleName() string
	// NodeTests are run, in order, on a just-built node.
	NodeTests() []NodeTest
	// AncestorTests are attached to a just-built node's pending list,
	// to be evaluated against its future parent.
	AncestorTests() []AncestorTest
}

// NodeTest inspects a just-built node.
type NodeTest func(n *Node) Verdict

// AncestorTest inspects a prospective (ancestor, descendant) pairing.
// Returns decided=false (conventionally with Pending) when the test cannot
// yet decide; the test then remains pending and moves up to the new parent.
type AncestorTest func(ancestor, descendant *Node) (Verdict, bool)

// Precondition is evaluated before a node is built.
type Precondition func(name string, start, end int, text string, children []*Node) Outcome

// Processor runs only on nodes that passed all of their tests;
// side-effect only, may mutate Node.Attributes.
type Processor func(n *Node)
