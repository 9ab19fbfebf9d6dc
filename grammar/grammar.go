package grammar

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/canopy-parse/canopy/forest"
)

// declSpec accumulates the test/precondition/processor options passed to
// Rule/Leaf/Ignore/Boundary, some resolved immediately (direct funcs), some
// deferred to Commit (named references into the Registry).
type declSpec struct {
	nodeTests         []forest.NodeTest
	nodeTestNames     []string
	ancestorTests     []forest.AncestorTest
	ancestorTestNames []string
	preconditions     []forest.Precondition
	preconditionNames []string
	processor         forest.Processor
	processorName     string
}

// Option configures a rule or leaf declaration.
type Option func(*declSpec)

// WithNodeTests attaches node tests directly.
func WithNodeTests(tests ...forest.NodeTest) Option {
	return func(s *declSpec) { s.nodeTests = append(s.nodeTests, tests...) }
}

// WithNodeTestNames attaches node tests by name, resolved against the
// Grammar's Registry at Commit.
func WithNodeTestNames(names ...string) Option {
	return func(s *declSpec) { s.nodeTestNames = append(s.nodeTestNames, names...) }
}

// WithAncestorTests attaches structural tests directly.
func WithAncestorTests(tests ...forest.AncestorTest) Option {
	return func(s *declSpec) { s.ancestorTests = append(s.ancestorTests, tests...) }
}

// WithAncestorTestNames attaches structural tests by name.
func WithAncestorTestNames(names ...string) Option {
	return func(s *declSpec) { s.ancestorTestNames = append(s.ancestorTestNames, names...) }
}

// WithPreconditions attaches preconditions directly.
func WithPreconditions(tests ...forest.Precondition) Option {
	return func(s *declSpec) { s.preconditions = append(s.preconditions, tests...) }
}

// WithPreconditionNames attaches preconditions by name.
func WithPreconditionNames(names ...string) Option {
	return func(s *declSpec) { s.preconditionNames = append(s.preconditionNames, names...) }
}

// WithProcessor attaches a processor directly.
func WithProcessor(p forest.Processor) Option {
	return func(s *declSpec) { s.processor = p }
}

// WithProcessorName attaches a processor by name.
func WithProcessorName(name string) Option {
	return func(s *declSpec) { s.processorName = name }
}

func applyOpts(opts []Option) *declSpec {
	s := &declSpec{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Grammar is the compiled collection of rules, leaves, starter index,
// loop-check flag and predicate registry.
type Grammar struct {
	Name     string
	Registry *Registry

	rules      map[string]*Rule
	ruleOrder  []string
	ruleSpecs  map[string]*declSpec
	leaves     map[string]*Leaf
	leafOrder  []string
	leafSpecs  map[string]*declSpec

	committed          bool
	keepWhitespace     bool
	wsLeafName         string
	starters           map[string][]*Atom
	doUnaryBranchCheck bool
}

// New creates an empty, uncommitted grammar.
func New(name string) *Grammar {
	return &Grammar{
		Name:      name,
		Registry:  NewRegistry(),
		rules:     map[string]*Rule{},
		ruleSpecs: map[string]*declSpec{},
		leaves:    map[string]*Leaf{},
		leafSpecs: map[string]*declSpec{},
	}
}

// KeepWhitespace suppresses the automatic injection of an ignorable
// whitespace leaf.
func (g *Grammar) KeepWhitespace() {
	g.keepWhitespace = true
}

func (g *Grammar) frozenErr() error {
	if g.committed {
		return &FrozenAfterParseError{Grammar: g.Name}
	}
	return nil
}

// Rule declares a nonterminal. Duplicate declarations with the same name
// and body are idempotent.
func (g *Grammar) Rule(name, body string, opts ...Option) error {
	if err := g.frozenErr(); err != nil {
		return err
	}
	if existing, ok := g.rules[name]; ok {
		if existing.Body == body {
			return nil
		}
		return &MalformedAtomError{Rule: name, Atom: "conflicting redeclaration of " + name}
	}
	subrules, atoms, err := parseBody(name, body)
	if err != nil {
		return err
	}
	r := &Rule{Name: name, Body: body, Subrules: subrules, Atoms: atoms}
	g.rules[name] = r
	g.ruleOrder = append(g.ruleOrder, name)
	g.ruleSpecs[name] = applyOpts(opts)
	return nil
}

func (g *Grammar) declareLeaf(name, pattern string, ignorable, boundary bool, opts ...Option) error {
	if err := g.frozenErr(); err != nil {
		return err
	}
	if existing, ok := g.leaves[name]; ok {
		if existing.Pattern != nil && existing.RawPattern == pattern &&
			existing.Ignorable == ignorable && existing.Boundary == boundary {
			return nil
		}
		return &MalformedAtomError{Rule: name, Atom: "conflicting redeclaration of " + name}
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return &MalformedAtomError{Rule: name, Atom: pattern}
	}
	l := &Leaf{Name: name, Pattern: re, RawPattern: pattern, Ignorable: ignorable, Boundary: boundary}
	g.leaves[name] = l
	g.leafOrder = append(g.leafOrder, name)
	g.leafSpecs[name] = applyOpts(opts)
	return nil
}

// Leaf declares a normal terminal.
func (g *Grammar) Leaf(name, pattern string, opts ...Option) error {
	return g.declareLeaf(name, pattern, false, false, opts...)
}

// Ignore declares a leaf that atom-matching skips over.
func (g *Grammar) Ignore(name, pattern string, opts ...Option) error {
	return g.declareLeaf(name, pattern, true, false, opts...)
}

// Boundary declares a leaf that splits the input into segments.
func (g *Grammar) Boundary(name, pattern string, opts ...Option) error {
	return g.declareLeaf(name, pattern, false, true, opts...)
}

// Rules returns the grammar's rules in declaration order. Only meaningful
// after Commit for literal-induced leaves' sake, but rule identity doesn't
// change at Commit time.
func (g *Grammar) Rules() []*Rule {
	out := make([]*Rule, len(g.ruleOrder))
	for i, n := range g.ruleOrder {
		out[i] = g.rules[n]
	}
	return out
}

// Leaves returns the grammar's leaves in declaration order (including
// induced literal leaves and the injected whitespace leaf, after Commit).
func (g *Grammar) Leaves() []*Leaf {
	out := make([]*Leaf, len(g.leafOrder))
	for i, n := range g.leafOrder {
		out[i] = g.leaves[n]
	}
	return out
}

// LookupRule returns a rule by name, or nil.
func (g *Grammar) LookupRule(name string) *Rule { return g.rules[name] }

// LookupLeaf returns a leaf by name, or nil.
func (g *Grammar) LookupLeaf(name string) *Leaf { return g.leaves[name] }

// Starters returns the starter atoms for symbol, sorted descending by
// max_consumption.
func (g *Grammar) Starters(symbol string) []*Atom {
	return g.starters[symbol]
}

// DoUnaryBranchCheck reports whether the loop detector found a unary cycle
// in this grammar.
func (g *Grammar) DoUnaryBranchCheck() bool { return g.doUnaryBranchCheck }

// TrashLeaf is the internal leaf (Pattern == nil) used to box unmatched
// input characters.
func (g *Grammar) TrashLeaf() *Leaf {
	return trashLeaf
}

var trashLeaf = &Leaf{Name: "_trash"}

// Commit freezes the grammar, running every commit-time check: symbol
// completeness, empty-consumption rejection, predicate-name resolution,
// literal-leaf induction, starter sorting and loop detection.
func (g *Grammar) Commit() error {
	if g.committed {
		return nil
	}
	if len(g.leaves) == 0 {
		return ErrNoLeaves
	}
	if !g.keepWhitespace {
		name := "_ws"
		for n := 2; ; n++ {
			if _, exists := g.leaves[name]; !exists {
				break
			}
			name = fmt.Sprintf("_ws%d", n)
		}
		if err := g.declareLeaf(name, `\s+`, true, false); err != nil {
			return err
		}
		g.wsLeafName = name
	}

	for _, name := range g.ruleOrder {
		r := g.rules[name]
		for _, lit := range r.Literals() {
			if _, exists := g.leaves[lit]; exists {
				continue
			}
			pattern := regexp.QuoteMeta(lit)
			if err := g.declareLeaf(lit, pattern, false, false); err != nil {
				return err
			}
		}
	}

	defined := map[string]bool{}
	for n := range g.rules {
		defined[n] = true
	}
	for n := range g.leaves {
		defined[n] = true
	}
	for _, name := range g.ruleOrder {
		r := g.rules[name]
		for _, sym := range r.Seeking() {
			if !defined[sym] {
				return &UndefinedSymbolError{Rule: name, Symbol: sym}
			}
		}
		if r.EmptyConsumption() {
			return &EmptyConsumptionError{Rule: name}
		}
		setParents(r)
	}

	if err := g.resolvePredicates(); err != nil {
		return err
	}

	g.starters = map[string][]*Atom{}
	for _, name := range g.ruleOrder {
		r := g.rules[name]
		for _, a := range r.Starters() {
			g.starters[a.Seeking] = append(g.starters[a.Seeking], a)
		}
	}
	for sym := range g.starters {
		bucket := g.starters[sym]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].maxConsumption() > bucket[j].maxConsumption()
		})
		g.starters[sym] = bucket
	}

	g.runLoopDetection()
	g.committed = true
	return nil
}

func setParents(r *Rule) {
	if r.IsDisjunction() {
		for _, sr := range r.Subrules {
			setParents(sr)
		}
		return
	}
	for a := r.Atoms; a != nil; a = a.Next {
		a.Parent = r
	}
}

func (g *Grammar) resolvePredicates() error {
	resolveRule := func(name string, r *Rule, spec *declSpec) error {
		r.nodeTests = append(r.nodeTests, spec.nodeTests...)
		for _, n := range spec.nodeTestNames {
			t, ok := g.Registry.resolveNodeTest(n)
			if !ok {
				return &UndefinedTestError{Kind: "test", Name: n}
			}
			r.nodeTests = append(r.nodeTests, t)
		}
		r.ancestorTests = append(r.ancestorTests, spec.ancestorTests...)
		for _, n := range spec.ancestorTestNames {
			t, ok := g.Registry.resolveAncestorTest(n)
			if !ok {
				return &UndefinedTestError{Kind: "test", Name: n}
			}
			r.ancestorTests = append(r.ancestorTests, t)
		}
		r.preconditions = append(r.preconditions, spec.preconditions...)
		for _, n := range spec.preconditionNames {
			t, ok := g.Registry.resolvePrecondition(n)
			if !ok {
				return &UndefinedTestError{Kind: "precondition", Name: n}
			}
			r.preconditions = append(r.preconditions, t)
		}
		if spec.processor != nil {
			r.processor = spec.processor
		}
		if spec.processorName != "" {
			t, ok := g.Registry.resolveProcessor(spec.processorName)
			if !ok {
				return &UndefinedTestError{Kind: "processor", Name: spec.processorName}
			}
			r.processor = t
		}
		return nil
	}
	for name, spec := range g.ruleSpecs {
		if err := resolveRule(name, g.rules[name], spec); err != nil {
			return err
		}
	}
	for name, spec := range g.leafSpecs {
		l := g.leaves[name]
		l.nodeTests = append(l.nodeTests, spec.nodeTests...)
		for _, n := range spec.nodeTestNames {
			t, ok := g.Registry.resolveNodeTest(n)
			if !ok {
				return &UndefinedTestError{Kind: "test", Name: n}
			}
			l.nodeTests = append(l.nodeTests, t)
		}
		l.ancestorTests = append(l.ancestorTests, spec.ancestorTests...)
		for _, n := range spec.ancestorTestNames {
			t, ok := g.Registry.resolveAncestorTest(n)
			if !ok {
				return &UndefinedTestError{Kind: "test", Name: n}
			}
			l.ancestorTests = append(l.ancestorTests, t)
		}
		l.preconditions = append(l.preconditions, spec.preconditions...)
		for _, n := range spec.preconditionNames {
			t, ok := g.Registry.resolvePrecondition(n)
			if !ok {
				return &UndefinedTestError{Kind: "precondition", Name: n}
			}
			l.preconditions = append(l.preconditions, t)
		}
		if spec.processor != nil {
			l.processor = spec.processor
		}
		if spec.processorName != "" {
			t, ok := g.Registry.resolveProcessor(spec.processorName)
			if !ok {
				return &UndefinedTestError{Kind: "processor", Name: spec.processorName}
			}
			l.processor = t
		}
	}
	return nil
}

// Dump renders the grammar's rules and leaves in declaration order, one
// per line, for debugging and REPL introspection.
func (g *Grammar) Dump() string {
	var b strings.Builder
	for i, name := range g.ruleOrder {
		fmt.Fprintf(&b, "%d: %s ::= %s\n", i, name, g.rules[name].Body)
	}
	for i, name := range g.leafOrder {
		l := g.leaves[name]
		kind := ""
		if l.Ignorable {
			kind = " (ignorable)"
		} else if l.Boundary {
			kind = " (boundary)"
		}
		pattern := ""
		if l.Pattern != nil {
			pattern = l.Pattern.String()
		}
		fmt.Fprintf(&b, "leaf %d: %s := /%s/%s\n", i, name, pattern, kind)
	}
	return b.String()
}
