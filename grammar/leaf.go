package grammar

import (
	"regexp"

	"github.com/canopy-parse/canopy/forest"
)

// Leaf is a terminal pattern. A Leaf with Pattern == nil is the grammar's
// internal trash rule, used to box unmatched characters.
type Leaf struct {
	Name string
	// Pattern is the compiled, `\A`-anchored matcher, kept for
	// introspection (Dump). RawPattern is the unanchored source
	// text handed to the lexmachine adapter (package lex).
	Pattern    *regexp.Regexp
	RawPattern string
	Ignorable  bool
	Boundary   bool

	nodeTests      []forest.NodeTest
	ancestorTests  []forest.AncestorTest
	preconditions  []forest.Precondition
	processor      forest.Processor
}

var _ forest.RuleRef = (*Leaf)(nil)

// RuleName implements forest.RuleRef.
func (l *Leaf) RuleName() string { return l.Name }

// NodeTests implements forest.RuleRef.
func (l *Leaf) NodeTests() []forest.NodeTest { return l.nodeTests }

// AncestorTests implements forest.RuleRef.
func (l *Leaf) AncestorTests() []forest.AncestorTest { return l.ancestorTests }

// IsIgnorable reports whether this leaf was declared with Ignore().
func (l *Leaf) IsIgnorable() bool { return l.Ignorable }

// IsBoundary reports whether this leaf was declared with Boundary().
func (l *Leaf) IsBoundary() bool { return l.Boundary }

// Preconditions returns the preconditions attached at declaration time.
func (l *Leaf) Preconditions() []forest.Precondition { return l.preconditions }

// Processor returns the side-effecting post-test hook, if any.
func (l *Leaf) Processor() forest.Processor { return l.processor }

// IsTrash reports whether this is the grammar's internal trash leaf.
func (l *Leaf) IsTrash() bool { return l.Pattern == nil }
