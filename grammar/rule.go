package grammar

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/canopy-parse/canopy/forest"
)

// Rule is an ordered sequence of atoms, or a disjunction of alternatives.
// Invariant: exactly one of Subrules or Atoms is non-nil.
type Rule struct {
	Name     string
	Body     string // raw source text, retained for Dump()
	Subrules []*Rule
	Atoms    *Atom

	nodeTests     []forest.NodeTest
	ancestorTests []forest.AncestorTest
	preconditions []forest.Precondition
	processor     forest.Processor
}

var _ forest.RuleRef = (*Rule)(nil)

// RuleName implements forest.RuleRef.
func (r *Rule) RuleName() string { return r.Name }

// NodeTests implements forest.RuleRef.
func (r *Rule) NodeTests() []forest.NodeTest { return r.nodeTests }

// AncestorTests implements forest.RuleRef.
func (r *Rule) AncestorTests() []forest.AncestorTest { return r.ancestorTests }

// Preconditions returns the preconditions attached at declaration time.
func (r *Rule) Preconditions() []forest.Precondition { return r.preconditions }

// Processor returns the side-effecting post-test hook, if any.
func (r *Rule) Processor() forest.Processor { return r.processor }

// IsDisjunction reports whether this rule is a pure disjunction of
// subrules.
func (r *Rule) IsDisjunction() bool { return r.Subrules != nil }

// Starters returns the (symbol, atom) entries that can begin a match for
// this rule: the first atom of each subrule, and each subsequent atom up
// to and including the first required one.
func (r *Rule) Starters() []*Atom {
	if r.IsDisjunction() {
		var out []*Atom
		for _, sr := range r.Subrules {
			out = append(out, sr.Starters()...)
		}
		return out
	}
	var out []*Atom
	for a := r.Atoms; a != nil; a = a.Next {
		out = append(out, a)
		if a.Min > 0 {
			break
		}
	}
	return out
}

// Branch is an edge used by the loop detector.
type Branch struct {
	From string // symbol an atom seeks
	To   string // this rule's name
}

// Branches returns the loop-detector edges for unary-candidate rules: those
// whose atoms' minimums sum to less than 2.
func (r *Rule) Branches() []Branch {
	if r.IsDisjunction() {
		var out []Branch
		for _, sr := range r.Subrules {
			out = append(out, sr.Branches()...)
		}
		return out
	}
	total := 0
	for a := r.Atoms; a != nil; a = a.Next {
		total += a.Min
	}
	if total >= 2 {
		return nil
	}
	var out []Branch
	for a := r.Atoms; a != nil; a = a.Next {
		out = append(out, Branch{From: a.Seeking, To: r.Name})
	}
	return out
}

// Literals returns the unique literal atom names referenced anywhere in
// this rule.
func (r *Rule) Literals() []string {
	seen := map[string]bool{}
	collectLiterals(r, seen)
	return sortedKeys(seen)
}

func collectLiterals(r *Rule, seen map[string]bool) {
	if r.IsDisjunction() {
		for _, sr := range r.Subrules {
			collectLiterals(sr, seen)
		}
		return
	}
	for a := r.Atoms; a != nil; a = a.Next {
		if a.Literal {
			seen[a.Seeking] = true
		}
	}
}

// Seeking returns the union of atom symbols across all subrules, used by
// the grammar completeness check.
func (r *Rule) Seeking() []string {
	seen := map[string]bool{}
	collectSeeking(r, seen)
	return sortedKeys(seen)
}

func collectSeeking(r *Rule, seen map[string]bool) {
	if r.IsDisjunction() {
		for _, sr := range r.Subrules {
			collectSeeking(sr, seen)
		}
		return
	}
	for a := r.Atoms; a != nil; a = a.Next {
		seen[a.Seeking] = true
	}
}

// EmptyConsumption reports whether this rule's body can match zero tokens
// (all atoms optional) -- rejected by Commit.
func (r *Rule) EmptyConsumption() bool {
	if r.IsDisjunction() {
		for _, sr := range r.Subrules {
			if !sr.EmptyConsumption() {
				return false
			}
		}
		return len(r.Subrules) > 0
	}
	if r.Atoms == nil {
		return true
	}
	for a := r.Atoms; a != nil; a = a.Next {
		if a.Min > 0 {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// --- Rule body compilation --------------------------------------------

// parseBody compiles a rule body string into a Rule's Subrules/Atoms,
// following this grammar:
//
//	body := alt (' | ' alt)*
//	alt  := atom (' ' atom)*
//	atom := ident | literal, optionally suffixed by ? + * {n} {n,} {n,m}
func parseBody(ruleName, body string) (subrules []*Rule, atoms *Atom, err error) {
	alts := splitTopLevel(body, '|')
	if len(alts) > 1 {
		subs := make([]*Rule, 0, len(alts))
		for _, alt := range alts {
			_, a, err := parseBody(ruleName, strings.TrimSpace(alt))
			if err != nil {
				return nil, nil, err
			}
			subs = append(subs, &Rule{Name: ruleName, Body: strings.TrimSpace(alt), Atoms: a})
		}
		return subs, nil, nil
	}
	tokens, err := splitAtomTokens(strings.TrimSpace(body))
	if err != nil {
		return nil, nil, &MalformedAtomError{Rule: ruleName, Atom: body}
	}
	var head, tail *Atom
	for _, tok := range tokens {
		a, err := parseAtomToken(ruleName, tok)
		if err != nil {
			return nil, nil, err
		}
		if head == nil {
			head = a
			tail = a
		} else {
			tail.Next = a
			tail = a
		}
	}
	return nil, head, nil
}

// splitTopLevel splits s on every sep byte outside of single/double quotes;
// surrounding spaces are not required and stay in the parts.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	var cur strings.Builder
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			cur.WriteByte(c)
			continue
		}
		if c == sep {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	out = append(out, cur.String())
	return out
}

// splitAtomTokens splits on whitespace outside of quotes.
func splitAtomTokens(s string) ([]string, error) {
	var out []string
	var cur strings.Builder
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote && s[i-1] != '\\' {
				quote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			quote = c
			cur.WriteByte(c)
			continue
		}
		if c == ' ' || c == '\t' {
			flush()
			continue
		}
		cur.WriteByte(c)
	}
	flush()
	if quote != 0 {
		return nil, &MalformedAtomError{Atom: s}
	}
	return out, nil
}

var identPrefix = regexp.MustCompile(`^[A-Za-z_](?:\w|\\.)*`)

func parseAtomToken(ruleName, tok string) (*Atom, error) {
	a := &Atom{Min: 1, Max: 1}
	rest := tok
	if len(tok) > 0 && (tok[0] == '\'' || tok[0] == '"') {
		quote := tok[0]
		end := -1
		for i := 1; i < len(tok); i++ {
			if tok[i] == quote && tok[i-1] != '\\' {
				end = i
				break
			}
		}
		if end < 0 {
			return nil, &MalformedAtomError{Rule: ruleName, Atom: tok}
		}
		a.Literal = true
		a.Seeking = unescape(tok[1:end])
		rest = tok[end+1:]
	} else {
		loc := identPrefix.FindStringIndex(tok)
		if loc == nil {
			return nil, &MalformedAtomError{Rule: ruleName, Atom: tok}
		}
		a.Seeking = unescape(tok[loc[0]:loc[1]])
		rest = tok[loc[1]:]
	}
	if err := applyRepetition(a, rest); err != nil {
		return nil, &BadRepetitionSuffixError{Rule: ruleName, Suffix: rest}
	}
	return a, nil
}

func unescape(s string) string {
	return strings.ReplaceAll(s, "\\", "")
}

var repeatBraces = regexp.MustCompile(`^\{(\d+)(,(\d*))?\}$`)

func applyRepetition(a *Atom, suffix string) error {
	switch suffix {
	case "":
		a.Min, a.Max = 1, 1
		return nil
	case "?":
		a.Min, a.Max = 0, 1
		return nil
	case "+":
		a.Min, a.Max = 1, Unbounded
		return nil
	case "*":
		a.Min, a.Max = 0, Unbounded
		return nil
	}
	m := repeatBraces.FindStringSubmatch(suffix)
	if m == nil {
		return &BadRepetitionSuffixError{Suffix: suffix}
	}
	n, _ := strconv.Atoi(m[1])
	if m[2] == "" { // {n}
		a.Min, a.Max = n, n
		return nil
	}
	if m[3] == "" { // {n,}
		a.Min, a.Max = n, Unbounded
		return nil
	}
	maxv, _ := strconv.Atoi(m[3]) // {n,m}
	a.Min, a.Max = n, maxv
	return nil
}
