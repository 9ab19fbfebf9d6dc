/*
Package grammar compiles atoms, leaves and rules into a committed Grammar:
the starter index used by the reduction search, the literal-induced leaf
set, the loop-detector flag, and the named predicate registry.

A Grammar is built with a small declaration surface (Rule, Leaf, Ignore,
Boundary, KeepWhitespace) and frozen with Commit, which runs every
commit-time check and computes starters, branches, literals and seeking
for every rule.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'canopy.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.grammar")
}
