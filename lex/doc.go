/*
Package lex tokenizes input text against a committed grammar, producing
every maximally un-reduced parse: a forest of leaf, boundary and trash
root nodes covering the whole input.

Leaf matching itself is delegated to github.com/timtadh/lexmachine: each
leaf rule compiles to its own single-pattern lexmachine DFA, reused across
offsets.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lex

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'canopy.lex'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.lex")
}
