/*
Package canopy is a fault-tolerant, bottom-up parser engine for
context-free grammars annotated with semantic predicates.

A Grammar (package grammar) declares rules and leaves, each optionally
carrying node tests, ancestor tests, preconditions and a processor.
Tokenizing an input string (package lex) produces every maximal,
boundary-respecting token sequence as a candidate parse. Reduction search
(package reduce) repeatedly folds runs of roots into new nonterminal
nodes, ranked and pruned by a dominance filter so that only the most
promising candidates survive. Segmenting (package segment) splits the
tokenized input at boundary and trash nodes so that unrelated regions
search independently, composing the results back together once the
search stops (every segment is done, or enough parses were found for the
requested n). Parse trees themselves (package forest) use
clone-on-extend, arena-indexed nodes so that competing candidates share
structure rather than copy it.

Engine ties the four packages together into the two entry points most
callers need: First, for the single best parse, and Parse, for the top n
under a dominance filter.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package canopy

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'canopy.engine'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.engine")
}
