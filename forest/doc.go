/*
Package forest implements the node/parse data model of the canopy parser
engine: a clone-on-extend parse forest over a fixed input string.

A Node is one of four kinds: a leaf span, a nonterminal with children, a
trash span (a run of input characters no leaf rule matched), or a boundary
(a non-traversible leaf that splits the input into segments). A Parse is an
ordered forest of root nodes covering a prefix of the input, together with
a canonical summary string.

Nodes live in a per-Parse arena and are referenced by a stable NodeID; a
Node value handed to callers is a thin (*Parse, NodeID) pair. Extending a
parse (Parse.Add) never mutates the receiver: it clones the root slice and
the spliced children, builds a new nonterminal, and returns a new Parse.
Unmodified subtrees are shared between the old and the new Parse, the way
a shared packed parse forest shares subtrees between derivations.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package forest

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'canopy.forest'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.forest")
}
