/*
Package segment splits a tokenized parse into independently searchable
regions at its boundary and trash nodes, runs a reduction search (package
reduce) over each region, and composes the per-region results back into
whole parses.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package segment

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'canopy.segment'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.segment")
}
