/*
Package reduce implements the bottom-up reduction search: Iterator walks a
parse looking for the next applicable rule, Hopper holds the best parses
found so far under a dominance filter, and Picker is the priority worklist
that drives iterators to completion.

Picker is backed by github.com/emirpasic/gods/sets/treeset, a sorted-set
structure well suited to holding a priority worklist ordered by multiple
comparison keys.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package reduce

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'canopy.reduce'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.reduce")
}
