/*
Package forestdump renders canopy parse trees for human inspection: an
indented outline for terminals and a Graphviz dot export of a single
parse.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package forestdump
