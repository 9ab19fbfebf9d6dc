/*
Package canopyrepl is an interactive command line for experimenting with a
canopy grammar: read a line of input, parse it, print the winning parse
tree, repeat.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package canopyrepl

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'canopy.repl'.
func tracer() tracing.Trace {
	return tracing.Select("canopy.repl")
}
