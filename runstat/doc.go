/*
Package runstat provides statistics on runs of newlines in texts.

Clients use it to find out which trigger counts make sense for a text before
editing it, e.g.

	h, err := runstat.Count(file, nledit.LF)
	fmt.Printf("%d runs, an edit every 2 newlines would fire %d times", h.Runs(), h.Fires(2))

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package runstat

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nledit'
func tracer() tracing.Trace {
	return tracing.Select("nledit")
}
