/*
Package nledit edits texts at runs of consecutive newlines.

Runs of Newlines

A run is a sequence of line terminators not interrupted by any other
character. An Editor counts the terminators of a run and, every time the
count reaches a configured trigger, emits a fixed text before, after or
instead of the block of terminators which completed the count. A run of
k × trigger terminators fires k times; a run shorter than the trigger is
left untouched.

	ed := nledit.New(nledit.Must(nledit.Replacer("\n", 2)))
	out := ed.Edit("Remove\n\nEvery\n\nEmpty\n\nLine\n")
	// out == "Remove\nEvery\nEmpty\nLine\n"

Terminators are either LF ("\n") or CRLF ("\r\n"). In CRLF mode the two bytes
are matched atomically: a carriage return without a following line feed is
ordinary text, even at the end of the input or at the border of two reads.

Editors work on strings held in memory as well as on streams. The streaming
variants (EditStream, Reader and Writer) share the scanning code with Edit
and never need the complete input in memory.

Concurrency

A Config is an immutable value and an Editor holds nothing but its Config.
Every call owns its scan state, so a single Editor may be used from
multiple goroutines at once.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.

*/
package nledit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nledit'
func tracer() tracing.Trace {
	return tracing.Select("nledit")
}

// ConfigError is an error type for invalid edit configurations.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

// ErrInvalidTrigger is flagged whenever a trigger count is less than 1.
const ErrInvalidTrigger = ConfigError("invalid trigger; need at least 1 newline to trigger an edit")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ConfigError("illegal arguments")

// ErrUnknownTerminator is flagged when a terminator name cannot be parsed.
const ErrUnknownTerminator = ConfigError("unknown line terminator")

// ErrUnknownPlacement is flagged when a placement name cannot be parsed.
const ErrUnknownPlacement = ConfigError("unknown placement of edits")

// ErrConfigCompleted signals that a builder has already produced a configuration
// and it's illegal to further change settings.
const ErrConfigCompleted = ConfigError("forbidden to change settings; configuration has been completed")

// IOError is returned by the streaming operations if the source or the sink
// of an edit fails. Output written before the failure remains in the sink.
type IOError struct {
	Op  string // "read" or "write"
	Err error  // error of the underlying medium
}

func (e *IOError) Error() string {
	return "nledit: " + e.Op + " failed: " + e.Err.Error()
}

// Unwrap returns the error of the underlying medium.
func (e *IOError) Unwrap() error {
	return e.Err
}
