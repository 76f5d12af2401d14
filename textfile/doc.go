/*
Package textfile provides API helpers to edit text files with an nledit.Editor.

Files are always streamed; neither the source nor the edited text is held in
memory as a whole. In-place edits write to a temporary file next to the
original and replace the original only after the edit succeeded.

Batches of files are edited concurrently with a single shared editor. Results
are broadcast to any number of subscribers while the batch is running.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nledit'
func tracer() tracing.Trace {
	return tracing.Select("nledit")
}
