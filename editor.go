package nledit

import (
	"bytes"
	"strings"
)

// Editor applies an edit configuration to texts. An Editor is immutable and
// may be used for any number of inputs, concurrently from several goroutines.
type Editor struct {
	conf Config
}

// New creates an editor for a configuration. A zero Config is tolerated and
// results in an editor which copies its input unchanged.
func New(conf Config) *Editor {
	if !conf.IsValid() {
		tracer().Errorf("editor created from invalid configuration; will not edit")
	}
	return &Editor{conf: conf}
}

// Config returns the configuration of the editor.
func (ed *Editor) Config() Config {
	return ed.conf
}

// Edit returns a copy of input with all edits applied.
func (ed *Editor) Edit(input string) string {
	var out strings.Builder
	out.Grow(len(input) + len(ed.conf.block))
	s := newScanner(&ed.conf)
	// writing to a strings.Builder does not fail
	_ = s.feed([]byte(input), &out)
	_ = s.finish(&out)
	return out.String()
}

// EditBytes returns a copy of input with all edits applied.
func (ed *Editor) EditBytes(input []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(input) + len(ed.conf.block))
	s := newScanner(&ed.conf)
	_ = s.feed(input, &out)
	_ = s.finish(&out)
	return out.Bytes()
}
