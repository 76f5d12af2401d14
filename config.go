package nledit

import (
	"fmt"
	"strings"
)

// Placement tells where the text of an edit goes, relative to the block of
// terminators which completed a trigger count.
type Placement uint8

// Placements of edits.
const (
	After   Placement = iota // append text after the terminators
	Before                   // insert text before the terminators
	Replace                  // substitute the terminators by the text
)

func (p Placement) String() string {
	switch p {
	case After:
		return "after"
	case Before:
		return "before"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("Placement(%d)", uint8(p))
}

func (p Placement) valid() bool {
	return p <= Replace
}

// ParsePlacement finds a placement from its name. Accepted names are
// "after" (or "append"), "before" (or "insert") and "replace".
func ParsePlacement(name string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "after", "append":
		return After, nil
	case "before", "insert":
		return Before, nil
	case "replace":
		return Replace, nil
	}
	return After, ErrUnknownPlacement
}

// Config is an immutable edit configuration. The zero value is not a valid
// configuration; use NewConfig, one of the convenience constructors or a
// Builder.
type Config struct {
	trigger   int
	text      string
	placement Placement
	term      Terminator
	block     string // output for a fired edit, see Block
}

// NewConfig creates a configuration from its parts. trigger is the number
// of consecutive terminators which fire an edit and must be at least 1,
// otherwise ErrInvalidTrigger is returned. text may be empty.
func NewConfig(trigger int, text string, placement Placement, term Terminator) (Config, error) {
	if trigger < 1 {
		return Config{}, ErrInvalidTrigger
	}
	if !placement.valid() || term > CRLF {
		return Config{}, ErrIllegalArguments
	}
	c := Config{
		trigger:   trigger,
		text:      text,
		placement: placement,
		term:      term,
	}
	c.block = c.makeBlock()
	tracer().Debugf("new config: %v", c)
	return c, nil
}

// makeBlock folds the terminators of a trigger block into the edit text.
func (c Config) makeBlock() string {
	var b strings.Builder
	b.Grow(len(c.text) + c.trigger*c.term.Len())
	if c.placement == Before {
		b.WriteString(c.text)
	}
	if c.placement != Replace {
		for i := 0; i < c.trigger; i++ {
			b.Write(c.term.Bytes())
		}
	}
	if c.placement != Before {
		b.WriteString(c.text)
	}
	return b.String()
}

// Trigger is the number of consecutive terminators which fire an edit.
func (c Config) Trigger() int { return c.trigger }

// Text is the text to insert.
func (c Config) Text() string { return c.text }

// Placement tells where the text goes.
func (c Config) Placement() Placement { return c.placement }

// Terminator is the line terminator convention.
func (c Config) Terminator() Terminator { return c.term }

// Block returns the output which replaces a block of Trigger() terminators
// whenever an edit fires. For placement Before this is the text followed by
// the terminators, for After the terminators followed by the text, and for
// Replace the text alone.
func (c Config) Block() string { return c.block }

// IsValid is false for the zero value of Config.
func (c Config) IsValid() bool { return c.trigger >= 1 }

func (c Config) String() string {
	return fmt.Sprintf("{%s %q @ %d×%s}", c.placement, c.text, c.trigger, c.term.Name())
}

// --- Convenience constructors ----------------------------------------------

// Appender configures an edit which appends text after every trigger LF
// newlines.
func Appender(text string, trigger int) (Config, error) {
	return NewConfig(trigger, text, After, LF)
}

// Inserter configures an edit which inserts text before every trigger LF
// newlines.
func Inserter(text string, trigger int) (Config, error) {
	return NewConfig(trigger, text, Before, LF)
}

// Replacer configures an edit which replaces every trigger LF newlines with
// text.
func Replacer(text string, trigger int) (Config, error) {
	return NewConfig(trigger, text, Replace, LF)
}

// AppenderCRLF is the CRLF variant of Appender.
func AppenderCRLF(text string, trigger int) (Config, error) {
	return NewConfig(trigger, text, After, CRLF)
}

// InserterCRLF is the CRLF variant of Inserter.
func InserterCRLF(text string, trigger int) (Config, error) {
	return NewConfig(trigger, text, Before, CRLF)
}

// ReplacerCRLF is the CRLF variant of Replacer.
func ReplacerCRLF(text string, trigger int) (Config, error) {
	return NewConfig(trigger, text, Replace, CRLF)
}

// Must returns c if err is nil and panics otherwise. It is intended for
// configurations built from literal values:
//
//	ed := nledit.New(nledit.Must(nledit.Inserter("--", 2)))
func Must(c Config, err error) Config {
	if err != nil {
		panic(err)
	}
	return c
}
