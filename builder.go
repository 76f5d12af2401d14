package nledit

// Builder incrementally collects settings and finalizes them into a Config.
//
// Builder validates nothing until Config or Editor is called. Setters may be
// chained:
//
//	ed, err := nledit.NewBuilder().Trigger(1).Text("-").Placement(nledit.Replace).Editor()
//
// The empty instance is a valid builder, but carries no defaults and will
// not produce a configuration unless a trigger is set. Clients should use
// NewBuilder.
type Builder struct {
	trigger   int
	text      string
	placement Placement
	term      Terminator

	done  bool  // a configuration has been completed
	dirty bool  // settings changed since the last completion
	err   error // first error found while staging
	conf  Config
}

// Default settings of a builder created by NewBuilder: append a line of
// dashes after every empty line.
const (
	DefaultTrigger = 2
	DefaultText    = "-------\n"
)

// NewBuilder creates a builder with default settings: trigger 2, text
// "-------\n", placement After and LF terminators.
func NewBuilder() *Builder {
	return &Builder{
		trigger:   DefaultTrigger,
		text:      DefaultText,
		placement: After,
		term:      LF,
		dirty:     true,
	}
}

// Trigger sets the number of consecutive terminators which fire an edit.
func (b *Builder) Trigger(n int) *Builder {
	if b.stage() {
		b.trigger = n
	}
	return b
}

// Text sets the text to insert.
func (b *Builder) Text(text string) *Builder {
	if b.stage() {
		b.text = text
	}
	return b
}

// Placement sets where the text goes.
func (b *Builder) Placement(p Placement) *Builder {
	if b.stage() {
		b.placement = p
	}
	return b
}

// Terminator sets the line terminator convention.
func (b *Builder) Terminator(t Terminator) *Builder {
	if b.stage() {
		b.term = t
	}
	return b
}

func (b *Builder) stage() bool {
	if b.done {
		if b.err == nil {
			b.err = ErrConfigCompleted
		}
		return false
	}
	b.dirty = true
	return true
}

// Config returns the configuration built from all settings.
//
// It is illegal to change settings after Config has been called (the error
// ErrConfigCompleted will be reported by the next call), but Config may be
// called multiple times.
func (b *Builder) Config() (Config, error) {
	if b == nil {
		return Config{}, ErrIllegalArguments
	}
	if b.err != nil {
		return Config{}, b.err
	}
	if b.dirty || !b.done {
		conf, err := NewConfig(b.trigger, b.text, b.placement, b.term)
		if err != nil {
			tracer().Debugf("builder: invalid settings: %v", err)
			return Config{}, err
		}
		b.conf = conf
		b.dirty = false
	}
	b.done = true
	return b.conf, nil
}

// Editor creates an editor from the builder's configuration.
func (b *Builder) Editor() (*Editor, error) {
	conf, err := b.Config()
	if err != nil {
		return nil, err
	}
	return New(conf), nil
}

// Reset drops all settings and errors and prepares the builder for a fresh
// build with default settings.
func (b *Builder) Reset() {
	*b = *NewBuilder()
}
