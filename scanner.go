package nledit

import "io"

// scanner is the state machine shared by all edit operations. It consumes
// input in chunks of arbitrary size and writes the edited text to a sink.
//
// Terminators of an unfinished run are not written until the run either
// completes a trigger block (and the edit fires) or is ended by other text.
// In CRLF mode a trailing carriage return of a chunk is held back until the
// next byte tells whether it starts a terminator.
//
// A scanner is owned by a single call and must not be shared.
type scanner struct {
	conf  *Config
	run   int  // terminators seen, but not yet written
	cr    bool // a '\r' is held back (CRLF mode only)
	fired int  // number of edits fired, for tracing
}

func newScanner(conf *Config) *scanner {
	return &scanner{conf: conf}
}

// feed scans a chunk of input. It returns the first error of the sink.
func (s *scanner) feed(p []byte, w io.Writer) error {
	if len(p) == 0 {
		return nil
	}
	mark, i := 0, 0 // p[mark:i] is plain text not yet written
	if s.cr {
		s.cr = false
		if p[0] == lf {
			if err := s.terminator(w); err != nil {
				return err
			}
			mark, i = 1, 1
		} else if err := s.text(crlfBytes[:1], w); err != nil {
			// held '\r' turned out to be plain text
			return err
		}
	}
	for i < len(p) {
		n, ok := s.conf.term.Match(p, i)
		if !ok {
			if s.conf.term == CRLF && p[i] == cr && i == len(p)-1 {
				if err := s.text(p[mark:i], w); err != nil {
					return err
				}
				s.cr = true
				return nil
			}
			i++
			continue
		}
		if err := s.text(p[mark:i], w); err != nil {
			return err
		}
		if err := s.terminator(w); err != nil {
			return err
		}
		i += n
		mark = i
	}
	return s.text(p[mark:], w)
}

// finish is called at the end of input. A held carriage return never
// completed a terminator and is written as text, then the terminators of an
// unfinished run are written unchanged.
func (s *scanner) finish(w io.Writer) error {
	if s.cr {
		s.cr = false
		if err := s.text(crlfBytes[:1], w); err != nil {
			return err
		}
	}
	if err := s.flushRun(w); err != nil {
		return err
	}
	tracer().Debugf("scan done, %d edit(s) fired", s.fired)
	return nil
}

// text writes plain text. Non-empty text ends the current run.
func (s *scanner) text(t []byte, w io.Writer) error {
	if len(t) == 0 {
		return nil
	}
	if err := s.flushRun(w); err != nil {
		return err
	}
	_, err := w.Write(t)
	return err
}

// terminator counts a terminator and fires the edit once the count reaches
// the trigger. The count restarts after every edit, so long runs fire once
// per complete block of trigger terminators.
func (s *scanner) terminator(w io.Writer) error {
	s.run++
	if s.conf.trigger < 1 || s.run < s.conf.trigger {
		return nil // zero config never fires
	}
	s.run = 0
	s.fired++
	_, err := io.WriteString(w, s.conf.block)
	return err
}

func (s *scanner) flushRun(w io.Writer) error {
	nl := s.conf.term.Bytes()
	for ; s.run > 0; s.run-- {
		if _, err := w.Write(nl); err != nil {
			return err
		}
	}
	return nil
}
