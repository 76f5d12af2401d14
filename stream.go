package nledit

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const bufsize = 4096

// ErrClosed is returned for writes to an edit writer which has been closed.
var ErrClosed = errors.New("nledit: write to closed edit writer")

// EditStream reads text from src, applies all edits and writes the result
// to dst. If src is not already a *bufio.Reader it will be wrapped into one;
// output is buffered and flushed before EditStream returns, on every return
// path.
//
// Failures of src or dst are returned as *IOError and end the edit at once.
// Output which has been written to dst before a failure stays there.
func (ed *Editor) EditStream(src io.Reader, dst io.Writer) error {
	in, ok := src.(*bufio.Reader)
	if !ok {
		in = bufio.NewReaderSize(src, bufsize)
	}
	out := bufio.NewWriterSize(dst, bufsize)
	s := newScanner(&ed.conf)
	for {
		// ReadSlice hands out slices of in's buffer; no copying needed
		line, err := in.ReadSlice(lf)
		if len(line) > 0 {
			if werr := s.feed(line, out); werr != nil {
				return writeError(werr)
			}
		}
		if err == nil || err == bufio.ErrBufferFull {
			continue
		}
		if err != io.EOF {
			tracer().Errorf("edit stream: read failed: %v", err)
			if werr := out.Flush(); werr != nil {
				tracer().Errorf("edit stream: cannot flush partial output: %v", werr)
			}
			return &IOError{Op: "read", Err: err}
		}
		break
	}
	if err := s.finish(out); err != nil {
		return writeError(err)
	}
	if err := out.Flush(); err != nil {
		return writeError(err)
	}
	return nil
}

func writeError(err error) error {
	tracer().Errorf("edit stream: write failed: %v", err)
	return &IOError{Op: "write", Err: err}
}

// --- Reader ----------------------------------------------------------------

// Reader returns a reader for the edited text of src. The text is edited
// incrementally while it is read. Read errors of src are reported as
// *IOError.
func (ed *Editor) Reader(src io.Reader) io.Reader {
	in, ok := src.(*bufio.Reader)
	if !ok {
		in = bufio.NewReaderSize(src, bufsize)
	}
	return &editReader{src: in, s: newScanner(&ed.conf)}
}

type editReader struct {
	src *bufio.Reader
	s   *scanner
	out bytes.Buffer // edited text not yet handed out
	err error        // sticky; io.EOF after the scan has finished
}

func (er *editReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for er.out.Len() == 0 && er.err == nil {
		er.fill()
	}
	if er.out.Len() > 0 {
		return er.out.Read(p)
	}
	return 0, er.err
}

func (er *editReader) fill() {
	line, err := er.src.ReadSlice(lf)
	if len(line) > 0 {
		_ = er.s.feed(line, &er.out) // bytes.Buffer does not fail
	}
	switch err {
	case nil, bufio.ErrBufferFull:
	case io.EOF:
		_ = er.s.finish(&er.out)
		er.err = io.EOF
	default:
		tracer().Errorf("edit reader: read failed: %v", err)
		er.err = &IOError{Op: "read", Err: err}
	}
}

// --- Writer ----------------------------------------------------------------

// Writer returns a writer which edits all text written to it and passes the
// result on to dst. Close has to be called at the end of the text, as the
// writer holds back terminators of unfinished runs. Close does not close dst.
//
// The edit writer does not buffer its output; clients writing to slow sinks
// may want to wrap dst into a bufio.Writer.
func (ed *Editor) Writer(dst io.Writer) io.WriteCloser {
	return &editWriter{dst: dst, s: newScanner(&ed.conf)}
}

type editWriter struct {
	dst    io.Writer
	s      *scanner
	err    error // sticky
	closed bool
}

func (ew *editWriter) Write(p []byte) (int, error) {
	if ew.closed {
		return 0, ErrClosed
	}
	if ew.err != nil {
		return 0, ew.err
	}
	if err := ew.s.feed(p, ew.dst); err != nil {
		ew.err = writeError(err)
		return 0, ew.err
	}
	return len(p), nil
}

// Close flushes a held carriage return and the terminators of an unfinished
// run. Calling Close more than once is a no-op.
func (ew *editWriter) Close() error {
	if ew.closed {
		return nil
	}
	ew.closed = true
	if ew.err != nil {
		return ew.err
	}
	if err := ew.s.finish(ew.dst); err != nil {
		ew.err = writeError(err)
		return ew.err
	}
	return nil
}
