package textfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/nledit"
)

// ErrNotRegular is flagged for paths which do not denote a regular file.
var ErrNotRegular = errors.New("textfile: not a regular file")

// ErrSameFile is flagged when an edit would write its output over its input.
var ErrSameFile = errors.New("textfile: output file is an input file; edit in place instead")

// CheckTarget makes sure that the output file dst is none of the input files
// srcs, as creating dst would truncate the input before it is read. A dst
// which does not exist yet is always accepted.
func CheckTarget(dst string, srcs ...string) error {
	dfi, err := os.Stat(dst)
	if err != nil {
		return nil // errors other than non-existence surface when dst is created
	}
	for _, src := range srcs {
		if sfi, err := os.Stat(src); err == nil && os.SameFile(sfi, dfi) {
			return fmt.Errorf("%s: %w", dst, ErrSameFile)
		}
	}
	return nil
}

// openFile opens an OS file for reading and collects some useful information
// on it, checking for error conditions.
func openFile(name string) (*os.File, os.FileInfo, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%s: %w", name, ErrNotRegular)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, nil, err
	}
	return file, fi, nil
}

// EditFile edits the text file src and writes the result to a file dst,
// which is created or truncated. It returns the number of bytes written.
// dst must not be src (ErrSameFile); use EditInPlace for this.
func EditFile(ed *nledit.Editor, src, dst string) (int64, error) {
	if ed == nil {
		return 0, nledit.ErrIllegalArguments
	}
	if err := CheckTarget(dst, src); err != nil {
		return 0, err
	}
	in, _, err := openFile(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: out}
	err = ed.EditStream(in, cw)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		tracer().Errorf("editing %s failed: %v", src, err)
		return cw.n, fmt.Errorf("textfile.EditFile %s: %w", src, err)
	}
	tracer().Debugf("edited %s → %s, %d bytes", src, dst, cw.n)
	return cw.n, nil
}

// EditInPlace edits a text file in place. The edited text is written to a
// temporary file in the same directory, which then replaces the original.
// The file mode of the original is preserved. If the edit fails, the
// original stays untouched.
func EditInPlace(ed *nledit.Editor, path string) (n int64, err error) {
	if ed == nil {
		return 0, nledit.ErrIllegalArguments
	}
	in, fi, err := openFile(path)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+base+".nledit-*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			tracer().Errorf("editing %s in place failed: %v", path, err)
			err = fmt.Errorf("textfile.EditInPlace %s: %w", path, err)
		}
	}()
	cw := &countingWriter{w: tmp}
	if err = ed.EditStream(in, cw); err != nil {
		return cw.n, err
	}
	if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
		return cw.n, err
	}
	if err = tmp.Close(); err != nil {
		return cw.n, err
	}
	in.Close()
	if err = os.Rename(tmp.Name(), path); err != nil {
		return cw.n, err
	}
	tracer().Debugf("edited %s in place, %d bytes", path, cw.n)
	return cw.n, nil
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
