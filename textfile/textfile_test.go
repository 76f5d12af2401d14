package textfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/nledit"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestEditFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nledit")
	defer teardown()
	//
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "input.txt"), filepath.Join(dir, "output.txt")
	writeFile(t, src, "example line\n\nanother line\n", 0o644)
	ed := nledit.New(nledit.Must(nledit.Appender("___\n", 2)))
	n, err := EditFile(ed, src, dst)
	if err != nil {
		t.Fatal(err)
	}
	expected := "example line\n\n___\nanother line\n"
	if out := readFile(t, dst); out != expected {
		t.Errorf("output file = %q, want %q", out, expected)
	}
	if n != int64(len(expected)) {
		t.Errorf("reported %d bytes written, want %d", n, len(expected))
	}
}

func TestEditInPlace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nledit")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "dashes.txt")
	writeFile(t, path, "foo\r\n\r\nbar\r\n\r\nbaz\r\n", 0o600)
	ed := nledit.New(nledit.Must(nledit.InserterCRLF("--", 2)))
	if _, err := EditInPlace(ed, path); err != nil {
		t.Fatal(err)
	}
	if out := readFile(t, path); out != "foo--\r\n\r\nbar--\r\n\r\nbaz\r\n" {
		t.Errorf("edited file = %q", out)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("file mode = %v, want 0600", fi.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temporary file to be gone, directory has %d entries", len(entries))
	}
}

func TestRejectNonRegularFiles(t *testing.T) {
	dir := t.TempDir()
	ed := nledit.New(nledit.Must(nledit.Replacer("-", 1)))
	if _, err := EditInPlace(ed, dir); !errors.Is(err, ErrNotRegular) {
		t.Errorf("expected ErrNotRegular, got %v", err)
	}
	if _, err := EditFile(ed, dir, filepath.Join(dir, "out.txt")); !errors.Is(err, ErrNotRegular) {
		t.Errorf("expected ErrNotRegular, got %v", err)
	}
	if _, err := EditInPlace(ed, filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := EditInPlace(nil, dir); !errors.Is(err, nledit.ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments for nil editor, got %v", err)
	}
}

func TestBatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nledit")
	defer teardown()
	//
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		path := filepath.Join(dir, fmt.Sprintf("file%02d.txt", i))
		writeFile(t, path, fmt.Sprintf("file %d\n\nend\n", i), 0o644)
		paths = append(paths, path)
	}
	ed := nledit.New(nledit.Must(nledit.Replacer("\n", 2)))
	batch := NewBatch(ed, Jobs(3))
	results := batch.Subscribe(context.Background())
	done := make(chan map[string]Result)
	go func() {
		received := make(map[string]Result)
		for r := range results {
			if r.Err != nil {
				t.Errorf("%s: %v", r.Path, r.Err)
			}
			if _, dup := received[r.Path]; dup {
				t.Errorf("%s: result received twice", r.Path)
			}
			received[r.Path] = r
		}
		done <- received
	}()
	if err := batch.Run(context.Background(), paths); err != nil {
		t.Fatal(err)
	}
	received := <-done
	if len(received) != len(paths) {
		t.Errorf("received %d results, want %d", len(received), len(paths))
	}
	for i, path := range paths {
		out := readFile(t, path)
		if out != fmt.Sprintf("file %d\nend\n", i) {
			t.Errorf("%s: edited content = %q", path, out)
		}
		r, ok := received[path]
		if !ok {
			t.Errorf("%s: no result received", path)
		} else if r.Written != int64(len(out)) {
			t.Errorf("%s: result reports %d bytes written, file has %d", path, r.Written, len(out))
		}
	}
	if err := batch.Run(context.Background(), paths); !errors.Is(err, nledit.ErrIllegalArguments) {
		t.Errorf("expected second run to be rejected, got %v", err)
	}
}

func TestBatchKeepGoing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nledit")
	defer teardown()
	//
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	writeFile(t, good, "a\nb\n", 0o644)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	ed := nledit.New(nledit.Must(nledit.Replacer(" ", 1)))
	err := NewBatch(ed, Jobs(1), KeepGoing(true)).Run(context.Background(), []string{sub, good})
	if !errors.Is(err, ErrNotRegular) {
		t.Errorf("expected ErrNotRegular, got %v", err)
	}
	if out := readFile(t, good); out != "a b " {
		t.Errorf("good file not edited: %q", out)
	}
	err = NewBatch(ed).Run(context.Background(), []string{sub})
	if !errors.Is(err, ErrNotRegular) {
		t.Errorf("expected ErrNotRegular without keep-going, got %v", err)
	}
}

func TestBatchCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "untouched.txt")
	writeFile(t, path, "a\nb\n", 0o644)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ed := nledit.New(nledit.Must(nledit.Replacer(" ", 1)))
	if err := NewBatch(ed).Run(ctx, []string{path}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if out := readFile(t, path); out != "a\nb\n" {
		t.Errorf("file edited despite cancelled context: %q", out)
	}
}

func TestSubscriberCancels(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		path := filepath.Join(dir, fmt.Sprintf("file%d.txt", i))
		writeFile(t, path, "a\nb\n", 0o644)
		paths = append(paths, path)
	}
	ed := nledit.New(nledit.Must(nledit.Replacer(" ", 1)))
	batch := NewBatch(ed, Jobs(1))
	ctx, cancel := context.WithCancel(context.Background())
	results := batch.Subscribe(ctx)
	cancel() // subscriber stops listening without draining
	if err := batch.Run(context.Background(), paths); err != nil {
		t.Fatal(err)
	}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("result channel not closed after subscriber context was cancelled")
		}
	}
}

func TestRejectSameFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "self.txt")
	writeFile(t, path, "a\n\nb\n", 0o644)
	ed := nledit.New(nledit.Must(nledit.Replacer("-", 2)))
	if _, err := EditFile(ed, path, path); !errors.Is(err, ErrSameFile) {
		t.Errorf("expected ErrSameFile, got %v", err)
	}
	if out := readFile(t, path); out != "a\n\nb\n" {
		t.Errorf("source file damaged: %q", out)
	}
	alias := filepath.Join(dir, "alias.txt")
	if err := os.Link(path, alias); err == nil {
		if err := CheckTarget(alias, filepath.Join(dir, "other.txt"), path); !errors.Is(err, ErrSameFile) {
			t.Errorf("expected ErrSameFile for hard link, got %v", err)
		}
	}
	if err := CheckTarget(filepath.Join(dir, "new.txt"), path); err != nil {
		t.Errorf("expected new output file to be accepted, got %v", err)
	}
}
