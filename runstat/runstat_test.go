package runstat

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/npillmayer/nledit"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCountLF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nledit")
	defer teardown()
	//
	h, err := Count(strings.NewReader("\nfoo\n\nbar\n\n\n\nbaz\n\n"), nledit.LF)
	if err != nil {
		t.Fatal(err)
	}
	expected := Histogram{1: 1, 2: 2, 4: 1}
	if !reflect.DeepEqual(h, expected) {
		t.Errorf("histogram = %v, want %v", h, expected)
	}
	if h.Runs() != 4 || h.Terminators() != 9 || h.Longest() != 4 {
		t.Errorf("runs=%d, terminators=%d, longest=%d", h.Runs(), h.Terminators(), h.Longest())
	}
	if !reflect.DeepEqual(h.Lengths(), []int{1, 2, 4}) {
		t.Errorf("lengths = %v", h.Lengths())
	}
}

func TestCountCRLF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nledit")
	defer teardown()
	//
	input := "a\r\n\r\nb\r\r\nc\nd\r"
	h, err := Count(iotest.OneByteReader(strings.NewReader(input)), nledit.CRLF)
	if err != nil {
		t.Fatal(err)
	}
	expected := Histogram{2: 1, 1: 1}
	if !reflect.DeepEqual(h, expected) {
		t.Errorf("histogram = %v, want %v", h, expected)
	}
}

func TestFiresMatchesEditor(t *testing.T) {
	input := "x\n\n\n\n\ny\n\nz\n\n\n"
	h, err := Count(strings.NewReader(input), nledit.LF)
	if err != nil {
		t.Fatal(err)
	}
	for trigger := 1; trigger <= 6; trigger++ {
		ed := nledit.New(nledit.Must(nledit.Replacer("#", trigger)))
		fired := strings.Count(ed.Edit(input), "#")
		if h.Fires(trigger) != fired {
			t.Errorf("trigger=%d: Fires=%d, editor fired %d times", trigger, h.Fires(trigger), fired)
		}
	}
	if h.Fires(0) != 0 {
		t.Errorf("trigger 0 must never fire")
	}
}

func TestCountEmpty(t *testing.T) {
	h, err := Count(strings.NewReader("no newlines here"), nledit.LF)
	if err != nil {
		t.Fatal(err)
	}
	if h.Runs() != 0 || h.Longest() != 0 || len(h.Lengths()) != 0 {
		t.Errorf("expected empty histogram, got %v", h)
	}
}

func TestCountReadError(t *testing.T) {
	errRead := errors.New("cannot read")
	_, err := Count(iotest.ErrReader(errRead), nledit.LF)
	if !errors.Is(err, errRead) {
		t.Errorf("expected read error, got %v", err)
	}
}
