package runstat

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/nledit"
)

// Histogram maps the length of runs (in terminators) to the number of runs of
// this length.
type Histogram map[int]int

// Count scans a text and collects the lengths of all runs of terminators.
// Terminators are matched the same way an nledit.Editor matches them: in CRLF
// mode a carriage return without a following line feed ends a run.
func Count(r io.Reader, term nledit.Terminator) (Histogram, error) {
	in := bufio.NewReader(r)
	h := Histogram{}
	run := 0
	p := make([]byte, 0, 2)
	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			tracer().Errorf("run statistics: %v", err)
			return h, fmt.Errorf("runstat.Count could not read text: %w", err)
		}
		p = append(p[:0], b)
		if b == '\r' {
			// a peek error other than EOF will surface with the next ReadByte
			if next, _ := in.Peek(1); len(next) > 0 {
				p = append(p, next[0])
			}
		}
		if n, ok := term.Match(p, 0); ok {
			_, _ = in.Discard(n - 1)
			run++
			continue
		}
		run = h.end(run)
	}
	h.end(run)
	tracer().Debugf("run statistics: %d runs of %d terminators", h.Runs(), h.Terminators())
	return h, nil
}

func (h Histogram) end(run int) int {
	if run > 0 {
		h[run]++
	}
	return 0
}

// Runs is the total number of runs.
func (h Histogram) Runs() int {
	cnt := 0
	for _, n := range h {
		cnt += n
	}
	return cnt
}

// Terminators is the total number of terminators.
func (h Histogram) Terminators() int {
	cnt := 0
	for l, n := range h {
		cnt += l * n
	}
	return cnt
}

// Fires returns the number of edits an editor with the given trigger would
// perform on the text. A trigger less than 1 never fires.
func (h Histogram) Fires(trigger int) int {
	if trigger < 1 {
		return 0
	}
	cnt := 0
	for l, n := range h {
		cnt += l / trigger * n
	}
	return cnt
}

// Lengths returns the different run lengths in increasing order.
func (h Histogram) Lengths() []int {
	lengths := make([]int, 0, len(h))
	for l := range h {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// Longest is the length of the longest run, or 0 for texts without
// terminators.
func (h Histogram) Longest() int {
	longest := 0
	for l := range h {
		if l > longest {
			longest = l
		}
	}
	return longest
}
