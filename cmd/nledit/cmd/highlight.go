package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var insertColor = color.New(color.FgHiGreen)

// isTerminal is true if w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// highlighted wraps text in colour escape sequences. Terminators inside text
// stay outside of the escapes, so a terminal never sees an unterminated
// colour at a line end.
func highlighted(text string) string {
	if text == "" {
		return text
	}
	insertColor.EnableColor()
	var out []byte
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\r' || text[i] == '\n' {
			if i > start {
				out = append(out, insertColor.Sprint(text[start:i])...)
			}
			out = append(out, text[i])
			start = i + 1
		}
	}
	if start < len(text) {
		out = append(out, insertColor.Sprint(text[start:])...)
	}
	return string(out)
}
