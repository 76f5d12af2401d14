// Command nledit edits runs of newlines in text files or on stdin.
package main

import "github.com/npillmayer/nledit/cmd/nledit/cmd"

func main() {
	cmd.Execute()
}
