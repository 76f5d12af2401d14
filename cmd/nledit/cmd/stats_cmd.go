package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/npillmayer/nledit"
	"github.com/npillmayer/nledit/runstat"
	"github.com/spf13/cobra"
)

// statsCmd reports runs of terminators without editing anything.
var statsCmd = &cobra.Command{
	Use:   "stats [file...]",
	Short: "Print a histogram of newline runs",
	Long: `stats counts runs of consecutive newlines in stdin or the given files and
prints how many runs of each length occur, together with the number of edits
an editor with the current --trigger would perform.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.InOrStdin(), cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(stdin io.Reader, stdout io.Writer, files []string) error {
	term, err := opts.terminator()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		h, err := runstat.Count(stdin, term)
		if err != nil {
			return err
		}
		printHistogram(stdout, "<stdin>", term, h)
		return nil
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		h, err := runstat.Count(f, term)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printHistogram(stdout, name, term, h)
	}
	return nil
}

func printHistogram(w io.Writer, name string, term nledit.Terminator, h runstat.Histogram) {
	fmt.Fprintf(w, "%s: %d runs, %d %s terminators, %d edits at trigger %d\n",
		name, h.Runs(), h.Terminators(), term.Name(),
		h.Fires(opts.trigger), opts.trigger)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "length\truns\t")
	for _, l := range h.Lengths() {
		fmt.Fprintf(tw, "%d\t%d\t\n", l, h[l])
	}
	tw.Flush()
}
