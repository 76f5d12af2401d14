package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/npillmayer/nledit"
	"github.com/npillmayer/nledit/textfile"
	"github.com/spf13/cobra"
)

// options collects the flags of all commands.
type options struct {
	trigger   int
	text      string
	raw       bool // do not interpret escapes in text
	mode      string
	newline   string
	crlf      bool
	inPlace   bool
	output    string
	jobs      int
	keepGoing bool
	highlight bool
	trace     string
	tracer    string
	traceFile string
}

var opts options

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nledit [flags] [file...]",
	Short: "Insert, append or replace text at runs of newlines",
	Long: `nledit scans text for runs of consecutive newlines. Every time a run reaches
the trigger count, a text is inserted before the newlines, appended after them,
or replaces them.

Without file arguments nledit reads stdin and writes to stdout. Text may
contain escapes like \n or \t unless --raw is given.

Examples:
  nledit -n 2 -m replace -t '\n' < in.txt      # remove empty lines
  nledit -n 1 -m append -t '\n' -i *.md        # double-space files in place`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupTracing(opts.trace, opts.tracer, opts.traceFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "nledit:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&opts.trigger, "trigger", "n", nledit.DefaultTrigger, "number of consecutive newlines which trigger an edit")
	pf.StringVar(&opts.newline, "newline", "lf", "line terminator: lf or crlf")
	pf.BoolVar(&opts.crlf, "crlf", false, "shorthand for --newline crlf")
	pf.StringVar(&opts.trace, "trace", "Error", "trace level: Error, Info or Debug")
	pf.StringVar(&opts.tracer, "tracer", "go", "tracing backend: go or logrus")
	pf.StringVar(&opts.traceFile, "trace-file", "", "write traces to a file URI instead of stderr")
	f := rootCmd.Flags()
	f.StringVarP(&opts.text, "text", "t", nledit.DefaultText, "text to insert")
	f.BoolVar(&opts.raw, "raw", false, "take text literally, without interpreting escapes")
	f.StringVarP(&opts.mode, "mode", "m", "append", "where the text goes: append, insert or replace")
	f.BoolVarP(&opts.inPlace, "in-place", "i", false, "edit files in place")
	f.StringVarP(&opts.output, "output", "o", "", "write the edited text to this file")
	f.IntVarP(&opts.jobs, "jobs", "j", textfile.DefaultJobs, "number of files edited concurrently with --in-place")
	f.BoolVarP(&opts.keepGoing, "keep-going", "k", false, "continue with the remaining files after a failure")
	f.BoolVar(&opts.highlight, "highlight", false, "colour inserted text when writing to a terminal")
	rootCmd.MarkFlagsMutuallyExclusive("in-place", "output")
}

func (o *options) terminator() (nledit.Terminator, error) {
	if o.crlf {
		return nledit.CRLF, nil
	}
	t, err := nledit.ParseTerminator(o.newline)
	if err != nil {
		return t, fmt.Errorf("--newline %q: %w", o.newline, err)
	}
	return t, nil
}

// editor builds an editor from the flags. highlight colours the inserted text.
func (o *options) editor(highlight bool) (*nledit.Editor, error) {
	placement, err := nledit.ParsePlacement(o.mode)
	if err != nil {
		return nil, fmt.Errorf("--mode %q: %w", o.mode, err)
	}
	term, err := o.terminator()
	if err != nil {
		return nil, err
	}
	text := o.text
	if !o.raw {
		if text, err = unescape(o.text); err != nil {
			return nil, err
		}
	}
	if highlight {
		text = highlighted(text)
	}
	ed, err := nledit.NewBuilder().
		Trigger(o.trigger).
		Text(text).
		Placement(placement).
		Terminator(term).
		Editor()
	if err != nil {
		return nil, fmt.Errorf("--trigger %d: %w", o.trigger, err)
	}
	return ed, nil
}

// unescape interprets Go escape sequences in text given on the command line.
func unescape(text string) (string, error) {
	s, err := strconv.Unquote(`"` + text + `"`)
	if err != nil {
		return "", fmt.Errorf("cannot interpret escapes in text %q (use --raw?): %w", text, err)
	}
	return s, nil
}

func runEdit(ctx context.Context, stdin io.Reader, stdout io.Writer, files []string) error {
	switch {
	case opts.inPlace:
		if len(files) == 0 {
			return fmt.Errorf("--in-place needs at least one file")
		}
		ed, err := opts.editor(false)
		if err != nil {
			return err
		}
		return editInPlace(ctx, ed, files)
	case opts.output != "":
		ed, err := opts.editor(false)
		if err != nil {
			return err
		}
		if err := textfile.CheckTarget(opts.output, files...); err != nil {
			return err
		}
		out, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		err = editAll(ed, stdin, out, files)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		return err
	}
	ed, err := opts.editor(opts.highlight && isTerminal(stdout))
	if err != nil {
		return err
	}
	return editAll(ed, stdin, stdout, files)
}

// editAll edits stdin, or each file in turn, to out.
func editAll(ed *nledit.Editor, stdin io.Reader, out io.Writer, files []string) error {
	if len(files) == 0 {
		return ed.EditStream(stdin, out)
	}
	for _, name := range files {
		in, err := os.Open(name)
		if err != nil {
			return err
		}
		err = ed.EditStream(in, out)
		in.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func editInPlace(ctx context.Context, ed *nledit.Editor, files []string) error {
	batch := textfile.NewBatch(ed, textfile.Jobs(opts.jobs), textfile.KeepGoing(opts.keepGoing))
	results := batch.Subscribe(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			if r.Err != nil {
				tracer().Errorf("%s: %v", r.Path, r.Err)
				continue
			}
			tracer().Infof("%s: wrote %d bytes", r.Path, r.Written)
		}
	}()
	err := batch.Run(ctx, files)
	<-done
	return err
}
