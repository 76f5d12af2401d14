package textfile

import (
	"context"
	"errors"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/nledit"
	"golang.org/x/sync/errgroup"
)

// DefaultJobs is the number of files edited concurrently if a batch does not
// set a limit.
const DefaultJobs = 4

// Result reports the outcome of editing a single file of a batch.
type Result struct {
	Path    string // file edited
	Written int64  // bytes of edited text
	Err     error  // nil on success
}

// Batch edits a set of files in place, concurrently, with a single editor.
// Every finished file is broadcast as a Result to all subscribers.
//
// A Batch runs only once. Subscribers have to subscribe before calling Run
// and must drain their channels, as broadcasting blocks on slow readers.
type Batch struct {
	editor    *nledit.Editor
	jobs      int
	keepGoing bool
	cast      *caster.Caster // broadcaster for finished files
	ran       bool
}

// BatchOption is a type to influence the behaviour of a batch.
type BatchOption func(*Batch)

// Jobs sets the maximum number of files edited concurrently.
func Jobs(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.jobs = n
		}
	}
}

// KeepGoing lets a batch continue with the remaining files after an edit
// failed. Without it, the first failure cancels all files not yet started.
func KeepGoing(keep bool) BatchOption {
	return func(b *Batch) {
		b.keepGoing = keep
	}
}

// NewBatch creates a batch for an editor.
func NewBatch(ed *nledit.Editor, opts ...BatchOption) *Batch {
	b := &Batch{
		editor: ed,
		jobs:   DefaultJobs,
		cast:   caster.New(nil), // we will broadcast messages when files are done
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe returns a channel which receives a Result for every file of the
// batch. The channel is closed after the batch has finished, or when ctx is
// done.
func (b *Batch) Subscribe(ctx context.Context) <-chan Result {
	results := make(chan Result)
	sub, ok := b.cast.Sub(ctx, uint(b.jobs))
	if !ok {
		close(results)
		return results
	}
	go func() {
		defer close(results)
		for {
			var msg interface{}
			var open bool
			select {
			case msg, open = <-sub:
				if !open {
					return
				}
			case <-ctx.Done():
				go drain(sub)
				return
			}
			r, isResult := msg.(Result)
			if !isResult {
				continue
			}
			select {
			case results <- r:
			case <-ctx.Done():
				go drain(sub)
				return
			}
		}
	}()
	return results
}

// drain keeps a subscription from blocking publishers until the caster
// closes it.
func drain(sub <-chan interface{}) {
	for range sub {
	}
}

// Run edits all files in place. With KeepGoing set, every file is attempted
// and all failures are returned, joined; otherwise Run stops at the first
// failure and returns it.
func (b *Batch) Run(ctx context.Context, paths []string) error {
	if b.editor == nil || b.ran {
		return nledit.ErrIllegalArguments
	}
	b.ran = true
	defer b.cast.Close()
	//
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)
	var mx sync.Mutex // guards errs
	var errs []error
	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			// with keepGoing set, gctx is done only if ctx is
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := EditInPlace(b.editor, path)
			b.cast.Pub(Result{Path: path, Written: n, Err: err})
			if err == nil {
				return nil
			}
			if b.keepGoing {
				mx.Lock()
				errs = append(errs, err)
				mx.Unlock()
				return nil
			}
			return err
		})
	}
	err := g.Wait()
	tracer().Infof("batch of %d file(s) done", len(paths))
	if err == nil {
		err = ctx.Err() // files may have been skipped
	}
	if err != nil {
		return err
	}
	return errors.Join(errs...)
}
