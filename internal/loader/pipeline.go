package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/five82/dynotable/internal/source"
	"github.com/five82/dynotable/internal/state"
)

// Options configure a Pipeline.
type Options struct {
	Table        string
	RequireTable bool          // refuse to build a pipeline without a table
	AutoRefresh  time.Duration // zero disables the periodic timer
	Store        *state.Store  // optional mirror of delivered stages
}

// Pipeline fetches frames of type F and reports every step as a Stage on a
// single channel. Three triggers feed it: the initial load when the
// consumer attaches, the periodic timer and Reload.
type Pipeline[F any] struct {
	fetch  func(ctx context.Context, h source.Handle, table string) (F, error)
	handle source.Handle
	opts   Options

	// fetches hold the read lock, connection resets the write lock
	handleMu sync.RWMutex

	reload    chan struct{}
	newTicker func(d time.Duration) (<-chan time.Time, func())

	mu        sync.Mutex
	started   bool
	cancelled bool
	cancel    context.CancelFunc
	done      chan struct{}
}

type result[F any] struct {
	seq   uint64
	frame F
	err   error
}

// New validates opts and builds an idle pipeline.
func New[F any](fetch func(ctx context.Context, h source.Handle, table string) (F, error), h source.Handle, opts Options) (*Pipeline[F], error) {
	if fetch == nil {
		return nil, &ConfigurationError{Field: "loader", Reason: "no fetch function"}
	}
	if h == nil {
		return nil, &ConfigurationError{Field: "source", Reason: "no data source handle"}
	}
	opts.Table = strings.TrimSpace(opts.Table)
	if opts.RequireTable && opts.Table == "" {
		return nil, &ConfigurationError{Field: "table", Reason: "a table name is required"}
	}
	if opts.AutoRefresh < 0 {
		return nil, &ConfigurationError{Field: "auto refresh", Reason: fmt.Sprintf("period %v is negative", opts.AutoRefresh)}
	}
	return &Pipeline[F]{
		fetch:     fetch,
		handle:    h,
		opts:      opts,
		reload:    make(chan struct{}, 1),
		newTicker: realTicker,
		done:      make(chan struct{}),
	}, nil
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Table returns the configured table name.
func (p *Pipeline[F]) Table() string { return p.opts.Table }

// Start attaches the single consumer and issues the initial load. The
// returned channel is closed after Cancel or when ctx ends.
func (p *Pipeline[F]) Start(ctx context.Context) (<-chan Stage[F], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelled {
		return nil, ErrCancelled
	}
	if p.started {
		return nil, ErrAlreadyStarted
	}
	p.started = true

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	out := make(chan Stage[F])
	go p.run(ctx, out)
	return out, nil
}

// Reload resets the source connection and fetches again. Reloads requested
// while one is already pending are merged into it.
func (p *Pipeline[F]) Reload() {
	select {
	case p.reload <- struct{}{}:
	default:
	}
}

// Cancel stops the timer and any in-flight fetch. No stage is delivered
// once Cancel returns.
func (p *Pipeline[F]) Cancel() {
	p.mu.Lock()
	p.cancelled = true
	cancel := p.cancel
	started := p.started
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if started {
		<-p.done
	}
}

// Err returns ErrCancelled once the pipeline has been cancelled.
func (p *Pipeline[F]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelled {
		return ErrCancelled
	}
	return nil
}

func (p *Pipeline[F]) run(ctx context.Context, out chan<- Stage[F]) {
	defer close(p.done)
	defer close(out)

	var tick <-chan time.Time
	if p.opts.AutoRefresh > 0 {
		c, stop := p.newTicker(p.opts.AutoRefresh)
		defer stop()
		tick = c
	}

	results := make(chan result[F])
	var (
		seq      uint64
		inflight context.CancelFunc
	)
	defer func() {
		if inflight != nil {
			inflight()
		}
	}()

	trigger := func(kind StageKind, reset bool) bool {
		if inflight != nil {
			inflight()
		}
		seq++
		fetchCtx, cancel := context.WithCancel(ctx)
		inflight = cancel
		if !p.emit(ctx, out, Stage[F]{Kind: kind, Attempt: seq}) {
			return false
		}
		go p.fetchOne(ctx, fetchCtx, seq, reset, results)
		return true
	}

	if !trigger(StageLoadingInitialised, false) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			// Ticks never supersede a running fetch; only Reload does.
			if inflight != nil {
				continue
			}
			if !trigger(StageLoadingUnderway, false) {
				return
			}
		case <-p.reload:
			if !trigger(StageRefreshing, true) {
				return
			}
		case r := <-results:
			if r.seq != seq {
				log.Printf("discarding superseded load attempt %d (latest %d)", r.seq, seq)
				continue
			}
			inflight()
			inflight = nil

			stage := Stage[F]{Kind: StageLoadSucceeded, Frame: r.frame, Attempt: r.seq}
			if r.err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("load of %s failed: %v", p.tableLabel(), r.err)
				stage = Stage[F]{Kind: StageLoadFailed, Err: r.err, Attempt: r.seq}
			}
			if !p.emit(ctx, out, stage) {
				return
			}
		}
	}
}

// emit delivers st unless the pipeline has been cancelled.
func (p *Pipeline[F]) emit(ctx context.Context, out chan<- Stage[F], st Stage[F]) bool {
	if ctx.Err() != nil {
		return false
	}
	p.record(st)
	select {
	case out <- st:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *Pipeline[F]) record(st Stage[F]) {
	if p.opts.Store == nil {
		return
	}
	if st.IsTrigger() {
		p.opts.Store.Begin(st.Kind.String())
		return
	}
	p.opts.Store.Finish(st.Kind.String(), st.Err)
}

func (p *Pipeline[F]) fetchOne(pipelineCtx, ctx context.Context, seq uint64, reset bool, results chan<- result[F]) {
	frame, err := p.attempt(ctx, reset)
	select {
	case results <- result[F]{seq: seq, frame: frame, err: err}:
	case <-pipelineCtx.Done():
	}
}

// attempt runs one fetch. A reset waits for in-flight fetches to release
// the handle before the refetch starts.
func (p *Pipeline[F]) attempt(ctx context.Context, reset bool) (frame F, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FetchError{Op: "fetch", Table: p.opts.Table, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if reset {
		p.handleMu.Lock()
		resetErr := p.handle.ResetConnection()
		p.handleMu.Unlock()
		if resetErr != nil {
			return frame, &FetchError{Op: "reset connection", Err: resetErr}
		}
	}

	p.handleMu.RLock()
	defer p.handleMu.RUnlock()
	if err := ctx.Err(); err != nil {
		return frame, err
	}
	frame, err = p.fetch(ctx, p.handle, p.opts.Table)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return frame, err
		}
		return frame, &FetchError{Op: "fetch", Table: p.opts.Table, Err: err}
	}
	return frame, nil
}

func (p *Pipeline[F]) tableLabel() string {
	if p.opts.Table == "" {
		return "table"
	}
	return p.opts.Table
}
