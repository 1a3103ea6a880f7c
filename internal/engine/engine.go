// Package engine owns the live board state. Every change, whether a user
// action or a fetch completion, is queued and applied by a single writer
// goroutine, one transition at a time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

var ErrClosed = errors.New("engine closed")

// Source is the read-only remote the engine reconciles against.
type Source interface {
	FetchBoardList(ctx context.Context) ([]model.Board, error)
	FetchBoardTasks(ctx context.Context, b model.Board) ([]model.Task, error)
}

// Observer runs on the writer goroutine after each committed transition. It
// must not retain st or call back into the engine synchronously.
type Observer func(name string, st *state.State)

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithFetchLimit caps concurrent per-board fetches during Sync. Zero means
// unlimited.
func WithFetchLimit(n int) Option {
	return func(e *Engine) { e.fetchLimit = n }
}

type Engine struct {
	st  *state.State
	src Source
	log *log.Logger

	observers  []Observer
	fetchLimit int

	q    *opQueue
	done chan struct{}

	mu       sync.Mutex
	started  bool
	subs     []chan struct{}
	stopOnce sync.Once
}

// New wraps st; the engine owns it from here on. src may be nil for offline
// use, in which case fetches fail fast.
func New(st *state.State, src Source, opts ...Option) *Engine {
	if st == nil {
		st = state.New()
	}
	e := &Engine{
		st:   st,
		src:  src,
		log:  log.StandardLogger(),
		q:    newOpQueue(),
		done: make(chan struct{}),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start launches the writer goroutine. Calling it twice is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.run()
}

// Close stops accepting work, applies what is already queued and waits for
// the writer to exit.
func (e *Engine) Close() {
	e.stopOnce.Do(func() {
		e.q.Close()
		e.mu.Lock()
		started := e.started
		e.started = true
		e.mu.Unlock()
		if !started {
			go e.run()
		}
		<-e.done

		e.mu.Lock()
		for _, ch := range e.subs {
			close(ch)
		}
		e.subs = nil
		e.mu.Unlock()
	})
}

// Subscribe returns a channel that receives a value after commits. Signals
// coalesce; receivers should re-read with Snapshot. The channel is closed by
// Close.
func (e *Engine) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, ch)
	return ch
}

func (e *Engine) run() {
	defer close(e.done)
	for {
		if o, ok := e.q.TryDequeue(); ok {
			e.apply(o)
			continue
		}
		if e.q.Drained() {
			return
		}
		<-e.q.Wait()
	}
}

// apply runs fn against a copy and commits only on success, so a failed
// transition never leaves partial changes behind.
func (e *Engine) apply(o op) {
	if o.readOnly {
		err := o.fn(e.st)
		if o.done != nil {
			o.done <- err
		}
		return
	}
	next := e.st.Clone()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("transition %s panicked: %v", o.name, r)
			}
		}()
		return o.fn(next)
	}()
	if err == nil {
		e.st = next
		for _, obs := range e.observers {
			obs(o.name, e.st)
		}
		e.broadcast()
	} else {
		e.log.WithError(err).WithField("transition", o.name).Debug("transition rejected")
	}
	if o.done != nil {
		o.done <- err
	}
}

func (e *Engine) broadcast() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Do queues fn and waits until it has been applied. The returned error is
// fn's own error, ctx's error, or ErrClosed.
func (e *Engine) Do(ctx context.Context, name string, fn func(*state.State) error) error {
	return e.wait(ctx, op{name: name, fn: fn, done: make(chan error, 1)})
}

func (e *Engine) wait(ctx context.Context, o op) error {
	if !e.q.Enqueue(o) {
		return ErrClosed
	}
	select {
	case err := <-o.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		select {
		case err := <-o.done:
			return err
		default:
			return ErrClosed
		}
	}
}

// Post queues fn without waiting.
func (e *Engine) Post(name string, fn func(*state.State) error) error {
	if !e.q.Enqueue(op{name: name, fn: fn}) {
		return ErrClosed
	}
	return nil
}

// Snapshot returns a deep copy of the state as of all previously queued work.
func (e *Engine) Snapshot(ctx context.Context) (*state.State, error) {
	var snap *state.State
	o := op{name: "snapshot", readOnly: true, done: make(chan error, 1), fn: func(st *state.State) error {
		snap = st.Clone()
		return nil
	}}
	if err := e.wait(ctx, o); err != nil {
		return nil, err
	}
	return snap, nil
}
