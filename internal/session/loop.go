// Package session serializes parameter changes in front of the explorer
// core, which is single-threaded.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-sigexplore/explorer"
)

// DefaultBuffer is the queue capacity used when none is configured.
const DefaultBuffer = 16

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("session closed")

// Recomputer is the part of *explorer.Controller the loop drives.
type Recomputer interface {
	RecomputeState(st explorer.State) (explorer.Views, error)
}

// Sink receives the outcome of every submitted state, in submission order.
type Sink func(st explorer.State, v explorer.Views, err error)

// Loop is a single-consumer queue. States are processed one at a time in
// the order they were submitted; none is dropped or merged.
type Loop struct {
	core   Recomputer
	sink   Sink
	queue  chan explorer.State
	logger *slog.Logger

	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	pending sync.WaitGroup // submits past the closed check
}

// Option configures a Loop.
type Option func(*Loop)

// WithBuffer sets the queue capacity. Values below 1 are ignored.
func WithBuffer(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queue = make(chan explorer.State, n)
		}
	}
}

// WithLogger sets the logger for processing events.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loop feeding core and reporting to sink.
func New(core Recomputer, sink Sink, opts ...Option) *Loop {
	l := &Loop{
		core:   core,
		sink:   sink,
		queue:  make(chan explorer.State, DefaultBuffer),
		logger: slog.New(slog.DiscardHandler),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Submit enqueues st. It blocks while the queue is full and returns the
// context error if ctx ends first, or ErrClosed if the loop is closed
// meanwhile. A nil return means Run will process st.
func (l *Loop) Submit(ctx context.Context, st explorer.State) error {
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return ErrClosed
	}
	l.pending.Add(1)
	l.mu.RUnlock()
	defer l.pending.Done()

	select {
	case l.queue <- st:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting submissions and releases blocked submitters. Run
// drains what is already queued and then returns nil.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.done)
	}
}

// Run processes queued states until Close has been called and the queue is
// drained, or until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st := <-l.queue:
			l.process(st)
		case <-l.done:
			l.pending.Wait()
			for {
				select {
				case st := <-l.queue:
					l.process(st)
				default:
					return nil
				}
			}
		}
	}
}

func (l *Loop) process(st explorer.State) {
	v, err := l.core.RecomputeState(st)
	if err != nil {
		l.logger.Warn("recompute rejected", "error", err)
	}
	if l.sink != nil {
		l.sink(st, v, err)
	}
}
