package views

import (
	"context"
	"sync"
)

// Fetch produces a loader's value
type Fetch[T any] func(ctx context.Context) (T, error)

// Loader runs one fetch at a time and exposes its result as a Load.
// Starting a new fetch cancels the previous one; a result that arrives
// after it was superseded is discarded.
type Loader[T any] struct {
	mu     sync.Mutex
	seq    Sequencer
	state  Load[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoader returns an idle loader in the Loading state
func NewLoader[T any]() *Loader[T] {
	return &Loader[T]{state: Loading[T]()}
}

// Start cancels any in-flight fetch and runs fetch under a child of ctx
func (l *Loader[T]) Start(ctx context.Context, fetch Fetch[T]) Token {
	fctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	token := l.seq.Next()
	l.state = Loading[T]()
	l.cancel = cancel
	l.done = done
	l.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		v, err := fetch(fctx)
		l.apply(token, v, err)
	}()
	return token
}

func (l *Loader[T]) apply(token Token, v T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.seq.IsCurrent(token) {
		return false
	}
	if err != nil {
		l.state = Failed[T](err)
	} else {
		l.state = Loaded(v)
	}
	l.cancel = nil
	return true
}

// Stop cancels the in-flight fetch, if any, and drops its result.
// The last applied state is kept.
func (l *Loader[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq.Invalidate()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Pending reports whether a fetch is in flight and still current
func (l *Loader[T]) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// State returns the current Load
func (l *Loader[T]) State() Load[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Wait blocks until the latest fetch settles or ctx is done, then returns
// the current state. A fetch started while waiting is waited for too.
func (l *Loader[T]) Wait(ctx context.Context) Load[T] {
	for {
		l.mu.Lock()
		done := l.done
		l.mu.Unlock()

		if done == nil {
			return l.State()
		}

		select {
		case <-done:
		case <-ctx.Done():
			return l.State()
		}

		l.mu.Lock()
		settled := l.done == done
		l.mu.Unlock()
		if settled {
			return l.State()
		}
	}
}
