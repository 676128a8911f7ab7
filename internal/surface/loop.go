package surface

import (
	"context"
	"errors"
	"sync"

	"github.com/polishedai/polished/internal/polish"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("editor loop stopped")

// Loop runs an Editor on a single goroutine. UI commands and request
// outcomes are both queued onto it, so the editor never needs a lock.
// Improvement requests run on their own goroutines; there is no hard
// cancellation, superseded outcomes are dropped by the session.
type Loop struct {
	editor   *Editor
	improver polish.Improver
	onUpdate func(View)

	events chan func()
	done   chan struct{}
	ctx    context.Context
	wg     sync.WaitGroup
}

// NewLoop creates a loop around a new editor over text. onUpdate, if set,
// is called on the loop goroutine after every change.
func NewLoop(text string, tone polish.Tone, improver polish.Improver, onUpdate func(View)) *Loop {
	l := &Loop{
		improver: improver,
		onUpdate: onUpdate,
		events:   make(chan func()),
		done:     make(chan struct{}),
	}
	l.editor = NewEditor(text, tone, DispatcherFunc(l.dispatch))
	return l
}

// Run processes events until ctx is cancelled, then waits for in-flight
// requests to return.
func (l *Loop) Run(ctx context.Context) error {
	l.ctx = ctx
	if l.onUpdate != nil {
		l.onUpdate(l.editor.View())
	}
	defer l.wg.Wait()
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}

// Do runs fn against the editor on the loop goroutine and returns its
// error. Observers are notified afterwards.
func (l *Loop) Do(ctx context.Context, fn func(e *Editor) error) error {
	reply := make(chan error, 1)
	event := func() {
		err := fn(l.editor)
		l.notify()
		reply <- err
	}
	select {
	case l.events <- event:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// View returns a snapshot taken on the loop goroutine.
func (l *Loop) View(ctx context.Context) (View, error) {
	var v View
	err := l.Do(ctx, func(e *Editor) error {
		v = e.View()
		return nil
	})
	return v, err
}

func (l *Loop) dispatch(req polish.Request) {
	ctx := l.ctx
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		outcome := polish.Run(ctx, l.improver, req)
		deliver := func() {
			if l.editor.Deliver(outcome) {
				l.notify()
			}
		}
		select {
		case l.events <- deliver:
		case <-l.done:
		}
	}()
}

func (l *Loop) notify() {
	if l.onUpdate != nil {
		l.onUpdate(l.editor.View())
	}
}
