package surface

import (
	"errors"

	"github.com/polishedai/polished/internal/polish"
)

var (
	// ErrFrozen is returned for edits attempted while a session is open.
	ErrFrozen = errors.New("surface is frozen while a polish session is open")

	// ErrNoSession is returned for session operations with no open session.
	ErrNoSession = errors.New("no polish session is open")

	// ErrNoTrigger is returned by Activate when no trigger is shown.
	ErrNoTrigger = errors.New("no selection to polish")

	// ErrStaleSpan is returned by Commit when the buffer no longer matches
	// the session's span.
	ErrStaleSpan = errors.New("selection changed since the session opened")
)

// Dispatcher runs improvement requests. The outcome must be handed back to
// the editor through Deliver on the editor's owning goroutine.
type Dispatcher interface {
	Dispatch(req polish.Request)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(req polish.Request)

func (f DispatcherFunc) Dispatch(req polish.Request) { f(req) }

// Editor coordinates one text surface with at most one polish session.
// It is owned by a single goroutine; see Loop.
type Editor struct {
	buffer   *Buffer
	tracker  *Tracker
	trigger  Trigger
	session  *polish.Session
	seqs     polish.Sequence
	dispatch Dispatcher
	tone     polish.Tone
	anchor   Rect
}

// NewEditor creates an editor over text. New sessions open with tone.
func NewEditor(text string, tone polish.Tone, dispatch Dispatcher) *Editor {
	if !tone.Valid() {
		tone = polish.DefaultTone
	}
	e := &Editor{
		buffer:   NewBuffer(text),
		dispatch: dispatch,
		tone:     tone,
	}
	e.tracker = NewTracker(e.buffer, e.sessionOpen, e.onSelection)
	return e
}

// Buffer exposes the underlying buffer.
func (e *Editor) Buffer() *Buffer { return e.buffer }

// Session returns the open session, or nil.
func (e *Editor) Session() *polish.Session { return e.session }

func (e *Editor) sessionOpen() bool { return e.session != nil }

func (e *Editor) onSelection(span *polish.Span, anchor Rect) {
	if span == nil {
		e.trigger.Hide()
		return
	}
	e.anchor = anchor
	e.trigger.Show(*span, anchor)
}

// Observe feeds a raw selection signal. Signals are ignored while a
// session is open, so the active span stays frozen.
func (e *Editor) Observe(sig Signal) {
	if e.sessionOpen() {
		return
	}
	if sig.Origin == OriginSurface {
		e.buffer.Select(sig.Start, sig.End)
	}
	e.tracker.Observe(sig)
}

// Edit replaces the buffer text, as typing does.
func (e *Editor) Edit(value string) error {
	if e.sessionOpen() {
		return ErrFrozen
	}
	e.buffer.SetValue(value)
	e.tracker.Rescan(Rect{})
	return nil
}

// Activate opens a session for the span under the trigger.
func (e *Editor) Activate() error {
	if e.sessionOpen() {
		return &polish.PreconditionError{Op: "activate", State: e.session.State()}
	}
	span, ok := e.trigger.Span()
	if !ok {
		return ErrNoTrigger
	}
	s, req, err := polish.OpenWith(&e.seqs, span, e.tone)
	if err != nil {
		return err
	}
	e.session = s
	e.trigger.Hide()
	e.dispatch.Dispatch(req)
	return nil
}

// SetTone changes the tone of the open session.
func (e *Editor) SetTone(tone polish.Tone) error {
	if e.session == nil {
		return ErrNoSession
	}
	req, issued, err := e.session.SetTone(tone)
	if err != nil {
		return err
	}
	if issued {
		e.dispatch.Dispatch(req)
	}
	return nil
}

// Retry re-runs the open session's request.
func (e *Editor) Retry() error {
	if e.session == nil {
		return ErrNoSession
	}
	req, err := e.session.Retry()
	if err != nil {
		return err
	}
	e.dispatch.Dispatch(req)
	return nil
}

// Deliver hands a request outcome to the open session. It reports whether
// the outcome was applied.
func (e *Editor) Deliver(o polish.Outcome) bool {
	if e.session == nil {
		return false
	}
	return e.session.Deliver(o)
}

// Dismiss closes the open session without touching the buffer. The
// selection that opened it becomes eligible for the trigger again.
func (e *Editor) Dismiss() error {
	if e.session == nil {
		return ErrNoSession
	}
	err := e.session.Dismiss()
	e.session = nil
	e.tracker.Rescan(e.anchor)
	return err
}

// Commit splices the session result into the buffer and closes the
// session. The buffer is untouched when the session is not ready.
func (e *Editor) Commit() error {
	if e.session == nil {
		return ErrNoSession
	}
	if !e.session.Span().Matches(e.buffer.Value()) {
		return ErrStaleSpan
	}
	span, result, err := e.session.Commit()
	if err != nil {
		return err
	}
	e.session = nil
	e.buffer.SetValue(polish.Splice(e.buffer.Value(), span, result))
	e.tracker.Rescan(Rect{})
	return nil
}
