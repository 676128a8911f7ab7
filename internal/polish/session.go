// Package polish implements the improvement session: the state machine that
// takes one selected span through a remote rewrite and back into the text.
package polish

import (
	"context"
	"fmt"
	"strings"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StatePending
	StateReady
	StateFailed
	StateClosed
)

var stateNames = [...]string{"idle", "pending", "ready", "failed", "closed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// Improver rewrites text in the given tone.
type Improver interface {
	Improve(ctx context.Context, text string, tone Tone) (string, error)
}

// ImproverFunc adapts a function to Improver.
type ImproverFunc func(ctx context.Context, text string, tone Tone) (string, error)

func (f ImproverFunc) Improve(ctx context.Context, text string, tone Tone) (string, error) {
	return f(ctx, text, tone)
}

// IsBlank reports whether text has nothing to improve. Improvers return ""
// for blank input without a remote call.
func IsBlank(text string) bool { return strings.TrimSpace(text) == "" }

// Request is one improvement call issued by a session. Seq identifies it
// within the session; only the outcome of the latest Seq is applied.
type Request struct {
	Seq  uint64
	Text string
	Tone Tone
}

// Outcome is the result of a Request.
type Outcome struct {
	Seq  uint64
	Text string
	Err  error
}

// Run executes req with imp and packages the result as an Outcome.
func Run(ctx context.Context, imp Improver, req Request) Outcome {
	text, err := imp.Improve(ctx, req.Text, req.Tone)
	return Outcome{Seq: req.Seq, Text: text, Err: err}
}

// Sequence hands out request numbers. Sessions opened on the same
// Sequence never share a number, so an outcome matches at most one of them.
// The zero value is ready to use.
type Sequence struct {
	n uint64
}

// Next returns the next request number.
func (q *Sequence) Next() uint64 {
	q.n++
	return q.n
}

// Session is a single polish interaction, from open to commit or dismiss.
// It is owned by one caller and is not safe for concurrent use.
type Session struct {
	span    Span
	tone    Tone
	state   State
	result  string
	failure string
	seq     uint64
	seqs    *Sequence
}

// Open starts a session for span and returns the first request to run.
// The session is Pending on return.
func Open(span Span, tone Tone) (*Session, Request, error) {
	return OpenWith(&Sequence{}, span, tone)
}

// OpenWith is Open with request numbers drawn from seqs. Callers that run
// several sessions one after another share one Sequence so a late outcome
// of a closed session cannot match the next one.
func OpenWith(seqs *Sequence, span Span, tone Tone) (*Session, Request, error) {
	if IsBlank(span.Text) || span.Start == span.End {
		return nil, Request{}, ErrEmptySelection
	}
	if !tone.Valid() {
		tone = DefaultTone
	}
	s := &Session{span: span, tone: tone, state: StateIdle, seqs: seqs}
	return s, s.issue(), nil
}

// Span returns the span the session was opened on.
func (s *Session) Span() Span { return s.span }

// Tone returns the current tone.
func (s *Session) Tone() Tone { return s.tone }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Result returns the improved text when the session is Ready.
func (s *Session) Result() string { return s.result }

// Failure returns the failure message when the session is Failed.
func (s *Session) Failure() string { return s.failure }

// Seq returns the sequence number of the latest request.
func (s *Session) Seq() uint64 { return s.seq }

// Closed reports whether the session was dismissed or committed.
func (s *Session) Closed() bool { return s.state == StateClosed }

// SetTone switches to tone and issues a new request. Choosing the current
// tone while a request is pending does nothing and returns issued=false.
func (s *Session) SetTone(tone Tone) (req Request, issued bool, err error) {
	if s.state == StateClosed {
		return Request{}, false, ErrSessionClosed
	}
	if !tone.Valid() {
		return Request{}, false, &PreconditionError{Op: "set tone " + string(tone), State: s.state}
	}
	if tone == s.tone && s.state == StatePending {
		return Request{}, false, nil
	}
	s.tone = tone
	return s.issue(), true, nil
}

// Retry issues a new request with the current tone.
func (s *Session) Retry() (Request, error) {
	if s.state == StateClosed {
		return Request{}, ErrSessionClosed
	}
	return s.issue(), nil
}

// Deliver applies an outcome. Outcomes for superseded requests, or arriving
// after the session closed, are dropped and Deliver returns false.
func (s *Session) Deliver(o Outcome) bool {
	if s.state != StatePending || o.Seq != s.seq {
		return false
	}
	if o.Err != nil {
		s.state = StateFailed
		s.failure = FailureMessage(o.Err)
		s.result = ""
		return true
	}
	s.state = StateReady
	s.result = o.Text
	s.failure = ""
	return true
}

// Dismiss closes the session from any live state. Pending outcomes will be
// dropped when they arrive.
func (s *Session) Dismiss() error {
	if s.state == StateClosed {
		return ErrSessionClosed
	}
	s.state = StateClosed
	return nil
}

// Commit closes a Ready session and returns the span and replacement text
// for the caller to splice into its buffer.
func (s *Session) Commit() (Span, string, error) {
	switch s.state {
	case StateClosed:
		return Span{}, "", ErrSessionClosed
	case StateReady:
		s.state = StateClosed
		return s.span, s.result, nil
	default:
		return Span{}, "", &PreconditionError{Op: "commit", State: s.state}
	}
}

func (s *Session) issue() Request {
	s.seq = s.seqs.Next()
	s.state = StatePending
	s.result = ""
	s.failure = ""
	return Request{Seq: s.seq, Text: s.span.Text, Tone: s.tone}
}
