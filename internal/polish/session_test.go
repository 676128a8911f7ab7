package polish

import (
	"context"
	"errors"
	"testing"
)

const report = "hey i was wonderng if u got the report"

func openReport(t *testing.T, tone Tone) (*Session, Request) {
	t.Helper()
	span, ok := CaptureSpan(report, 4, 23)
	if !ok {
		t.Fatal("expected a valid span")
	}
	s, req, err := Open(span, tone)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, req
}

func TestOpenIssuesFirstRequest(t *testing.T) {
	s, req := openReport(t, ToneProfessional)

	if s.State() != StatePending {
		t.Errorf("state = %s, want pending", s.State())
	}
	if req.Seq != 1 {
		t.Errorf("seq = %d, want 1", req.Seq)
	}
	if req.Text != "i was wonderng if u" {
		t.Errorf("request text = %q", req.Text)
	}
	if req.Tone != ToneProfessional {
		t.Errorf("tone = %q", req.Tone)
	}
}

func TestOpenRejectsEmptySpan(t *testing.T) {
	if _, _, err := Open(Span{Start: 2, End: 2}, ToneCasual); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
	if _, _, err := Open(Span{Start: 0, End: 3, Text: "   "}, ToneCasual); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("expected ErrEmptySelection for blank text, got %v", err)
	}
}

func TestOpenFallsBackToDefaultTone(t *testing.T) {
	s, req := openReport(t, Tone("Shouty"))
	if s.Tone() != DefaultTone || req.Tone != DefaultTone {
		t.Errorf("tone = %q, want %q", s.Tone(), DefaultTone)
	}
}

// Scenario 1.
func TestCommitAfterSuccess(t *testing.T) {
	s, req := openReport(t, ToneProfessional)

	if !s.Deliver(Outcome{Seq: req.Seq, Text: "I was wondering if you"}) {
		t.Fatal("outcome should be applied")
	}
	if s.State() != StateReady {
		t.Fatalf("state = %s, want ready", s.State())
	}

	span, result, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got := Splice(report, span, result)
	if want := "hey I was wondering if you got the report"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
	if !s.Closed() {
		t.Error("session should be closed after commit")
	}
}

// Scenario 2.
func TestFailureThenRetry(t *testing.T) {
	s, req := openReport(t, ToneProfessional)

	s.Deliver(Outcome{Seq: req.Seq, Err: NewRequestError("network error", errors.New("dial tcp"))})
	if s.State() != StateFailed {
		t.Fatalf("state = %s, want failed", s.State())
	}
	if s.Failure() != "network error" {
		t.Errorf("failure = %q", s.Failure())
	}

	_, _, err := s.Commit()
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if pe.State != StateFailed {
		t.Errorf("precondition state = %s", pe.State)
	}

	retry, err := s.Retry()
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if retry.Seq != 2 || s.State() != StatePending {
		t.Errorf("retry seq=%d state=%s", retry.Seq, s.State())
	}
	if s.Failure() != "" {
		t.Errorf("failure should be cleared, got %q", s.Failure())
	}
}

// Scenario 3.
func TestStaleResponseDiscarded(t *testing.T) {
	s, first := openReport(t, ToneProfessional)

	second, issued, err := s.SetTone(ToneCasual)
	if err != nil || !issued {
		t.Fatalf("SetTone: issued=%v err=%v", issued, err)
	}
	if second.Seq != first.Seq+1 {
		t.Errorf("seq = %d, want %d", second.Seq, first.Seq+1)
	}

	if !s.Deliver(Outcome{Seq: second.Seq, Text: "casual"}) {
		t.Fatal("latest outcome should apply")
	}
	if s.Deliver(Outcome{Seq: first.Seq, Text: "professional"}) {
		t.Error("stale outcome should be discarded")
	}
	if s.Result() != "casual" || s.State() != StateReady {
		t.Errorf("result=%q state=%s", s.Result(), s.State())
	}
}

func TestStaleResponseWhilePending(t *testing.T) {
	s, first := openReport(t, ToneProfessional)
	if _, err := s.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if s.Deliver(Outcome{Seq: first.Seq, Err: errors.New("boom")}) {
		t.Error("stale failure should be discarded")
	}
	if s.State() != StatePending {
		t.Errorf("state = %s, want pending", s.State())
	}
}

func TestSetToneSameWhilePendingIsNoop(t *testing.T) {
	s, req := openReport(t, ToneProfessional)

	_, issued, err := s.SetTone(ToneProfessional)
	if err != nil {
		t.Fatalf("SetTone: %v", err)
	}
	if issued {
		t.Error("same tone while pending must not issue a request")
	}
	if s.Seq() != req.Seq {
		t.Errorf("seq changed to %d", s.Seq())
	}
}

func TestSetToneSameWhileReadyReissues(t *testing.T) {
	s, req := openReport(t, ToneProfessional)
	s.Deliver(Outcome{Seq: req.Seq, Text: "done"})

	next, issued, err := s.SetTone(ToneProfessional)
	if err != nil || !issued {
		t.Fatalf("issued=%v err=%v", issued, err)
	}
	if next.Seq != 2 || s.State() != StatePending {
		t.Errorf("seq=%d state=%s", next.Seq, s.State())
	}
}

func TestSetToneRejectsUnknownTone(t *testing.T) {
	s, _ := openReport(t, ToneProfessional)
	if _, _, err := s.SetTone(Tone("Pirate")); err == nil {
		t.Error("expected error for unknown tone")
	}
}

func TestCommitWhilePendingRejected(t *testing.T) {
	s, _ := openReport(t, ToneProfessional)
	if _, _, err := s.Commit(); err == nil {
		t.Fatal("commit while pending should fail")
	}
	if s.State() != StatePending {
		t.Errorf("state = %s, want pending", s.State())
	}
}

func TestDismissDropsLateOutcome(t *testing.T) {
	s, req := openReport(t, ToneProfessional)

	if err := s.Dismiss(); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if s.Deliver(Outcome{Seq: req.Seq, Text: "late"}) {
		t.Error("outcome after dismiss should be dropped")
	}
	if s.State() != StateClosed {
		t.Errorf("state = %s, want closed", s.State())
	}
}

func TestSharedSequenceSeparatesSessions(t *testing.T) {
	span, _ := CaptureSpan(report, 4, 23)
	var seqs Sequence

	first, firstReq, err := OpenWith(&seqs, span, ToneProfessional)
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	if err := first.Dismiss(); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	second, secondReq, err := OpenWith(&seqs, span, ToneProfessional)
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	if secondReq.Seq == firstReq.Seq {
		t.Fatalf("second session reused seq %d", firstReq.Seq)
	}
	if second.Deliver(Outcome{Seq: firstReq.Seq, Text: "late"}) {
		t.Error("outcome of the dismissed session applied to the next one")
	}
	if second.State() != StatePending {
		t.Errorf("state = %s, want pending", second.State())
	}

	retry, err := second.Retry()
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if retry.Seq != secondReq.Seq+1 {
		t.Errorf("retry seq = %d, want %d", retry.Seq, secondReq.Seq+1)
	}
}

func TestClosedSessionRejectsMutation(t *testing.T) {
	s, _ := openReport(t, ToneProfessional)
	s.Dismiss()

	if err := s.Dismiss(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Dismiss: %v", err)
	}
	if _, err := s.Retry(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Retry: %v", err)
	}
	if _, _, err := s.SetTone(ToneCasual); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("SetTone: %v", err)
	}
	if _, _, err := s.Commit(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Commit: %v", err)
	}
}

func TestRunPackagesOutcome(t *testing.T) {
	imp := ImproverFunc(func(_ context.Context, text string, tone Tone) (string, error) {
		return text + " (" + string(tone) + ")", nil
	})
	o := Run(context.Background(), imp, Request{Seq: 7, Text: "hi", Tone: ToneCasual})
	if o.Seq != 7 || o.Text != "hi (Casual)" || o.Err != nil {
		t.Errorf("outcome = %+v", o)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:    "idle",
		StatePending: "pending",
		StateReady:   "ready",
		StateFailed:  "failed",
		StateClosed:  "closed",
		State(42):    "unknown",
	}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(st), st.String(), want)
		}
	}
}

func TestStateTextRoundTrip(t *testing.T) {
	for _, st := range []State{StateIdle, StatePending, StateReady, StateFailed, StateClosed} {
		text, _ := st.MarshalText()
		var got State
		if err := got.UnmarshalText(text); err != nil || got != st {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, got, err, st)
		}
	}
	var s State
	if err := s.UnmarshalText([]byte("busy")); err == nil {
		t.Error("expected error for unknown state name")
	}
}
