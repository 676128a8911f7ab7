package polish

import (
	"context"
	"unicode/utf8"
)

// PolishText runs a complete session over all of text: open, one request,
// commit. It is the non-interactive path used by the CLI and tool servers.
// Blank text returns ErrEmptySelection. An empty improvement leaves the
// text unchanged.
func PolishText(ctx context.Context, imp Improver, text string, tone Tone) (string, error) {
	span, ok := CaptureSpan(text, 0, utf8.RuneCountInString(text))
	if !ok {
		return "", ErrEmptySelection
	}
	s, req, err := Open(span, tone)
	if err != nil {
		return "", err
	}

	outcome := Run(ctx, imp, req)
	s.Deliver(outcome)
	if s.State() == StateFailed {
		return "", outcome.Err
	}
	if s.Result() == "" {
		_ = s.Dismiss()
		return text, nil
	}

	committed, result, err := s.Commit()
	if err != nil {
		return "", err
	}
	return Splice(text, committed, result), nil
}
