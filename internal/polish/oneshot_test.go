package polish

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPolishText(t *testing.T) {
	var gotTone Tone
	imp := ImproverFunc(func(ctx context.Context, text string, tone Tone) (string, error) {
		gotTone = tone
		return strings.ToUpper(text), nil
	})

	got, err := PolishText(context.Background(), imp, "héllo wörld", ToneCasual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "HÉLLO WÖRLD" {
		t.Errorf("got %q", got)
	}
	if gotTone != ToneCasual {
		t.Errorf("tone = %s, want Casual", gotTone)
	}
}

func TestPolishTextBlank(t *testing.T) {
	imp := ImproverFunc(func(ctx context.Context, text string, tone Tone) (string, error) {
		t.Fatal("improver must not be called for blank text")
		return "", nil
	})
	if _, err := PolishText(context.Background(), imp, " \n ", ToneNeutral); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("err = %v, want ErrEmptySelection", err)
	}
}

func TestPolishTextEmptyResultKeepsText(t *testing.T) {
	imp := ImproverFunc(func(ctx context.Context, text string, tone Tone) (string, error) {
		return "", nil
	})
	got, err := PolishText(context.Background(), imp, "keep", ToneNeutral)
	if err != nil || got != "keep" {
		t.Errorf("got %q, %v; want %q, nil", got, err, "keep")
	}
}

func TestPolishTextFailure(t *testing.T) {
	boom := NewRequestError("Connection failed.", errors.New("dial"))
	imp := ImproverFunc(func(ctx context.Context, text string, tone Tone) (string, error) {
		return "", boom
	})
	_, err := PolishText(context.Background(), imp, "text", ToneNeutral)
	if FailureMessage(err) != "Connection failed." {
		t.Errorf("err = %v", err)
	}
}
