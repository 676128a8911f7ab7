package polish

import "testing"

func TestCaptureSpan(t *testing.T) {
	tests := []struct {
		name       string
		buffer     string
		start, end int
		wantOK     bool
		wantText   string
	}{
		{"forward", "hello world", 0, 5, true, "hello"},
		{"backward", "hello world", 11, 6, true, "world"},
		{"collapsed", "hello world", 3, 3, false, ""},
		{"whitespace only", "hello   world", 5, 8, false, ""},
		{"clamped end", "hello", 2, 99, true, "llo"},
		{"negative start", "hello", -4, 2, true, "he"},
		{"multibyte", "héllo wörld", 6, 11, true, "wörld"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := CaptureSpan(tt.buffer, tt.start, tt.end)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if span.Text != tt.wantText {
				t.Errorf("text = %q, want %q", span.Text, tt.wantText)
			}
			if !span.Matches(tt.buffer) {
				t.Error("captured span should match its buffer")
			}
		})
	}
}

func TestSpliceIdentity(t *testing.T) {
	buffers := []string{
		"hey i was wonderng if u got the report",
		"naïve café ☕ order",
		"x",
	}
	for _, b := range buffers {
		n := len([]rune(b))
		for start := 0; start < n; start++ {
			for end := start + 1; end <= n; end++ {
				span := Span{Start: start, End: end, Text: string([]rune(b)[start:end])}
				if got := Splice(b, span, span.Text); got != b {
					t.Fatalf("Splice(%q, %d, %d) = %q, want unchanged", b, start, end, got)
				}
			}
		}
	}
}

func TestSpliceReplaces(t *testing.T) {
	got := Splice("one two three", Span{Start: 4, End: 7, Text: "two"}, "2")
	if got != "one 2 three" {
		t.Errorf("got %q", got)
	}
}

func TestSpanMatchesDetectsEdits(t *testing.T) {
	span, _ := CaptureSpan("the quick fox", 4, 9)
	if span.Matches("the slow fox") {
		t.Error("span should not match an edited buffer")
	}
	if span.Matches("the") {
		t.Error("span should not match a shorter buffer")
	}
}

func TestParseTone(t *testing.T) {
	for _, tone := range Tones() {
		got, err := ParseTone(" " + string(tone) + " ")
		if err != nil || got != tone {
			t.Errorf("ParseTone(%q) = %q, %v", tone, got, err)
		}
	}
	if got, _ := ParseTone("casual"); got != ToneCasual {
		t.Errorf("ParseTone is case sensitive: %q", got)
	}
	if _, err := ParseTone("sarcastic"); err == nil {
		t.Error("expected error for unknown tone")
	}
}

func TestTonesOrderAndCopy(t *testing.T) {
	got := Tones()
	want := []Tone{ToneNeutral, ToneProfessional, ToneCasual, ToneCreative}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tones()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	got[0] = "mutated"
	if Tones()[0] != ToneNeutral {
		t.Error("Tones must return a copy")
	}
}
