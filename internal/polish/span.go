package polish

import "strings"

// Span is an immutable snapshot of a selected range and its text at
// capture time. Start and End are rune offsets into the buffer.
// A span does not follow later buffer edits; use Matches before applying it.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// CaptureSpan snapshots buffer[start:end]. The bounds may be given in either
// order and are clamped to the buffer. ok is false for collapsed or
// whitespace-only selections.
func CaptureSpan(buffer string, start, end int) (Span, bool) {
	if start > end {
		start, end = end, start
	}
	runes := []rune(buffer)
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if start == end {
		return Span{}, false
	}
	text := string(runes[start:end])
	if strings.TrimSpace(text) == "" {
		return Span{}, false
	}
	return Span{Start: start, End: end, Text: text}, true
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Matches reports whether the span still describes buffer, i.e. its bounds
// fit and the text at those bounds is unchanged.
func (s Span) Matches(buffer string) bool {
	runes := []rune(buffer)
	if s.Start < 0 || s.End < s.Start || s.End > len(runes) {
		return false
	}
	return string(runes[s.Start:s.End]) == s.Text
}

// Splice returns buffer with the span's range replaced by result.
// It assumes the span was captured from buffer; callers that allow edits
// while a span is held should check Matches first.
func Splice(buffer string, span Span, result string) string {
	runes := []rune(buffer)
	start := clamp(span.Start, 0, len(runes))
	end := clamp(span.End, start, len(runes))

	var b strings.Builder
	b.Grow(len(buffer) + len(result))
	b.WriteString(string(runes[:start]))
	b.WriteString(result)
	b.WriteString(string(runes[end:]))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
