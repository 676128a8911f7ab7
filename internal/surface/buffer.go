// Package surface hosts the editable text surface: the buffer, the selection
// tracker, the polish trigger and the editor that drives a polish session
// against them.
package surface

import "github.com/polishedai/polished/internal/polish"

// Host is the text surface the tracker observes and the editor writes to.
// Offsets are rune offsets.
type Host interface {
	Selection() (start, end int)
	Value() string
	SetValue(v string)
}

// Buffer is an in-memory Host. It is the single owner of the document text.
type Buffer struct {
	value      string
	start, end int
}

// NewBuffer returns a buffer holding value with a collapsed caret at 0.
func NewBuffer(value string) *Buffer {
	return &Buffer{value: value}
}

func (b *Buffer) Value() string { return b.value }

// SetValue replaces the text and collapses the selection to the end.
func (b *Buffer) SetValue(v string) {
	b.value = v
	n := len([]rune(v))
	b.start, b.end = n, n
}

// Selection returns the current selection bounds in ascending order.
func (b *Buffer) Selection() (start, end int) {
	return b.start, b.end
}

// Select moves the selection, clamping it to the text.
func (b *Buffer) Select(start, end int) {
	if start > end {
		start, end = end, start
	}
	n := len([]rune(b.value))
	b.start = clampOffset(start, n)
	b.end = clampOffset(end, n)
}

// Span snapshots the current selection.
func (b *Buffer) Span() (polish.Span, bool) {
	return polish.CaptureSpan(b.value, b.start, b.end)
}

func clampOffset(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}
