package surface

import "github.com/polishedai/polished/internal/polish"

// Trigger is the floating control that opens a session for the last
// reported span. Its position is fixed at report time.
type Trigger struct {
	span   *polish.Span
	anchor Rect
}

// Show anchors the trigger to span.
func (t *Trigger) Show(span polish.Span, anchor Rect) {
	t.span = &span
	t.anchor = anchor
}

// Hide removes the trigger.
func (t *Trigger) Hide() {
	t.span = nil
	t.anchor = Rect{}
}

// Visible reports whether the trigger is shown.
func (t *Trigger) Visible() bool { return t.span != nil }

// Span returns the span the trigger was shown for.
func (t *Trigger) Span() (polish.Span, bool) {
	if t.span == nil {
		return polish.Span{}, false
	}
	return *t.span, true
}

// Anchor returns the trigger position.
func (t *Trigger) Anchor() Rect { return t.anchor }
