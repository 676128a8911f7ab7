package surface

import "github.com/polishedai/polished/internal/polish"

// Origin says where an input event happened.
type Origin string

const (
	OriginSurface   Origin = "surface"
	OriginTrigger   Origin = "trigger"
	OriginOverlay   Origin = "overlay"
	OriginElsewhere Origin = "elsewhere"
)

// SignalKind is the raw event that may have changed the selection.
type SignalKind string

const (
	SignalPointerUp SignalKind = "pointerup"
	SignalKeyUp     SignalKind = "keyup"
	SignalSelect    SignalKind = "select"
)

// Rect is a bounding box in surface coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Signal is a raw selection-change event. Start and End carry the
// selection reported with the event when it came from the surface.
type Signal struct {
	Kind   SignalKind `json:"kind"`
	Origin Origin     `json:"origin"`
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Anchor Rect       `json:"anchor"`
}

// Tracker turns raw signals into normalized selection reports. It calls
// report with a span, or nil when the selection is empty or blank.
type Tracker struct {
	host   Host
	frozen func() bool
	report func(span *polish.Span, anchor Rect)
}

// NewTracker creates a tracker over host. While frozen returns true no
// reports are made.
func NewTracker(host Host, frozen func() bool, report func(*polish.Span, Rect)) *Tracker {
	return &Tracker{host: host, frozen: frozen, report: report}
}

// Observe handles one signal.
func (t *Tracker) Observe(sig Signal) {
	if t.frozen != nil && t.frozen() {
		return
	}
	switch sig.Origin {
	case OriginTrigger, OriginOverlay:
		return
	case OriginElsewhere:
		t.report(nil, Rect{})
		return
	}
	t.Rescan(sig.Anchor)
}

// Rescan reports the host's current selection.
func (t *Tracker) Rescan(anchor Rect) {
	if t.frozen != nil && t.frozen() {
		return
	}
	start, end := t.host.Selection()
	span, ok := polish.CaptureSpan(t.host.Value(), start, end)
	if !ok {
		t.report(nil, Rect{})
		return
	}
	t.report(&span, anchor)
}
