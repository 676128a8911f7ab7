package surface

import "github.com/polishedai/polished/internal/polish"

// View is a snapshot of everything a UI needs to render the surface.
type View struct {
	Text    string        `json:"text"`
	Trigger *TriggerView  `json:"trigger,omitempty"`
	Session *SessionView  `json:"session,omitempty"`
	Tones   []polish.Tone `json:"tones"`
}

// TriggerView describes a visible trigger.
type TriggerView struct {
	Span   polish.Span `json:"span"`
	Anchor Rect        `json:"anchor"`
}

// SessionView describes the open session.
type SessionView struct {
	Span      polish.Span  `json:"span"`
	Tone      polish.Tone  `json:"tone"`
	State     polish.State `json:"state"`
	Result    string       `json:"result,omitempty"`
	Error     string       `json:"error,omitempty"`
	CanCommit bool         `json:"can_commit"`
}

// View snapshots the editor.
func (e *Editor) View() View {
	v := View{
		Text:  e.buffer.Value(),
		Tones: polish.Tones(),
	}
	if span, ok := e.trigger.Span(); ok {
		v.Trigger = &TriggerView{Span: span, Anchor: e.trigger.Anchor()}
	}
	if s := e.session; s != nil {
		v.Session = &SessionView{
			Span:   s.Span(),
			Tone:   s.Tone(),
			State:  s.State(),
			Result: s.Result(),
			Error:  s.Failure(),
			// An empty result cannot be committed.
			CanCommit: s.State() == polish.StateReady && s.Result() != "",
		}
	}
	return v
}
