package polish

import (
	"fmt"
	"strings"
)

// Tone is a named style parameter passed to the rewrite.
type Tone string

const (
	ToneNeutral      Tone = "Neutral"
	ToneProfessional Tone = "Professional"
	ToneCasual       Tone = "Casual"
	ToneCreative     Tone = "Creative"
)

// DefaultTone is the tone a new session opens with.
const DefaultTone = ToneProfessional

var tones = []Tone{ToneNeutral, ToneProfessional, ToneCasual, ToneCreative}

// Tones returns the selectable tones in display order.
func Tones() []Tone {
	out := make([]Tone, len(tones))
	copy(out, tones)
	return out
}

// Valid reports whether t belongs to the closed tone set.
func (t Tone) Valid() bool {
	for _, v := range tones {
		if v == t {
			return true
		}
	}
	return false
}

func (t Tone) String() string { return string(t) }

// ParseTone matches s against the tone set, ignoring case and surrounding
// whitespace.
func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	for _, v := range tones {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q", s)
}
