package adaptview

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"
)

// scriptStep is a single action in an event script.
type scriptStep struct {
	Action string  `json:"action"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      int     `json:"x,omitempty"`
	Y      int     `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays canonical events frame by frame, for automated resize and
// input testing. A script is JSON:
//
//	{"steps": [
//	  {"action": "resize", "width": 640, "height": 480},
//	  {"action": "wait", "frames": 30},
//	  {"action": "key", "key": "pageup"},
//	  {"action": "click", "x": 100, "y": 80},
//	  {"action": "wheel", "dy": -1},
//	  {"action": "close"}
//	]}
//
// Each step except "wait" produces its events on its own frame.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
}

var scriptKeys = map[string]Key{
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"space":     KeyRune,
}

// LoadScript parses a JSON event script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse event script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse event script: no steps")
	}
	for i, st := range f.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse event script: step %d: %w", i, err)
		}
	}
	return &Script{steps: f.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "resize", "click", "wheel", "close", "wait":
		return nil
	case "key":
		if _, _, ok := parseScriptKey(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

func parseScriptKey(name string) (Key, rune, bool) {
	if k, ok := scriptKeys[strings.ToLower(name)]; ok {
		if k == KeyRune {
			return KeyRune, ' ', true
		}
		return k, 0, true
	}
	if r, size := utf8.DecodeRuneInString(name); size > 0 && size == len(name) {
		return KeyRune, r, true
	}
	return KeyUnknown, 0, false
}

// Done reports whether every step has been played.
func (s *Script) Done() bool {
	return s.cursor >= len(s.steps) && s.waitCount == 0
}

// Next advances the script by one frame and appends that frame's events to
// dst. Resize steps are not validated here: a zero or negative size reaches
// the registry and is rejected there, which is useful for testing.
func (s *Script) Next(dst []Event) []Event {
	if s.waitCount > 0 {
		s.waitCount--
		return dst
	}
	if s.cursor >= len(s.steps) {
		return dst
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "resize":
		dst = append(dst, ResizedEvent(st.Width, st.Height))
	case "key":
		key, r, _ := parseScriptKey(st.Key)
		dst = append(dst,
			Event{Type: EventKeyPressed, Key: key, Rune: r},
			Event{Type: EventKeyReleased, Key: key, Rune: r})
	case "click":
		pos := image.Pt(st.X, st.Y)
		dst = append(dst,
			Event{Type: EventMouseMoved, Position: pos},
			Event{Type: EventMouseButtonPressed, Position: pos, Button: MouseButtonLeft},
			Event{Type: EventMouseButtonReleased, Position: pos, Button: MouseButtonLeft})
	case "wheel":
		dst = append(dst, Event{Type: EventMouseWheelScrolled, Position: image.Pt(st.X, st.Y), Wheel: Vec2{st.DX, st.DY}})
	case "close":
		dst = append(dst, Event{Type: EventClosed})
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	return dst
}
