// Package tcellview connects adaptview to terminal surfaces driven by tcell.
// A terminal cell is treated as one pixel: Translator turns tcell events into
// canonical events, and Canvas projects world positions into cells through a
// view.
package tcellview

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/adaptview"
)

// Translator converts tcell events into canonical events. tcell reports
// mouse state rather than transitions, so the translator remembers the
// previous button mask to emit press and release events.
type Translator struct {
	buttons tcell.ButtonMask
	cursor  image.Point
}

var namedKeys = map[tcell.Key]adaptview.Key{
	tcell.KeyUp:         adaptview.KeyUp,
	tcell.KeyDown:       adaptview.KeyDown,
	tcell.KeyLeft:       adaptview.KeyLeft,
	tcell.KeyRight:      adaptview.KeyRight,
	tcell.KeyPgUp:       adaptview.KeyPageUp,
	tcell.KeyPgDn:       adaptview.KeyPageDown,
	tcell.KeyHome:       adaptview.KeyHome,
	tcell.KeyEnd:        adaptview.KeyEnd,
	tcell.KeyEnter:      adaptview.KeyEnter,
	tcell.KeyEscape:     adaptview.KeyEscape,
	tcell.KeyTab:        adaptview.KeyTab,
	tcell.KeyBackspace:  adaptview.KeyBackspace,
	tcell.KeyBackspace2: adaptview.KeyBackspace,
}

var mouseButtons = [...]struct {
	mask   tcell.ButtonMask
	button adaptview.MouseButton
}{
	{tcell.Button1, adaptview.MouseButtonLeft},
	{tcell.Button2, adaptview.MouseButtonRight},
	{tcell.Button3, adaptview.MouseButtonMiddle},
}

// Append translates ev and appends the resulting canonical events to dst.
// Events with no canonical equivalent append nothing.
func (t *Translator) Append(dst []adaptview.Event, ev tcell.Event) []adaptview.Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return append(dst, adaptview.ResizedEvent(w, h))

	case *tcell.EventKey:
		e := adaptview.Event{Type: adaptview.EventKeyPressed, Modifiers: modifiers(ev.Modifiers())}
		if ev.Key() == tcell.KeyRune {
			e.Key = adaptview.KeyRune
			e.Rune = ev.Rune()
		} else if k, ok := namedKeys[ev.Key()]; ok {
			e.Key = k
		}
		return append(dst, e)

	case *tcell.EventMouse:
		return t.appendMouse(dst, ev)

	case *tcell.EventFocus:
		if ev.Focused {
			return append(dst, adaptview.Event{Type: adaptview.EventFocusGained})
		}
		return append(dst, adaptview.Event{Type: adaptview.EventFocusLost})
	}
	return dst
}

func (t *Translator) appendMouse(dst []adaptview.Event, ev *tcell.EventMouse) []adaptview.Event {
	x, y := ev.Position()
	pos := image.Pt(x, y)
	mods := modifiers(ev.Modifiers())
	buttons := ev.Buttons()

	if pos != t.cursor {
		dst = append(dst, adaptview.Event{Type: adaptview.EventMouseMoved, Position: pos, Modifiers: mods})
		t.cursor = pos
	}

	for _, b := range mouseButtons {
		was := t.buttons&b.mask != 0
		is := buttons&b.mask != 0
		switch {
		case is && !was:
			dst = append(dst, adaptview.Event{Type: adaptview.EventMouseButtonPressed, Position: pos, Button: b.button, Modifiers: mods})
		case was && !is:
			dst = append(dst, adaptview.Event{Type: adaptview.EventMouseButtonReleased, Position: pos, Button: b.button, Modifiers: mods})
		}
	}
	t.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	var wheel adaptview.Vec2
	if buttons&tcell.WheelUp != 0 {
		wheel.Y++
	}
	if buttons&tcell.WheelDown != 0 {
		wheel.Y--
	}
	if buttons&tcell.WheelLeft != 0 {
		wheel.X--
	}
	if buttons&tcell.WheelRight != 0 {
		wheel.X++
	}
	if wheel != (adaptview.Vec2{}) {
		dst = append(dst, adaptview.Event{Type: adaptview.EventMouseWheelScrolled, Position: pos, Wheel: wheel, Modifiers: mods})
	}
	return dst
}

func modifiers(m tcell.ModMask) adaptview.KeyModifiers {
	var mods adaptview.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= adaptview.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= adaptview.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= adaptview.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= adaptview.ModMeta
	}
	return mods
}

// Pump drains every pending event of screen into the registry and returns
// the translated events. It blocks until at least one event arrives; a nil
// event (screen finalized) yields ok == false.
func (t *Translator) Pump(screen tcell.Screen, reg *adaptview.Registry, dst []adaptview.Event) (events []adaptview.Event, ok bool) {
	ev := screen.PollEvent()
	for {
		if ev == nil {
			return dst, false
		}
		start := len(dst)
		dst = t.Append(dst, ev)
		for _, e := range dst[start:] {
			if err := reg.Update(e); err != nil {
				adaptview.Logger().Warn("tcellview: event rejected", "event", e.Type.String(), "err", err)
			}
			if e.Type == adaptview.EventResized {
				screen.Sync()
			}
		}
		if !screen.HasPendingEvent() {
			return dst, true
		}
		ev = screen.PollEvent()
	}
}
