package adaptview

import (
	"image"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game is implemented by applications run through a Surface.
type Game interface {
	// Update is called once per tick after the registry has seen every
	// pending event. events is only valid for the duration of the call.
	Update(events []Event) error
	// Draw renders one frame.
	Draw(screen *ebiten.Image)
}

// Surface adapts an ebiten game loop to a Registry. It implements
// ebiten.Game: Layout turns window size changes into EventResized, Update
// polls ebiten input into canonical events, feeds them to the registry and
// then hands them to the wrapped Game.
//
//	reg := adaptview.NewRegistry()
//	_, view, _ := reg.NewView(adaptview.PolicyExtend, adaptview.Vec2{}, adaptview.Vec2{X: 480, Y: 480})
//	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
//	err := ebiten.RunGame(adaptview.NewSurface(reg, game))
type Surface struct {
	registry *Registry
	game     Game
	script   *Script

	size    image.Point
	pending []Event
	events  []Event
	keys    []ebiten.Key

	cursor  image.Point
	focused bool
	started bool
}

// NewSurface creates a Surface driving registry and game.
func NewSurface(registry *Registry, game Game) *Surface {
	return &Surface{registry: registry, game: game}
}

// Size returns the last surface size reported by Layout.
func (s *Surface) Size() image.Point {
	return s.size
}

// Registry returns the registry driven by this surface.
func (s *Surface) Registry() *Registry {
	return s.registry
}

// SetScript attaches an event script. Its events are delivered after the
// surface's own events each tick, as if they came from the window.
func (s *Surface) SetScript(script *Script) {
	s.script = script
}

// Layout implements ebiten.Game. The logical screen always matches the
// outside size, one pixel per device-independent pixel.
func (s *Surface) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := image.Pt(outsideWidth, outsideHeight)
	if size != s.size && size.X > 0 && size.Y > 0 {
		s.size = size
		s.pending = append(s.pending, Event{Type: EventResized, Size: size})
	}
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game.
func (s *Surface) Update() error {
	s.events = append(s.events[:0], s.pending...)
	s.pending = s.pending[:0]
	s.events = s.pollInput(s.events)
	return s.tick(stepSeconds(ebiten.TPS(), ebiten.ActualTPS()))
}

// tick feeds s.events, plus this frame's script events, to the registry,
// advances animations by dt and runs the game. Events the registry rejects
// are logged and still reach the game; they never end the loop.
func (s *Surface) tick(dt float32) error {
	if s.script != nil {
		s.events = s.script.Next(s.events)
	}
	for _, ev := range s.events {
		if err := s.registry.Update(ev); err != nil {
			Logger().Warn("adaptview: event rejected", "event", ev.Type.String(), "err", err)
		}
	}
	s.registry.Step(dt)

	return s.game.Update(s.events)
}

// stepSeconds returns the duration of one Update call. With
// ebiten.SyncWithFPS the tick rate follows the display, so the measured
// rate is used, falling back to 60 Hz before one is available.
func stepSeconds(tps int, actual float64) float32 {
	switch {
	case tps > 0:
		return float32(1 / float64(tps))
	case actual > 0:
		return float32(1 / actual)
	}
	return 1.0 / 60
}

// Draw implements ebiten.Game.
func (s *Surface) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
}

// pollInput appends canonical events for this tick's ebiten input state.
func (s *Surface) pollInput(events []Event) []Event {
	mods := readModifiers()

	if focused := ebiten.IsFocused(); !s.started || focused != s.focused {
		if s.started {
			t := EventFocusLost
			if focused {
				t = EventFocusGained
			}
			events = append(events, Event{Type: t})
		}
		s.focused = focused
	}
	if ebiten.IsWindowBeingClosed() {
		events = append(events, Event{Type: EventClosed})
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		key, r := translateKey(k)
		events = append(events, Event{Type: EventKeyPressed, Key: key, Rune: r, Modifiers: mods})
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		key, r := translateKey(k)
		events = append(events, Event{Type: EventKeyReleased, Key: key, Rune: r, Modifiers: mods})
	}

	mx, my := ebiten.CursorPosition()
	cursor := image.Pt(mx, my)
	if s.started && cursor != s.cursor {
		events = append(events, Event{Type: EventMouseMoved, Position: cursor, Modifiers: mods})
	}
	s.cursor = cursor

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			events = append(events, Event{Type: EventMouseButtonPressed, Position: cursor, Button: b.button, Modifiers: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			events = append(events, Event{Type: EventMouseButtonReleased, Position: cursor, Button: b.button, Modifiers: mods})
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		events = append(events, Event{Type: EventMouseWheelScrolled, Position: cursor, Wheel: Vec2{wx, wy}, Modifiers: mods})
	}

	s.started = true
	return events
}

var mouseButtons = [...]struct {
	ebiten ebiten.MouseButton
	button MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

var namedKeys = map[ebiten.Key]Key{
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyPageUp:     KeyPageUp,
	ebiten.KeyPageDown:   KeyPageDown,
	ebiten.KeyHome:       KeyHome,
	ebiten.KeyEnd:        KeyEnd,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeyBackspace:  KeyBackspace,
}

// translateKey maps an ebiten key to a canonical key. Letters, digits and
// space become KeyRune with the unshifted character.
func translateKey(k ebiten.Key) (Key, rune) {
	if key, ok := namedKeys[k]; ok {
		return key, 0
	}
	if k == ebiten.KeySpace {
		return KeyRune, ' '
	}
	name := k.String()
	switch {
	case len(name) == 1:
		return KeyRune, unicode.ToLower(rune(name[0]))
	case len(name) == 6 && strings.HasPrefix(name, "Digit"):
		return KeyRune, rune(name[5])
	}
	return KeyUnknown, 0
}

// --- Drawing helpers ---

// GeoM returns the world-to-pixel matrix for a target with the given
// bounds, ready for ebiten.DrawImageOptions.GeoM. Concatenate a sprite's own
// placement before it:
//
//	op.GeoM.Translate(x, y)
//	op.GeoM.Concat(view.GeoM(screen.Bounds()))
func (v *View) GeoM(bounds image.Rectangle) ebiten.GeoM {
	t := TranslateTransform(float64(bounds.Min.X), float64(bounds.Min.Y)).
		Mul(v.PixelTransform(bounds.Size()))
	var g ebiten.GeoM
	g.SetElement(0, 0, t[0])
	g.SetElement(0, 1, t[2])
	g.SetElement(0, 2, t[4])
	g.SetElement(1, 0, t[1])
	g.SetElement(1, 1, t[3])
	g.SetElement(1, 2, t[5])
	return g
}

// SubImage returns the region of screen this view renders into. Drawing
// with GeoM(screen.Bounds()) onto the result is clipped to the viewport.
func (v *View) SubImage(screen *ebiten.Image) *ebiten.Image {
	b := screen.Bounds()
	r := v.PixelViewport(b.Size()).Add(b.Min)
	return screen.SubImage(r).(*ebiten.Image)
}
