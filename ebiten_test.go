package adaptview

import (
	"image"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		key  Key
		char rune
	}{
		{ebiten.KeyArrowUp, KeyUp, 0},
		{ebiten.KeyPageDown, KeyPageDown, 0},
		{ebiten.KeyEscape, KeyEscape, 0},
		{ebiten.KeyA, KeyRune, 'a'},
		{ebiten.KeyZ, KeyRune, 'z'},
		{ebiten.KeyDigit1, KeyRune, '1'},
		{ebiten.KeySpace, KeyRune, ' '},
		{ebiten.KeyF5, KeyUnknown, 0},
	}
	for _, tt := range tests {
		key, r := translateKey(tt.in)
		if key != tt.key || r != tt.char {
			t.Errorf("translateKey(%v) = %v, %q; want %v, %q", tt.in, key, r, tt.key, tt.char)
		}
	}
}

func TestSurfaceLayoutQueuesResize(t *testing.T) {
	s := NewSurface(NewRegistry(), nil)
	if w, h := s.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("Layout = %d,%d", w, h)
	}
	s.Layout(640, 480)
	s.Layout(0, 480)
	if len(s.pending) != 1 {
		t.Fatalf("pending = %d events, want 1", len(s.pending))
	}
	if ev := s.pending[0]; ev.Type != EventResized || ev.Size != image.Pt(640, 480) {
		t.Errorf("pending[0] = %+v", ev)
	}
	if s.Size() != image.Pt(640, 480) {
		t.Errorf("Size = %v", s.Size())
	}

	s.Layout(800, 600)
	if len(s.pending) != 2 || s.pending[1].Size != image.Pt(800, 600) {
		t.Errorf("pending after second resize = %+v", s.pending)
	}
}

func TestGeoMMatchesWorldToScreen(t *testing.T) {
	v := mustView(t, Vec2{30, -10}, Vec2{200, 100})
	v.SetRotation(0.4)
	if err := v.SetViewport(Rect{0.25, 0, 0.5, 1}); err != nil {
		t.Fatal(err)
	}
	bounds := image.Rect(0, 0, 800, 400)
	g := v.GeoM(bounds)
	for _, p := range []Vec2{{30, -10}, {0, 0}, {100, 40}} {
		x, y := g.Apply(p.X, p.Y)
		assertVec(t, "GeoM", Vec2{x, y}, v.WorldToScreen(p, bounds.Size()), 1e-6)
	}
}

func TestGeoMOffsetBounds(t *testing.T) {
	v := mustView(t, Vec2{}, Vec2{2, 2})
	g := v.GeoM(image.Rect(100, 50, 300, 250))
	x, y := g.Apply(0, 0)
	assertVec(t, "center", Vec2{x, y}, Vec2{200, 150}, 1e-9)
	x, y = g.Apply(-1, -1)
	assertVec(t, "top-left", Vec2{x, y}, Vec2{100, 50}, 1e-9)
}

type recordingGame struct {
	frames [][]Event
}

func (g *recordingGame) Update(events []Event) error {
	g.frames = append(g.frames, slices.Clone(events))
	return nil
}

func (g *recordingGame) Draw(*ebiten.Image) {}

func TestSurfaceSurvivesRejectedResize(t *testing.T) {
	script, err := LoadScript([]byte(`{"steps": [
		{"action": "resize", "width": 0, "height": 480},
		{"action": "resize", "width": 640, "height": 480}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	_, hud, _ := reg.NewView(PolicyScreen, Vec2{}, Vec2{1, 1})
	game := &recordingGame{}
	s := NewSurface(reg, game)
	s.SetScript(script)

	for !script.Done() {
		s.events = s.events[:0]
		if err := s.tick(1.0 / 60); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if len(game.frames) != 2 {
		t.Fatalf("game ran %d frames, want 2", len(game.frames))
	}
	if f := game.frames[0]; len(f) != 1 || f[0] != ResizedEvent(0, 480) {
		t.Errorf("frame 0 = %+v", f)
	}
	if reg.ScreenSize() != image.Pt(640, 480) {
		t.Errorf("ScreenSize = %v", reg.ScreenSize())
	}
	assertVec(t, "hud size", hud.Size(), Vec2{640, 480}, epsilon)
}

func TestStepSeconds(t *testing.T) {
	tests := []struct {
		name   string
		tps    int
		actual float64
		want   float32
	}{
		{"fixed", 60, 59.5, 1.0 / 60},
		{"fixed 120", 120, 0, 1.0 / 120},
		{"sync with fps", ebiten.SyncWithFPS, 144, 1.0 / 144},
		{"sync before measurement", ebiten.SyncWithFPS, 0, 1.0 / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stepSeconds(tt.tps, tt.actual)
			if got <= 0 || !approxEqual(float64(got), float64(tt.want), 1e-6) {
				t.Errorf("stepSeconds(%d, %v) = %v, want %v", tt.tps, tt.actual, got, tt.want)
			}
		})
	}
}
