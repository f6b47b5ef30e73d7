package tcellview

import (
	"image"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/adaptview"
)

// newCanvas returns a 40x20 canvas whose view maps world units 1:1 onto
// cells. Tests address cell centers to stay clear of rounding at edges.
func newCanvas(t *testing.T) (*Canvas, tcell.SimulationScreen) {
	t.Helper()
	s := newScreen(t, 40, 20)
	v, err := adaptview.NewView(adaptview.Vec2{X: 20, Y: 10}, adaptview.Vec2{X: 40, Y: 20})
	if err != nil {
		t.Fatal(err)
	}
	return NewCanvas(s, v), s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestCanvasCellAndWorld(t *testing.T) {
	c, _ := newCanvas(t)
	cell, ok := c.Cell(adaptview.Vec2{X: 5.2, Y: 3.9})
	if !ok || cell != image.Pt(5, 3) {
		t.Errorf("Cell = %v, %v; want (5,3), true", cell, ok)
	}
	if _, ok := c.Cell(adaptview.Vec2{X: -0.5, Y: 3}); ok {
		t.Error("point left of the screen reported visible")
	}
	w := c.World(image.Pt(5, 3))
	if math.Abs(w.X-5.5) > 1e-9 || math.Abs(w.Y-3.5) > 1e-9 {
		t.Errorf("World = %v, want (5.5,3.5)", w)
	}
}

func TestCanvasSetContent(t *testing.T) {
	c, s := newCanvas(t)
	if !c.SetContent(adaptview.Vec2{X: 7.5, Y: 2.5}, 'a', tcell.StyleDefault) {
		t.Fatal("SetContent returned false")
	}
	if r := runeAt(s, 7, 2); r != 'a' {
		t.Errorf("cell (7,2) = %q, want 'a'", r)
	}
	if c.SetContent(adaptview.Vec2{X: 50, Y: 2}, 'b', tcell.StyleDefault) {
		t.Error("SetContent outside the viewport returned true")
	}
}

func TestCanvasWideRune(t *testing.T) {
	c, s := newCanvas(t)
	if !c.SetContent(adaptview.Vec2{X: 10.5, Y: 0.5}, '世', tcell.StyleDefault) {
		t.Fatal("wide rune rejected inside the viewport")
	}
	if r := runeAt(s, 10, 0); r != '世' {
		t.Errorf("cell (10,0) = %q", r)
	}
	if c.SetContent(adaptview.Vec2{X: 39.5, Y: 0.5}, '世', tcell.StyleDefault) {
		t.Error("wide rune in the last column was drawn")
	}
}

func TestCanvasRespectsViewport(t *testing.T) {
	c, s := newCanvas(t)
	if err := c.View().SetViewport(adaptview.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}); err != nil {
		t.Fatal(err)
	}
	if b := c.Bounds(); b != image.Rect(0, 0, 20, 20) {
		t.Fatalf("Bounds = %v", b)
	}

	s.SetContent(0, 0, '#', nil, tcell.StyleDefault)
	s.SetContent(25, 0, '#', nil, tcell.StyleDefault)
	c.Clear(tcell.StyleDefault)
	if r := runeAt(s, 0, 0); r != ' ' {
		t.Errorf("cell (0,0) = %q after Clear, want blank", r)
	}
	if r := runeAt(s, 25, 0); r != '#' {
		t.Errorf("cell (25,0) = %q after Clear, want untouched", r)
	}

	// The world now squeezes into 20 columns: world x=39 lands in column 19.
	if cell, ok := c.Cell(adaptview.Vec2{X: 39, Y: 0.5}); !ok || cell.X != 19 {
		t.Errorf("Cell(39,0) = %v, %v", cell, ok)
	}
}

func TestCanvasDrawTextClips(t *testing.T) {
	c, s := newCanvas(t)
	if n := c.DrawText(adaptview.Vec2{X: 2.5, Y: 1.5}, "hi", tcell.StyleDefault); n != 2 {
		t.Errorf("DrawText = %d, want 2", n)
	}
	if runeAt(s, 2, 1) != 'h' || runeAt(s, 3, 1) != 'i' {
		t.Error("text not drawn at (2,1)")
	}
	if n := c.DrawText(adaptview.Vec2{X: 37.5, Y: 5.5}, "hello", tcell.StyleDefault); n != 3 {
		t.Errorf("clipped DrawText = %d, want 3", n)
	}
	if n := c.DrawText(adaptview.Vec2{X: 0.5, Y: 6.5}, "a世b", tcell.StyleDefault); n != 4 {
		t.Errorf("wide DrawText = %d, want 4", n)
	}
	if runeAt(s, 3, 6) != 'b' {
		t.Errorf("cell (3,6) = %q, want 'b'", runeAt(s, 3, 6))
	}
}
