package tcellview

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/adaptview"
)

// Canvas draws through a view onto a tcell screen. Cells outside the view's
// viewport are never touched.
type Canvas struct {
	screen tcell.Screen
	view   *adaptview.View
}

// NewCanvas creates a canvas projecting view onto screen.
func NewCanvas(screen tcell.Screen, view *adaptview.View) *Canvas {
	return &Canvas{screen: screen, view: view}
}

// View returns the view this canvas projects through.
func (c *Canvas) View() *adaptview.View { return c.view }

func (c *Canvas) size() image.Point {
	w, h := c.screen.Size()
	return image.Pt(w, h)
}

// Bounds returns the cell rectangle covered by the view's viewport.
func (c *Canvas) Bounds() image.Rectangle {
	return c.view.PixelViewport(c.size())
}

// Cell returns the terminal cell showing world point p and whether that
// cell lies inside the viewport.
func (c *Canvas) Cell(p adaptview.Vec2) (image.Point, bool) {
	size := c.size()
	s := c.view.WorldToScreen(p, size)
	if math.IsNaN(s.X) || math.IsNaN(s.Y) {
		return image.Point{}, false
	}
	cell := image.Pt(int(math.Floor(s.X)), int(math.Floor(s.Y)))
	return cell, cell.In(c.view.PixelViewport(size))
}

// World returns the world point at the middle of a terminal cell.
func (c *Canvas) World(cell image.Point) adaptview.Vec2 {
	return c.view.ScreenToWorld(adaptview.Vec2{X: float64(cell.X) + 0.5, Y: float64(cell.Y) + 0.5}, c.size())
}

// Clear fills the viewport with blanks in style.
func (c *Canvas) Clear(style tcell.Style) {
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// SetContent draws r in the cell showing world point p. Wide runes occupy
// two cells and are skipped when the second cell would leave the viewport.
// It reports whether anything was drawn.
func (c *Canvas) SetContent(p adaptview.Vec2, r rune, style tcell.Style) bool {
	cell, ok := c.Cell(p)
	if !ok {
		return false
	}
	return c.put(cell, r, style, c.Bounds())
}

func (c *Canvas) put(cell image.Point, r rune, style tcell.Style, bounds image.Rectangle) bool {
	w := runewidth.RuneWidth(r)
	if !cell.In(bounds) || (w == 2 && !cell.Add(image.Pt(1, 0)).In(bounds)) {
		return false
	}
	c.screen.SetContent(cell.X, cell.Y, r, nil, style)
	if w == 2 {
		// Fill the second column to avoid rendering artifacts.
		c.screen.SetContent(cell.X+1, cell.Y, ' ', nil, style)
	}
	return true
}

// DrawText writes s left to right starting at the cell showing world point
// p. Text advances in cells, not world units, so it stays legible at any
// zoom. Output is clipped to the viewport. It returns the number of columns
// written.
func (c *Canvas) DrawText(p adaptview.Vec2, s string, style tcell.Style) int {
	cell, ok := c.Cell(p)
	if !ok {
		return 0
	}
	bounds := c.Bounds()
	cols := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if !c.put(cell, r, style, bounds) {
			break
		}
		cell.X += w
		cols += w
	}
	return cols
}
