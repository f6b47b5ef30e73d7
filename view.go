package adaptview

import (
	"fmt"
	"image"
	"math"
)

// View maps a rectangle of the world onto a normalized device square and
// places that square inside a sub-rectangle of the drawable surface.
type View struct {
	center   Vec2
	size     Vec2
	rotation float64
	viewport Rect

	boundsEnabled bool
	bounds        Rect

	scrollTween *scrollAnim

	transform    Transform
	invTransform Transform
	dirty        bool
}

// NewView creates a view looking at center with the given world size and a
// full-surface viewport.
func NewView(center, size Vec2) (*View, error) {
	if !validSize(size) {
		return nil, fmt.Errorf("new view %vx%v: %w", size.X, size.Y, ErrInvalidSize)
	}
	return &View{
		center:   center,
		size:     size,
		viewport: UnitRect,
		dirty:    true,
	}, nil
}

// NewViewFromRect creates a view showing exactly the given world rectangle.
func NewViewFromRect(world Rect) (*View, error) {
	return NewView(world.Center(), world.Size())
}

// Center returns the world point shown at the middle of the viewport.
func (v *View) Center() Vec2 { return v.center }

// SetCenter moves the view so that c is shown at the middle of the viewport.
func (v *View) SetCenter(c Vec2) {
	v.center = c
	v.dirty = true
}

// Size returns the world extent visible through the viewport.
func (v *View) Size() Vec2 { return v.size }

// SetSize changes the visible world extent. Both components must be positive
// and finite; otherwise ErrInvalidSize is returned and the view is unchanged.
func (v *View) SetSize(s Vec2) error {
	if !validSize(s) {
		return fmt.Errorf("set size %vx%v: %w", s.X, s.Y, ErrInvalidSize)
	}
	v.size = s
	v.dirty = true
	return nil
}

// Rotation returns the view rotation in radians.
func (v *View) Rotation() float64 { return v.rotation }

// SetRotation sets the view rotation in radians. The world appears rotated
// by -angle around the center.
func (v *View) SetRotation(angle float64) {
	v.rotation = angle
	v.dirty = true
}

// Move pans the view by offset, expressed in world axes regardless of the
// current rotation.
func (v *View) Move(offset Vec2) {
	v.SetCenter(v.center.Add(offset))
}

// Rotate adds angle radians to the current rotation.
func (v *View) Rotate(angle float64) {
	v.SetRotation(v.rotation + angle)
}

// Zoom multiplies the visible world size by factor. Values below 1 zoom in,
// values above 1 zoom out. The factor is not clamped.
func (v *View) Zoom(factor float64) error {
	s, err := zoomed(v.size, factor)
	if err != nil {
		return err
	}
	v.size = s
	v.dirty = true
	return nil
}

func zoomed(size Vec2, factor float64) (Vec2, error) {
	if !positiveFinite(factor) {
		return size, fmt.Errorf("zoom %v: %w", factor, ErrInvalidZoom)
	}
	s := size.Scale(factor)
	if !validSize(s) {
		// Underflow to zero or overflow to Inf.
		return size, fmt.Errorf("zoom %v to %vx%v: %w", factor, s.X, s.Y, ErrInvalidSize)
	}
	return s, nil
}

// Reset makes the view show exactly the given world rectangle with no
// rotation.
func (v *View) Reset(world Rect) error {
	s := world.Size()
	if !validSize(s) {
		return fmt.Errorf("reset to %v: %w", world, ErrInvalidSize)
	}
	v.center = world.Center()
	v.size = s
	v.rotation = 0
	v.dirty = true
	return nil
}

// Viewport returns the fraction of the surface this view renders into.
func (v *View) Viewport() Rect { return v.viewport }

// SetViewport sets the normalized surface rectangle this view renders into.
// The rectangle must lie within [0,1]x[0,1].
func (v *View) SetViewport(r Rect) error {
	if !validViewport(r) {
		return fmt.Errorf("set viewport %v: %w", r, ErrInvalidViewport)
	}
	v.viewport = r
	return nil
}

// computeTransforms recomputes the cached matrices if dirty.
//
// transform = Scale(2/w, 2/h) * Rotate(-rotation) * Translate(-center)
// inverse   = Translate(center) * Rotate(rotation) * Scale(w/2, h/2)
func (v *View) computeTransforms() {
	if !v.dirty {
		return
	}
	v.dirty = false

	sin, cos := math.Sincos(v.rotation)
	sx := 2 / v.size.X
	sy := 2 / v.size.Y
	cx, cy := v.center.X, v.center.Y

	// Rotate(-r) = [cos sin; -sin cos] in row form.
	a := sx * cos
	b := -sy * sin
	c := sx * sin
	d := sy * cos
	v.transform = Transform{a, b, c, d, -(a*cx + c*cy), -(b*cx + d*cy)}

	hw := v.size.X / 2
	hh := v.size.Y / 2
	v.invTransform = Transform{cos * hw, sin * hw, -sin * hh, cos * hh, cx, cy}
}

// Transform returns the matrix mapping world coordinates to normalized
// device coordinates: the visible world maps onto [-1,1]x[-1,1] and the
// center onto the origin.
func (v *View) Transform() Transform {
	v.computeTransforms()
	return v.transform
}

// InverseTransform returns the matrix mapping normalized device coordinates
// back to world coordinates.
func (v *View) InverseTransform() Transform {
	v.computeTransforms()
	return v.invTransform
}

// VisibleBounds returns the axis-aligned bounding rect of the visible area in
// world space. Without rotation this is exactly the centered size rectangle.
func (v *View) VisibleBounds() Rect {
	inv := v.InverseTransform()

	x0, y0 := transformPoint(inv, -1, -1)
	x1, y1 := transformPoint(inv, 1, -1)
	x2, y2 := transformPoint(inv, 1, 1)
	x3, y3 := transformPoint(inv, -1, 1)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Pixel space ---

// pixelViewport returns the viewport scaled to the surface, unrounded.
func (v *View) pixelViewport(screen image.Point) Rect {
	w, h := float64(screen.X), float64(screen.Y)
	return Rect{
		X:      v.viewport.X * w,
		Y:      v.viewport.Y * h,
		Width:  v.viewport.Width * w,
		Height: v.viewport.Height * h,
	}
}

// PixelViewport returns the pixel sub-rectangle of a surface of the given
// size that this view renders into. Edges are rounded to the nearest pixel.
func (v *View) PixelViewport(screen image.Point) image.Rectangle {
	r := v.pixelViewport(screen)
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)),
		int(math.Round(r.Y+r.Height)),
	)
}

// ndcToPixel maps [-1,1]^2 onto the pixel viewport with (-1,-1) at its
// top-left corner.
func ndcToPixel(vp Rect) Transform {
	return Transform{
		vp.Width / 2, 0,
		0, vp.Height / 2,
		vp.X + vp.Width/2, vp.Y + vp.Height/2,
	}
}

// PixelTransform returns the matrix mapping world coordinates to pixel
// coordinates on a surface of the given size.
func (v *View) PixelTransform(screen image.Point) Transform {
	return ndcToPixel(v.pixelViewport(screen)).Mul(v.Transform())
}

// WorldToScreen converts a world point to pixel coordinates on a surface of
// the given size.
func (v *View) WorldToScreen(p Vec2, screen image.Point) Vec2 {
	return v.PixelTransform(screen).Apply(p)
}

// ScreenToWorld converts pixel coordinates on a surface of the given size to
// a world point. Used for picking. A degenerate viewport or surface yields
// the view center.
func (v *View) ScreenToWorld(p Vec2, screen image.Point) Vec2 {
	vp := v.pixelViewport(screen)
	if vp.Width <= 0 || vp.Height <= 0 {
		return v.center
	}
	ndc := Vec2{
		X: (p.X-vp.X)/vp.Width*2 - 1,
		Y: (p.Y-vp.Y)/vp.Height*2 - 1,
	}
	return v.InverseTransform().Apply(ndc)
}
