package adaptview

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the view center.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// ScrollTo animates the view center to target over duration seconds. The
// animation advances with Registry.Step (or View.Step for unregistered
// views). A non-positive duration jumps immediately.
func (v *View) ScrollTo(target Vec2, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.scrollTween = nil
		v.SetCenter(target)
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.center.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(v.center.Y), float32(target.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *View) Scrolling() bool {
	return v.scrollTween != nil
}

// StopScroll cancels any ScrollTo animation, leaving the center where it is.
func (v *View) StopScroll() {
	v.scrollTween = nil
}

// SetBounds enables clamping of the center so the visible world rectangle
// stays within bounds.
func (v *View) SetBounds(bounds Rect) {
	v.boundsEnabled = true
	v.bounds = bounds
}

// ClearBounds disables bounds clamping.
func (v *View) ClearBounds() {
	v.boundsEnabled = false
}

// Bounds returns the clamping rectangle and whether clamping is enabled.
func (v *View) Bounds() (Rect, bool) {
	return v.bounds, v.boundsEnabled
}

// ClampToBounds immediately clamps the center so the visible area stays
// within the bounds. Call this after Move or SetCenter to avoid a frame that
// sees outside the bounds. No-op if bounds are disabled.
func (v *View) ClampToBounds() {
	if v.boundsEnabled {
		v.clampToBounds()
	}
}

// Step advances the scroll animation by dt seconds and applies bounds
// clamping.
func (v *View) Step(dt float32) {
	if v.scrollTween != nil {
		c := v.center
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			v.scrollTween.doneY = done
		}
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
		v.SetCenter(c)
	}

	if v.boundsEnabled {
		v.clampToBounds()
	}
}

// clampToBounds restricts the center so the unrotated visible area stays
// within bounds. If the bounds are smaller than the visible area on an axis,
// the view is centered on the bounds along that axis.
func (v *View) clampToBounds() {
	halfW := v.size.X / 2
	halfH := v.size.Y / 2

	minX := v.bounds.X + halfW
	maxX := v.bounds.X + v.bounds.Width - halfW
	minY := v.bounds.Y + halfH
	maxY := v.bounds.Y + v.bounds.Height - halfH

	c := v.center
	if minX > maxX {
		c.X = v.bounds.X + v.bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = v.bounds.Y + v.bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
	if c != v.center {
		v.SetCenter(c)
	}
}
