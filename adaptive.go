package adaptview

import (
	"context"
	"fmt"
	"image"
	"log/slog"
)

// AdaptiveView is a View whose viewport and world size follow the surface
// size according to a Policy.
//
// The world size passed to the constructor, SetSize, Zoom or Reset is kept as
// a baseline. Every resize recomputes the live size from that baseline, so
// repeated resizes never compound.
type AdaptiveView struct {
	View

	policy   Policy
	baseline Vec2
	screen   image.Point
}

// NewAdaptiveView creates an adaptive view with the given policy, center and
// baseline world size. The view keeps a full-surface viewport until the first
// OnScreenResize.
func NewAdaptiveView(policy Policy, center, size Vec2) (*AdaptiveView, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("new adaptive view: %w", ErrUnknownPolicy)
	}
	v, err := NewView(center, size)
	if err != nil {
		return nil, err
	}
	return &AdaptiveView{View: *v, policy: policy, baseline: size}, nil
}

// Policy returns the active policy.
func (a *AdaptiveView) Policy() Policy { return a.policy }

// SetPolicy switches to another policy and re-applies it to the last known
// screen size. If the new policy cannot produce a valid world size for the
// current baseline, ErrInvalidSize is returned and the view is unchanged.
func (a *AdaptiveView) SetPolicy(p Policy) error {
	if !p.Valid() {
		return fmt.Errorf("set policy %v: %w", p, ErrUnknownPolicy)
	}
	vp, size, err := a.resolve(p, a.baseline, a.screen)
	if err != nil {
		return fmt.Errorf("set policy: %w", err)
	}
	if !a.screenKnown() && p != PolicyFit {
		// Fit is the only policy that shrinks the viewport.
		vp = UnitRect
	}
	a.commit(p, a.baseline, a.screen, vp, size)
	return nil
}

// BaseSize returns the baseline world size the policy works from.
func (a *AdaptiveView) BaseSize() Vec2 { return a.baseline }

// ScreenSize returns the last surface size accepted by OnScreenResize, or
// the zero point if none has been seen yet.
func (a *AdaptiveView) ScreenSize() image.Point { return a.screen }

// SetSize sets the baseline world size and re-applies the policy.
func (a *AdaptiveView) SetSize(s Vec2) error {
	if !validSize(s) {
		return fmt.Errorf("set size %vx%v: %w", s.X, s.Y, ErrInvalidSize)
	}
	vp, size, err := a.resolve(a.policy, s, a.screen)
	if err != nil {
		return fmt.Errorf("set size: %w", err)
	}
	a.commit(a.policy, s, a.screen, vp, size)
	return nil
}

// Zoom multiplies the baseline world size by factor and re-applies the
// policy, so the zoom survives later resizes. PolicyScreen ignores zoom
// once a screen size is known.
func (a *AdaptiveView) Zoom(factor float64) error {
	base, err := zoomed(a.baseline, factor)
	if err != nil {
		return err
	}
	vp, size, err := a.resolve(a.policy, base, a.screen)
	if err != nil {
		return fmt.Errorf("zoom %v: %w", factor, err)
	}
	a.commit(a.policy, base, a.screen, vp, size)
	return nil
}

// Reset shows exactly the given world rectangle, with no rotation, and uses
// its size as the new baseline.
func (a *AdaptiveView) Reset(world Rect) error {
	base := world.Size()
	if !validSize(base) {
		return fmt.Errorf("reset to %v: %w", world, ErrInvalidSize)
	}
	vp, size, err := a.resolve(a.policy, base, a.screen)
	if err != nil {
		return fmt.Errorf("reset to %v: %w", world, err)
	}
	a.center = world.Center()
	a.rotation = 0
	a.dirty = true
	a.commit(a.policy, base, a.screen, vp, size)
	return nil
}

// OnScreenResize recomputes the viewport and world size for a surface of
// the given pixel size. A zero or negative dimension returns
// ErrInvalidScreenSize; a size the policy cannot map the baseline onto
// returns ErrInvalidSize. Either way the view is left untouched.
func (a *AdaptiveView) OnScreenResize(size image.Point) error {
	if err := checkScreenSize(size); err != nil {
		return err
	}
	vp, live, err := a.resolve(a.policy, a.baseline, size)
	if err != nil {
		return err
	}
	a.commit(a.policy, a.baseline, size, vp, live)
	return nil
}

func (a *AdaptiveView) screenKnown() bool {
	return a.screen.X > 0 && a.screen.Y > 0
}

// resolve computes the viewport and live world size policy p gives for base
// on screen, without touching the view. Until a screen size is known the live
// size is the baseline and the viewport stays as it is.
func (a *AdaptiveView) resolve(p Policy, base Vec2, screen image.Point) (Rect, Vec2, error) {
	if screen.X <= 0 || screen.Y <= 0 {
		return a.viewport, base, nil
	}
	vp, size := p.apply(base, screen)
	if !validSize(size) || !validViewport(vp) {
		return Rect{}, Vec2{}, fmt.Errorf("%v policy on %dx%d gives %vx%v: %w",
			p, screen.X, screen.Y, size.X, size.Y, ErrInvalidSize)
	}
	return vp, size, nil
}

// commit stores a result produced by resolve.
func (a *AdaptiveView) commit(p Policy, base Vec2, screen image.Point, vp Rect, size Vec2) {
	a.policy = p
	a.baseline = base
	a.screen = screen
	a.viewport = vp
	if size != a.size {
		a.size = size
		a.dirty = true
	}
	if !a.screenKnown() {
		return
	}

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("adaptview: policy applied",
			"policy", a.policy.String(),
			"screen", a.screen,
			"viewport", a.viewport,
			"size", a.size)
	}
}
