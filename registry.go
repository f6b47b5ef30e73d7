package adaptview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"iter"
	"log/slog"
	"slices"
)

// ViewHandle identifies a view owned by a Registry. The zero handle never
// resolves. A handle stays valid until its view is removed; slots are reused
// afterwards but stale handles are rejected.
type ViewHandle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h ViewHandle) IsZero() bool { return h.gen == 0 }

type viewSlot struct {
	view *AdaptiveView
	gen  uint32
}

// Registry owns a set of adaptive views and keeps them in step with the
// surface size.
type Registry struct {
	slots []viewSlot
	free  []uint32
	order []uint32 // slot indices in registration order

	screen image.Point
	sink   EventSink
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add takes ownership of view and appends it to the dispatch order. If the
// registry has already seen a screen size, the view is resized immediately.
// Adding nil returns the zero handle. Adding a view that is already
// registered returns its existing handle.
func (r *Registry) Add(view *AdaptiveView) ViewHandle {
	if view == nil {
		return ViewHandle{}
	}
	for _, idx := range r.order {
		if s := &r.slots[idx]; s.view == view {
			return ViewHandle{index: idx, gen: s.gen}
		}
	}
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, viewSlot{})
	}
	slot := &r.slots[idx]
	slot.gen++
	if slot.gen == 0 {
		slot.gen = 1
	}
	slot.view = view
	r.order = append(r.order, idx)

	if r.screen.X > 0 && r.screen.Y > 0 {
		if err := view.OnScreenResize(r.screen); err != nil {
			Logger().Warn("adaptview: view rejected resize", "screen", r.screen, "err", err)
		}
	}
	return ViewHandle{index: idx, gen: slot.gen}
}

// NewView is a convenience that creates an AdaptiveView and adds it.
func (r *Registry) NewView(policy Policy, center, size Vec2) (ViewHandle, *AdaptiveView, error) {
	v, err := NewAdaptiveView(policy, center, size)
	if err != nil {
		return ViewHandle{}, nil, err
	}
	return r.Add(v), v, nil
}

func (r *Registry) slot(h ViewHandle) *viewSlot {
	if h.gen == 0 || int(h.index) >= len(r.slots) {
		return nil
	}
	s := &r.slots[h.index]
	if s.gen != h.gen || s.view == nil {
		return nil
	}
	return s
}

// View returns the view for h, or false if h is stale or unknown.
func (r *Registry) View(h ViewHandle) (*AdaptiveView, bool) {
	s := r.slot(h)
	if s == nil {
		return nil, false
	}
	return s.view, true
}

// Remove drops the view for h. It reports whether a view was removed.
func (r *Registry) Remove(h ViewHandle) bool {
	s := r.slot(h)
	if s == nil {
		return false
	}
	s.view = nil
	if i := slices.Index(r.order, h.index); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.free = append(r.free, h.index)
	return true
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	return len(r.order)
}

// All iterates the views in registration order.
func (r *Registry) All() iter.Seq2[ViewHandle, *AdaptiveView] {
	return func(yield func(ViewHandle, *AdaptiveView) bool) {
		for _, idx := range r.order {
			s := &r.slots[idx]
			if !yield(ViewHandle{index: idx, gen: s.gen}, s.view) {
				return
			}
		}
	}
}

// ScreenSize returns the last surface size applied, or the zero point.
func (r *Registry) ScreenSize() image.Point {
	return r.screen
}

// SetEventSink sets the optional observer notified after every applied
// resize. Pass nil to remove it.
func (r *Registry) SetEventSink(sink EventSink) {
	r.sink = sink
}

// OnScreenResize forwards a surface size to every view in registration
// order. A zero or negative dimension returns ErrInvalidScreenSize and no
// view is touched. Otherwise every view is offered the size; views whose
// policy cannot produce a valid world size keep their previous state, and
// their errors are joined into the returned error.
func (r *Registry) OnScreenResize(size image.Point) error {
	if err := checkScreenSize(size); err != nil {
		Logger().Warn("adaptview: resize rejected", "screen", size, "err", err)
		return err
	}
	r.screen = size
	var errs []error
	for _, idx := range r.order {
		if err := r.slots[idx].view.OnScreenResize(size); err != nil {
			Logger().Warn("adaptview: view rejected resize", "screen", size, "err", err)
			errs = append(errs, fmt.Errorf("view %d: %w", idx, err))
		}
	}

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("adaptview: registry resized", "screen", size, "views", len(r.order))
	}
	if r.sink != nil {
		r.sink.EmitResize(ResizeEvent{Size: size, Views: len(r.order)})
	}
	return errors.Join(errs...)
}

// Update inspects one event from the surface. EventResized is forwarded to
// OnScreenResize; every other kind is ignored.
func (r *Registry) Update(ev Event) error {
	if ev.Type != EventResized {
		return nil
	}
	return r.OnScreenResize(ev.Size)
}

// Step advances per-view animations by dt seconds.
func (r *Registry) Step(dt float32) {
	for _, idx := range r.order {
		r.slots[idx].view.Step(dt)
	}
}
