package adaptview

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	// ErrInvalidSize is returned when a world size component is not a
	// positive finite number.
	ErrInvalidSize = errors.New("adaptview: world size must be positive")
	// ErrInvalidZoom is returned for a zoom factor that is not a positive
	// finite number.
	ErrInvalidZoom = errors.New("adaptview: zoom factor must be positive")
	// ErrInvalidScreenSize is returned for a surface with a zero or negative
	// dimension.
	ErrInvalidScreenSize = errors.New("adaptview: screen size must be positive")
	// ErrInvalidViewport is returned for a viewport outside the unit square.
	ErrInvalidViewport = errors.New("adaptview: viewport must lie within [0,1]x[0,1]")
	// ErrUnknownPolicy is returned for a Policy value outside the defined set.
	ErrUnknownPolicy = errors.New("adaptview: unknown policy")
)

// positiveFinite reports whether f is > 0 and not Inf. NaN fails the comparison.
func positiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

func validSize(s Vec2) bool {
	return positiveFinite(s.X) && positiveFinite(s.Y)
}

func validViewport(r Rect) bool {
	if !(r.Width >= 0 && r.Height >= 0 && r.X >= 0 && r.Y >= 0) {
		return false
	}
	// Small tolerance so computed margins like (1-w)/2 + w survive rounding.
	const eps = 1e-9
	return r.X+r.Width <= 1+eps && r.Y+r.Height <= 1+eps
}

func checkScreenSize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("screen resize %dx%d: %w", size.X, size.Y, ErrInvalidScreenSize)
	}
	return nil
}
