package adaptview

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Policy selects how an AdaptiveView reacts when the surface is resized.
type Policy uint8

const (
	// PolicyStretch maps the whole world onto the whole surface. The aspect
	// ratio may be distorted.
	PolicyStretch Policy = iota
	// PolicyFit scales the world as much as possible while keeping its aspect
	// ratio. The viewport shrinks along one axis, leaving bars.
	PolicyFit
	// PolicyFill keeps the aspect ratio and fills the whole surface, cropping
	// part of the world along one axis.
	PolicyFill
	// PolicyExtend keeps the aspect ratio and fills the whole surface by
	// showing more of the world along the shorter axis.
	PolicyExtend
	// PolicyScreen makes one world unit equal one pixel. Used for HUDs.
	PolicyScreen
)

var policyNames = [...]string{
	PolicyStretch: "stretch",
	PolicyFit:     "fit",
	PolicyFill:    "fill",
	PolicyExtend:  "extend",
	PolicyScreen:  "screen",
}

// String returns the lower-case policy name.
func (p Policy) String() string {
	if p.Valid() {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// Valid reports whether p is one of the defined policies.
func (p Policy) Valid() bool {
	return int(p) < len(policyNames)
}

// ParsePolicy returns the policy with the given name, case-insensitively.
func ParsePolicy(name string) (Policy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range policyNames {
		if s == n {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("parse policy %q: %w", name, ErrUnknownPolicy)
}

// apply computes the viewport and world size for a baseline world size and a
// screen size. Both inputs must already be validated.
func (p Policy) apply(base Vec2, screen image.Point) (Rect, Vec2) {
	s := Vec2{float64(screen.X), float64(screen.Y)}
	switch p {
	case PolicyStretch:
		return stretchPolicy(base, s)
	case PolicyFit:
		return fitPolicy(base, s)
	case PolicyFill:
		return fillPolicy(base, s)
	case PolicyExtend:
		return extendPolicy(base, s)
	case PolicyScreen:
		return screenPolicy(base, s)
	default:
		panic(fmt.Sprintf("adaptview: apply on %v", p))
	}
}

func stretchPolicy(base, _ Vec2) (Rect, Vec2) {
	return UnitRect, base
}

func fitPolicy(base, screen Vec2) (Rect, Vec2) {
	scale := math.Min(screen.X/base.X, screen.Y/base.Y)
	w := scale * base.X / screen.X
	h := scale * base.Y / screen.Y
	// The limiting axis may come out a hair above 1 after rounding.
	if w > 1 {
		w = 1
	}
	if h > 1 {
		h = 1
	}
	return Rect{X: (1 - w) / 2, Y: (1 - h) / 2, Width: w, Height: h}, base
}

func fillPolicy(base, screen Vec2) (Rect, Vec2) {
	scale := math.Max(screen.X/base.X, screen.Y/base.Y)
	return UnitRect, Vec2{screen.X / scale, screen.Y / scale}
}

func extendPolicy(base, screen Vec2) (Rect, Vec2) {
	screenAspect := screen.X / screen.Y
	worldAspect := base.X / base.Y
	if screenAspect > worldAspect {
		return UnitRect, Vec2{base.Y * screenAspect, base.Y}
	}
	return UnitRect, Vec2{base.X, base.X / screenAspect}
}

func screenPolicy(_, screen Vec2) (Rect, Vec2) {
	return UnitRect, screen
}
