package adaptview

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2, eps float64) {
	t.Helper()
	if !approxEqual(got.X, want.X, eps) || !approxEqual(got.Y, want.Y, eps) {
		t.Errorf("%s = (%v,%v), want (%v,%v)", name, got.X, got.Y, want.X, want.Y)
	}
}

func assertMatrix(t *testing.T, name string, got, want Transform) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Constructors ---

func TestTranslateTransform(t *testing.T) {
	got := TranslateTransform(10, -5).Apply(Vec2{1, 2})
	assertVec(t, "translate", got, Vec2{11, -3}, epsilon)
}

func TestScaleTransform(t *testing.T) {
	got := ScaleTransform(2, 3).Apply(Vec2{4, 5})
	assertVec(t, "scale", got, Vec2{8, 15}, epsilon)
}

func TestRotateTransform90(t *testing.T) {
	// With Y down, +90 degrees turns +X into +Y.
	got := RotateTransform(math.Pi / 2).Apply(Vec2{1, 0})
	assertVec(t, "rotate 90", got, Vec2{0, 1}, epsilon)
}

// --- Multiply / invert ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := Transform{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(IdentityTransform, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, IdentityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := TranslateTransform(10, 20)
	b := TranslateTransform(5, 3)
	assertMatrix(t, "translations", a.Mul(b), Transform{1, 0, 0, 1, 15, 23})
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	// Scale then translate: (1,1) -> (2,2) -> (12,2)
	m := TranslateTransform(10, 0).Mul(ScaleTransform(2, 2))
	assertVec(t, "T*S", m.Apply(Vec2{1, 1}), Vec2{12, 2}, epsilon)
}

func TestInvertAffine(t *testing.T) {
	m := Transform{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "m*inv=id", m.Mul(m.Inverse()), IdentityTransform)
}

func TestInvertAffineComplex(t *testing.T) {
	m := TranslateTransform(7, -3).Mul(RotateTransform(math.Pi / 3)).Mul(ScaleTransform(2, 0.5))
	assertMatrix(t, "m*inv=id", m.Mul(m.Inverse()), IdentityTransform)
	assertMatrix(t, "inv*m=id", m.Inverse().Mul(m), IdentityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	m := Transform{0, 0, 0, 1, 10, 20}
	assertMatrix(t, "singular->identity", invertAffine(m), IdentityTransform)
}

func TestInvertAffineNearSingularStillSingular(t *testing.T) {
	// Rank-deficient up to rounding: rows are parallel.
	m := Transform{1, 2, 2, 4 + 1e-15, 0, 0}
	assertMatrix(t, "near-singular->identity", invertAffine(m), IdentityTransform)
}

func TestInverseOfLargeWorldView(t *testing.T) {
	v, err := NewView(Vec2{10, 10}, Vec2{3e6, 3e6})
	if err != nil {
		t.Fatal(err)
	}
	inv := v.Transform().Inverse()
	want := v.InverseTransform()
	for i := range inv {
		if !approxEqual(inv[i], want[i], 1e-6*math.Max(1, math.Abs(want[i]))) {
			t.Fatalf("Inverse()[%d] = %v, want %v (full: %v vs %v)", i, inv[i], want[i], inv, want)
		}
	}
	assertVec(t, "corner", inv.Apply(Vec2{1, 1}), Vec2{10 + 1.5e6, 10 + 1.5e6}, 1e-3)
}

// --- x/image interop ---

func TestAff3Layout(t *testing.T) {
	m := Transform{1, 2, 3, 4, 5, 6}
	want := f64.Aff3{1, 3, 5, 2, 4, 6}
	if got := m.Aff3(); got != want {
		t.Errorf("Aff3() = %v, want %v", got, want)
	}
	if back := TransformFromAff3(m.Aff3()); back != m {
		t.Errorf("TransformFromAff3(Aff3()) = %v, want %v", back, m)
	}
}

func TestAff3AppliesSamePoint(t *testing.T) {
	m := TranslateTransform(3, 4).Mul(RotateTransform(0.7)).Mul(ScaleTransform(1.5, 2))
	a := m.Aff3()
	p := Vec2{2, -1}
	x := a[0]*p.X + a[1]*p.Y + a[2]
	y := a[3]*p.X + a[4]*p.Y + a[5]
	assertVec(t, "aff3 apply", Vec2{x, y}, m.Apply(p), epsilon)
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint above", Rect{10, -100, 50, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(Vec2{10, 20}, Vec2{4, 6})
	if r != (Rect{8, 17, 4, 6}) {
		t.Errorf("RectFromCenter = %v, want {8 17 4 6}", r)
	}
	assertVec(t, "Center", r.Center(), Vec2{10, 20}, epsilon)
	assertVec(t, "Size", r.Size(), Vec2{4, 6}, epsilon)
}
