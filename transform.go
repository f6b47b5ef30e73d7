package adaptview

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Transform [6]float64

// IdentityTransform maps every point to itself.
var IdentityTransform = Transform{1, 0, 0, 1, 0, 0}

// TranslateTransform returns a matrix that moves points by (x, y).
func TranslateTransform(x, y float64) Transform {
	return Transform{1, 0, 0, 1, x, y}
}

// ScaleTransform returns a matrix that scales points by (sx, sy) about the origin.
func ScaleTransform(sx, sy float64) Transform {
	return Transform{sx, 0, 0, sy, 0, 0}
}

// RotateTransform returns a matrix that rotates points by angle radians about
// the origin.
func RotateTransform(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{cos, sin, -sin, cos, 0, 0}
}

// Mul returns t * other: other is applied first, then t.
func (t Transform) Mul(other Transform) Transform {
	return multiplyAffine(t, other)
}

// Inverse returns the inverse matrix. A singular matrix yields the identity.
func (t Transform) Inverse() Transform {
	return invertAffine(t)
}

// Apply transforms the point p.
func (t Transform) Apply(p Vec2) Vec2 {
	x, y := transformPoint(t, p.X, p.Y)
	return Vec2{x, y}
}

// Aff3 converts the matrix to the row-major layout used by
// golang.org/x/image/math/f64 (x' = m[0]*x + m[1]*y + m[2]).
func (t Transform) Aff3() f64.Aff3 {
	return f64.Aff3{
		t[0], t[2], t[4],
		t[1], t[3], t[5],
	}
}

// TransformFromAff3 is the inverse of [Transform.Aff3].
func TransformFromAff3(m f64.Aff3) Transform {
	return Transform{m[0], m[3], m[1], m[4], m[2], m[5]}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c Transform) Transform {
	return Transform{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular. Singularity is
// judged relative to the size of the linear part, so uniformly tiny scales
// (a view of a very large world) still invert.
func invertAffine(m Transform) Transform {
	det := m[0]*m[3] - m[2]*m[1]
	norm := math.Abs(m[0]*m[3]) + math.Abs(m[2]*m[1])
	if norm == 0 || math.Abs(det) <= 1e-12*norm {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Transform, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
