package geom

import "math"

// Matrix2D represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// Where:
// - a, d = scale
// - b, c = skew/rotation
// - e, f = translation
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix (angle in radians).
func Rotate(radians float64) Matrix2D {
	sin, cos := math.Sincos(radians)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// RotateDegrees returns a rotation matrix (angle in degrees).
func RotateDegrees(degrees float64) Matrix2D {
	return Rotate(degrees * math.Pi / 180.0)
}

// SkewXMatrix returns a horizontal shear matrix (angle in degrees).
func SkewXMatrix(degrees float64) Matrix2D {
	return Matrix2D{1, 0, math.Tan(degrees * math.Pi / 180.0), 1, 0, 0}
}

// SkewYMatrix returns a vertical shear matrix (angle in degrees).
func SkewYMatrix(degrees float64) Matrix2D {
	return Matrix2D{1, math.Tan(degrees * math.Pi / 180.0), 0, 1, 0, 0}
}

// Multiply multiplies this matrix by another: result = m * other.
// This applies 'other' first, then 'm' — the viewport-then-object
// convention used throughout the engine.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[2]*other[1],        // a
		m[1]*other[0] + m[3]*other[1],        // b
		m[0]*other[2] + m[2]*other[3],        // c
		m[1]*other[2] + m[3]*other[3],        // d
		m[0]*other[4] + m[2]*other[5] + m[4], // e
		m[1]*other[4] + m[3]*other[5] + m[5], // f
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformVector applies only the linear part of the matrix (no
// translation). Used for sizes and deltas.
func (m Matrix2D) TransformVector(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// Determinant returns the determinant of the matrix.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix2D) Invert() Matrix2D {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// DimensionsMatrix composes the non-translational part of an object
// transform: scale (with flip signs) followed by the sequential skew,
// X shear applied before Y shear.
func DimensionsMatrix(scaleX, scaleY float64, flipX, flipY bool, skewX, skewY float64) Matrix2D {
	sx, sy := scaleX, scaleY
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}

	m := Scale(sx, sy)
	if skewX != 0 {
		m = m.Multiply(SkewXMatrix(skewX))
	}
	if skewY != 0 {
		m = SkewYMatrix(skewY).Multiply(m)
	}
	return m
}

// SizeAfterTransform returns the dimensions of the axis-aligned box that
// contains a width×height rectangle after applying the linear part of m.
func SizeAfterTransform(width, height float64, m Matrix2D) Point {
	x0, y0 := m.TransformVector(width/2, height/2)
	x1, y1 := m.TransformVector(width/2, -height/2)

	return Point{
		X: 2 * math.Max(math.Abs(x0), math.Abs(x1)),
		Y: 2 * math.Max(math.Abs(y0), math.Abs(y1)),
	}
}

// ToSlice returns the matrix as a float64 slice for JSON serialization.
func (m Matrix2D) ToSlice() []float64 {
	return []float64{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}
