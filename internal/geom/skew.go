package geom

import "math"

// Shear holds the tangents of a shape's skew angles. The zero value
// means no skew.
type Shear struct {
	X float64 // tan(skewX)
	Y float64 // tan(skewY)
}

// ShearFromDegrees converts skew angles in degrees to a Shear.
func ShearFromDegrees(skewX, skewY float64) Shear {
	return Shear{
		X: math.Tan(skewX * math.Pi / 180.0),
		Y: math.Tan(skewY * math.Pi / 180.0),
	}
}

// IsZero reports whether the shear is the identity.
func (s Shear) IsZero() bool {
	return s.X == 0 && s.Y == 0
}

// ApplySkew applies the sequential shear to a point. The Y component is
// sheared first from the original X, then the X component is sheared
// from the new Y. The order is significant: this is a triangular
// substitution, not a symmetric matrix product.
func ApplySkew(p Point, s Shear) Point {
	y := p.Y + p.X*s.Y
	x := p.X + y*s.X
	return Point{X: x, Y: y}
}

// RemoveSkew inverts ApplySkew exactly, by running the substitutions in
// reverse: X is recovered from the sheared Y, then Y from the recovered
// X. There is no singularity for any finite shear.
func RemoveSkew(p Point, s Shear) Point {
	x := p.X - p.Y*s.X
	y := p.Y - x*s.Y
	return Point{X: x, Y: y}
}
