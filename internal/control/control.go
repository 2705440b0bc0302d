// Package control maps pointer interaction on per-vertex drag controls
// to local-space vertex edits, keeping a chosen anchor vertex visually
// fixed while the shape's derived frame shifts underneath it.
package control

import (
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// PointControl binds one vertex index to an interactive control. It is
// a stateless descriptor: every computed value is derived fresh from
// the shape on each invocation.
type PointControl struct {
	Index int
}

// Position returns the control's world position: the vertex relative to
// the pathOffset, pushed through the shape's full transform composed
// with the viewport matrix.
func (c PointControl) Position(s *shape.Shape, viewport geom.Matrix2D) geom.Point {
	local := s.Point(c.Index).Sub(s.PathOffset())
	return local.Transform(viewport.Multiply(s.CalcTransformMatrix()))
}

// DragFunc processes one pointer-move of an active drag session.
// pointer is the pointer position in the shape's local centered frame
// (see Shape.WorldToLocal). It reports whether the shape was edited;
// degenerate inputs are skipped and reported as false.
type DragFunc func(s *shape.Shape, index int, pointer geom.Point) bool

// Drag converts a local pointer position into a vertex edit:
// the pointer delta is measured in rendered space, so it is flipped,
// scaled back into the pre-scale frame, offset by the skewed
// pathOffset, and finally unskewed into the vertex's coordinate space.
// No geometric validation is performed; self-intersecting or zero-area
// results are accepted.
//
// The transformed dimensions exclude skew: skew correction is applied
// separately through the shear functions, and including it here would
// distort the size factor. A transformed dimension of exactly zero
// would make the factor divide by zero, so the edit is skipped for
// fully degenerate shapes.
func Drag(s *shape.Shape, index int, pointer geom.Point) bool {
	baseSize := geom.Pt(s.Width(), s.Height())

	opts := s.DimensionOptions()
	opts.SkewX, opts.SkewY = 0, 0
	transformedSize := s.TransformedDimensions(opts)
	if transformedSize.X == 0 || transformedSize.Y == 0 {
		return false
	}
	sizeFactor := baseSize.Div(transformedSize)

	shear := s.Shear()
	flip := geom.Pt(1, 1)
	if s.Style().FlipX {
		flip.X = -1
	}
	if s.Style().FlipY {
		flip.Y = -1
	}

	skewedOffset := geom.ApplySkew(s.PathOffset(), shear)
	newPoint := geom.RemoveSkew(pointer.Mul(flip).Mul(sizeFactor).Add(skewedOffset), shear)

	s.SetPoint(index, newPoint)
	return true
}

// Anchored wraps a drag function so that dragging one vertex does not
// visually translate the whole shape. The anchor is the previous vertex
// (wrapping from index 0 to the last): its world position is captured
// before the edit, and after the recompute shifts the local frame the
// shape is repositioned so the anchor lands back on that exact spot.
func Anchored(fn DragFunc) DragFunc {
	return func(s *shape.Shape, index int, pointer geom.Point) bool {
		anchorIndex := index - 1
		if index == 0 {
			anchorIndex = s.NumPoints() - 1
		}

		worldAnchor := s.Point(anchorIndex).
			Sub(s.PathOffset()).
			Transform(s.CalcTransformMatrix())

		if !fn(s, index, pointer) {
			return false
		}

		// Express the anchor as an origin fraction of the new frame;
		// the +0.5 rebases the centered [-0.5, 0.5] coordinate onto the
		// [0, 1] origin convention. The fraction divides by the new
		// dimensions, so an edit that collapses the frame to zero width
		// or height keeps the current position instead.
		baseSize := geom.Pt(s.Width(), s.Height())
		if baseSize.X == 0 || baseSize.Y == 0 {
			return true
		}
		flip := geom.Pt(1, 1)
		if s.Style().FlipX {
			flip.X = -1
		}
		if s.Style().FlipY {
			flip.Y = -1
		}
		fraction := geom.RemoveSkew(s.Point(anchorIndex).Sub(s.PathOffset()), s.Shear()).
			Div(baseSize).
			Mul(flip).
			ScalarAdd(0.5)

		s.SetPositionByOrigin(worldAnchor, fraction.X, fraction.Y)
		return true
	}
}

// AnchoredDrag is the standard drag pipeline: vertex edit, recompute,
// anchor fix. Renderers and exporters reading the shape afterwards see
// fully consistent geometry. It reports whether the shape was edited.
func AnchoredDrag(s *shape.Shape, index int, pointer geom.Point) bool {
	return Anchored(Drag)(s, index, pointer)
}
