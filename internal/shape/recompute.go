package shape

import (
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/stroke"
)

// RecomputeOpts controls how position is derived during a recompute.
// Supplying Left/Top pins those coordinates; FromImport marks freshly
// parsed geometry with no prior position, so the anchor source is the
// bounding extent rather than the shape's current position.
type RecomputeOpts struct {
	Left, Top  *float64
	FromImport bool
}

// Recompute re-derives width, height, pathOffset and (when not
// supplied) left/top from the current points and style. It is
// idempotent: running it twice with unchanged inputs yields identical
// outputs. Non-finite inputs propagate into non-finite geometry without
// error.
func (s *Shape) Recompute(opts RecomputeOpts) Geometry {
	projected := stroke.Project(s.points, s.style.StrokeWidth, s.style.StrokeLineJoin, s.style.StrokeUniform)
	outline := make([]geom.Point, len(projected))
	for i, pp := range projected {
		outline[i] = pp.ProjectedPoint
	}
	bbox := geom.BoundsOf(outline)

	correction := geom.Pt(s.style.StrokeWidth, s.style.StrokeWidth)
	if s.style.StrokeUniform {
		correction = correction.Div(geom.Pt(s.style.ScaleX, s.style.ScaleY))
	}

	// Not clamped: a correction larger than the raw extent yields a
	// negative, degenerate size that consumers must tolerate.
	s.width = bbox.Width - correction.X
	s.height = bbox.Height - correction.Y

	if opts.Left == nil || opts.Top == nil {
		pos := geom.Pt(s.left, s.top)
		if opts.FromImport {
			pos = s.TranslateToGivenOrigin(
				geom.Pt(bbox.X, bbox.Y),
				0, 0,
				float64(s.style.OriginX), float64(s.style.OriginY),
			)
		}
		if opts.Left == nil {
			s.left = pos.X
		}
		if opts.Top == nil {
			s.top = pos.Y
		}
	}
	if opts.Left != nil {
		s.left = *opts.Left
	}
	if opts.Top != nil {
		s.top = *opts.Top
	}

	// The pathOffset tracks the skewed box center: the same sequential
	// shear inversion applied to vertices, applied here to the center.
	s.pathOffset = geom.RemoveSkew(bbox.Center(), s.Shear())

	return s.Geometry()
}

// StylePatch is a partial style update. Nil fields are left unchanged.
type StylePatch struct {
	StrokeWidth    *float64
	StrokeUniform  *bool
	StrokeLineJoin *stroke.LineJoin

	ScaleX *float64
	ScaleY *float64
	SkewX  *float64
	SkewY  *float64
	Angle  *float64
	FlipX  *bool
	FlipY  *bool

	OriginX *Origin
	OriginY *Origin
	Left    *float64
	Top     *float64

	Fill        *string
	StrokeColor *string
}

// SetStyle applies the patch and recomputes when the change affects
// derived geometry:
//
//   - stroke width, join or uniform flag: always
//   - skewX/skewY: always
//   - scaleX/scaleY: only when the stroke is uniform and the join is
//     not round — round joins produce a scale-invariant outline at each
//     joint, so the recompute is skipped there as an optimization. The
//     skip is an approximation, not a bit-exact contract for extreme
//     non-uniform scales.
//
// Position, rotation, flip and origin changes never dirty the derived
// geometry. At most one recompute runs per call.
func (s *Shape) SetStyle(p StylePatch) Geometry {
	dirty := false
	scaled := false

	if p.StrokeWidth != nil && *p.StrokeWidth != s.style.StrokeWidth {
		s.style.StrokeWidth = *p.StrokeWidth
		dirty = true
	}
	if p.StrokeUniform != nil && *p.StrokeUniform != s.style.StrokeUniform {
		s.style.StrokeUniform = *p.StrokeUniform
		dirty = true
	}
	if p.StrokeLineJoin != nil && *p.StrokeLineJoin != s.style.StrokeLineJoin {
		s.style.StrokeLineJoin = *p.StrokeLineJoin
		dirty = true
	}

	if p.SkewX != nil && *p.SkewX != s.style.SkewX {
		s.style.SkewX = *p.SkewX
		dirty = true
	}
	if p.SkewY != nil && *p.SkewY != s.style.SkewY {
		s.style.SkewY = *p.SkewY
		dirty = true
	}

	if p.ScaleX != nil && *p.ScaleX != s.style.ScaleX {
		s.style.ScaleX = *p.ScaleX
		scaled = true
	}
	if p.ScaleY != nil && *p.ScaleY != s.style.ScaleY {
		s.style.ScaleY = *p.ScaleY
		scaled = true
	}
	if scaled && s.style.StrokeUniform && s.style.StrokeLineJoin != stroke.JoinRound {
		dirty = true
	}

	if p.Angle != nil {
		s.style.Angle = *p.Angle
	}
	if p.FlipX != nil {
		s.style.FlipX = *p.FlipX
	}
	if p.FlipY != nil {
		s.style.FlipY = *p.FlipY
	}
	if p.OriginX != nil {
		s.style.OriginX = *p.OriginX
	}
	if p.OriginY != nil {
		s.style.OriginY = *p.OriginY
	}
	if p.Left != nil {
		s.left = *p.Left
	}
	if p.Top != nil {
		s.top = *p.Top
	}
	if p.Fill != nil {
		s.style.Fill = *p.Fill
	}
	if p.StrokeColor != nil {
		s.style.StrokeColor = *p.StrokeColor
	}

	if dirty {
		return s.Recompute(RecomputeOpts{})
	}
	return s.Geometry()
}
