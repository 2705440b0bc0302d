// Package shape owns the editable polygon entity and the recompute
// protocol that keeps its derived geometry (width, height, pathOffset,
// position) consistent with its vertex list and styling.
//
// All mutation goes through SetPoints, SetPoint and SetStyle; there are
// no field setters with ambient side effects. Derived geometry is
// read-only and survives no recompute.
package shape

import (
	"math"

	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/stroke"
)

// Style holds the transform and stroke attributes that participate in
// geometry derivation, plus paint attributes carried through to
// renderers and exporters.
type Style struct {
	StrokeWidth    float64         `json:"strokeWidth"`
	StrokeUniform  bool            `json:"strokeUniform"`
	StrokeLineJoin stroke.LineJoin `json:"strokeLineJoin"`

	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	SkewX  float64 `json:"skewX"` // degrees
	SkewY  float64 `json:"skewY"` // degrees
	Angle  float64 `json:"angle"` // degrees
	FlipX  bool    `json:"flipX"`
	FlipY  bool    `json:"flipY"`

	OriginX Origin `json:"originX"`
	OriginY Origin `json:"originY"`

	Fill        string `json:"fill,omitempty"`
	StrokeColor string `json:"stroke,omitempty"`
}

// DefaultStyle returns the style of a freshly created shape.
func DefaultStyle() Style {
	return Style{
		ScaleX:         1,
		ScaleY:         1,
		StrokeLineJoin: stroke.JoinMiter,
		OriginX:        OriginLeft,
		OriginY:        OriginTop,
	}
}

// withDefaults fills zero values that have no valid zero meaning.
func (st Style) withDefaults() Style {
	if st.ScaleX == 0 {
		st.ScaleX = 1
	}
	if st.ScaleY == 0 {
		st.ScaleY = 1
	}
	if st.StrokeLineJoin == "" {
		st.StrokeLineJoin = stroke.JoinMiter
	}
	return st
}

// Geometry is the derived state returned from mutations so callers can
// read consistent values without re-querying.
type Geometry struct {
	Width      float64
	Height     float64
	PathOffset geom.Point
	Left       float64
	Top        float64
}

// Shape is the editable polygon entity. Points are in local, unskewed
// coordinates; rendering subtracts PathOffset from every point.
type Shape struct {
	points    []geom.Point
	style     Style
	left, top float64

	// Derived; valid after every mutation.
	width, height float64
	pathOffset    geom.Point
}

// Options configures construction. Leaving Left/Top nil marks the
// points as freshly parsed geometry with no prior position, so the
// position is derived from the bounding extent.
type Options struct {
	Style     Style
	Left, Top *float64
}

// New constructs a shape and runs the initial recompute.
func New(points []geom.Point, opts Options) *Shape {
	s := &Shape{
		points: append([]geom.Point(nil), points...),
		style:  opts.Style.withDefaults(),
	}
	s.Recompute(RecomputeOpts{
		Left:       opts.Left,
		Top:        opts.Top,
		FromImport: opts.Left == nil && opts.Top == nil,
	})
	return s
}

// Points returns a copy of the vertex list.
func (s *Shape) Points() []geom.Point {
	return append([]geom.Point(nil), s.points...)
}

// Point returns the vertex at index i.
func (s *Shape) Point(i int) geom.Point { return s.points[i] }

// NumPoints returns the vertex count.
func (s *Shape) NumPoints() int { return len(s.points) }

// Style returns a copy of the style attributes.
func (s *Shape) Style() Style { return s.style }

// Width returns the derived width. It may be negative when the stroke
// correction exceeds the raw extent; consumers must tolerate that.
func (s *Shape) Width() float64 { return s.width }

// Height returns the derived height (see Width for sign caveats).
func (s *Shape) Height() float64 { return s.height }

// PathOffset returns the local-space reference point subtracted from
// every vertex before rendering and positioning.
func (s *Shape) PathOffset() geom.Point { return s.pathOffset }

// Left returns the x position of the origin anchor in parent space.
func (s *Shape) Left() float64 { return s.left }

// Top returns the y position of the origin anchor in parent space.
func (s *Shape) Top() float64 { return s.top }

// Geometry returns the full derived state.
func (s *Shape) Geometry() Geometry {
	return Geometry{
		Width:      s.width,
		Height:     s.height,
		PathOffset: s.pathOffset,
		Left:       s.left,
		Top:        s.top,
	}
}

// Shear returns the tangents of the current skew angles.
func (s *Shape) Shear() geom.Shear {
	return geom.ShearFromDegrees(s.style.SkewX, s.style.SkewY)
}

// SetPoints replaces the vertex list and recomputes.
func (s *Shape) SetPoints(points []geom.Point) Geometry {
	s.points = append([]geom.Point(nil), points...)
	return s.Recompute(RecomputeOpts{})
}

// SetPoint replaces a single vertex and recomputes. The index, length
// and order of the vertex list never change through an edit.
func (s *Shape) SetPoint(i int, p geom.Point) Geometry {
	s.points[i] = p
	return s.Recompute(RecomputeOpts{})
}

// DimensionOptions parameterizes TransformedDimensions. The generic
// routine is always called with an explicit options value; callers that
// need skew excluded (the drag size factor) pass zero skew rather than
// relying on override chaining.
type DimensionOptions struct {
	Width, Height  float64
	ScaleX, ScaleY float64
	SkewX, SkewY   float64
	StrokeWidth    float64
}

// DimensionOptions returns options populated from the current state.
func (s *Shape) DimensionOptions() DimensionOptions {
	return DimensionOptions{
		Width:       s.width,
		Height:      s.height,
		ScaleX:      s.style.ScaleX,
		ScaleY:      s.style.ScaleY,
		SkewX:       s.style.SkewX,
		SkewY:       s.style.SkewY,
		StrokeWidth: s.style.StrokeWidth,
	}
}

// TransformedDimensions returns the rendered size of the shape under
// the given transform parameters. A uniform stroke is applied after
// scaling, a non-uniform one before.
func (s *Shape) TransformedDimensions(o DimensionOptions) geom.Point {
	preStroke, postStroke := o.StrokeWidth, 0.0
	if s.style.StrokeUniform {
		preStroke, postStroke = 0, o.StrokeWidth
	}

	dimX := o.Width + preStroke
	dimY := o.Height + preStroke

	var size geom.Point
	if o.SkewX == 0 && o.SkewY == 0 {
		size = geom.Pt(dimX*o.ScaleX, dimY*o.ScaleY)
	} else {
		m := geom.DimensionsMatrix(o.ScaleX, o.ScaleY, false, false, o.SkewX, o.SkewY)
		size = geom.SizeAfterTransform(dimX, dimY, m)
	}

	return size.ScalarAdd(postStroke)
}

// TranslateToGivenOrigin converts a point located at the (fromX, fromY)
// origin fraction of the shape's box to the equivalent point at
// (toX, toY), using the fully transformed dimensions.
func (s *Shape) TranslateToGivenOrigin(p geom.Point, fromX, fromY, toX, toY float64) geom.Point {
	dx, dy := toX-fromX, toY-fromY
	if dx == 0 && dy == 0 {
		return p
	}
	dim := s.TransformedDimensions(s.DimensionOptions())
	return p.Add(geom.Pt(dx*dim.X, dy*dim.Y))
}

// translateToCenterPoint returns the shape center given the position of
// the (ox, oy) anchor, honoring rotation around the anchor.
func (s *Shape) translateToCenterPoint(p geom.Point, ox, oy float64) geom.Point {
	c := s.TranslateToGivenOrigin(p, ox, oy, 0.5, 0.5)
	if s.style.Angle != 0 {
		return c.RotateAround(p, s.style.Angle*math.Pi/180.0)
	}
	return c
}

// translateToOriginPoint is the inverse of translateToCenterPoint.
func (s *Shape) translateToOriginPoint(center geom.Point, ox, oy float64) geom.Point {
	p := s.TranslateToGivenOrigin(center, 0.5, 0.5, ox, oy)
	if s.style.Angle != 0 {
		return p.RotateAround(center, s.style.Angle*math.Pi/180.0)
	}
	return p
}

// RelativeCenterPoint returns the shape center in parent space.
func (s *Shape) RelativeCenterPoint() geom.Point {
	return s.translateToCenterPoint(geom.Pt(s.left, s.top), float64(s.style.OriginX), float64(s.style.OriginY))
}

// SetPositionByOrigin repositions the shape so that the point at origin
// fraction (ox, oy) of its box lands exactly on pos, honoring the
// current scale, skew, rotation and flip. This is the inverse
// place-by-origin operation used by the drag anchor fix.
func (s *Shape) SetPositionByOrigin(pos geom.Point, ox, oy float64) {
	center := s.translateToCenterPoint(pos, ox, oy)
	p := s.translateToOriginPoint(center, float64(s.style.OriginX), float64(s.style.OriginY))
	s.left, s.top = p.X, p.Y
}

// CalcOwnMatrix returns the shape's local-to-parent affine matrix:
// translation to center, then rotation, then scale/flip/skew.
func (s *Shape) CalcOwnMatrix() geom.Matrix2D {
	c := s.RelativeCenterPoint()
	m := geom.Translate(c.X, c.Y)
	if s.style.Angle != 0 {
		m = m.Multiply(geom.RotateDegrees(s.style.Angle))
	}
	return m.Multiply(geom.DimensionsMatrix(
		s.style.ScaleX, s.style.ScaleY,
		s.style.FlipX, s.style.FlipY,
		s.style.SkewX, s.style.SkewY,
	))
}

// CalcTransformMatrix returns the full local-to-world matrix. Shapes
// have no parent groups in this engine, so it equals CalcOwnMatrix.
func (s *Shape) CalcTransformMatrix() geom.Matrix2D {
	return s.CalcOwnMatrix()
}

// WorldToLocal maps a world-space point (e.g. a pointer position) into
// the shape's local centered frame.
func (s *Shape) WorldToLocal(p geom.Point) geom.Point {
	return p.Transform(s.CalcOwnMatrix().Invert())
}
