package shape

import (
	"encoding/json"

	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/stroke"
)

// shapeJSON is the wire form of a shape. Only points, style and
// position are authoritative; derived geometry is never serialized and
// never trusted on import (unknown fields are dropped by the decoder).
type shapeJSON struct {
	Points []geom.Point `json:"points"`

	StrokeWidth    float64         `json:"strokeWidth"`
	StrokeUniform  bool            `json:"strokeUniform,omitempty"`
	StrokeLineJoin stroke.LineJoin `json:"strokeLineJoin,omitempty"`

	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	SkewX  float64 `json:"skewX,omitempty"`
	SkewY  float64 `json:"skewY,omitempty"`
	Angle  float64 `json:"angle,omitempty"`
	FlipX  bool    `json:"flipX,omitempty"`
	FlipY  bool    `json:"flipY,omitempty"`

	OriginX Origin `json:"originX"`
	OriginY Origin `json:"originY"`

	Left *float64 `json:"left,omitempty"`
	Top  *float64 `json:"top,omitempty"`

	Fill        string `json:"fill,omitempty"`
	StrokeColor string `json:"stroke,omitempty"`
}

// MarshalJSON emits the ordered point sequence (a shallow copy) plus
// style and position attributes.
func (s *Shape) MarshalJSON() ([]byte, error) {
	left, top := s.left, s.top
	return json.Marshal(shapeJSON{
		Points:         s.Points(),
		StrokeWidth:    s.style.StrokeWidth,
		StrokeUniform:  s.style.StrokeUniform,
		StrokeLineJoin: s.style.StrokeLineJoin,
		ScaleX:         s.style.ScaleX,
		ScaleY:         s.style.ScaleY,
		SkewX:          s.style.SkewX,
		SkewY:          s.style.SkewY,
		Angle:          s.style.Angle,
		FlipX:          s.style.FlipX,
		FlipY:          s.style.FlipY,
		OriginX:        s.style.OriginX,
		OriginY:        s.style.OriginY,
		Left:           &left,
		Top:            &top,
		Fill:           s.style.Fill,
		StrokeColor:    s.style.StrokeColor,
	})
}

// UnmarshalJSON reconstructs a shape by re-running the full recompute
// path over the deserialized points and style. A document with no
// left/top takes the external-import path and derives its position from
// the bounding extent.
func (s *Shape) UnmarshalJSON(data []byte) error {
	dto := shapeJSON{
		ScaleX:         1,
		ScaleY:         1,
		StrokeLineJoin: stroke.JoinMiter,
	}
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	s.points = append([]geom.Point(nil), dto.Points...)
	s.style = Style{
		StrokeWidth:    dto.StrokeWidth,
		StrokeUniform:  dto.StrokeUniform,
		StrokeLineJoin: dto.StrokeLineJoin,
		ScaleX:         dto.ScaleX,
		ScaleY:         dto.ScaleY,
		SkewX:          dto.SkewX,
		SkewY:          dto.SkewY,
		Angle:          dto.Angle,
		FlipX:          dto.FlipX,
		FlipY:          dto.FlipY,
		OriginX:        dto.OriginX,
		OriginY:        dto.OriginY,
		Fill:           dto.Fill,
		StrokeColor:    dto.StrokeColor,
	}.withDefaults()

	s.Recompute(RecomputeOpts{
		Left:       dto.Left,
		Top:        dto.Top,
		FromImport: dto.Left == nil && dto.Top == nil,
	})
	return nil
}
