// Package render compiles shapes into a draw command buffer for a
// Canvas2D-style frontend. It is a pure consumer of shape geometry: it
// never mutates shapes and never blocks a recompute.
package render

import (
	"encoding/json"

	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []interface{}

// DrawCommand represents a single drawing operation for the frontend to
// execute on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"` // "path"
	ShapeID     string        `json:"shapeId,omitempty"`
	Transform   []float64     `json:"transform,omitempty"` // [a, b, c, d, e, f]
	Path        []PathCommand `json:"path,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
}

// Drawable reports whether a shape should be painted at all. Rendering
// is skipped (a no-op, not an error) when the point sequence is empty
// or the final point's y-coordinate is non-finite — the signature of
// malformed upstream parse input. The guard lives here at the render
// boundary only; geometry recomputation runs unconditionally regardless.
func Drawable(s *shape.Shape) bool {
	n := s.NumPoints()
	if n == 0 {
		return false
	}
	last := s.Point(n - 1)
	return geom.Pt(0, last.Y).IsFinite()
}

// CompileShape emits the draw command for one shape, or nil when the
// render guard rejects it. Every vertex has the pathOffset subtracted
// before path commands are issued.
func CompileShape(id string, s *shape.Shape, viewport geom.Matrix2D) *DrawCommand {
	if !Drawable(s) {
		return nil
	}

	offset := s.PathOffset()
	points := s.Points()

	path := make([]PathCommand, 0, len(points)+1)
	for i, p := range points {
		q := p.Sub(offset)
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, q.X, q.Y})
	}
	path = append(path, PathCommand{"Z"})

	st := s.Style()
	return &DrawCommand{
		Op:          "path",
		ShapeID:     id,
		Transform:   viewport.Multiply(s.CalcTransformMatrix()).ToSlice(),
		Path:        path,
		Fill:        st.Fill,
		Stroke:      st.StrokeColor,
		StrokeWidth: st.StrokeWidth,
	}
}

// CompileDocument generates the command buffer for a whole document in
// z-order (back to front).
func CompileDocument(doc *document.Document, viewport geom.Matrix2D) []DrawCommand {
	if doc == nil {
		return nil
	}

	var commands []DrawCommand
	for _, id := range doc.Order {
		s, ok := doc.Shapes[id]
		if !ok {
			continue
		}
		if cmd := CompileShape(id, s, viewport); cmd != nil {
			commands = append(commands, *cmd)
		}
	}
	return commands
}

// WorldBounds returns the axis-aligned world-space extent of a shape,
// used for hit testing and selection outlines.
func WorldBounds(s *shape.Shape) geom.Rect {
	if s.NumPoints() == 0 {
		return geom.Rect{}
	}

	m := s.CalcTransformMatrix()
	offset := s.PathOffset()

	world := make([]geom.Point, 0, s.NumPoints())
	for _, p := range s.Points() {
		world = append(world, p.Sub(offset).Transform(m))
	}
	return geom.BoundsOf(world)
}

// ToJSON serializes draw commands to JSON.
func ToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
