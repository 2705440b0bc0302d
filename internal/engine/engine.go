// Package engine ties the geometry core together for interactive
// editing: it owns a document, a selection and a viewport matrix, and
// exposes the command/query surface consumed by the wasm frontend.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/vectorlab/vectorlab/backend-go/internal/control"
	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/render"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// Engine is the single-threaded editor core. It is driven by a host UI
// event loop delivering one command per invocation; every operation
// reads the shape's then-current state, so calls are safely re-entrant.
type Engine struct {
	doc       *document.Document
	viewport  geom.Matrix2D
	selection []string
}

// New creates an engine with an identity viewport and no document.
func New() *Engine {
	return &Engine{viewport: geom.Identity()}
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON. Shape geometry is re-derived
// during decoding; serialized derived values are never trusted.
func (e *Engine) LoadDocument(jsonData string) error {
	var doc document.Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}
	e.doc = &doc
	e.selection = nil
	return nil
}

// LoadSampleDocument loads the built-in sample drawing.
func (e *Engine) LoadSampleDocument(id string) {
	e.doc = document.NewSampleDocument(id)
	e.selection = nil
}

// SetViewport replaces the viewport (camera) matrix.
func (e *Engine) SetViewport(m geom.Matrix2D) {
	e.viewport = m
}

// SetSelection sets the selected shape IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// AddShape inserts a new polygon built from the given points and style.
func (e *Engine) AddShape(id string, points []geom.Point, style shape.Style) error {
	if e.doc == nil {
		return fmt.Errorf("no document loaded")
	}
	if _, exists := e.doc.Shapes[id]; exists {
		return fmt.Errorf("shape already exists: %s", id)
	}
	e.doc.AddShape(id, shape.New(points, shape.Options{Style: style}))
	return nil
}

// RemoveShape deletes a shape from the document.
func (e *Engine) RemoveShape(id string) {
	if e.doc == nil {
		return
	}
	e.doc.RemoveShape(id)
}

// SetShapeStyle applies a style patch, recomputing geometry when the
// patch requires it.
func (e *Engine) SetShapeStyle(id string, patch shape.StylePatch) error {
	s, err := e.shapeByID(id)
	if err != nil {
		return err
	}
	s.SetStyle(patch)
	return nil
}

// SetShapePoints replaces a shape's vertex list.
func (e *Engine) SetShapePoints(id string, points []geom.Point) error {
	s, err := e.shapeByID(id)
	if err != nil {
		return err
	}
	s.SetPoints(points)
	return nil
}

// DragPoint processes one pointer-move of an active vertex drag. The
// pointer position is given in world coordinates; it is mapped into the
// shape's local frame, the vertex is edited, geometry recomputed, and
// the anchor vertex repositioned — in that order, before control
// returns to the caller.
func (e *Engine) DragPoint(id string, index int, worldX, worldY float64) error {
	s, err := e.shapeByID(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= s.NumPoints() {
		return fmt.Errorf("point index out of range: %d", index)
	}

	local := s.WorldToLocal(geom.Pt(worldX, worldY))
	control.AnchoredDrag(s, index, local)
	return nil
}

// --- Queries (frontend ← backend) ---

// Render compiles the document to draw commands and returns them as
// JSON.
func (e *Engine) Render() string {
	if e.doc == nil {
		return "[]"
	}
	commands := render.CompileDocument(e.doc, e.viewport)
	result, _ := render.ToJSON(commands)
	return result
}

// ControlPositions returns the world positions of a shape's vertex
// controls as JSON, in vertex order.
func (e *Engine) ControlPositions(id string) string {
	s, err := e.shapeByID(id)
	if err != nil {
		return "[]"
	}

	positions := make([]geom.Point, s.NumPoints())
	for i := range positions {
		positions[i] = control.PointControl{Index: i}.Position(s, e.viewport)
	}
	data, _ := json.Marshal(positions)
	return string(data)
}

// HitTest returns the ID of the topmost shape containing the world
// point, or empty string. Shapes later in z-order are tested first.
func (e *Engine) HitTest(x, y float64) string {
	if e.doc == nil {
		return ""
	}
	for i := len(e.doc.Order) - 1; i >= 0; i-- {
		id := e.doc.Order[i]
		s, ok := e.doc.Shapes[id]
		if !ok || !render.Drawable(s) {
			continue
		}
		if render.WorldBounds(s).Contains(x, y) {
			return id
		}
	}
	return ""
}

// GetSelectionBounds returns the combined world bounding box of the
// current selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	var bounds geom.Rect
	if e.doc != nil {
		for _, id := range e.selection {
			s, ok := e.doc.Shapes[id]
			if !ok {
				continue
			}
			bounds = bounds.Union(render.WorldBounds(s))
		}
	}
	data, _ := json.Marshal(map[string]float64{
		"x":      bounds.X,
		"y":      bounds.Y,
		"width":  bounds.Width,
		"height": bounds.Height,
	})
	return string(data)
}

// GetDocument returns the full document as JSON.
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// Document exposes the underlying document to in-process callers.
func (e *Engine) Document() *document.Document {
	return e.doc
}

func (e *Engine) shapeByID(id string) (*shape.Shape, error) {
	if e.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	s, ok := e.doc.Shapes[id]
	if !ok {
		return nil, fmt.Errorf("shape not found: %s", id)
	}
	return s, nil
}
