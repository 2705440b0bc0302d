package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vectorlab/vectorlab/backend-go/internal/control"
	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// DocumentState holds the authoritative document state for a room
type DocumentState struct {
	mu        sync.RWMutex
	doc       *document.Document
	serverSeq int64
	opLog     []Operation // Operation history for persistence
}

// NewDocumentState creates a new document state from an initial document
func NewDocumentState(doc *document.Document) *DocumentState {
	return &DocumentState{
		doc:       doc,
		serverSeq: 0,
		opLog:     make([]Operation, 0),
	}
}

// GetDocument returns the current document. Callers must not mutate it.
func (ds *DocumentState) GetDocument() *document.Document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.doc
}

// ServerSeq returns the sequence number of the last applied operation.
func (ds *DocumentState) ServerSeq() int64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.serverSeq
}

// MarshalDocument serializes the current document for sync or persistence.
func (ds *DocumentState) MarshalDocument() (json.RawMessage, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return json.Marshal(ds.doc)
}

// ApplyOperation applies an operation to the document and returns the server sequence
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.opLog = append(ds.opLog, op)

	return ds.serverSeq, nil
}

// applyOperationLocked applies the operation without locking (caller must hold lock)
func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case OpShapeCreate:
		return ds.applyShapeCreate(op)
	case OpShapeDelete:
		return ds.applyShapeDelete(op)
	case OpShapeStyle:
		return ds.applyShapeStyle(op)
	case OpShapePoints:
		return ds.applyShapePoints(op)
	case OpShapeDragNode:
		return ds.applyPointDrag(op)
	case OpCanvasUpdate:
		return ds.applyCanvasUpdate(op)
	case OpDrawingRename:
		return ds.applyDrawingRename(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (ds *DocumentState) applyShapeCreate(op Operation) error {
	if op.ShapeID == "" {
		return fmt.Errorf("shape.create missing shapeId")
	}
	if _, ok := ds.doc.Shapes[op.ShapeID]; ok {
		return fmt.Errorf("shape already exists: %s", op.ShapeID)
	}

	var sh shape.Shape
	if err := json.Unmarshal(op.Shape, &sh); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}

	ds.doc.AddShape(op.ShapeID, &sh)

	// Move to the requested z-order slot
	if op.Index != nil && *op.Index >= 0 && *op.Index < len(ds.doc.Order)-1 {
		order := ds.doc.Order
		order = order[:len(order)-1]
		newOrder := make([]string, 0, len(order)+1)
		newOrder = append(newOrder, order[:*op.Index]...)
		newOrder = append(newOrder, op.ShapeID)
		newOrder = append(newOrder, order[*op.Index:]...)
		ds.doc.Order = newOrder
	}

	return nil
}

func (ds *DocumentState) applyShapeDelete(op Operation) error {
	if _, ok := ds.doc.Shapes[op.ShapeID]; !ok {
		return fmt.Errorf("shape not found: %s", op.ShapeID)
	}
	ds.doc.RemoveShape(op.ShapeID)
	return nil
}

func (ds *DocumentState) applyShapeStyle(op Operation) error {
	sh, ok := ds.doc.Shapes[op.ShapeID]
	if !ok {
		return fmt.Errorf("shape not found: %s", op.ShapeID)
	}

	var patch shape.StylePatch
	if err := json.Unmarshal(op.Style, &patch); err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}

	sh.SetStyle(patch)
	return nil
}

func (ds *DocumentState) applyShapePoints(op Operation) error {
	sh, ok := ds.doc.Shapes[op.ShapeID]
	if !ok {
		return fmt.Errorf("shape not found: %s", op.ShapeID)
	}

	var points []geom.Point
	if err := json.Unmarshal(op.Points, &points); err != nil {
		return fmt.Errorf("invalid points: %w", err)
	}
	if len(points) == 0 {
		return fmt.Errorf("shape.points requires at least one point")
	}

	sh.SetPoints(points)
	return nil
}

func (ds *DocumentState) applyPointDrag(op Operation) error {
	sh, ok := ds.doc.Shapes[op.ShapeID]
	if !ok {
		return fmt.Errorf("shape not found: %s", op.ShapeID)
	}
	if op.Drag == nil {
		return fmt.Errorf("shape.point.drag missing drag payload")
	}
	if op.Drag.Vertex < 0 || op.Drag.Vertex >= sh.NumPoints() {
		return fmt.Errorf("vertex out of range: %d", op.Drag.Vertex)
	}

	local := sh.WorldToLocal(geom.Pt(op.Drag.X, op.Drag.Y))
	control.AnchoredDrag(sh, op.Drag.Vertex, local)
	return nil
}

func (ds *DocumentState) applyCanvasUpdate(op Operation) error {
	var changes map[string]interface{}
	if err := json.Unmarshal(op.Changes, &changes); err != nil {
		return fmt.Errorf("invalid canvas changes: %w", err)
	}

	if v, ok := changes["width"].(float64); ok {
		ds.doc.Canvas.Width = int(v)
	}
	if v, ok := changes["height"].(float64); ok {
		ds.doc.Canvas.Height = int(v)
	}
	if v, ok := changes["background"].(string); ok {
		ds.doc.Canvas.Background = v
	}

	return nil
}

func (ds *DocumentState) applyDrawingRename(op Operation) error {
	if op.Name == "" {
		return fmt.Errorf("drawing.rename requires a name")
	}
	ds.doc.Name = op.Name
	return nil
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
