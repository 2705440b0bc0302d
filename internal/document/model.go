package document

import (
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// Document is the authoritative editable state of one drawing: a canvas
// plus an ordered set of polygon shapes. Shapes rebuild their derived
// geometry on deserialization, so a stored document only carries
// points, style and position.
type Document struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`

	Canvas Canvas                  `json:"canvas"`
	Shapes map[string]*shape.Shape `json:"shapes"`
	Order  []string                `json:"order"` // z-order, back to front
}

// Canvas holds the drawing surface properties.
type Canvas struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
}

// NewEmptyDocument creates an empty document for a new drawing.
func NewEmptyDocument(id, name string) *Document {
	return &Document{
		ID:      id,
		Name:    name,
		Version: 1,
		Canvas: Canvas{
			Width:      1280,
			Height:     720,
			Background: "#1a1a2e",
		},
		Shapes: map[string]*shape.Shape{},
		Order:  []string{},
	}
}

// AddShape appends a shape at the top of the z-order.
func (d *Document) AddShape(id string, s *shape.Shape) {
	d.Shapes[id] = s
	d.Order = append(d.Order, id)
}

// RemoveShape deletes a shape and its z-order entry. Removing an
// unknown id is a no-op.
func (d *Document) RemoveShape(id string) {
	if _, ok := d.Shapes[id]; !ok {
		return
	}
	delete(d.Shapes, id)

	order := make([]string, 0, len(d.Order))
	for _, sid := range d.Order {
		if sid != id {
			order = append(order, sid)
		}
	}
	d.Order = order
}
