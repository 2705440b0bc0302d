package document

import (
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// NewSampleDocument builds a small demo drawing used by the playground
// and the wasm build.
func NewSampleDocument(id string) *Document {
	doc := NewEmptyDocument(id, "Sample Drawing")

	square := shape.New([]geom.Point{
		{X: 0, Y: 0}, {X: 160, Y: 0}, {X: 160, Y: 160}, {X: 0, Y: 160},
	}, shape.Options{
		Style: func() shape.Style {
			st := shape.DefaultStyle()
			st.Fill = "#4ecca3"
			st.StrokeColor = "#232931"
			st.StrokeWidth = 4
			return st
		}(),
	})
	square.SetStyle(shape.StylePatch{
		Left: ptr(120.0),
		Top:  ptr(120.0),
	})
	doc.AddShape("shape_sample_square", square)

	star := shape.New([]geom.Point{
		{X: 80, Y: 0}, {X: 100, Y: 55}, {X: 160, Y: 55}, {X: 112, Y: 90},
		{X: 130, Y: 150}, {X: 80, Y: 115}, {X: 30, Y: 150}, {X: 48, Y: 90},
		{X: 0, Y: 55}, {X: 60, Y: 55},
	}, shape.Options{
		Style: func() shape.Style {
			st := shape.DefaultStyle()
			st.Fill = "#f9ed69"
			st.SkewX = 15
			return st
		}(),
	})
	star.SetStyle(shape.StylePatch{
		Left: ptr(420.0),
		Top:  ptr(200.0),
	})
	doc.AddShape("shape_sample_star", star)

	return doc
}

func ptr[T any](v T) *T { return &v }
