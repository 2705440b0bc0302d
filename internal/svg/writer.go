// Package svg exports a document as an SVG image. It follows the same
// point-minus-pathOffset convention as the renderer: local vertices are
// rebased on the pathOffset, and the shape's full transform is emitted
// as a matrix() attribute.
package svg

import (
	"fmt"
	"io"
	"strings"

	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/render"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

// Write emits the document as a standalone SVG image.
func Write(w io.Writer, doc *document.Document) error {
	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		doc.Canvas.Width, doc.Canvas.Height, doc.Canvas.Width, doc.Canvas.Height)
	if err != nil {
		return err
	}

	if doc.Canvas.Background != "" {
		_, err = fmt.Fprintf(w, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", doc.Canvas.Background)
		if err != nil {
			return err
		}
	}

	for _, id := range doc.Order {
		s, ok := doc.Shapes[id]
		if !ok || !render.Drawable(s) {
			continue
		}
		if err := writePolygon(w, id, s); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "</svg>\n")
	return err
}

func writePolygon(w io.Writer, id string, s *shape.Shape) error {
	m := s.CalcTransformMatrix()
	st := s.Style()

	fill := st.Fill
	if fill == "" {
		fill = "none"
	}

	var attrs strings.Builder
	fmt.Fprintf(&attrs, ` fill="%s"`, fill)
	if st.StrokeColor != "" && st.StrokeWidth > 0 {
		fmt.Fprintf(&attrs, ` stroke="%s" stroke-width="%s" stroke-linejoin="%s"`,
			st.StrokeColor, num(st.StrokeWidth), st.StrokeLineJoin)
	}

	_, err := fmt.Fprintf(w,
		`  <polygon id="%s" points="%s" transform="matrix(%s %s %s %s %s %s)"%s/>`+"\n",
		id, PointsAttr(s),
		num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]),
		attrs.String())
	return err
}

// PointsAttr renders the polygon points attribute from the ordered
// vertex list, each vertex rebased on the pathOffset.
func PointsAttr(s *shape.Shape) string {
	offset := s.PathOffset()

	var b strings.Builder
	for i, p := range s.Points() {
		if i > 0 {
			b.WriteByte(' ')
		}
		q := p.Sub(offset)
		b.WriteString(num(q.X))
		b.WriteByte(',')
		b.WriteString(num(q.Y))
	}
	return b.String()
}

// num formats a coordinate compactly, trimming trailing zeros.
func num(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
