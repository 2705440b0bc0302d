package svg

import (
	"strings"
	"testing"

	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

func testDocument() *document.Document {
	doc := document.NewEmptyDocument("draw_1", "test")
	doc.Canvas.Width, doc.Canvas.Height = 200, 100
	doc.Canvas.Background = "#101010"

	zero := 0.0
	st := shape.DefaultStyle()
	st.Fill = "#4ecca3"
	st.StrokeColor = "#232931"
	st.StrokeWidth = 4
	doc.AddShape("sq", shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		shape.Options{Style: st, Left: &zero, Top: &zero},
	))
	return doc
}

func TestWriteDocument(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, testDocument()); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">`,
		`<rect width="100%" height="100%" fill="#101010"/>`,
		`<polygon id="sq"`,
		`fill="#4ecca3"`,
		`stroke="#232931" stroke-width="4" stroke-linejoin="miter"`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSkipsUndrawableShapes(t *testing.T) {
	doc := testDocument()
	zero := 0.0
	doc.AddShape("empty", shape.New(nil, shape.Options{
		Style: shape.DefaultStyle(), Left: &zero, Top: &zero,
	}))

	var b strings.Builder
	if err := Write(&b, doc); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), `id="empty"`) {
		t.Fatal("undrawable shape was emitted")
	}
}

func TestWriteOmitsBackgroundWhenEmpty(t *testing.T) {
	doc := testDocument()
	doc.Canvas.Background = ""

	var b strings.Builder
	if err := Write(&b, doc); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "<rect") {
		t.Fatal("background rect emitted for empty background")
	}
}

func TestPointsAttrRebasesOnPathOffset(t *testing.T) {
	doc := testDocument()
	got := PointsAttr(doc.Shapes["sq"])

	// pathOffset of the square is (5,5).
	if got != "-5,-5 5,-5 5,5 -5,5" {
		t.Fatalf("PointsAttr = %q", got)
	}
}

func TestNumFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{2.5, "2.5"},
		{-0.125, "-0.125"},
		{1.0 / 3, "0.3333"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
