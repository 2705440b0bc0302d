package render

import (
	"math"
	"strings"
	"testing"

	"github.com/vectorlab/vectorlab/backend-go/internal/document"
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

func newSquare(left, top float64) *shape.Shape {
	st := shape.DefaultStyle()
	st.Fill = "#fff"
	return shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		shape.Options{Style: st, Left: &left, Top: &top},
	)
}

func TestDrawableGuard(t *testing.T) {
	zero := 0.0
	empty := shape.New(nil, shape.Options{Style: shape.DefaultStyle(), Left: &zero, Top: &zero})
	if Drawable(empty) {
		t.Fatal("empty shape should not be drawable")
	}

	bad := shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: math.NaN()}},
		shape.Options{Style: shape.DefaultStyle(), Left: &zero, Top: &zero},
	)
	if Drawable(bad) {
		t.Fatal("non-finite final point should not be drawable")
	}

	if CompileShape("s", bad, geom.Identity()) != nil {
		t.Fatal("CompileShape must skip undrawable shapes")
	}

	if !Drawable(newSquare(0, 0)) {
		t.Fatal("square should be drawable")
	}
}

func TestCompileShapeSubtractsPathOffset(t *testing.T) {
	cmd := CompileShape("sq", newSquare(0, 0), geom.Identity())
	if cmd == nil {
		t.Fatal("nil command")
	}

	if cmd.Op != "path" || cmd.ShapeID != "sq" {
		t.Fatalf("command header = %+v", cmd)
	}

	// Square vertices rebased on pathOffset (5,5), closed with Z.
	want := []PathCommand{
		{"M", -5.0, -5.0},
		{"L", 5.0, -5.0},
		{"L", 5.0, 5.0},
		{"L", -5.0, 5.0},
		{"Z"},
	}
	if len(cmd.Path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(cmd.Path), len(want))
	}
	for i := range want {
		if len(cmd.Path[i]) != len(want[i]) {
			t.Fatalf("path[%d] = %v, want %v", i, cmd.Path[i], want[i])
		}
		for j := range want[i] {
			if cmd.Path[i][j] != want[i][j] {
				t.Fatalf("path[%d][%d] = %v, want %v", i, j, cmd.Path[i][j], want[i][j])
			}
		}
	}

	// Transform relocates the rebased path back to world space.
	if cmd.Transform[4] != 5 || cmd.Transform[5] != 5 {
		t.Fatalf("transform = %v", cmd.Transform)
	}
}

func TestCompileDocumentZOrder(t *testing.T) {
	doc := document.NewEmptyDocument("draw_1", "test")
	doc.AddShape("back", newSquare(0, 0))
	doc.AddShape("front", newSquare(5, 5))

	cmds := CompileDocument(doc, geom.Identity())
	if len(cmds) != 2 {
		t.Fatalf("len = %d", len(cmds))
	}
	if cmds[0].ShapeID != "back" || cmds[1].ShapeID != "front" {
		t.Fatalf("z-order = [%s, %s]", cmds[0].ShapeID, cmds[1].ShapeID)
	}

	if got := CompileDocument(nil, geom.Identity()); got != nil {
		t.Fatalf("nil document = %v", got)
	}
}

func TestWorldBounds(t *testing.T) {
	s := newSquare(20, 30)
	got := WorldBounds(s)
	want := geom.Rect{X: 20, Y: 30, Width: 10, Height: 10}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 ||
		math.Abs(got.Width-want.Width) > 1e-9 || math.Abs(got.Height-want.Height) > 1e-9 {
		t.Fatalf("WorldBounds = %+v, want %+v", got, want)
	}
}

func TestToJSON(t *testing.T) {
	cmds := CompileDocument(func() *document.Document {
		doc := document.NewEmptyDocument("draw_1", "test")
		doc.AddShape("sq", newSquare(0, 0))
		return doc
	}(), geom.Identity())

	out, err := ToJSON(cmds)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"op":"path"`, `"shapeId":"sq"`, `"fill":"#fff"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}
