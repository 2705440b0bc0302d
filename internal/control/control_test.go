package control

import (
	"math"
	"testing"

	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
	"github.com/vectorlab/vectorlab/backend-go/internal/shape"
)

func squareShape(mutate func(*shape.Style)) *shape.Shape {
	st := shape.DefaultStyle()
	if mutate != nil {
		mutate(&st)
	}
	zero := 0.0
	return shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		shape.Options{Style: st, Left: &zero, Top: &zero},
	)
}

func vertexWorld(s *shape.Shape, i int) geom.Point {
	return s.Point(i).Sub(s.PathOffset()).Transform(s.CalcTransformMatrix())
}

func approx(t *testing.T, name string, got, want geom.Point) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func TestPointControlPosition(t *testing.T) {
	s := squareShape(nil)
	viewport := geom.Translate(100, 50)

	got := PointControl{Index: 3}.Position(s, viewport)
	approx(t, "Position", got, geom.Pt(100, 60))

	got = PointControl{Index: 0}.Position(s, geom.Identity())
	approx(t, "Position", got, geom.Pt(0, 0))
}

func TestDragMovesSingleVertex(t *testing.T) {
	s := squareShape(nil)

	// Local pointer for world (-2.5, 2.5): the shape is centered at
	// (5,5), so the local frame is just a -5 translation.
	Drag(s, 0, geom.Pt(-7.5, -2.5))

	approx(t, "vertex", s.Point(0), geom.Pt(-2.5, 2.5))
	if s.Width() != 12.5 || s.Height() != 10 {
		t.Fatalf("size = (%v, %v)", s.Width(), s.Height())
	}
	approx(t, "pathOffset", s.PathOffset(), geom.Pt(3.75, 5))
	// Plain Drag does not re-anchor; position is untouched.
	if s.Left() != 0 || s.Top() != 0 {
		t.Fatalf("position = (%v, %v)", s.Left(), s.Top())
	}
}

func TestAnchoredDragSquare(t *testing.T) {
	s := squareShape(nil)

	// Drag vertex 2 from world (10,10) to world (15,10).
	pointer := s.WorldToLocal(geom.Pt(15, 10))
	approx(t, "pointer local", pointer, geom.Pt(10, 5))

	AnchoredDrag(s, 2, pointer)

	approx(t, "vertex", s.Point(2), geom.Pt(15, 10))
	if s.Width() != 15 || s.Height() != 10 {
		t.Fatalf("size = (%v, %v)", s.Width(), s.Height())
	}
	approx(t, "pathOffset", s.PathOffset(), geom.Pt(7.5, 5))
	// The anchor fix lands the position back where it started for this
	// geometry.
	if math.Abs(s.Left()) > 1e-9 || math.Abs(s.Top()) > 1e-9 {
		t.Fatalf("position = (%v, %v)", s.Left(), s.Top())
	}

	// The previous vertex stayed visually fixed and the dragged vertex
	// landed on the pointer.
	approx(t, "anchor world", vertexWorld(s, 1), geom.Pt(10, 0))
	approx(t, "dragged world", vertexWorld(s, 2), geom.Pt(15, 10))
}

func TestAnchoredDragKeepsAnchorFixed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*shape.Style)
		target geom.Point
	}{
		{"plain", nil, geom.Pt(15, 10)},
		{"scaled", func(st *shape.Style) { st.ScaleX, st.ScaleY = 2, 0.5 }, geom.Pt(25, 4)},
		{"uniform scale", func(st *shape.Style) { st.ScaleX, st.ScaleY = 2, 2 }, geom.Pt(30, 20)},
		{"flipX", func(st *shape.Style) { st.FlipX = true }, geom.Pt(-5, 10)},
		{"rotated", func(st *shape.Style) { st.Angle = 45 }, geom.Pt(12, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := squareShape(tt.mutate)
			anchorBefore := vertexWorld(s, 1)

			AnchoredDrag(s, 2, s.WorldToLocal(tt.target))

			approx(t, "anchor world", vertexWorld(s, 1), anchorBefore)
		})
	}
}

func TestAnchoredDragRotatedFollowsPointer(t *testing.T) {
	s := squareShape(func(st *shape.Style) { st.Angle = 45 })

	target := geom.Pt(12, 3)
	AnchoredDrag(s, 2, s.WorldToLocal(target))

	// At unit scale the dragged vertex tracks the pointer exactly, even
	// under rotation.
	approx(t, "dragged world", vertexWorld(s, 2), target)
}

func TestAnchoredDragFirstVertexWrapsToLast(t *testing.T) {
	s := squareShape(nil)
	lastBefore := vertexWorld(s, 3)

	AnchoredDrag(s, 0, s.WorldToLocal(geom.Pt(-5, -5)))

	approx(t, "wrap anchor", vertexWorld(s, 3), lastBefore)
	approx(t, "dragged world", vertexWorld(s, 0), geom.Pt(-5, -5))
}

func TestDragWithSkewUnskewsThePointer(t *testing.T) {
	s := squareShape(func(st *shape.Style) { st.SkewX = 30 })

	tan30 := math.Tan(30 * math.Pi / 180)
	approx(t, "pathOffset", s.PathOffset(), geom.Pt(5-5*tan30, 5))

	AnchoredDrag(s, 2, geom.Pt(10, 5))

	// newPoint = removeSkew(pointer + applySkew(pathOffset)): the skewed
	// frame shifts x by tan(30) per unit y.
	approx(t, "vertex", s.Point(2), geom.Pt(15-10*tan30, 10))
	if s.Width() != 10 || s.Height() != 10 {
		t.Fatalf("size = (%v, %v)", s.Width(), s.Height())
	}
}

func TestDragZeroSizeIsNoOp(t *testing.T) {
	zero := 0.0
	s := shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0}},
		shape.Options{Style: shape.DefaultStyle(), Left: &zero, Top: &zero},
	)
	if s.Height() != 0 {
		t.Fatalf("Height = %v, want 0", s.Height())
	}
	before := s.Points()

	if Drag(s, 1, geom.Pt(3, 3)) {
		t.Fatal("degenerate drag reported an edit")
	}

	for i, p := range s.Points() {
		if p != before[i] {
			t.Fatalf("degenerate drag mutated vertex %d: %+v", i, p)
		}
	}
}

func TestAnchoredDragDegenerateShapeKeepsPosition(t *testing.T) {
	zero := 0.0
	s := shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0}},
		shape.Options{Style: shape.DefaultStyle(), Left: &zero, Top: &zero},
	)

	if AnchoredDrag(s, 2, geom.Pt(3, 3)) {
		t.Fatal("degenerate drag reported an edit")
	}

	approx(t, "vertex", s.Point(2), geom.Pt(5, 0))
	if s.Left() != 0 || s.Top() != 0 {
		t.Fatalf("position = (%v, %v)", s.Left(), s.Top())
	}
	if math.IsNaN(s.Left()) || math.IsNaN(s.Top()) {
		t.Fatal("position is NaN")
	}
}

func TestAnchoredDragCollapsingEditSkipsAnchorFix(t *testing.T) {
	zero := 0.0
	s := shape.New(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 5}},
		shape.Options{Style: shape.DefaultStyle(), Left: &zero, Top: &zero},
	)

	// Dragging the apex onto the base line collapses the height to zero;
	// the edit lands but the re-anchor is skipped.
	if !AnchoredDrag(s, 2, s.WorldToLocal(geom.Pt(5, 0))) {
		t.Fatal("collapsing drag reported no edit")
	}

	approx(t, "vertex", s.Point(2), geom.Pt(5, 0))
	if s.Height() != 0 || s.Width() != 10 {
		t.Fatalf("size = (%v, %v)", s.Width(), s.Height())
	}
	if s.Left() != 0 || s.Top() != 0 {
		t.Fatalf("position = (%v, %v)", s.Left(), s.Top())
	}
}
