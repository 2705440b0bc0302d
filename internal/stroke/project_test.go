package stroke

import (
	"math"
	"testing"

	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
)

var square = []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

func outlineBounds(pts []ProjectedPoint) geom.Rect {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = p.ProjectedPoint
	}
	return geom.BoundsOf(out)
}

func TestProjectEmpty(t *testing.T) {
	if got := Project(nil, 4, JoinMiter, false); got != nil {
		t.Fatalf("Project(nil) = %v, want nil", got)
	}
}

func TestProjectScaleAwareReturnsRawPoints(t *testing.T) {
	// A scale-aware stroke is painted at constant screen width after the
	// object transform, so the local outline is left unexpanded.
	got := Project(square, 6, JoinMiter, true)
	if len(got) != len(square) {
		t.Fatalf("len = %d, want %d", len(got), len(square))
	}
	for i, pp := range got {
		if pp.ProjectedPoint != square[i] || pp.OriginPoint != square[i] {
			t.Errorf("point %d = %+v, want raw %+v", i, pp, square[i])
		}
	}
}

func TestProjectZeroWidthReturnsRawPoints(t *testing.T) {
	got := Project(square, 0, JoinRound, false)
	if b := outlineBounds(got); b != (geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}) {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestProjectJoinBounds(t *testing.T) {
	// Every join style of a right-angled square expands the box by the
	// half width on each side.
	for _, join := range []LineJoin{JoinMiter, JoinRound, JoinBevel} {
		got := Project(square, 2, join, false)
		b := outlineBounds(got)
		want := geom.Rect{X: -1, Y: -1, Width: 12, Height: 12}
		if math.Abs(b.X-want.X) > 1e-9 || math.Abs(b.Y-want.Y) > 1e-9 ||
			math.Abs(b.Width-want.Width) > 1e-9 || math.Abs(b.Height-want.Height) > 1e-9 {
			t.Errorf("%s: bounds = %+v, want %+v", join, b, want)
		}
	}
}

func TestProjectMiterTipWithinLimit(t *testing.T) {
	// The right-angle miter tip extends half*sqrt(2) along the diagonal,
	// well within the limit of 4.
	got := Project(square, 2, JoinMiter, false)

	tip := math.Sqrt2 // half=1, sin(45 deg) = 1/sqrt(2)
	found := false
	for _, pp := range got {
		d := pp.ProjectedPoint.Sub(pp.OriginPoint).Length()
		if d > tip+1e-9 {
			t.Fatalf("outline point %v extends %v from origin %v", pp.ProjectedPoint, d, pp.OriginPoint)
		}
		if math.Abs(d-tip) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Fatal("no miter tip found at the expected extent")
	}
}

func TestProjectSharpSpikeFallsBackToBevel(t *testing.T) {
	// A nearly-degenerate spike exceeds the miter limit, so the outline
	// must stay within the bevel extent instead of running off along the
	// bisector.
	spike := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 1}, {X: 0, Y: 2}}
	got := Project(spike, 2, JoinMiter, false)

	for _, pp := range got {
		if d := pp.ProjectedPoint.Sub(pp.OriginPoint).Length(); d > MiterLimit*1+1e-9 {
			t.Fatalf("outline point extends %v beyond the miter limit", d)
		}
	}
}

func TestProjectDegenerateNeighborhoods(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
	}{
		{"single", []geom.Point{{X: 5, Y: 5}}},
		{"pair", []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{"duplicate", []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}},
	}

	for _, tt := range tests {
		got := Project(tt.points, 4, JoinMiter, false)
		if len(got) == 0 {
			t.Errorf("%s: no outline points", tt.name)
			continue
		}
		// Degenerate vertices contribute their half-width disc.
		b := outlineBounds(got)
		raw := geom.BoundsOf(tt.points)
		if b.Width < raw.Width+4-1e-9 || b.Height < raw.Height+4-1e-9 {
			t.Errorf("%s: bounds %+v not expanded from %+v", tt.name, b, raw)
		}
	}
}
