package geom

import "testing"

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Rect
	}{
		{"empty", nil, Rect{}},
		{"single", []Point{{X: 3, Y: -2}}, Rect{X: 3, Y: -2}},
		{"square", []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Rect{0, 0, 10, 10}},
		{"negative", []Point{{-5, -5}, {5, 5}}, Rect{-5, -5, 10, 10}},
	}

	for _, tt := range tests {
		if got := BoundsOf(tt.points); got != tt.want {
			t.Errorf("%s: BoundsOf = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestBoundsOfEmptyMatchesOriginPoint(t *testing.T) {
	// An empty sequence behaves like the single point (0,0).
	if got, want := BoundsOf(nil), BoundsOf([]Point{{}}); got != want {
		t.Fatalf("BoundsOf(nil) = %+v, BoundsOf([(0,0)]) = %+v", got, want)
	}
}

func TestBoundsOfTranslationCovariance(t *testing.T) {
	pts := []Point{{1, 2}, {7, -3}, {4, 9}}
	base := BoundsOf(pts)

	d := Pt(13, -6)
	moved := make([]Point, len(pts))
	for i, p := range pts {
		moved[i] = p.Add(d)
	}
	got := BoundsOf(moved)

	if got.X != base.X+d.X || got.Y != base.Y+d.Y ||
		got.Width != base.Width || got.Height != base.Height {
		t.Fatalf("translated bounds = %+v, base %+v, delta %+v", got, base, d)
	}
}

func TestRectUnionAndContains(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 5, 10, 10}

	u := a.Union(b)
	if u != (Rect{0, 0, 15, 15}) {
		t.Fatalf("Union = %+v", u)
	}

	if !u.Contains(15, 15) || u.Contains(15.1, 15) {
		t.Fatal("Contains boundary check failed")
	}

	if got := (Rect{}).Union(a); got != a {
		t.Fatalf("empty union = %+v, want %+v", got, a)
	}
}

func TestRectCenter(t *testing.T) {
	c := Rect{2, 4, 6, 8}.Center()
	if c != Pt(5, 8) {
		t.Fatalf("Center = %+v", c)
	}
}
