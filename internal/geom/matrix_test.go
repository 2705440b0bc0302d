package geom

import (
	"math"
	"testing"
)

func TestMultiplyAppliesOtherFirst(t *testing.T) {
	// Translate after scale: the translation must not be scaled.
	m := Translate(10, 20).Multiply(Scale(2, 3))
	x, y := m.TransformPoint(1, 1)
	if x != 12 || y != 23 {
		t.Fatalf("TransformPoint = (%v, %v), want (12, 23)", x, y)
	}

	// Scale after translate: the translation is scaled.
	m = Scale(2, 3).Multiply(Translate(10, 20))
	x, y = m.TransformPoint(1, 1)
	if x != 22 || y != 63 {
		t.Fatalf("TransformPoint = (%v, %v), want (22, 63)", x, y)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	matrices := []Matrix2D{
		Identity(),
		Translate(5, -3),
		Scale(2, 0.5),
		RotateDegrees(37),
		Translate(4, 4).Multiply(RotateDegrees(45)).Multiply(Scale(3, 1)),
		SkewXMatrix(30),
	}

	for _, m := range matrices {
		got := m.Multiply(m.Invert())
		if !got.IsIdentity() {
			t.Errorf("m * m^-1 = %v for %v", got, m)
		}
	}
}

func TestInvertSingularFallsBackToIdentity(t *testing.T) {
	m := Scale(0, 5)
	if got := m.Invert(); got != Identity() {
		t.Fatalf("Invert(singular) = %v, want identity", got)
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate(100, 200).Multiply(Scale(2, 2))
	x, y := m.TransformVector(3, 4)
	if x != 6 || y != 8 {
		t.Fatalf("TransformVector = (%v, %v), want (6, 8)", x, y)
	}
}

func TestDimensionsMatrixShearOrder(t *testing.T) {
	// X shear applied before Y shear: a unit x vector picks up the
	// y-shear, while the x-shear sees the already-sheared y.
	m := DimensionsMatrix(1, 1, false, false, 45, 45)
	x, y := m.TransformVector(1, 0)
	if math.Abs(y-1) > 1e-12 {
		t.Fatalf("y component = %v, want 1", y)
	}
	if math.Abs(x-1) > 1e-12 {
		t.Fatalf("x component = %v, want 1", x)
	}

	x, y = m.TransformVector(0, 1)
	if math.Abs(x-1) > 1e-12 || math.Abs(y-2) > 1e-12 {
		t.Fatalf("TransformVector(0,1) = (%v, %v), want (1, 2)", x, y)
	}
}

func TestDimensionsMatrixFlip(t *testing.T) {
	m := DimensionsMatrix(2, 3, true, false, 0, 0)
	x, y := m.TransformVector(1, 1)
	if x != -2 || y != 3 {
		t.Fatalf("TransformVector = (%v, %v), want (-2, 3)", x, y)
	}
}

func TestSizeAfterTransform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix2D
		want Point
	}{
		{"identity", Identity(), Pt(10, 4)},
		{"scale", Scale(2, 0.5), Pt(20, 2)},
		{"rot90", RotateDegrees(90), Pt(4, 10)},
	}

	for _, tt := range tests {
		got := SizeAfterTransform(10, 4, tt.m)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("%s: SizeAfterTransform = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
