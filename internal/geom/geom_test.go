package geom

import (
	"math"
	"testing"
)

func TestNormalizedZeroVector(t *testing.T) {
	if got := (Vec2{}).Normalized(); !got.IsZero() {
		t.Fatalf("zero vector normalized = %+v, want zero", got)
	}
}

func TestNormalizedUnitLength(t *testing.T) {
	got := V(3, 4).Normalized()
	if math.Abs(got.Norm()-1) > 1e-12 {
		t.Fatalf("norm = %f, want 1", got.Norm())
	}
}

func TestPerpIsOrthogonal(t *testing.T) {
	v := V(2, -7)
	p := v.Perp()
	if dot := v.X*p.X + v.Y*p.Y; dot != 0 {
		t.Fatalf("dot(v, perp) = %f, want 0", dot)
	}
}

func TestFacing(t *testing.T) {
	p := Facing(V(0, 0), V(0, 100))
	if math.Abs(p.Rotation-math.Pi/2) > 1e-12 {
		t.Fatalf("rotation = %f, want pi/2", p.Rotation)
	}
	// coincident points keep a zero rotation
	if p := Facing(V(5, 5), V(5, 5.01)); p.Rotation != 0 {
		t.Fatalf("rotation = %f, want 0", p.Rotation)
	}
}
