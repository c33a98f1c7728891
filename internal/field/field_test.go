package field

import (
	"testing"

	"github.com/DoyleJ11/ball-contest-support/internal/geom"
)

func TestGoals(t *testing.T) {
	g := Default()
	if got := g.OpponentGoal(); got != geom.V(4500, 0) {
		t.Fatalf("opponent goal = %+v, want (4500,0)", got)
	}
	if got := g.OwnGoal(); got != geom.V(-4500, 0) {
		t.Fatalf("own goal = %+v, want (-4500,0)", got)
	}
}

func TestClamp(t *testing.T) {
	g := Default()
	cases := []struct {
		name string
		in   geom.Vec2
		want geom.Vec2
	}{
		{"inside untouched", geom.V(100, -200), geom.V(100, -200)},
		{"past opponent line", geom.V(5000, 0), geom.V(4000, 0)},
		{"past own corner", geom.V(-4600, -3100), geom.V(-4000, -2500)},
		{"on margin", geom.V(4000, 2500), geom.V(4000, 2500)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Clamp(tc.in); got != tc.want {
				t.Fatalf("Clamp(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
