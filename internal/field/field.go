// Package field describes the pitch the team plays on. Own goal is at -X,
// the opponent goal at +X, and the centre spot is the origin.
package field

import "github.com/DoyleJ11/ball-contest-support/internal/geom"

// Default SPL field, in millimetres.
const (
	DefaultLength         = 9000.0
	DefaultWidth          = 6000.0
	DefaultBoundaryMargin = 500.0
)

type Geometry struct {
	Length         float64 `yaml:"length" json:"length"`
	Width          float64 `yaml:"width" json:"width"`
	BoundaryMargin float64 `yaml:"boundary_margin" json:"boundary_margin"`
}

func Default() Geometry {
	return Geometry{
		Length:         DefaultLength,
		Width:          DefaultWidth,
		BoundaryMargin: DefaultBoundaryMargin,
	}
}

func (g Geometry) HalfLength() float64 { return g.Length / 2 }
func (g Geometry) HalfWidth() float64  { return g.Width / 2 }

// OpponentGoal is the centre of the goal line we attack.
func (g Geometry) OpponentGoal() geom.Vec2 { return geom.V(g.HalfLength(), 0) }

// OwnGoal is the centre of the goal line we defend.
func (g Geometry) OwnGoal() geom.Vec2 { return geom.V(-g.HalfLength(), 0) }

// InOwnHalf reports whether p is strictly on our side of the halfway line.
func (g Geometry) InOwnHalf(p geom.Vec2) bool { return p.X < 0 }

// Clamp keeps p at least BoundaryMargin inside the field lines.
func (g Geometry) Clamp(p geom.Vec2) geom.Vec2 {
	maxX := g.HalfLength() - g.BoundaryMargin
	maxY := g.HalfWidth() - g.BoundaryMargin
	return geom.V(clamp(p.X, -maxX, maxX), clamp(p.Y, -maxY, maxY))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
