// Package geom holds the small amount of planar math the coordination code needs.
// All lengths are millimetres, angles are radians.
package geom

import "math"

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Norm() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Norm() }
func (v Vec2) Angle() float64       { return math.Atan2(v.Y, v.X) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }

// Normalized returns the unit vector along v, or the zero vector when v has no length.
func (v Vec2) Normalized() Vec2 {
	n := v.Norm()
	if n == 0 {
		return Vec2{}
	}
	return Vec2{v.X / n, v.Y / n}
}

// Perp rotates v by +90°.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Pose is a field position plus facing.
type Pose struct {
	Position Vec2    `json:"position" yaml:"position"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
}

// Facing builds a pose at pos looking at target. If the two points nearly
// coincide the rotation is left at zero.
func Facing(pos, target Vec2) Pose {
	p := Pose{Position: pos}
	if d := target.Sub(pos); d.Norm() > 0.1 {
		p.Rotation = d.Angle()
	}
	return p
}
