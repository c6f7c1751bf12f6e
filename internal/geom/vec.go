// Package geom describes shapes and poses in scene units and turns them
// into cp shapes and bodies for the physics world.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2      { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Dot(o Vec2) float64        { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64      { return v.X*o.Y - v.Y*o.X }
func (v Vec2) LenSq() float64            { return v.Dot(v) }
func (v Vec2) Len() float64              { return math.Sqrt(v.LenSq()) }
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Len() }

// Normalized returns the unit vector along v, or zero for a zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate turns v by angle radians counter-clockwise.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Lerp interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

// Pose places a shape in the world: rotate about the local origin, then
// translate.
type Pose struct {
	Translation Vec2
	Rotation    float64 // radians, counter-clockwise
}

func NewPose(x, y, rotation float64) Pose {
	return Pose{Translation: Vec2{X: x, Y: y}, Rotation: rotation}
}

// Apply maps a local point into world space.
func (p Pose) Apply(local Vec2) Vec2 {
	return local.Rotate(p.Rotation).Add(p.Translation)
}

// Inverse maps world points back into p's local space.
func (p Pose) Inverse() Pose {
	return Pose{
		Translation: p.Translation.Scale(-1).Rotate(-p.Rotation),
		Rotation:    -p.Rotation,
	}
}

// Place moves body to p.
func (p Pose) Place(body *cp.Body) {
	body.SetPosition(p.Translation.Vector())
	body.SetAngle(p.Rotation)
}

// Transform is p as a cp transform.
func (p Pose) Transform() cp.Transform {
	return cp.NewTransformRigid(p.Translation.Vector(), p.Rotation)
}

func (v Vec2) Vector() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func FromVector(v cp.Vector) Vec2 { return Vec2{X: v.X, Y: v.Y} }
