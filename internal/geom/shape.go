package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Shape is a convex hull swept by a disc: the set of points within Radius
// of the hull of Points. One point makes a circle, two a capsule, three or
// more a (possibly rounded) polygon. Points are in local space, CCW.
type Shape struct {
	Points []Vec2
	Radius float64
}

func Circle(r float64) Shape {
	return Shape{Points: []Vec2{{}}, Radius: r}
}

// Capsule lies along the local x axis; length is the distance between the
// cap centres.
func Capsule(length, r float64) Shape {
	h := length / 2
	return Shape{Points: []Vec2{{X: -h}, {X: h}}, Radius: r}
}

func Rect(width, height float64) Shape {
	hw, hh := width/2, height/2
	return Shape{Points: []Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}}
}

// RegularPolygon has n vertices at distance r from the origin, the first on
// the positive x axis.
func RegularPolygon(n int, r float64) Shape {
	pts := make([]Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return Shape{Points: pts}
}

func Hexagon(r float64) Shape  { return RegularPolygon(6, r) }
func Triangle(r float64) Shape { return RegularPolygon(3, r) }

// Polygon builds a shape from a convex, counter-clockwise point list.
func Polygon(points ...Vec2) Shape {
	return Shape{Points: append([]Vec2(nil), points...)}
}

// Expanded returns the shape inflated outward by margin.
func (s Shape) Expanded(margin float64) Shape {
	return Shape{Points: s.Points, Radius: s.Radius + margin}
}

// RoundedInward rounds a polygon's corners with radius r while keeping its
// outer edges where they were. Circles and capsules are returned unchanged.
func (s Shape) RoundedInward(r float64) Shape {
	n := len(s.Points)
	if n < 3 || r <= 0 {
		return s
	}
	out := make([]Vec2, n)
	for i, v := range s.Points {
		prev := s.Points[(i+n-1)%n]
		next := s.Points[(i+1)%n]
		n1 := outwardNormal(prev, v)
		n2 := outwardNormal(v, next)
		miter := n1.Add(n2).Scale(r / (1 + n1.Dot(n2)))
		out[i] = v.Sub(miter)
	}
	return Shape{Points: out, Radius: s.Radius + r}
}

func outwardNormal(a, b Vec2) Vec2 {
	e := b.Sub(a)
	return Vec2{X: e.Y, Y: -e.X}.Normalized()
}

// Build creates the cp shape for s attached to body. body may be nil
// for a shape that is only measured.
func (s Shape) Build(body *cp.Body) *cp.Shape {
	switch len(s.Points) {
	case 0:
		return cp.NewCircle(body, s.Radius, cp.Vector{})
	case 1:
		return cp.NewCircle(body, s.Radius, s.Points[0].Vector())
	case 2:
		a, b := s.Points[0].Vector(), s.Points[1].Vector()
		if a.Equal(b) {
			return cp.NewCircle(body, s.Radius, a)
		}
		return cp.NewSegment(body, a, b, s.Radius)
	}
	verts := make([]cp.Vector, len(s.Points))
	for i, p := range s.Points {
		verts[i] = p.Vector()
	}
	return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), s.Radius)
}

// Bounds returns the world-space bounding box of s at pose.
func (s Shape) Bounds(pose Pose) cp.BB {
	return s.Build(nil).Update(pose.Transform())
}
