package data

import (
	"fmt"

	"github.com/flamegrower/flamegrower/internal/geom"
)

// ColliderDef describes a collider shape in scene units.
type ColliderDef struct {
	Shape        string  `yaml:"shape"` // circle, rect, capsule, hexagon, triangle
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height,omitempty"`
	CornerRadius float64 `yaml:"corner_radius,omitempty"`
}

// Build realises the definition. Width is the diameter for circles and
// the circumscribed diameter for hexagons and triangles; a capsule is
// width long between its cap centres and height thick.
func (c ColliderDef) Build() (geom.Shape, error) {
	if c.Width <= 0 {
		return geom.Shape{}, fmt.Errorf("collider %q: width must be positive", c.Shape)
	}
	var s geom.Shape
	switch c.Shape {
	case "circle":
		s = geom.Circle(c.Width / 2)
	case "rect":
		if c.Height <= 0 {
			return geom.Shape{}, fmt.Errorf("collider rect: height must be positive")
		}
		s = geom.Rect(c.Width, c.Height)
	case "capsule":
		if c.Height <= 0 {
			return geom.Shape{}, fmt.Errorf("collider capsule: height must be positive")
		}
		s = geom.Capsule(c.Width, c.Height/2)
	case "hexagon":
		s = geom.Hexagon(c.Width / 2)
	case "triangle":
		s = geom.Triangle(c.Width / 2)
	default:
		return geom.Shape{}, fmt.Errorf("unknown collider shape %q", c.Shape)
	}
	if c.CornerRadius > 0 {
		s = s.RoundedInward(c.CornerRadius)
	}
	return s, nil
}
