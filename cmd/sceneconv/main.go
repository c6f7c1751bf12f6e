// sceneconv converts a Tiled JSON map export into a scene YAML file.
//
// Objects are matched to recipes by their Tiled type (class). Rectangles
// and ellipses become colliders, polylines become capsule chains or
// vines, points become spawn points. Custom properties shape,
// corner_radius, radius, ignited, flammable, static and density are
// carried over.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/flamegrower/flamegrower/internal/data"
	"gopkg.in/yaml.v3"
)

type tiledMap struct {
	Layers []tiledLayer `json:"layers"`
}

type tiledLayer struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Objects []tiledObject `json:"objects"`
	Layers  []tiledLayer  `json:"layers"` // group layers
}

type tiledObject struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Class      string          `json:"class"`
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Rotation   float64         `json:"rotation"` // degrees, clockwise
	Ellipse    bool            `json:"ellipse"`
	Point      bool            `json:"point"`
	Polyline   []tiledPoint    `json:"polyline"`
	Properties []tiledProperty `json:"properties"`
}

type tiledPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type tiledProperty struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (o *tiledObject) kind() string {
	if o.Class != "" {
		return o.Class
	}
	return o.Type
}

func (o *tiledObject) prop(name string) (any, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (o *tiledObject) propFloat(name string) float64 {
	v, ok := o.prop(name)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	}
	return 0
}

func (o *tiledObject) propBool(name string) (bool, bool) {
	v, ok := o.prop(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (o *tiledObject) propString(name string) string {
	v, _ := o.prop(name)
	s, _ := v.(string)
	return s
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sceneconv <map.json> <scene.yaml> [pixels_per_unit]")
	}
	ppu := 32.0
	if len(args) > 2 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("bad pixels_per_unit %q", args[2])
		}
		ppu = v
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read map: %w", err)
	}
	var m tiledMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse map: %w", err)
	}

	scene, skipped := convert(&m, ppu)
	out, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	// validate what we produced the same way the simulation will
	if _, err := data.ParseScene(out); err != nil {
		return fmt.Errorf("converted scene invalid: %w", err)
	}
	if err := os.WriteFile(args[1], out, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	fmt.Printf("Wrote %d recipes to %s (%d objects skipped)\n", len(scene.Recipes), args[1], skipped)
	return nil
}

// convert maps every object layer of m to recipes. Tiled's y axis points
// down; scenes use y up.
func convert(m *tiledMap, ppu float64) (*data.Scene, int) {
	scene := &data.Scene{CameraZoom: 1}
	skipped := 0
	var walk func(layers []tiledLayer)
	walk = func(layers []tiledLayer) {
		for _, l := range layers {
			if l.Type == "group" {
				walk(l.Layers)
				continue
			}
			for i := range l.Objects {
				r, ok := convertObject(&l.Objects[i], ppu)
				if !ok {
					skipped++
					continue
				}
				scene.Recipes = append(scene.Recipes, r)
			}
		}
	}
	walk(m.Layers)
	return scene, skipped
}

func convertObject(o *tiledObject, ppu float64) (data.Recipe, bool) {
	r := data.Recipe{Type: o.kind(), Label: o.Name}
	switch r.Type {
	case data.RecipePlayerSpawnPoint:
		r.Pose = data.PoseDef{X: o.X / ppu, Y: -o.Y / ppu}

	case data.RecipeStaticCapsuleChain, data.RecipeVine:
		if len(o.Polyline) < 2 {
			return r, false
		}
		for _, p := range o.Polyline {
			r.Points = append(r.Points, data.Point{X: (o.X + p.X) / ppu, Y: -(o.Y + p.Y) / ppu})
		}
		r.Radius = o.propFloat("radius")
		if r.Type == data.RecipeStaticCapsuleChain && r.Radius <= 0 {
			r.Radius = 0.1
		}
		r.Ignited, _ = o.propBool("ignited")

	case data.RecipeStaticCollider, data.RecipePhysicsObject, data.RecipeWeed, data.RecipeFlamevine:
		if o.Width <= 0 {
			return r, false
		}
		r.Pose = objectPose(o, ppu)
		r.Collider = data.ColliderDef{
			Shape:        o.propString("shape"),
			Width:        o.Width / ppu,
			Height:       o.Height / ppu,
			CornerRadius: o.propFloat("corner_radius"),
		}
		if r.Collider.Shape == "" {
			r.Collider.Shape = "rect"
			if o.Ellipse {
				r.Collider.Shape = "circle"
			}
		}
		if b, ok := o.propBool("static"); ok {
			r.Static = &b
		}
		r.Density = o.propFloat("density")
		r.Ignited, _ = o.propBool("ignited")
		r.Flammable, _ = o.propBool("flammable")

	default:
		return r, false
	}
	return r, true
}

// objectPose returns the centre of a rectangle-ish object. Tiled rotates
// around the top-left corner.
func objectPose(o *tiledObject, ppu float64) data.PoseDef {
	theta := o.Rotation * math.Pi / 180
	hw, hh := o.Width/2, o.Height/2
	cx := o.X + hw*math.Cos(theta) - hh*math.Sin(theta)
	cy := o.Y + hw*math.Sin(theta) + hh*math.Cos(theta)
	return data.PoseDef{X: cx / ppu, Y: -cy / ppu, Rotation: -theta}
}
