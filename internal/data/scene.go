package data

import (
	"fmt"
	"os"

	"github.com/flamegrower/flamegrower/internal/geom"
	"gopkg.in/yaml.v3"
)

// Recipe types understood by the scene loader.
const (
	RecipeStaticCollider     = "static_collider"
	RecipeStaticCapsuleChain = "static_capsule_chain"
	RecipePlayerSpawnPoint   = "player_spawn_point"
	RecipePhysicsObject      = "physics_object"
	RecipeWeed               = "weed"
	RecipeFlamevine          = "flamevine"
	RecipeVine               = "vine"
	RecipeWeedField          = "weed_field"
)

// DefaultDensity is used by physics objects that don't set one.
const DefaultDensity = 0.25

// Scene is a level: camera settings plus the recipes that populate it.
type Scene struct {
	CameraZoom float64  `yaml:"camera_zoom"`
	Recipes    []Recipe `yaml:"recipes"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vec() geom.Vec2 { return geom.V(p.X, p.Y) }

// PoseDef is a placement in scene units. Rotation is in radians.
type PoseDef struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

func (p PoseDef) Pose() geom.Pose { return geom.NewPose(p.X, p.Y, p.Rotation) }

// Recipe is one thing to spawn. Which fields matter depends on Type.
type Recipe struct {
	Type      string      `yaml:"type"`
	Label     string      `yaml:"label,omitempty"`
	Pose      PoseDef     `yaml:"pose,omitempty"`
	Collider  ColliderDef `yaml:"collider,omitempty"`
	Points    []Point     `yaml:"points,omitempty"` // capsule chains and vines
	Radius    float64     `yaml:"radius,omitempty"`
	Static    *bool       `yaml:"static,omitempty"`
	Density   float64     `yaml:"density,omitempty"`
	Ignited   bool        `yaml:"ignited,omitempty"`   // weeds, vines and flammable objects start burning
	Flammable bool        `yaml:"flammable,omitempty"` // physics objects burn with the default preset
	Field     *WeedField  `yaml:"field,omitempty"`
}

// IsStatic reports whether the recipe's body is static. Weeds are static
// unless told otherwise, physics objects are dynamic.
func (r *Recipe) IsStatic() bool {
	if r.Static != nil {
		return *r.Static
	}
	return r.Type != RecipePhysicsObject
}

func (r *Recipe) BodyDensity() float64 {
	if r.Density > 0 {
		return r.Density
	}
	return DefaultDensity
}

// PointVecs returns Points as vectors.
func (r *Recipe) PointVecs() []geom.Vec2 {
	out := make([]geom.Vec2, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Vec()
	}
	return out
}

func (r *Recipe) validate() error {
	switch r.Type {
	case RecipeStaticCollider, RecipePhysicsObject, RecipeWeed, RecipeFlamevine:
		if _, err := r.Collider.Build(); err != nil {
			return err
		}
	case RecipeStaticCapsuleChain:
		if len(r.Points) < 2 {
			return fmt.Errorf("capsule chain needs at least 2 points, got %d", len(r.Points))
		}
		if r.Radius <= 0 {
			return fmt.Errorf("capsule chain radius must be positive")
		}
	case RecipeVine:
		if len(r.Points) < 2 {
			return fmt.Errorf("vine needs at least 2 points, got %d", len(r.Points))
		}
	case RecipePlayerSpawnPoint:
	case RecipeWeedField:
		if r.Field == nil {
			return fmt.Errorf("weed_field without field")
		}
		return r.Field.validate()
	case "":
		return fmt.Errorf("missing type")
	default:
		return fmt.Errorf("unknown recipe type %q", r.Type)
	}
	return nil
}

// LoadScene loads a scene YAML file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(raw []byte) (*Scene, error) {
	s := &Scene{CameraZoom: 1}
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i := range s.Recipes {
		if err := s.Recipes[i].validate(); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
	}
	return s, nil
}

// Expand returns a copy of the scene with every weed_field replaced by
// the weeds it generates. Other recipes keep their order.
func (s *Scene) Expand() *Scene {
	out := &Scene{CameraZoom: s.CameraZoom, Recipes: make([]Recipe, 0, len(s.Recipes))}
	for _, r := range s.Recipes {
		if r.Type != RecipeWeedField {
			out.Recipes = append(out.Recipes, r)
			continue
		}
		out.Recipes = append(out.Recipes, r.Field.Weeds(r.Label)...)
	}
	return out
}

// Count returns how many recipes of type t the scene holds.
func (s *Scene) Count(t string) int {
	n := 0
	for i := range s.Recipes {
		if s.Recipes[i].Type == t {
			n++
		}
	}
	return n
}
