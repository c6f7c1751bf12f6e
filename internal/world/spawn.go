package world

import (
	"math"

	"github.com/flamegrower/flamegrower/internal/component"
	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/fire"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/physics"
)

// Presets are the flammable parameters each kind of burnable thing
// spawns with. Default is for physics objects marked flammable.
type Presets struct {
	Default   fire.Params
	Weed      fire.Params
	Rope      fire.Params
	Flamevine fire.Params
}

// DefaultPresets: weeds burn out in half a second, flamevines never do.
func DefaultPresets() Presets {
	weed := fire.DefaultParams()
	weed.TimeToDestroy = 0.5
	vine := fire.DefaultParams()
	vine.TimeToDestroy = fire.BurnForever
	return Presets{
		Default:   fire.DefaultParams(),
		Weed:      weed,
		Rope:      fire.DefaultParams(),
		Flamevine: vine,
	}
}

func (s *State) label(id ecs.EntityID, name string) {
	if name != "" {
		s.Labels.Set(id, &component.Label{Name: name})
	}
}

// SpawnStaticCollider adds immovable, non-flammable scenery.
func (s *State) SpawnStaticCollider(shape geom.Shape, pose geom.Pose, label string) ecs.EntityID {
	id := s.attach(physics.Collider{Shape: shape, Pose: pose, Static: true})
	s.Bodies.Set(id, &component.Body{Static: true})
	s.label(id, label)
	return id
}

// SpawnCapsuleChain lays a static capsule along each segment of points.
func (s *State) SpawnCapsuleChain(points []geom.Vec2, radius float64, label string) []ecs.EntityID {
	if len(points) < 2 {
		return nil
	}
	ids := make([]ecs.EntityID, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		d := b.Sub(a)
		mid := a.Lerp(b, 0.5)
		pose := geom.Pose{Translation: mid, Rotation: math.Atan2(d.Y, d.X)}
		ids = append(ids, s.SpawnStaticCollider(geom.Capsule(d.Len(), radius), pose, label))
	}
	return ids
}

// SpawnPlayerSpawnPoint records where the player enters the scene.
func (s *State) SpawnPlayerSpawnPoint(pos geom.Vec2, label string) ecs.EntityID {
	id := s.ecs.CreateEntity()
	s.Spawns.Set(id, &component.SpawnPoint{X: pos.X, Y: pos.Y})
	s.label(id, label)
	return id
}

// SpawnPhysicsObject adds a body whose collider takes its mass from the
// shape's area and density.
func (s *State) SpawnPhysicsObject(shape geom.Shape, pose geom.Pose, density float64, static bool, label string) ecs.EntityID {
	id := s.attach(physics.Collider{Shape: shape, Pose: pose, Static: static, Density: density})
	s.Bodies.Set(id, &component.Body{Static: static})
	s.label(id, label)
	return id
}

// SpawnFlammable adds a burnable body. Weeds and flamevines are both
// spawned through here with their own presets.
func (s *State) SpawnFlammable(shape geom.Shape, pose geom.Pose, params fire.Params, ignited, static bool, label string) ecs.EntityID {
	id := s.attach(physics.Collider{Shape: shape, Pose: pose, Static: static})
	s.Bodies.Set(id, &component.Body{Static: static})
	s.MakeFlammable(id, params, ignited)
	s.label(id, label)
	return id
}

// MakeFlammable gives an existing entity a combustion record. It replaces
// any record id already had.
func (s *State) MakeFlammable(id ecs.EntityID, params fire.Params, ignited bool) {
	f := fire.New(params)
	if ignited {
		f.Ignite()
	}
	s.Flammables.Set(id, f)
}
