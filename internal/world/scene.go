package world

import (
	"fmt"

	"github.com/flamegrower/flamegrower/internal/data"
	"github.com/flamegrower/flamegrower/internal/rope"
	"go.uber.org/zap"
)

// Instantiate spawns every recipe of scene. Weed fields are expanded
// first. It returns how many entities were created.
func (s *State) Instantiate(scene *data.Scene, presets Presets) (int, error) {
	before := s.EntityCount()
	for i, r := range scene.Expand().Recipes {
		if err := s.spawnRecipe(&r, presets); err != nil {
			return s.EntityCount() - before, fmt.Errorf("recipe %d (%s): %w", i, r.Type, err)
		}
	}
	n := s.EntityCount() - before
	s.log.Info("scene instantiated",
		zap.Int("entities", n),
		zap.Int("flammable", s.Flammables.Len()),
		zap.Int("ropes", s.ropes.Len()),
	)
	return n, nil
}

func (s *State) spawnRecipe(r *data.Recipe, presets Presets) error {
	switch r.Type {
	case data.RecipeStaticCollider:
		shape, err := r.Collider.Build()
		if err != nil {
			return err
		}
		s.SpawnStaticCollider(shape, r.Pose.Pose(), r.Label)

	case data.RecipeStaticCapsuleChain:
		s.SpawnCapsuleChain(r.PointVecs(), r.Radius, r.Label)

	case data.RecipePlayerSpawnPoint:
		s.SpawnPlayerSpawnPoint(r.Pose.Pose().Translation, r.Label)

	case data.RecipePhysicsObject:
		shape, err := r.Collider.Build()
		if err != nil {
			return err
		}
		id := s.SpawnPhysicsObject(shape, r.Pose.Pose(), r.BodyDensity(), r.IsStatic(), r.Label)
		if r.Flammable {
			s.MakeFlammable(id, presets.Default, r.Ignited)
		}

	case data.RecipeWeed:
		shape, err := r.Collider.Build()
		if err != nil {
			return err
		}
		s.SpawnFlammable(shape, r.Pose.Pose(), presets.Weed, r.Ignited, r.IsStatic(), r.Label)

	case data.RecipeFlamevine:
		shape, err := r.Collider.Build()
		if err != nil {
			return err
		}
		s.SpawnFlammable(shape, r.Pose.Pose(), presets.Flamevine, true, r.IsStatic(), r.Label)

	case data.RecipeVine:
		rp := rope.DefaultParams()
		if r.Radius > 0 {
			rp.Thickness = 2 * r.Radius
		}
		s.SpawnVine(r.PointVecs(), rp, presets.Rope, r.Ignited, r.Label)

	default:
		return fmt.Errorf("cannot spawn recipe type %q", r.Type)
	}
	return nil
}
