package world

import (
	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/fire"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/physics"
	"github.com/flamegrower/flamegrower/internal/rope"
	"go.uber.org/zap"
)

func (s *State) spawnParticle(pos geom.Vec2, rp rope.Params, fp fire.Params, ignited bool, label string) rope.Particle {
	id := s.attach(physics.Collider{
		Shape: geom.Circle(rp.Thickness / 2),
		Pose:  geom.Pose{Translation: pos},
		Layer: physics.LayerRope,
	})
	s.MakeFlammable(id, fp, ignited)
	s.label(id, label)
	c, _ := s.Colliders.Get(id)
	return rope.Particle{Entity: id, Collider: c.Key}
}

// SpawnVine lays a flammable rope along the polyline points, one particle
// every rp.Spacing. Returns the rope and its particle entities in order.
func (s *State) SpawnVine(points []geom.Vec2, rp rope.Params, fp fire.Params, ignited bool, label string) (rope.ID, []ecs.EntityID) {
	if len(points) < 2 {
		return 0, nil
	}
	var positions []geom.Vec2
	for i := 1; i < len(points); i++ {
		seg := rope.LinePoints(points[i-1], points[i], rp.Spacing)
		if i > 1 {
			seg = seg[1:] // joint already placed
		}
		positions = append(positions, seg...)
	}

	particles := make([]rope.Particle, len(positions))
	ids := make([]ecs.EntityID, len(positions))
	for i, p := range positions {
		particles[i] = s.spawnParticle(p, rp, fp, ignited, label)
		ids[i] = particles[i].Entity
	}
	rid := s.ropes.Insert(rp, particles)
	s.log.Debug("vine spawned", zap.Uint32("rope", uint32(rid)), zap.Int("particles", len(ids)))
	return rid, ids
}

// ExtendVine grows a rope from its last particle by count particles along
// dir. New particles are flammable with fp.
func (s *State) ExtendVine(rid rope.ID, dir geom.Vec2, count int, fp fire.Params) []ecs.EntityID {
	r, ok := s.ropes.Get(rid)
	if !ok || len(r.Particles) == 0 || count <= 0 {
		return nil
	}
	last := r.Particles[len(r.Particles)-1]
	from, ok := s.Position(last.Entity)
	if !ok {
		return nil
	}
	var label string
	if l, ok := s.Labels.Get(last.Entity); ok {
		label = l.Name
	}

	pts := rope.ExtendPoints(from, dir, count, r.Params.Spacing)
	added := make([]rope.Particle, len(pts))
	ids := make([]ecs.EntityID, len(pts))
	for i, p := range pts {
		added[i] = s.spawnParticle(p, r.Params, fp, false, label)
		ids[i] = added[i].Entity
	}
	s.ropes.Append(rid, added...)
	return ids
}

// RetractVine deletes a whole rope with all its particles and returns
// how many were deleted.
func (s *State) RetractVine(rid rope.ID) int {
	particles := s.ropes.Remove(rid)
	for _, p := range particles {
		s.despawn(p.Entity)
	}
	return len(particles)
}
