// Package rope tracks chains of linked particles (vines). A rope is an
// ordered particle list; consecutive particles are linked. Cutting a rope
// at a particle detaches that particle and leaves the two sides as
// independent ropes.
package rope

import (
	"math"

	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/physics"
)

// ID identifies a rope. IDs are not reused.
type ID uint32

type Params struct {
	Spacing   float64 // rest distance between consecutive particles
	Thickness float64 // particle diameter
}

func DefaultParams() Params {
	return Params{Spacing: 0.2, Thickness: 0.1}
}

// Particle is one linked segment: the entity that owns it and its collider.
type Particle struct {
	Entity   ecs.EntityID
	Collider physics.ColliderKey
}

type Rope struct {
	ID        ID
	Params    Params
	Particles []Particle
}

// Set owns every rope and indexes particles by entity.
type Set struct {
	ropes    map[ID]*Rope
	byEntity map[ecs.EntityID]ID
	nextID   ID
}

func NewSet() *Set {
	return &Set{
		ropes:    make(map[ID]*Rope),
		byEntity: make(map[ecs.EntityID]ID),
	}
}

// Insert registers a rope built from particles and returns its ID.
func (s *Set) Insert(params Params, particles []Particle) ID {
	s.nextID++
	r := &Rope{ID: s.nextID, Params: params, Particles: particles}
	s.ropes[r.ID] = r
	for _, p := range particles {
		s.byEntity[p.Entity] = r.ID
	}
	return r.ID
}

func (s *Set) Get(id ID) (*Rope, bool) {
	r, ok := s.ropes[id]
	return r, ok
}

// RopeOf returns the rope entity is linked into.
func (s *Set) RopeOf(entity ecs.EntityID) (ID, bool) {
	id, ok := s.byEntity[entity]
	return id, ok
}

func (s *Set) Len() int { return len(s.ropes) }

// Append links more particles onto the free end of a rope.
func (s *Set) Append(id ID, particles ...Particle) bool {
	r, ok := s.ropes[id]
	if !ok {
		return false
	}
	r.Particles = append(r.Particles, particles...)
	for _, p := range particles {
		s.byEntity[p.Entity] = id
	}
	return true
}

// Remove unregisters a whole rope and returns its particles so the caller
// can delete the entities. Unknown IDs return nil.
func (s *Set) Remove(id ID) []Particle {
	r, ok := s.ropes[id]
	if !ok {
		return nil
	}
	delete(s.ropes, id)
	for _, p := range r.Particles {
		delete(s.byEntity, p.Entity)
	}
	return r.Particles
}

// CutAt unlinks entity from its rope. The particles before it keep the
// rope's ID, the particles after it become a new rope; an empty side is
// dropped. It returns the surviving ropes and whether entity was linked.
// The cut particle itself is not deleted.
func (s *Set) CutAt(entity ecs.EntityID) ([]ID, bool) {
	id, ok := s.byEntity[entity]
	if !ok {
		return nil, false
	}
	r := s.ropes[id]
	k := -1
	for i, p := range r.Particles {
		if p.Entity == entity {
			k = i
			break
		}
	}
	delete(s.byEntity, entity)
	if k < 0 {
		return nil, false
	}

	left := append([]Particle(nil), r.Particles[:k]...)
	right := append([]Particle(nil), r.Particles[k+1:]...)

	var pieces []ID
	if len(left) > 0 {
		r.Particles = left
		pieces = append(pieces, id)
	} else {
		delete(s.ropes, id)
	}
	if len(right) > 0 {
		pieces = append(pieces, s.Insert(r.Params, right))
	}
	return pieces, true
}

// LinePoints lays particle positions from start to end, at most spacing
// apart, always including both ends.
func LinePoints(start, end geom.Vec2, spacing float64) []geom.Vec2 {
	dist := start.DistanceTo(end)
	n := 2
	if spacing > 0 {
		n = int(math.Ceil(dist/spacing)) + 1
		if n < 2 {
			n = 2
		}
	}
	pts := make([]geom.Vec2, n)
	for i := range pts {
		pts[i] = start.Lerp(end, float64(i)/float64(n-1))
	}
	return pts
}

// ExtendPoints continues a rope from its last particle at from, count
// particles along dir.
func ExtendPoints(from, dir geom.Vec2, count int, spacing float64) []geom.Vec2 {
	step := dir.Normalized().Scale(spacing)
	pts := make([]geom.Vec2, count)
	p := from
	for i := range pts {
		p = p.Add(step)
		pts[i] = p
	}
	return pts
}
