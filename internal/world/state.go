package world

import (
	"sort"

	"github.com/flamegrower/flamegrower/internal/component"
	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/core/event"
	"github.com/flamegrower/flamegrower/internal/fire"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/physics"
	"github.com/flamegrower/flamegrower/internal/rope"
	"go.uber.org/zap"
)

// State is the simulated scene: entities, their colliders and the ropes
// linking them. Accessed only from the tick goroutine, no locks.
type State struct {
	ecs   *ecs.World
	phys  *physics.World
	ropes *rope.Set
	bus   *event.Bus
	log   *zap.Logger
	clock func() uint64

	Flammables *ecs.Store[fire.Flammable]
	Colliders  *ecs.Store[component.Collider]
	Bodies     *ecs.Store[component.Body]
	Labels     *ecs.Store[component.Label]
	Spawns     *ecs.Store[component.SpawnPoint]

	byCollider map[physics.ColliderKey]ecs.EntityID
}

// NewState creates an empty scene with the game's collision layers.
// bus may be nil.
func NewState(bus *event.Bus, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		ecs:        ecs.NewWorld(),
		phys:       physics.NewWorld(GameMask()),
		ropes:      rope.NewSet(),
		bus:        bus,
		log:        log,
		clock:      func() uint64 { return 0 },
		Flammables: ecs.NewStore[fire.Flammable](),
		Colliders:  ecs.NewStore[component.Collider](),
		Bodies:     ecs.NewStore[component.Body](),
		Labels:     ecs.NewStore[component.Label](),
		Spawns:     ecs.NewStore[component.SpawnPoint](),
		byCollider: make(map[physics.ColliderKey]ecs.EntityID),
	}
	reg := s.ecs.Registry()
	reg.Register(s.Flammables)
	reg.Register(s.Colliders)
	reg.Register(s.Bodies)
	reg.Register(s.Labels)
	reg.Register(s.Spawns)
	return s
}

func (s *State) Physics() *physics.World { return s.phys }
func (s *State) Ropes() *rope.Set        { return s.ropes }

// SetClock sets the tick source stamped on emitted events.
func (s *State) SetClock(fn func() uint64) {
	if fn != nil {
		s.clock = fn
	}
}

func (s *State) Alive(id ecs.EntityID) bool { return s.ecs.Alive(id) }

// EntityCount returns the number of live entities.
func (s *State) EntityCount() int { return s.ecs.Pool().Live() }

// EntityOf returns the entity owning a collider.
func (s *State) EntityOf(key physics.ColliderKey) (ecs.EntityID, bool) {
	id, ok := s.byCollider[key]
	return id, ok
}

// ShapeAndPoseOf returns id's collider with its current shape and pose.
func (s *State) ShapeAndPoseOf(id ecs.EntityID) (fire.Extent, bool) {
	c, ok := s.Colliders.Get(id)
	if !ok {
		return fire.Extent{}, false
	}
	col, ok := s.phys.Get(c.Key)
	if !ok {
		return fire.Extent{}, false
	}
	return fire.Extent{Collider: c.Key, Shape: col.Shape, Pose: col.Pose}, true
}

// Position returns where id is, from its collider or its spawn point.
func (s *State) Position(id ecs.EntityID) (geom.Vec2, bool) {
	if ext, ok := s.ShapeAndPoseOf(id); ok {
		return ext.Pose.Translation, true
	}
	if sp, ok := s.Spawns.Get(id); ok {
		return geom.V(sp.X, sp.Y), true
	}
	return geom.Vec2{}, false
}

// CutChainAt detaches id from its rope, splitting the rope in two. Does
// nothing when id is not linked.
func (s *State) CutChainAt(id ecs.EntityID) {
	rid, ok := s.ropes.RopeOf(id)
	if !ok {
		return
	}
	pieces, ok := s.ropes.CutAt(id)
	if !ok {
		return
	}
	s.log.Debug("rope cut",
		zap.Stringer("entity", id),
		zap.Uint32("rope", uint32(rid)),
		zap.Int("pieces", len(pieces)),
	)
	if s.bus != nil {
		event.Emit(s.bus, event.ChainCut{
			Entity: id,
			Rope:   uint32(rid),
			Tick:   s.clock(),
			Pieces: len(pieces),
		})
	}
}

// DeleteEntity removes id with all its components and its collider.
// Deleting a particle that is still linked into a rope deletes the whole
// rope. Deleting a dead entity does nothing.
func (s *State) DeleteEntity(id ecs.EntityID) {
	if !s.ecs.Alive(id) {
		return
	}
	if rid, ok := s.ropes.RopeOf(id); ok {
		particles := s.ropes.Remove(rid)
		s.log.Debug("rope removed with particle",
			zap.Stringer("entity", id),
			zap.Uint32("rope", uint32(rid)),
			zap.Int("particles", len(particles)),
		)
		for _, p := range particles {
			s.despawn(p.Entity)
		}
		return
	}
	s.despawn(id)
}

func (s *State) despawn(id ecs.EntityID) {
	if c, ok := s.Colliders.Get(id); ok {
		s.phys.Remove(c.Key)
		delete(s.byCollider, c.Key)
	}
	s.ecs.Despawn(id)
}

// Mass returns the mass of id's collider. Colliders spawned without a
// density weigh nothing.
func (s *State) Mass(id ecs.EntityID) (float64, bool) {
	c, ok := s.Colliders.Get(id)
	if !ok {
		return 0, false
	}
	return s.phys.Mass(c.Key)
}

// MarkForDestruction queues id for deletion at the end of the tick.
func (s *State) MarkForDestruction(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// FlushDestroyQueue deletes everything queued by MarkForDestruction.
func (s *State) FlushDestroyQueue() {
	s.ecs.FlushDestroyQueue(s.DeleteEntity)
}

// Find returns the live entities labelled name, in ID order.
func (s *State) Find(name string) []ecs.EntityID {
	var out []ecs.EntityID
	s.Labels.Each(func(id ecs.EntityID, l *component.Label) {
		if l.Name == name {
			out = append(out, id)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Burning returns the burning entities that have a collider, in ID order.
func (s *State) Burning() []ecs.EntityID {
	var out []ecs.EntityID
	ecs.Each2(s.Flammables, s.Colliders, func(id ecs.EntityID, f *fire.Flammable, _ *component.Collider) {
		if f.Burning() {
			out = append(out, id)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contacts returns the entities whose colliders touch id's and whose
// layers interact with it.
func (s *State) Contacts(id ecs.EntityID) []ecs.EntityID {
	c, ok := s.Colliders.Get(id)
	if !ok {
		return nil
	}
	var out []ecs.EntityID
	for _, ct := range s.phys.ContactsFor(c.Key) {
		if other, ok := s.byCollider[ct.Colliders[1]]; ok {
			out = append(out, other)
		}
	}
	return out
}

// attach creates an entity owning a new collider.
func (s *State) attach(c physics.Collider) ecs.EntityID {
	id := s.ecs.CreateEntity()
	key := s.phys.Insert(c)
	s.Colliders.Set(id, &component.Collider{Key: key})
	s.byCollider[key] = id
	return id
}

// Move repositions id's collider.
func (s *State) Move(id ecs.EntityID, pose geom.Pose) bool {
	c, ok := s.Colliders.Get(id)
	if !ok {
		return false
	}
	return s.phys.SetPose(c.Key, pose)
}
