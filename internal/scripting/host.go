package scripting

import (
	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/fire"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/world"
)

// SceneHost exposes a world and its fire system to scripts.
type SceneHost struct {
	World *world.State
	Fire  *fire.System
}

func (h SceneHost) Ignite(id ecs.EntityID) bool { return h.Fire.Ignite(id) }

func (h SceneHost) IgniteArea(x, y, radius float64) int {
	return h.Fire.IgniteArea(geom.V(x, y), radius)
}

func (h SceneHost) Burning(id ecs.EntityID) bool {
	f, ok := h.World.Flammables.Get(id)
	return ok && f.Burning()
}

func (h SceneHost) Temperature(id ecs.EntityID) (float64, bool) {
	f, ok := h.World.Flammables.Get(id)
	if !ok {
		return 0, false
	}
	return f.Temperature(), true
}

func (h SceneHost) BurningEntities() []ecs.EntityID { return h.World.Burning() }

func (h SceneHost) Find(label string) []ecs.EntityID        { return h.World.Find(label) }
func (h SceneHost) Contacts(id ecs.EntityID) []ecs.EntityID { return h.World.Contacts(id) }
func (h SceneHost) Alive(id ecs.EntityID) bool               { return h.World.Alive(id) }

func (h SceneHost) Mass(id ecs.EntityID) (float64, bool) { return h.World.Mass(id) }

// Remove marks id for the cleanup phase. The fire system skips it from
// the next tick on, like any entity deleted behind its back.
func (h SceneHost) Remove(id ecs.EntityID) bool {
	if !h.World.Alive(id) {
		return false
	}
	h.World.MarkForDestruction(id)
	return true
}
