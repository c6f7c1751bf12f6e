package component

import "github.com/flamegrower/flamegrower/internal/physics"

// Collider links an entity to its shape in the physics world. An entity
// has at most one.
type Collider struct {
	Key physics.ColliderKey
}

// Body marks a physics object. Mass lives on the collider. There is no
// collision response: static bodies never move, and dynamic ones move only
// when repositioned through the world.
type Body struct {
	Static bool
}
