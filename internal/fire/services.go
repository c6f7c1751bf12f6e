package fire

import (
	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/physics"
)

// SpatialQuery finds colliders overlapping a shape. Implemented by
// *physics.World.
type SpatialQuery interface {
	QueryShape(pose geom.Pose, shape geom.Shape, filter physics.QueryFilter) []physics.ColliderKey
}

// Extent is an entity's collider with its current shape and placement.
type Extent struct {
	Collider physics.ColliderKey
	Shape    geom.Shape
	Pose     geom.Pose
}

// Linkage maps between colliders and the entities that own them.
type Linkage interface {
	EntityOf(key physics.ColliderKey) (ecs.EntityID, bool)
	ShapeAndPoseOf(id ecs.EntityID) (Extent, bool)
}

// ChainCutter detaches an entity from whatever rope it is linked into.
// Must be a no-op for entities that are not linked.
type ChainCutter interface {
	CutChainAt(id ecs.EntityID)
}

// Deleter removes an entity and its components. Must be a no-op for
// entities that are already gone.
type Deleter interface {
	DeleteEntity(id ecs.EntityID)
}
