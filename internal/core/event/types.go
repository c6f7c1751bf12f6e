package event

import "github.com/flamegrower/flamegrower/internal/core/ecs"

// IgnitionCause says why an entity caught fire.
type IgnitionCause int

const (
	CauseSpread   IgnitionCause = iota // heated past its threshold by a neighbour
	CauseExternal                      // forced through Ignite (scripts, triggers)
)

func (c IgnitionCause) String() string {
	if c == CauseExternal {
		return "external"
	}
	return "spread"
}

// Ignited is emitted when an entity transitions to burning.
type Ignited struct {
	Entity ecs.EntityID
	Tick   uint64
	Cause  IgnitionCause
	X, Y   float64
}

// BurnedOut is emitted when a burning entity's timer elapsed and it was
// removed from the world.
type BurnedOut struct {
	Entity      ecs.EntityID
	Tick        uint64
	TimeBurning float64
	X, Y        float64
}

// ChainCut is emitted when a rope was split at a particle.
type ChainCut struct {
	Entity ecs.EntityID
	Rope   uint32
	Tick   uint64
	Pieces int // surviving sub-ropes
}
