package system

import (
	"time"

	coresys "github.com/flamegrower/flamegrower/internal/core/system"
	"github.com/flamegrower/flamegrower/internal/world"
)

// CleanupSystem deletes entities queued for destruction during the tick,
// through the world so colliders and ropes go with them.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}
