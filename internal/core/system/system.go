package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: scripted triggers, external ignition
	PhasePreUpdate              // 1: deliver last tick's events
	PhasePhysics                // 2: collider repositioning
	PhaseUpdate                 // 3: combustion and other game logic
	PhasePersist                // 4: burn journal flush
	PhaseCleanup                // 5: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhasePhysics:
		return "physics"
	case PhaseUpdate:
		return "update"
	case PhasePersist:
		return "persist"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
