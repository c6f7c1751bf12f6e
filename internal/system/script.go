package system

import (
	"time"

	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/core/event"
	coresys "github.com/flamegrower/flamegrower/internal/core/system"
)

// ScriptHooks are the callbacks scripts can define.
// Implemented by *scripting.Engine.
type ScriptHooks interface {
	OnTick(tick uint64, seconds float64)
	OnBurnedOut(id ecs.EntityID, x, y float64)
	OnIgnited(id ecs.EntityID, cause string)
}

// ScriptSystem runs the scripts' tick hook and forwards fire events to
// them. Phase 0 (Input), so whatever a script ignites burns this tick.
type ScriptSystem struct {
	hooks ScriptHooks
	step  float64
	tick  uint64
}

func NewScriptSystem(hooks ScriptHooks, bus *event.Bus, step float64) *ScriptSystem {
	s := &ScriptSystem{hooks: hooks, step: step}
	event.Subscribe(bus, func(ev event.BurnedOut) {
		s.hooks.OnBurnedOut(ev.Entity, ev.X, ev.Y)
	})
	event.Subscribe(bus, func(ev event.Ignited) {
		s.hooks.OnIgnited(ev.Entity, ev.Cause.String())
	})
	return s
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ScriptSystem) Update(_ time.Duration) {
	s.tick++
	s.hooks.OnTick(s.tick, float64(s.tick)*s.step)
}
