package fire

import (
	"math"
	"time"

	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/core/event"
	coresys "github.com/flamegrower/flamegrower/internal/core/system"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/physics"
	"go.uber.org/zap"
)

// Deps are the collaborators a System reads and writes. Bus and Metrics
// are optional.
type Deps struct {
	Store   *ecs.Store[Flammable]
	Query   SpatialQuery
	Links   Linkage
	Chains  ChainCutter
	Deleter Deleter
	Bus     *event.Bus
	Metrics *Metrics
}

// heatDelta is heat owed to an entity, collected while the store is only
// being read and applied once the gather is over.
type heatDelta struct {
	target ecs.EntityID
	amount float64
}

// System runs combustion once per fixed step, after physics has moved
// everything. Phase 3 (Update).
type System struct {
	deps Deps
	log  *zap.Logger
	step float64 // seconds per Update call
	tick uint64

	pending []heatDelta
	doomed  []ecs.EntityID
}

// NewSystem creates a fire system. step is the fixed timestep in seconds
// used by Update; Tick takes its own dt.
func NewSystem(deps Deps, step float64, log *zap.Logger) *System {
	if log == nil {
		log = zap.NewNop()
	}
	return &System{
		deps:    deps,
		log:     log,
		step:    step,
		pending: make([]heatDelta, 0, 64),
		doomed:  make([]ecs.EntityID, 0, 16),
	}
}

func (s *System) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Update advances one fixed step. The runner's duration is ignored so that
// float accumulation matches Tick(step) exactly.
func (s *System) Update(_ time.Duration) {
	s.Tick(s.step)
}

// Ticks returns how many ticks have run.
func (s *System) Ticks() uint64 { return s.tick }

// Tick runs the whole combustion step: reset, gather heat, apply heat,
// transition, then cut and delete what burned out. The order is fixed;
// each stage needs the previous one finished for every entity.
func (s *System) Tick(dt float64) {
	s.tick++
	start := time.Now()

	s.resetCooling()
	s.gatherHeat(dt)
	s.applyHeat()
	s.transition(dt)
	s.destroyBurnedOut()

	if m := s.deps.Metrics; m != nil {
		m.burning.Set(float64(s.BurningCount()))
		m.tickSeconds.Observe(time.Since(start).Seconds())
	}
}

// resetCooling assumes nothing is heating anyone until gatherHeat proves
// otherwise.
func (s *System) resetCooling() {
	s.deps.Store.Each(func(_ ecs.EntityID, f *Flammable) {
		if st, ok := f.state.(NotOnFire); ok {
			st.CoolingDown = true
			f.state = st
		}
	})
}

// gatherHeat only reads combustion state, shapes, poses and the spatial
// index; everything it learns goes into s.pending.
func (s *System) gatherHeat(dt float64) {
	s.pending = s.pending[:0]
	s.deps.Store.EachSorted(func(id ecs.EntityID, f *Flammable) {
		if _, ok := f.state.(OnFire); !ok {
			return
		}
		ext, ok := s.deps.Links.ShapeAndPoseOf(id)
		if !ok {
			return
		}
		heat := f.params.BurningHeat * dt
		hits := s.deps.Query.QueryShape(ext.Pose, ext.Shape.Expanded(SpreadMargin), physics.QueryFilter{})
		for _, key := range hits {
			if key == ext.Collider {
				continue
			}
			other, ok := s.deps.Links.EntityOf(key)
			if !ok {
				continue
			}
			// flammability of other is checked in applyHeat
			s.pending = append(s.pending, heatDelta{target: other, amount: heat})
		}
	})
}

func (s *System) applyHeat() {
	applied := 0
	for _, d := range s.pending {
		f, ok := s.deps.Store.Get(d.target)
		if !ok {
			continue
		}
		st, ok := f.state.(NotOnFire)
		if !ok {
			continue
		}
		st.Temperature += d.amount
		st.CoolingDown = false
		f.state = st
		applied++
	}
	if m := s.deps.Metrics; m != nil && applied > 0 {
		m.heatTransfers.Add(float64(applied))
	}
	s.pending = s.pending[:0]
}

// transition advances burn timers, cools or ignites everything else and
// queues burned-out entities.
func (s *System) transition(dt float64) {
	s.doomed = s.doomed[:0]
	s.deps.Store.EachSorted(func(id ecs.EntityID, f *Flammable) {
		switch st := f.state.(type) {
		case OnFire:
			st.TimeBurning += dt
			f.state = st
			if st.TimeBurning >= f.params.TimeToDestroy {
				s.doomed = append(s.doomed, id)
			}
		case NotOnFire:
			if st.CoolingDown {
				st.Temperature = math.Max(0, st.Temperature-f.params.CooldownRate*dt)
				f.state = st
				return
			}
			// heated this tick: no cooldown, only the ignition check
			if st.Temperature >= f.params.TempToCatchFire {
				f.Ignite()
				s.ignited(id, event.CauseSpread)
			}
		}
	})
}

// BurningCount counts the entities currently on fire. Deletions by the
// Deleter, cascading or not, are already reflected.
func (s *System) BurningCount() int {
	n := 0
	s.deps.Store.Each(func(_ ecs.EntityID, f *Flammable) {
		if f.Burning() {
			n++
		}
	})
	return n
}

// destroyBurnedOut runs after every pass over the store is finished:
// deleting an entity invalidates its components.
func (s *System) destroyBurnedOut() {
	for _, id := range s.doomed {
		var timeBurning float64
		if f, ok := s.deps.Store.Get(id); ok {
			if st, ok := f.state.(OnFire); ok {
				timeBurning = st.TimeBurning
			}
		}
		pos := s.position(id)

		s.deps.Chains.CutChainAt(id)
		s.deps.Deleter.DeleteEntity(id)

		s.log.Debug("burned out",
			zap.Stringer("entity", id),
			zap.Float64("time_burning", timeBurning),
		)
		if s.deps.Bus != nil {
			event.Emit(s.deps.Bus, event.BurnedOut{
				Entity:      id,
				Tick:        s.tick,
				TimeBurning: timeBurning,
				X:           pos.X,
				Y:           pos.Y,
			})
		}
		if m := s.deps.Metrics; m != nil {
			m.burnedOut.Inc()
		}
	}
	s.doomed = s.doomed[:0]
}

// Ignite forces id to start burning now, restarting the timer if it is
// already burning. Returns false when id is not flammable.
func (s *System) Ignite(id ecs.EntityID) bool {
	f, ok := s.deps.Store.Get(id)
	if !ok {
		return false
	}
	f.Ignite()
	s.ignited(id, event.CauseExternal)
	return true
}

// IgniteArea ignites every flammable whose collider overlaps the disc at
// center. Returns how many were ignited.
func (s *System) IgniteArea(center geom.Vec2, radius float64) int {
	hits := s.deps.Query.QueryShape(geom.Pose{Translation: center}, geom.Circle(radius), physics.QueryFilter{})
	n := 0
	for _, key := range hits {
		id, ok := s.deps.Links.EntityOf(key)
		if !ok {
			continue
		}
		if s.Ignite(id) {
			n++
		}
	}
	return n
}

func (s *System) ignited(id ecs.EntityID, cause event.IgnitionCause) {
	s.log.Debug("ignited", zap.Stringer("entity", id), zap.Stringer("cause", cause))
	if s.deps.Bus != nil {
		pos := s.position(id)
		event.Emit(s.deps.Bus, event.Ignited{
			Entity: id,
			Tick:   s.tick,
			Cause:  cause,
			X:      pos.X,
			Y:      pos.Y,
		})
	}
	if m := s.deps.Metrics; m != nil {
		m.ignitions.WithLabelValues(cause.String()).Inc()
	}
}

func (s *System) position(id ecs.EntityID) geom.Vec2 {
	if ext, ok := s.deps.Links.ShapeAndPoseOf(id); ok {
		return ext.Pose.Translation
	}
	return geom.Vec2{}
}
