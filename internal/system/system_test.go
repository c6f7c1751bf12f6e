package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/flamegrower/flamegrower/internal/core/event"
	coresys "github.com/flamegrower/flamegrower/internal/core/system"
	"github.com/flamegrower/flamegrower/internal/fire"
	"github.com/flamegrower/flamegrower/internal/geom"
	"github.com/flamegrower/flamegrower/internal/persist"
	"github.com/flamegrower/flamegrower/internal/rope"
	"github.com/flamegrower/flamegrower/internal/scripting"
	"github.com/flamegrower/flamegrower/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const step = 1.0 / 60

type memWriter struct {
	batches [][]persist.BurnLogEntry
	err     error
}

func (w *memWriter) WriteBatch(_ context.Context, entries []persist.BurnLogEntry) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, append([]persist.BurnLogEntry(nil), entries...))
	return nil
}

func (w *memWriter) all() []persist.BurnLogEntry {
	var out []persist.BurnLogEntry
	for _, b := range w.batches {
		out = append(out, b...)
	}
	return out
}

type hookRecorder struct {
	ticks   []uint64
	burned  []ecs.EntityID
	ignited []string
	onTick  func(tick uint64)
}

func (h *hookRecorder) OnTick(tick uint64, _ float64) {
	h.ticks = append(h.ticks, tick)
	if h.onTick != nil {
		h.onTick(tick)
	}
}
func (h *hookRecorder) OnBurnedOut(id ecs.EntityID, _, _ float64) { h.burned = append(h.burned, id) }
func (h *hookRecorder) OnIgnited(_ ecs.EntityID, cause string)    { h.ignited = append(h.ignited, cause) }

type pipeline struct {
	world  *world.State
	fire   *fire.System
	runner *coresys.Runner
	writer *memWriter
	hooks  *hookRecorder
	log    *BurnLogSystem
}

func newPipeline(flushEvery int) *pipeline {
	return newPipelineWith(flushEvery, nil)
}

// newPipelineWith builds the pipeline with the hooks scripts returns, or
// the recorder when scripts is nil.
func newPipelineWith(flushEvery int, scripts func(*pipeline) ScriptHooks) *pipeline {
	bus := event.NewBus()
	ws := world.NewState(bus, nil)
	fs := fire.NewSystem(fire.Deps{
		Store:   ws.Flammables,
		Query:   ws.Physics(),
		Links:   ws,
		Chains:  ws,
		Deleter: ws,
		Bus:     bus,
	}, step, nil)
	ws.SetClock(fs.Ticks)

	p := &pipeline{world: ws, fire: fs, writer: &memWriter{}, hooks: &hookRecorder{}}
	p.log = NewBurnLogSystem(p.writer, bus, zap.NewNop(), flushEvery)

	r := coresys.NewRunner()
	r.Register(NewCleanupSystem(ws))
	r.Register(p.log)
	r.Register(fs)
	var hooks ScriptHooks = p.hooks
	if scripts != nil {
		hooks = scripts(p)
	}
	r.Register(NewScriptSystem(hooks, bus, step))
	r.Register(NewEventDispatchSystem(bus))
	p.runner = r
	return p
}

func (p *pipeline) run(ticks int) {
	for i := 0; i < ticks; i++ {
		p.runner.Tick(time.Second / 60)
	}
}

func TestPipeline_JournalsFireEvents(t *testing.T) {
	p := newPipeline(1)
	a := p.world.SpawnFlammable(geom.Circle(0.5), geom.Pose{}, fire.DefaultParams(), false, true, "a")
	b := p.world.SpawnFlammable(geom.Circle(0.5), geom.NewPose(1.1, 0, 0), fire.DefaultParams(), false, true, "b")
	p.hooks.onTick = func(tick uint64) {
		if tick == 1 {
			p.fire.Ignite(a)
		}
	}

	p.run(8)

	entries := p.writer.all()
	require.Len(t, entries, 4)
	assert.Equal(t, persist.BurnLogEntry{Tick: 0, Kind: persist.KindIgnited, Entity: uint64(a), Cause: "external"}, entries[0])
	assert.Equal(t, persist.KindIgnited, entries[1].Kind)
	assert.Equal(t, uint64(b), entries[1].Entity)
	assert.Equal(t, "spread", entries[1].Cause)
	assert.Equal(t, uint64(2), entries[1].Tick)
	assert.Equal(t, persist.KindBurnedOut, entries[2].Kind)
	assert.Equal(t, uint64(4), entries[2].Tick)
	assert.Equal(t, persist.KindBurnedOut, entries[3].Kind)
	assert.Equal(t, uint64(b), entries[3].Entity)
	assert.InDelta(t, 1.1, entries[3].X, 1e-12)

	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8}, p.hooks.ticks)
	assert.Equal(t, []ecs.EntityID{a, b}, p.hooks.burned)
	assert.Equal(t, []string{"external", "spread"}, p.hooks.ignited)
	assert.Equal(t, 0, p.world.EntityCount())
	assert.Equal(t, 4, p.log.Written())
}

func TestPipeline_JournalsChainCuts(t *testing.T) {
	p := newPipeline(100)
	rp := fire.DefaultParams()
	rp.TempToCatchFire = 1e9
	_, ids := p.world.SpawnVine([]geom.Vec2{{}, {X: 1}}, rope.DefaultParams(), rp, false, "")
	require.Len(t, ids, 6)
	p.hooks.onTick = func(tick uint64) {
		if tick == 1 {
			p.fire.Ignite(ids[2])
		}
	}

	p.run(6)
	assert.Empty(t, p.writer.batches, "interval not reached")
	p.log.Flush()

	kinds := map[string]int{}
	for _, e := range p.writer.all() {
		kinds[e.Kind]++
		if e.Kind == persist.KindChainCut {
			assert.Equal(t, uint64(ids[2]), e.Entity)
			assert.Equal(t, uint64(4), e.Tick)
			assert.Equal(t, 2, e.Pieces)
		}
	}
	assert.Equal(t, map[string]int{
		persist.KindIgnited:   1,
		persist.KindChainCut:  1,
		persist.KindBurnedOut: 1,
	}, kinds)
	assert.Equal(t, 5, p.world.EntityCount())
	assert.Equal(t, 2, p.world.Ropes().Len())
}

func TestBurnLogSystem_DropsFailedBatch(t *testing.T) {
	p := newPipeline(1)
	p.writer.err = errors.New("db down")
	a := p.world.SpawnFlammable(geom.Circle(0.5), geom.Pose{}, fire.DefaultParams(), false, true, "")
	p.fire.Ignite(a)

	p.run(2)
	assert.Equal(t, 1, p.log.Dropped())
	assert.Equal(t, 0, p.log.Written())

	p.writer.err = nil
	p.log.Flush()
	assert.Empty(t, p.writer.batches, "dropped entries are not retried")
}

func TestCleanupSystem_FlushesQueue(t *testing.T) {
	p := newPipeline(1)
	rock := p.world.SpawnStaticCollider(geom.Circle(1), geom.Pose{}, "")
	p.world.MarkForDestruction(rock)
	assert.True(t, p.world.Alive(rock))

	p.run(1)
	assert.False(t, p.world.Alive(rock))
	assert.Equal(t, 0, p.world.Physics().Len())
}

func TestPipeline_ScriptRemovesHeatedNeighbour(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "haul.lua"), []byte(`
hauled = false
function on_tick(tick, t)
  if tick == 1 then
    fire.ignite(world.find("a")[1])
  end
  local b = world.find("b")[1]
  if b and not hauled then
    local temp = fire.temperature(b)
    if temp and temp > 0 then
      hauled = world.remove(b)
    end
  end
end
`), 0o644))

	var engine *scripting.Engine
	p := newPipelineWith(1, func(p *pipeline) ScriptHooks {
		var err error
		engine, err = scripting.NewEngine(dir, scripting.SceneHost{World: p.world, Fire: p.fire}, nil)
		require.NoError(t, err)
		return engine
	})
	defer engine.Close()

	a := p.world.SpawnFlammable(geom.Circle(0.5), geom.Pose{}, fire.DefaultParams(), false, true, "a")
	cold := fire.DefaultParams()
	cold.TempToCatchFire = 100
	b := p.world.SpawnFlammable(geom.Circle(0.5), geom.NewPose(1.1, 0, 0), cold, false, true, "b")

	p.run(3)
	assert.False(t, p.world.Alive(b), "removed by the script")
	assert.True(t, p.world.Alive(a))
	assert.False(t, p.world.Flammables.Has(b))
	assert.Equal(t, 1, p.world.Physics().Len())

	require.NotPanics(t, func() { p.run(5) })

	entries := p.writer.all()
	require.Len(t, entries, 2)
	assert.Equal(t, persist.KindIgnited, entries[0].Kind)
	assert.Equal(t, uint64(a), entries[0].Entity)
	assert.Equal(t, persist.KindBurnedOut, entries[1].Kind)
	assert.Equal(t, uint64(a), entries[1].Entity)
	assert.Equal(t, 0, p.fire.BurningCount())
	assert.Equal(t, 0, p.world.EntityCount())
}
