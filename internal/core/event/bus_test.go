package event

import (
	"testing"

	"github.com/flamegrower/flamegrower/internal/core/ecs"
	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversNextTick(t *testing.T) {
	b := NewBus()
	var got []Ignited
	Subscribe(b, func(ev Ignited) { got = append(got, ev) })

	Emit(b, Ignited{Entity: ecs.NewEntityID(1, 0), Cause: CauseExternal})
	assert.Equal(t, 1, b.Queued())

	b.DispatchAll()
	assert.Empty(t, got, "events are not visible in the tick they were emitted")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1)
	assert.Equal(t, CauseExternal, got[0].Cause)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1, "front buffer is not replayed")
}

func TestBus_TypesAreIsolated(t *testing.T) {
	b := NewBus()
	ignited, burned := 0, 0
	Subscribe(b, func(Ignited) { ignited++ })
	Subscribe(b, func(BurnedOut) { burned++ })

	Emit(b, BurnedOut{})
	Emit(b, BurnedOut{})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, 0, ignited)
	assert.Equal(t, 2, burned)
}

func TestIgnitionCause_String(t *testing.T) {
	assert.Equal(t, "spread", CauseSpread.String())
	assert.Equal(t, "external", CauseExternal.String())
}
