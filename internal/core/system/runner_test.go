package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }
func (s *recordingSystem) Update(time.Duration) {
	*s.log = append(*s.log, s.name)
}

func TestRunner_RunsInPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "cleanup", phase: PhaseCleanup, log: &log})
	r.Register(&recordingSystem{name: "fire", phase: PhaseUpdate, log: &log})
	r.Register(&recordingSystem{name: "script", phase: PhaseInput, log: &log})
	r.Register(&recordingSystem{name: "fire2", phase: PhaseUpdate, log: &log})

	r.Tick(time.Second / 60)
	assert.Equal(t, []string{"script", "fire", "fire2", "cleanup"}, log)
	assert.Equal(t, uint64(1), r.Ticks())
}

func TestRunner_TickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "fire", phase: PhaseUpdate, log: &log})
	r.Register(&recordingSystem{name: "cleanup", phase: PhaseCleanup, log: &log})

	r.TickPhase(PhaseCleanup, 0)
	assert.Equal(t, []string{"cleanup"}, log)
	assert.Equal(t, uint64(0), r.Ticks())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "update", PhaseUpdate.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
