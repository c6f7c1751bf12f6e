package system

import (
	"context"
	"time"

	"github.com/flamegrower/flamegrower/internal/core/event"
	coresys "github.com/flamegrower/flamegrower/internal/core/system"
	"github.com/flamegrower/flamegrower/internal/persist"
	"go.uber.org/zap"
)

// BurnLogWriter stores journal batches. Implemented by *persist.BurnLogRepo.
type BurnLogWriter interface {
	WriteBatch(ctx context.Context, entries []persist.BurnLogEntry) error
}

// BurnLogSystem buffers fire events from the bus and writes them every
// interval ticks. Phase 4 (Persist).
type BurnLogSystem struct {
	writer    BurnLogWriter
	log       *zap.Logger
	buf       []persist.BurnLogEntry
	tickCount int
	interval  int
	written   int
	dropped   int
}

func NewBurnLogSystem(writer BurnLogWriter, bus *event.Bus, log *zap.Logger, intervalTicks int) *BurnLogSystem {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	s := &BurnLogSystem{
		writer:   writer,
		log:      log,
		buf:      make([]persist.BurnLogEntry, 0, 64),
		interval: intervalTicks,
	}
	event.Subscribe(bus, func(ev event.Ignited) {
		s.buf = append(s.buf, persist.BurnLogEntry{
			Tick: ev.Tick, Kind: persist.KindIgnited, Entity: uint64(ev.Entity),
			Cause: ev.Cause.String(), X: ev.X, Y: ev.Y,
		})
	})
	event.Subscribe(bus, func(ev event.BurnedOut) {
		s.buf = append(s.buf, persist.BurnLogEntry{
			Tick: ev.Tick, Kind: persist.KindBurnedOut, Entity: uint64(ev.Entity),
			X: ev.X, Y: ev.Y, TimeBurning: ev.TimeBurning,
		})
	})
	event.Subscribe(bus, func(ev event.ChainCut) {
		s.buf = append(s.buf, persist.BurnLogEntry{
			Tick: ev.Tick, Kind: persist.KindChainCut, Entity: uint64(ev.Entity),
			Pieces: ev.Pieces,
		})
	})
	return s
}

func (s *BurnLogSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *BurnLogSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush writes everything buffered now. Called on shutdown too. A failed
// batch is logged and dropped.
func (s *BurnLogSystem) Flush() {
	if len(s.buf) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.writer.WriteBatch(ctx, s.buf); err != nil {
		s.dropped += len(s.buf)
		s.log.Error("burn log write failed", zap.Int("entries", len(s.buf)), zap.Error(err))
	} else {
		s.written += len(s.buf)
	}
	s.buf = s.buf[:0]
}

// Written and Dropped count entries since start.
func (s *BurnLogSystem) Written() int { return s.written }
func (s *BurnLogSystem) Dropped() int { return s.dropped }
