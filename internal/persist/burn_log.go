package persist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Kinds of burn log entries.
const (
	KindIgnited   = "ignited"
	KindBurnedOut = "burned_out"
	KindChainCut  = "chain_cut"
)

// BurnLogEntry is one combustion event of a run.
type BurnLogEntry struct {
	Tick        uint64
	Kind        string
	Entity      uint64
	Cause       string // ignitions only
	X, Y        float64
	TimeBurning float64 // burn-outs only
	Pieces      int     // chain cuts only
}

// BurnLogRepo journals the combustion events of one simulation run.
type BurnLogRepo struct {
	db    *DB
	runID string
}

// NewBurnLogRepo creates a repo with a fresh run ID. Call StartRun before
// writing entries.
func NewBurnLogRepo(db *DB) *BurnLogRepo {
	return &BurnLogRepo{db: db, runID: uuid.NewString()}
}

func (r *BurnLogRepo) RunID() string { return r.runID }

// StartRun records the run's parameters.
func (r *BurnLogRepo) StartRun(ctx context.Context, scene string, seed int64, tickHz int) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO burn_runs (run_id, scene, seed, tick_hz) VALUES ($1, $2, $3, $4)`,
		r.runID, scene, seed, tickHz,
	)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	return nil
}

// WriteBatch writes entries in a single transaction.
func (r *BurnLogRepo) WriteBatch(ctx context.Context, entries []BurnLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("burn log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO burn_log (run_id, tick, kind, entity, cause, x, y, time_burning, pieces)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			r.runID, int64(e.Tick), e.Kind, int64(e.Entity), e.Cause, e.X, e.Y, e.TimeBurning, e.Pieces,
		); err != nil {
			return fmt.Errorf("burn log insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
