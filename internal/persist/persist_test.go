package persist

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/flamegrower/flamegrower/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrations, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}

func TestNewBurnLogRepo_RunIDs(t *testing.T) {
	a := NewBurnLogRepo(nil)
	b := NewBurnLogRepo(nil)
	assert.Len(t, a.RunID(), 36)
	assert.NotEqual(t, a.RunID(), b.RunID())
	assert.NoError(t, a.WriteBatch(context.Background(), nil), "empty batches never touch the db")
}

func TestNewDB_BadDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.DatabaseConfig{DSN: "::not a dsn::"}, zap.NewNop())
	assert.Error(t, err)
}

// TestBurnLog_Postgres needs a scratch database in FLAMEGROWER_TEST_DSN.
func TestBurnLog_Postgres(t *testing.T) {
	dsn := os.Getenv("FLAMEGROWER_TEST_DSN")
	if dsn == "" {
		t.Skip("FLAMEGROWER_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 2}, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, RunMigrations(ctx, db.Pool, zap.NewNop()))

	repo := NewBurnLogRepo(db)
	require.NoError(t, repo.StartRun(ctx, "test.yaml", 1, 60))
	require.NoError(t, repo.WriteBatch(ctx, []BurnLogEntry{
		{Tick: 2, Kind: KindIgnited, Entity: 5, Cause: "spread", X: 1.1},
		{Tick: 6, Kind: KindBurnedOut, Entity: 5, X: 1.1, TimeBurning: 4.0 / 60},
	}))

	var n int
	require.NoError(t, db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM burn_log WHERE run_id = $1`, repo.RunID()).Scan(&n))
	assert.Equal(t, 2, n)

	var kinds []string
	rows, err := db.Pool.Query(ctx, `SELECT kind FROM burn_log WHERE run_id = $1 ORDER BY tick`, repo.RunID())
	require.NoError(t, err)
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		kinds = append(kinds, k)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, "ignited,burned_out", strings.Join(kinds, ","))
}
