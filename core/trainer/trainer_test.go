package trainer

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/ruraldispatch/core/agent"
	"github.com/kilianp07/ruraldispatch/core/sim"
	"github.com/kilianp07/ruraldispatch/core/worldgen"
)

func testSetup(t *testing.T, seed int64) (*sim.Env, *agent.QAgent) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	env, err := sim.New(sim.Config{Rows: 2, Cols: 2, Hospitals: 2, Ambulances: 2},
		worldgen.New(worldgen.Config{}, rng))
	require.NoError(t, err)
	cfg := agent.Config{}
	cfg.SetDefaults()
	ag, err := agent.New(cfg, env.NumStates(), env.NumActions(), rng)
	require.NoError(t, err)
	return env, ag
}

func TestNewValidates(t *testing.T) {
	env, ag := testSetup(t, 1)
	if _, err := New(Config{Episodes: -1}, env, ag, nil); err == nil {
		t.Fatal("expected error for negative episodes")
	}
	if _, err := New(Config{}, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}

func TestRunPersistsArtifacts(t *testing.T) {
	env, ag := testSetup(t, 2)
	dir := t.TempDir()
	tr, err := New(Config{Episodes: 60, ReportEvery: 20, ResultsDir: dir, Curve: true}, env, ag, nil)
	require.NoError(t, err)

	res, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Rewards, 60)
	require.Equal(t, 60, res.Episodes)
	require.Equal(t, tr.RunID(), res.RunID)
	require.Less(t, res.FinalEpsilon, 0.5, "epsilon must have decayed during the run")

	// table loads back with the environment's exact shape
	q, err := agent.LoadTable(filepath.Join(dir, TableFile), env.NumStates(), env.NumActions())
	require.NoError(t, err)
	require.True(t, mat.Equal(ag.Table(), q))

	// reward trace round-trips in iteration order
	data, err := os.ReadFile(filepath.Join(dir, RewardsFile))
	require.NoError(t, err)
	var trace mat.VecDense
	require.NoError(t, trace.UnmarshalBinary(data))
	require.Equal(t, 60, trace.Len())
	for i, r := range res.Rewards {
		require.InDelta(t, r, trace.AtVec(i), 1e-12)
	}

	// run metadata carries the shape contract
	buf, err := os.ReadFile(filepath.Join(dir, MetaFile))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(buf, &meta))
	require.Equal(t, float64(env.NumStates()), meta["n_states"])
	require.Equal(t, float64(env.NumActions()), meta["n_actions"])
	require.Equal(t, res.RunID, meta["run_id"])

	if _, err := os.Stat(filepath.Join(dir, CurveFile)); err != nil {
		t.Fatalf("reward curve not rendered: %v", err)
	}
}

func TestRunWithoutCurve(t *testing.T) {
	env, ag := testSetup(t, 3)
	dir := t.TempDir()
	tr, err := New(Config{Episodes: 10, ReportEvery: 5, ResultsDir: dir}, env, ag, nil)
	require.NoError(t, err)
	_, err = tr.Run(context.Background())
	require.NoError(t, err)
	if _, err := os.Stat(filepath.Join(dir, CurveFile)); !os.IsNotExist(err) {
		t.Fatal("curve file should not be rendered when disabled")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	env, ag := testSetup(t, 4)
	tr, err := New(Config{Episodes: 1000, ReportEvery: 100, ResultsDir: t.TempDir()}, env, ag, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
