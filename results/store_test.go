package results_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/acoustics"
	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/propeller"
	"github.com/katalvlaran/propel/propulsion"
	"github.com/katalvlaran/propel/results"
)

func openTemp(t *testing.T, opts ...results.Option) *results.Store {
	t.Helper()
	st, err := results.Open(results.DriverSQLite, filepath.Join(t.TempDir(), "runs.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func sampleOutcomes() []propulsion.Outcome {
	trimmed := propulsion.Outcome{
		Point: propulsion.OperatingPoint{
			Conditions: atmosphere.Conditions{Altitude: 500, Velocity: 20},
			ThrustX:    100,
			Observer:   &acoustics.Observer{Distance: 50, Elevation: 30},
		},
		Solution: propulsion.Solution{
			Power: 2100.5,
			SPL:   71.25,
			Propellers: []propulsion.PropellerSolution{{
				Name: "left",
				Result: propeller.Result{
					Thrust: 50, ThrustObtained: 50, Power: 1050.25, Pitch: 12.5, RPM: 180,
					Evaluations: 37, State: propeller.StateTrimmed,
				},
				SPL: 68.2,
			}},
		},
	}
	failed := propulsion.Outcome{
		Point: propulsion.OperatingPoint{Conditions: atmosphere.Conditions{Velocity: 80}, ThrustX: 900},
		Solution: propulsion.Solution{
			Power: math.MaxFloat64,
			Propellers: []propulsion.PropellerSolution{{
				Name:   "left",
				Result: propeller.Result{Thrust: 450, Power: math.MaxFloat64, State: propeller.StateFailed},
			}},
		},
		Failures: []propulsion.Failure{{Propeller: "left", Error: "left: trim 450 N: propeller: convergence failure"}},
	}
	unsolved := propulsion.Outcome{
		Point: propulsion.OperatingPoint{Conditions: atmosphere.Conditions{Altitude: 1e6}},
		Err:   propulsion.ErrUnsolved,
	}

	return []propulsion.Outcome{trimmed, failed, unsolved}
}

// TestOpen_UnknownDriver verifies that only sqlite and pgx are accepted.
func TestOpen_UnknownDriver(t *testing.T) {
	_, err := results.Open("mysql", "x")
	require.ErrorIs(t, err, results.ErrDriver)
}

// TestSaveRun_RoundTrip verifies that outcomes come back in order with
// their results, failures and point-level errors.
func TestSaveRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)
	in := sampleOutcomes()

	run, err := st.SaveRun(ctx, "cruise", in)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 3, run.Points)
	assert.Equal(t, 2, run.Failed)

	out, err := st.Outcomes(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.True(t, out[0].OK())
	assert.Equal(t, in[0].Point, out[0].Point)
	assert.Equal(t, in[0].Solution, out[0].Solution)

	assert.Equal(t, propeller.StateFailed, out[1].Solution.Propellers[0].Result.State)
	assert.Equal(t, math.MaxFloat64, out[1].Solution.Power)
	assert.Equal(t, in[1].Failures, out[1].Failures)
	assert.NoError(t, out[1].Err)

	require.Error(t, out[2].Err)
	assert.ErrorIs(t, out[2].Err, propulsion.ErrUnsolved)
	assert.Nil(t, out[2].Point.Observer)
}

// TestRuns_NewestFirst verifies listing order and single-run lookup.
func TestRuns_NewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := openTemp(t, results.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	first, err := st.SaveRun(ctx, "first", nil)
	require.NoError(t, err)
	second, err := st.SaveRun(ctx, "second", sampleOutcomes()[:1])
	require.NoError(t, err)

	runs, err := st.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC), runs[1].CreatedAt)

	got, err := st.Run(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	empty, err := st.Outcomes(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// TestOutcomes_UnknownRun verifies the not-found sentinel.
func TestOutcomes_UnknownRun(t *testing.T) {
	st := openTemp(t)
	_, err := st.Outcomes(context.Background(), "nope")
	require.ErrorIs(t, err, results.ErrRunNotFound)
	_, err = st.Run(context.Background(), "nope")
	require.ErrorIs(t, err, results.ErrRunNotFound)
}

// TestOpen_Reopen verifies that runs survive closing the database.
func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := results.Open(results.DriverSQLite, path)
	require.NoError(t, err)
	run, err := st.SaveRun(ctx, "keep", sampleOutcomes())
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = results.Open(results.DriverSQLite, path)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	out, err := st.Outcomes(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
