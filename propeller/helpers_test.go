package propeller_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/propel/atmosphere"
	"github.com/katalvlaran/propel/blade"
	"github.com/katalvlaran/propel/polar"
	"github.com/katalvlaran/propel/polar/polartest"
)

// thinTable is a linear-lift airfoil over -5°..15° at one Reynolds number.
func thinTable() polartest.Table {
	return polartest.Table{
		AlphaMin: -5, AlphaMax: 15, AlphaStep: 0.01,
		Re:  []float64{2e5},
		CD0: 0.005,
		K:   0.05,
	}
}

// testBlade returns a two-bladed 1 m rotor with 0.1 m chord and twist
// washing out from 20° at the hub to -4° at the tip.
func testBlade(t testing.TB, opts ...blade.Option) *blade.Blade {
	t.Helper()
	store := polar.NewStore()
	require.NoError(t, store.Build("thin", thinTable().Build()))
	store.Freeze()

	b, err := blade.New(1, []blade.Section{
		{Location: 0, Airfoil: "thin", Chord: 0.1, Twist: 20},
		{Location: 1, Airfoil: "thin", Chord: 0.1, Twist: -4},
	}, append([]blade.Option{blade.WithPolars(store)}, opts...)...)
	require.NoError(t, err)

	return b
}

func seaLevel(t testing.TB, velocity float64) *atmosphere.Atmosphere {
	t.Helper()
	env, err := atmosphere.SeaLevel(velocity)
	require.NoError(t, err)

	return env
}
