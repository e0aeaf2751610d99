package metrics_test

import (
	"testing"

	"github.com/katalvlaran/propel/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCollectors_Count verifies each counter increments under its label.
func TestCollectors_Count(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	c.StallFallback(metrics.TablePositiveStall)
	c.StallFallback(metrics.TablePositiveStall)
	c.ConvergenceFailure(metrics.StageInflow)
	c.Solve(metrics.OutcomeTrimmed)
	c.OutOfRangeLookup()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.StallFallbacks.WithLabelValues(metrics.TablePositiveStall)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.StallFallbacks.WithLabelValues(metrics.TableMaxLD)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ConvergenceFailures.WithLabelValues(metrics.StageInflow)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Solves.WithLabelValues(metrics.OutcomeTrimmed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.OutOfRange))
}

// TestCollectors_DoubleRegister verifies a second registration on one registry fails.
func TestCollectors_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)
	_, err = metrics.New(reg)
	assert.Error(t, err)
}

// TestCollectors_NilSafe verifies a nil receiver records nothing and does not panic.
func TestCollectors_NilSafe(t *testing.T) {
	var c *metrics.Collectors
	assert.NotPanics(t, func() {
		c.StallFallback(metrics.TableMaxLD)
		c.ConvergenceFailure(metrics.StageTrim)
		c.Solve(metrics.OutcomeFailed)
		c.OutOfRangeLookup()
	})
}
