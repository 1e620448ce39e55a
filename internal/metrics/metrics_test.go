package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.JobsActive.Inc()
	m.JobsTotal.WithLabelValues("completed").Inc()
	m.JobsTotal.WithLabelValues("failed").Inc()
	m.Evaluations.Add(2100)
	m.RunSteps.Observe(150)
	m.FinalError.Observe(3.2e-6)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobsTotal.WithLabelValues("completed")))
	assert.Equal(t, 2100.0, testutil.ToFloat64(m.Evaluations))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"vortx_jobs_active",
		"vortx_jobs_total",
		"vortx_objective_evaluations_total",
		"vortx_run_steps",
		"vortx_run_final_error",
	} {
		assert.True(t, names[want], want)
	}
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
