package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveMetrics(t *testing.T) {
	// Test duration histogram
	t.Run("SolveDuration", func(t *testing.T) {
		SolveDuration.WithLabelValues("sequential").Observe(12.5)
		SolveDuration.WithLabelValues("blocked").Observe(8.3)

		// Verify histogram was updated (we can't directly read the count with testutil)
		// Just verify no panic occurs
		assert.NotPanics(t, func() {
			SolveDuration.WithLabelValues("blocked").Observe(9.1)
		})
	})

	// Test residual norm gauge
	t.Run("SolveResidualNorm", func(t *testing.T) {
		SolveResidualNorm.Set(0.125)
		value := testutil.ToFloat64(SolveResidualNorm)
		assert.Equal(t, 0.125, value)
	})

	// Test pass counter
	t.Run("SolvePassesTotal", func(t *testing.T) {
		before := testutil.ToFloat64(SolvePassesTotal)
		SolvePassesTotal.Add(25)
		value := testutil.ToFloat64(SolvePassesTotal)
		assert.Equal(t, before+25, value)
	})

	// Test backend counter
	t.Run("SolveBackendRuns", func(t *testing.T) {
		SolveBackendRuns.WithLabelValues("serial").Inc()
		SolveBackendRuns.WithLabelValues("parallel").Inc()

		// Since these are global metrics that accumulate, we just verify they work
		// In a real test environment, you'd want to use a custom registry
		assert.NotPanics(t, func() {
			SolveBackendRuns.WithLabelValues("parallel").Inc()
		})
	})
}

func TestBenchAndTrainMetrics(t *testing.T) {
	t.Run("BenchGFLOPS", func(t *testing.T) {
		BenchGFLOPS.WithLabelValues("matmul").Set(123.45)
		value := testutil.ToFloat64(BenchGFLOPS.WithLabelValues("matmul"))
		assert.Equal(t, 123.45, value)
	})

	t.Run("BenchDuration", func(t *testing.T) {
		assert.NotPanics(t, func() {
			BenchDuration.WithLabelValues("matmul").Observe(42.0)
		})
	})

	t.Run("TrainMAE", func(t *testing.T) {
		TrainMAE.Set(0.031)
		value := testutil.ToFloat64(TrainMAE)
		assert.Equal(t, 0.031, value)
	})

	t.Run("ComputeWorkers", func(t *testing.T) {
		ComputeWorkers.Set(8)
		value := testutil.ToFloat64(ComputeWorkers)
		assert.Equal(t, float64(8), value)
	})
}

func TestMetricsRegistration(t *testing.T) {
	// Ensure all metrics are properly registered
	collectors := []prometheus.Collector{
		EndpointResponses,
		SolveDuration,
		SolveResidualNorm,
		SolvePassesTotal,
		SolveBackendRuns,
		BenchDuration,
		BenchGFLOPS,
		TrainMAE,
		ComputeWorkers,
	}

	for _, c := range collectors {
		// This will panic if the metric is not properly registered
		assert.NotPanics(t, func() {
			_ = prometheus.Register(c)
			prometheus.Unregister(c)
		})
	}
}

func TestHandlerServesExposition(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "solve_residual_norm")
	assert.Contains(t, body, "train_mae")

	// The scrape itself is counted.
	scrapes := testutil.ToFloat64(EndpointResponses.WithLabelValues("/metrics", "200"))
	assert.GreaterOrEqual(t, scrapes, 1.0)
}

func BenchmarkMetricsObservation(b *testing.B) {
	b.Run("ObserveDuration", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			SolveDuration.WithLabelValues("blocked").Observe(float64(i % 1000))
		}
	})

	b.Run("SetGauge", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			SolveResidualNorm.Set(float64(i))
		}
	})

	b.Run("IncCounter", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			SolveBackendRuns.WithLabelValues("serial").Inc()
		}
	})
}
