package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EndpointResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "endpoint_responses_total",
		Help: "The total number of endpoint responses",
	}, []string{"endpoint", "status_code"})

	// Least-Squares Solve Metrics
	SolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_duration_ms",
		Help:    "Duration of a least-squares solve in milliseconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 15), // 1ms to ~32s
	}, []string{"variant"})

	SolveResidualNorm = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "solve_residual_norm",
		Help: "Euclidean norm of the residual after the last solve",
	})

	SolvePassesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solve_passes_total",
		Help: "Total number of coordinate-descent passes executed",
	})

	SolveBackendRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_backend_total",
		Help: "Total number of solves by compute backend",
	}, []string{"backend"})

	// Benchmark Metrics
	BenchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bench_duration_ms",
		Help:    "Duration of a benchmark runner in milliseconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 15),
	}, []string{"runner"})

	BenchGFLOPS = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bench_gflops",
		Help: "Throughput of the last benchmark run in GFLOPS",
	}, []string{"runner"})

	// Training Metrics
	TrainMAE = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "train_mae",
		Help: "Mean absolute training error of the last fitted model",
	})

	ComputeWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "compute_workers",
		Help: "Number of workers in the active compute backend",
	})
)
