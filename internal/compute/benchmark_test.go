package compute

import (
	"fmt"
	"testing"
)

func BenchmarkBackend_Dot(b *testing.B) {
	be := NewSerialBackend()
	sizes := []int{1 << 10, 1 << 14, 1 << 18}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			x := make([]float64, size)
			y := make([]float64, size)
			for i := range x {
				x[i] = float64(i%100) / 100.0
				y[i] = float64((i+1)%100) / 100.0
			}

			b.ResetTimer()
			var sink float64
			for i := 0; i < b.N; i++ {
				sink += be.Dot(x, y)
			}
			_ = sink

			flops := float64(2*size) * float64(b.N)
			b.ReportMetric(flops/b.Elapsed().Seconds()/1e9, "GFLOPS")
		})
	}
}

func BenchmarkParallelBackend_ParallelFor(b *testing.B) {
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			be := NewParallelBackend(workers)
			defer be.Close()

			const n = 256
			const span = 1 << 12
			x := make([]float64, span)
			y := make([]float64, span)
			for i := range x {
				x[i] = float64(i) / span
				y[i] = 1 - x[i]
			}
			out := make([]float64, n)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				be.ParallelFor(n, func(j int) {
					out[j] = be.Dot(x, y)
				})
			}

			flops := float64(2*span*n) * float64(b.N)
			b.ReportMetric(flops/b.Elapsed().Seconds()/1e9, "GFLOPS")
		})
	}
}
