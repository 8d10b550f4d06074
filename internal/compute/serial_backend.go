package compute

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/floats"
)

// SerialBackend executes everything on the calling goroutine. It is the
// fallback substrate and the reference other backends are checked against.
type SerialBackend struct{}

// NewSerialBackend creates a single-threaded backend.
func NewSerialBackend() *SerialBackend {
	return &SerialBackend{}
}

// Dot returns the inner product of x and y.
func (s *SerialBackend) Dot(x, y []float64) float64 {
	return floats.Dot(x, y)
}

// AddScaled sets dst = dst + alpha*x.
func (s *SerialBackend) AddScaled(dst []float64, alpha float64, x []float64) {
	floats.AddScaled(dst, alpha, x)
}

// ParallelFor runs fn(i) for i in [0, n) in order on the calling goroutine.
func (s *SerialBackend) ParallelFor(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// Info reports the device the backend executes on.
func (s *SerialBackend) Info() DeviceInfo {
	return DeviceInfo{
		Name:    fmt.Sprintf("cpu (%s)", runtime.GOARCH),
		Arch:    runtime.GOARCH,
		Workers: 1,
		SIMD:    simdSummary(),
	}
}

// Name returns the backend identifier.
func (s *SerialBackend) Name() string { return "serial" }

// Close releases resources (none for the serial backend).
func (s *SerialBackend) Close() error { return nil }
