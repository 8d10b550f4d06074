package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// statusRecorder is a wrapper around http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and calls the original WriteHeader.
func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps an http.Handler to record endpoint responses.
func Instrument(next http.Handler, endpointPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Default to 200 OK if WriteHeader is not called.
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		EndpointResponses.WithLabelValues(endpointPath, strconv.Itoa(rec.status)).Inc()
	})
}

// Handler serves the Prometheus exposition endpoint with response accounting.
func Handler() http.Handler {
	return Instrument(promhttp.Handler(), "/metrics")
}
