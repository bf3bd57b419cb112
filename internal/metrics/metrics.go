// Package metrics holds the Prometheus collectors for foodbites' backend
// traffic and an optional /metrics listener.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodbites",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend API requests issued.",
		},
		[]string{"endpoint", "status"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodbites",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"endpoint"},
	)

	sessionInvalidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "foodbites",
			Subsystem: "session",
			Name:      "invalidations_total",
			Help:      "Number of times the backend rejected the stored token.",
		},
	)

	cartAdds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodbites",
			Subsystem: "cart",
			Name:      "adds_total",
			Help:      "Add-to-cart commits by outcome.",
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(apiRequests, apiDuration, sessionInvalidations, cartAdds)
}

// ObserveRequest records one backend request. status is the HTTP status or 0
// when the request never got a response.
func ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	apiRequests.WithLabelValues(endpoint, label).Inc()
	apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordInvalidation counts a backend rejection of the stored token.
func RecordInvalidation() {
	sessionInvalidations.Inc()
}

// RecordCartAdd counts an add-to-cart commit.
func RecordCartAdd(success bool) {
	cartAdds.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics listener on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
