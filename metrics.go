package wavefront

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

const metricsNamespace = "wavefront"

var (
	tracer = otel.Tracer("github.com/pdrpinto/wavefront")

	searchesTotalCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "searches_total",
		Help:      "The total number of path searches by mode and outcome.",
	}, []string{"mode", "outcome"})

	searchDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:                       metricsNamespace,
		Name:                            "search_duration_ms",
		Help:                            "The duration (in ms) of a path search.",
		Buckets:                         []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 30000},
		NativeHistogramBucketFactor:     1.1,
		NativeHistogramMaxBucketNumber:  100,
		NativeHistogramMinResetDuration: time.Hour,
	}, []string{"mode"})

	expandedCellsHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "expanded_cells",
		Help:      "The number of cells expanded by all waves of a search.",
		Buckets:   prometheus.ExponentialBuckets(1, 10, 9),
	}, []string{"mode"})

	handshakesTotalCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "handshakes_total",
		Help:      "How bidirectional searches were joined: poll, final_scan or direct.",
	}, []string{"source"})
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "canceled"
	}
}

// milliseconds keeps the sub-millisecond part, which Duration.Milliseconds
// truncates.
func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
