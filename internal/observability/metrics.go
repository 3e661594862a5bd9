package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	apiCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kicadctl",
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "KiCad API calls by command and reply status.",
		},
		[]string{"command", "status"},
	)
	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kicadctl",
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "KiCad API round trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command", "status"},
	)
	boardComponents = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "kicadctl",
			Subsystem: "board",
			Name:      "components",
			Help:      "Footprint counts of the open board by category.",
		},
		[]string{"board", "category"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kicadctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Status endpoint HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kicadctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Status endpoint HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	watchRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kicadctl",
			Subsystem: "watch",
			Name:      "refreshes_total",
			Help:      "Board refresh attempts of the watch loop.",
		},
		[]string{"success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(apiCalls, apiDuration, boardComponents, httpRequests, httpDuration, watchRefreshes)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}

// RecordAPICall records one request/reply exchange. status is the reply
// status name, or "transport_error"/"protocol_error" when no usable reply
// arrived.
func RecordAPICall(command, status string, duration time.Duration) {
	RegisterMetrics()
	apiCalls.WithLabelValues(command, status).Inc()
	apiDuration.WithLabelValues(command, status).Observe(duration.Seconds())
}

// RecordBoardComponents sets the gauge for one board category.
func RecordBoardComponents(board, category string, count int) {
	RegisterMetrics()
	boardComponents.WithLabelValues(board, category).Set(float64(count))
}

// ResetBoardComponents drops all board gauges, e.g. when the board closes.
func ResetBoardComponents() {
	RegisterMetrics()
	boardComponents.Reset()
}

func RecordWatchRefresh(success bool) {
	RegisterMetrics()
	watchRefreshes.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	code := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, code).Inc()
	httpDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}
