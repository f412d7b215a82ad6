package httpserver

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _meterName = "relay-server"

var (
	uuidRegex    = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
	numericRegex = regexp.MustCompile(`/\d+(/|$)`)
)

type httpMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	duration, err := meter.Float64Histogram("relay_server.http.request.duration.seconds",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter("relay_server.http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter("relay_server.http.requests.active",
		metric.WithDescription("Number of HTTP requests currently being processed"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{duration: duration, total: total, active: active}, nil
}

// MetricsMiddleware measures duration, count and in-flight requests per endpoint.
// Instruments come from the global meter provider at the time of the call.
func MetricsMiddleware() func(http.Handler) http.Handler {
	m, err := newHTTPMetrics(otel.GetMeterProvider().Meter(_meterName))
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.endpoint", normalizeEndpoint(r.URL.Path)),
			)

			m.active.Add(r.Context(), 1, route)
			defer m.active.Add(r.Context(), -1, route)

			wrappedWriter := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrappedWriter, r)

			status := metric.WithAttributes(attribute.Int("http.status_code", wrappedWriter.statusCode))
			m.duration.Record(r.Context(), time.Since(start).Seconds(), route, status)
			m.total.Add(r.Context(), 1, route, status)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working behind the middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
}

func normalizeEndpoint(path string) string {
	if path == "" || path == "/" {
		return "root"
	}

	path = uuidRegex.ReplaceAllString(path, "_id")
	return numericRegex.ReplaceAllString(path, "/_n$1")
}
