package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var _ = ginkgo.Describe("Metrics", func() {
	ginkgo.Context("MetricsMiddleware", func() {
		var (
			reader   *metric.ManualReader
			previous otelmetric.MeterProvider
		)

		ginkgo.BeforeEach(func() {
			previous = otel.GetMeterProvider()
			reader = metric.NewManualReader()
			otel.SetMeterProvider(metric.NewMeterProvider(metric.WithReader(reader)))
		})

		ginkgo.AfterEach(func() {
			otel.SetMeterProvider(previous)
		})

		ginkgo.It("should count requests with their status code", func() {
			handler := MetricsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/threshold", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusTeapot))
			var rm metricdata.ResourceMetrics
			gomega.Expect(reader.Collect(context.Background(), &rm)).To(gomega.Succeed())
			names := []string{}
			for _, scope := range rm.ScopeMetrics {
				for _, m := range scope.Metrics {
					names = append(names, m.Name)
				}
			}
			gomega.Expect(names).To(gomega.ContainElements(
				"relay_server.http.request.duration.seconds",
				"relay_server.http.requests.total",
			))
		})
	})

	ginkgo.DescribeTable("normalizeEndpoint",
		func(path, expected string) {
			gomega.Expect(normalizeEndpoint(path)).To(gomega.Equal(expected))
		},
		ginkgo.Entry("root path", "/", "root"),
		ginkgo.Entry("empty path", "", "root"),
		ginkgo.Entry("static endpoint", "/v1/device/state", "/v1/device/state"),
		ginkgo.Entry("uuid segment", "/v1/commands/123e4567-e89b-12d3-a456-426614174000", "/v1/commands/_id"),
		ginkgo.Entry("numeric segment", "/v1/partitions/3/offsets", "/v1/partitions/_n/offsets"),
		ginkgo.Entry("trailing numeric segment", "/v1/partitions/12", "/v1/partitions/_n"),
	)

	ginkgo.Context("responseWriter", func() {
		ginkgo.It("should record the status code", func() {
			recorder := httptest.NewRecorder()
			wrapped := &responseWriter{ResponseWriter: recorder, statusCode: http.StatusOK}

			wrapped.WriteHeader(http.StatusNotFound)

			gomega.Expect(wrapped.statusCode).To(gomega.Equal(http.StatusNotFound))
			gomega.Expect(recorder.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should report when hijacking is not supported", func() {
			wrapped := &responseWriter{ResponseWriter: httptest.NewRecorder()}

			_, _, err := wrapped.Hijack()

			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("does not support hijacking")))
		})
	})
})
