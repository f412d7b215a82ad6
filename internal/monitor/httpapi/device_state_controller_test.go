package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"relay-server/internal/infra/async"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/httpapi"
	"relay-server/internal/monitor/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DeviceStateController", func() {
	var (
		store  *usecases.SimpleDeviceStateStore
		router *http.ServeMux
	)

	BeforeEach(func() {
		store = usecases.NewSimpleDeviceStateStore("MT3620", async.NewLocalBroker())
		router = http.NewServeMux()
		httpapi.NewDeviceStateController(store).AddRoutes(router)
	})

	get := func() map[string]any {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/device/state", nil))
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))

		var body map[string]any
		Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	It("should report the initial state without a sample", func() {
		body := get()

		Expect(body["device_id"]).To(Equal("MT3620"))
		Expect(body["has_sample"]).To(BeFalse())
		Expect(body["relay"]).To(Equal("OFF"))
		Expect(body["relay_label"]).To(Equal("Relay OFF"))
		Expect(body).NotTo(HaveKey("updated_at"))
	})

	It("should report the last sample and relay state", func() {
		store.UpdateSample(context.Background(), domain.SensorSample{
			DeviceID:    "MT3620",
			Temperature: 28,
			Humidity:    40,
			Light:       300,
			Sound:       12,
			Gas:         5,
		})
		store.UpdateActuator(context.Background(), domain.ActuatorOn, "cmd-1")

		body := get()

		Expect(body["has_sample"]).To(BeTrue())
		Expect(body["temperature"]).To(BeEquivalentTo(28))
		Expect(body["humidity"]).To(BeEquivalentTo(40))
		Expect(body["light"]).To(BeEquivalentTo(300))
		Expect(body["sound"]).To(BeEquivalentTo(12))
		Expect(body["gas"]).To(BeEquivalentTo(5))
		Expect(body["relay"]).To(Equal("ON"))
		Expect(body["relay_label"]).To(Equal("Relay ON"))
		Expect(body).To(HaveKey("updated_at"))
	})
})
