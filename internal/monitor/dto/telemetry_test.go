package dto_test

import (
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/dto"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Telemetry", func() {
	Context("DecodeSample", func() {
		When("the payload carries every field", func() {
			It("should build the sample", func() {
				payload := []byte(`{"DeviceName":"MT3620","temperature":27,"humidity":60,"light":12,"sound":40,"gas":3}`)

				sample, err := dto.DecodeSample(payload)

				Expect(err).NotTo(HaveOccurred())
				Expect(sample).To(Equal(domain.SensorSample{
					DeviceID:    "MT3620",
					Temperature: 27,
					Humidity:    60,
					Light:       12,
					Sound:       40,
					Gas:         3,
				}))
			})
		})

		When("the payload has unknown fields and different casing", func() {
			It("should ignore the unknown fields", func() {
				payload := []byte(`{"devicename":"MT3620","Temperature":"31","humidity":60,"light":12,"sound":40,"gas":3,"PIR":1}`)

				sample, err := dto.DecodeSample(payload)

				Expect(err).NotTo(HaveOccurred())
				Expect(sample.Temperature).To(Equal(31))
			})
		})

		When("a field is missing", func() {
			It("should fail with ErrMissingField", func() {
				payload := []byte(`{"DeviceName":"MT3620","temperature":27,"humidity":60,"light":12,"sound":40}`)

				_, err := dto.DecodeSample(payload)

				Expect(err).To(MatchError(dto.ErrMissingField))
				Expect(err.Error()).To(ContainSubstring("gas"))
			})
		})

		When("a field is null", func() {
			It("should fail", func() {
				payload := []byte(`{"DeviceName":"MT3620","temperature":null,"humidity":60,"light":12,"sound":40,"gas":3}`)

				_, err := dto.DecodeSample(payload)

				Expect(err).To(HaveOccurred())
			})
		})

		When("a field is not an integer", func() {
			It("should fail", func() {
				payload := []byte(`{"DeviceName":"MT3620","temperature":"hot","humidity":60,"light":12,"sound":40,"gas":3}`)

				_, err := dto.DecodeSample(payload)

				Expect(err).To(HaveOccurred())
			})
		})

		When("the payload is not json", func() {
			It("should fail", func() {
				_, err := dto.DecodeSample([]byte("temperature=27"))

				Expect(err).To(HaveOccurred())
			})
		})

		When("the payload is empty", func() {
			It("should fail with ErrEmptyPayload", func() {
				_, err := dto.DecodeSample([]byte("  "))

				Expect(err).To(MatchError(dto.ErrEmptyPayload))
			})
		})
	})

	Context("EncodeSample", func() {
		It("should produce a payload DecodeSample accepts", func() {
			sample := domain.SensorSample{DeviceID: "MT3620", Temperature: 22, Humidity: 50, Light: 1, Sound: 2, Gas: 3}

			payload, err := dto.EncodeSample(sample)
			Expect(err).NotTo(HaveOccurred())

			Expect(string(payload)).To(ContainSubstring(`"DeviceName":"MT3620"`))
			Expect(dto.DecodeSample(payload)).To(Equal(sample))
		})
	})
})
