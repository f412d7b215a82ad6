package simulator_test

import (
	"context"
	"errors"
	"time"

	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/dto"
	"relay-server/internal/monitor/simulator"
	mockstream "relay-server/test/unit/doubles/infra/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TelemetrySimulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("should sweep temperatures across the configured range", func() {
		sim := simulator.NewTelemetrySimulator(simulator.Options{DeviceID: "MT3620", Base: 27, Amplitude: 2}, nil)

		temperatures := make([]int, 0, 8)
		for tick := 0; tick < 8; tick++ {
			temperatures = append(temperatures, sim.Sample(tick).Temperature)
		}

		Expect(temperatures).To(Equal([]int{27, 28, 29, 28, 27, 26, 25, 26}))
	})

	It("should append decodable samples to a memory stream", func() {
		memory := stream.NewMemoryStream(stream.MemoryStreamOptions{Partitions: 1})
		receiver, err := memory.OpenPartition(ctx, 0, stream.StartFromBeginning)
		Expect(err).NotTo(HaveOccurred())

		sim := simulator.NewTelemetrySimulator(simulator.Options{DeviceID: "MT3620"}, memory)
		Expect(sim.Step(ctx)).To(Equal(1))

		msg, err := receiver.Receive(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.DeviceID).To(Equal("MT3620"))

		sample, err := dto.DecodeSample(msg.Payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(sample.DeviceID.String()).To(Equal("MT3620"))
	})

	It("should interleave other device and malformed messages", func() {
		ctrl := gomock.NewController(GinkgoT())
		producer := mockstream.NewMockProducer(ctrl)
		sim := simulator.NewTelemetrySimulator(simulator.Options{
			DeviceID:       "MT3620",
			OtherEvery:     1,
			MalformedEvery: 1,
		}, producer)

		var payloads [][]byte
		var devices []string
		producer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, deviceID string, payload []byte) error {
				devices = append(devices, deviceID)
				payloads = append(payloads, payload)
				return nil
			}).Times(3)

		Expect(sim.Step(ctx)).To(Equal(3))
		Expect(devices).To(Equal([]string{"MT3620", simulator.DefaultOtherDeviceID, "MT3620"}))

		other, err := dto.DecodeSample(payloads[1])
		Expect(err).NotTo(HaveOccurred())
		Expect(other.Temperature).To(Equal(99))

		_, err = dto.DecodeSample(payloads[2])
		Expect(err).To(HaveOccurred())
	})

	It("should keep going when the producer fails", func() {
		ctrl := gomock.NewController(GinkgoT())
		producer := mockstream.NewMockProducer(ctrl)
		producer.EXPECT().Send(gomock.Any(), "MT3620", gomock.Any()).Return(errors.New("broker down"))

		sim := simulator.NewTelemetrySimulator(simulator.Options{DeviceID: "MT3620"}, producer)

		Expect(sim.Step(ctx)).To(BeZero())
	})

	It("should stop when the context is cancelled", func() {
		memory := stream.NewMemoryStream(stream.MemoryStreamOptions{Partitions: 1})
		sim := simulator.NewTelemetrySimulator(simulator.Options{DeviceID: "MT3620", Interval: time.Millisecond}, memory)

		runCtx, cancel := context.WithCancel(ctx)
		finished := make(chan struct{})
		go sim.Run(runCtx, func() { close(finished) })

		cancel()
		Eventually(finished).Should(BeClosed())
	})
})
