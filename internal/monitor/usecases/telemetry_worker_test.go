package usecases_test

import (
	"context"
	"errors"
	"time"

	"relay-server/internal/infra/async"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/dto"
	"relay-server/internal/monitor/usecases"
	mockstream "relay-server/test/unit/doubles/infra/stream"
	mockusecases "relay-server/test/unit/doubles/monitor/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("TelemetryWorker", func() {
	var (
		ctx        context.Context
		ctrl       *gomock.Controller
		dispatcher *mockusecases.MockCommandDispatcher
		store      *usecases.SimpleDeviceStateStore
		controller *usecases.ThresholdController
		metrics    *usecases.ControlLoopMetrics
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		dispatcher = mockusecases.NewMockCommandDispatcher(ctrl)
		store = usecases.NewSimpleDeviceStateStore("MT3620", async.NewLocalBroker())
		var err error
		metrics, err = usecases.NewControlLoopMetrics()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		controller = usecases.NewThresholdController(store, domain.NewThresholdConfig(27), dispatcher, metrics)
	})

	ginkgo.It("should consume every partition of the stream", func() {
		memory := stream.NewMemoryStream(stream.MemoryStreamOptions{Partitions: 3, PollInterval: 5 * time.Millisecond})
		worker := usecases.NewTelemetryWorker(usecases.TelemetryWorkerOptions{DeviceID: "MT3620"}, memory, store, controller, metrics)
		gomega.Expect(worker.Prepare(ctx)).To(gomega.Succeed())
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)

		runCtx, cancel := context.WithCancel(ctx)
		finished := make(chan struct{})
		go worker.Run(runCtx, func() { close(finished) })

		payload, err := dto.EncodeSample(domain.SensorSample{DeviceID: "MT3620", Temperature: 31, Humidity: 1, Light: 1, Sound: 1, Gas: 1})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		// Receivers open asynchronously and start from now, so keep publishing until one lands.
		gomega.Eventually(func() bool {
			gomega.Expect(memory.Publish(ctx, 2, "MT3620", payload)).To(gomega.Succeed())
			return store.Snapshot(ctx).HasSample()
		}).Should(gomega.BeTrue())

		cancel()
		gomega.Eventually(finished).Should(gomega.BeClosed())
		gomega.Expect(store.Snapshot(ctx).Actuator).To(gomega.Equal(domain.ActuatorOn))
		worker.Shutdown()
		gomega.Expect(memory.Close()).To(gomega.Succeed())
	})

	ginkgo.It("should close partition receivers without closing the stream", func() {
		telemetry := mockstream.NewMockStream(ctrl)
		receiver := mockstream.NewMockPartitionReceiver(ctrl)
		telemetry.EXPECT().Partitions(gomock.Any()).Return([]stream.Partition{0}, nil)
		telemetry.EXPECT().OpenPartition(gomock.Any(), stream.Partition(0), stream.StartFromNow).Return(receiver, nil)
		opened := make(chan struct{})
		receiver.EXPECT().Receive(gomock.Any()).DoAndReturn(func(ctx context.Context) (*stream.Message, error) {
			close(opened)
			<-ctx.Done()
			return nil, ctx.Err()
		})
		receiver.EXPECT().Close().Return(nil)
		worker := usecases.NewTelemetryWorker(usecases.TelemetryWorkerOptions{DeviceID: "MT3620"}, telemetry, store, controller, metrics)

		runCtx, cancel := context.WithCancel(ctx)
		finished := make(chan struct{})
		go worker.Run(runCtx, func() { close(finished) })
		gomega.Eventually(opened).Should(gomega.BeClosed())

		worker.Shutdown()
		cancel()

		gomega.Eventually(finished).Should(gomega.BeClosed())
	})

	ginkgo.It("should fail to prepare when the topology is unavailable", func() {
		telemetry := mockstream.NewMockStream(ctrl)
		telemetry.EXPECT().Partitions(gomock.Any()).Return(nil, errors.New("no brokers"))
		worker := usecases.NewTelemetryWorker(usecases.TelemetryWorkerOptions{DeviceID: "MT3620"}, telemetry, store, controller, metrics)

		err := worker.Prepare(ctx)

		gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("no brokers")))
	})

	ginkgo.It("should return from run when the topology is unavailable", func() {
		telemetry := mockstream.NewMockStream(ctrl)
		telemetry.EXPECT().Partitions(gomock.Any()).Return(nil, errors.New("no brokers"))
		worker := usecases.NewTelemetryWorker(usecases.TelemetryWorkerOptions{DeviceID: "MT3620"}, telemetry, store, controller, metrics)

		finished := make(chan struct{})
		go worker.Run(ctx, func() { close(finished) })

		gomega.Eventually(finished).Should(gomega.BeClosed())
	})
})
