//go:build wireinject
// +build wireinject

package wire

import (
	"relay-server/internal/infra/async"
	"relay-server/internal/infra/cache"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/httpapi"
	"relay-server/internal/monitor/persistence"
	"relay-server/internal/monitor/simulator"
	"relay-server/internal/monitor/usecases"

	"github.com/google/wire"
)

var DeviceStateStoreSet = wire.NewSet(
	usecases.NewSimpleDeviceStateStore,
	wire.Bind(new(usecases.DeviceStateStore), new(*usecases.SimpleDeviceStateStore)),
)

func InitializeControlLoop(broker async.InternalBroker) (*ControlLoop, error) {
	wire.Build(
		provideAppConfig,
		provideEnvironment,
		provideDeviceID,
		provideThresholdConfig,
		provideStream,
		provideCommandDispatcher,
		provideTelemetryWorkerOptions,
		DeviceStateStoreSet,
		usecases.NewControlLoopMetrics,
		usecases.NewThresholdController,
		usecases.NewTelemetryWorker,
		wire.Struct(new(ControlLoop), "*"),
	)
	return nil, nil
}

func InitializeDeviceStateController(store usecases.DeviceStateStore) (*httpapi.DeviceStateController, error) {
	wire.Build(
		httpapi.NewDeviceStateController,
	)
	return nil, nil
}

func InitializeThresholdController(setter httpapi.ThresholdSetter) (*httpapi.ThresholdController, error) {
	wire.Build(
		httpapi.NewThresholdController,
	)
	return nil, nil
}

func InitializeDeviceStateWebSocketController(broker async.InternalBroker, store usecases.DeviceStateStore) (*httpapi.DeviceStateWebSocketController, error) {
	wire.Build(
		httpapi.NewDeviceStateWebSocketController,
	)
	return nil, nil
}

func InitializeMetricWorkerFactory(broker async.InternalBroker) *usecases.MetricWorkerFactory {
	wire.Build(
		usecases.NewMetricWorkerFactory,
	)
	return nil
}

func InitializeSnapshotWorker(broker async.InternalBroker, store usecases.DeviceStateStore) (*usecases.SnapshotWorker, error) {
	wire.Build(
		provideAppConfig,
		provideRedisCache,
		provideSnapshotRepositoryConfig,
		wire.Bind(new(persistence.SnapshotCache), new(*cache.RedisCache)),
		persistence.NewRedisSnapshotRepository,
		wire.Bind(new(usecases.SnapshotRepository), new(*persistence.RedisSnapshotRepository)),
		usecases.NewSnapshotWorker,
	)
	return nil, nil
}

func InitializeTelemetrySimulator(producer stream.Producer) *simulator.TelemetrySimulator {
	wire.Build(
		provideAppConfig,
		provideSimulatorOptions,
		simulator.NewTelemetrySimulator,
	)
	return nil
}
