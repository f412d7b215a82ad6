package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"relay-server/cmd/api/wire"
	"relay-server/cmd/config"
	"relay-server/internal/infra/async"
	"relay-server/internal/infra/httpserver"
	"relay-server/internal/infra/node"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/httpapi"
)

const _shutdownTimeout = 10 * time.Second

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	cfg := config.LoadConfig()
	nodeInfo := node.GetNodeInfo()

	level := logLevelMapping[cfg.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs(nodeInfo.LogAttrs())
	slog.SetDefault(slog.New(handler))
	slog.Info("🚀 relay-server is initializing",
		slog.String("device_id", cfg.Control.DeviceID),
		slog.Int("temperature_threshold", cfg.Control.TemperatureThreshold))
	slog.Debug("config loaded", "data", cfg)

	shutdownOtel := startOTel(nodeInfo)

	internalBroker := async.NewLocalBroker()
	loop := handleWireInjector(wire.InitializeControlLoop(internalBroker)).(*wire.ControlLoop)

	appCtx, cancelFn := context.WithCancel(context.Background())

	// the stream topology is read once, a stream we cannot list is fatal
	if err := loop.Telemetry.Prepare(appCtx); err != nil {
		slog.Error("failed to read telemetry partitions", slog.Any("error", err))
		panic(err)
	}

	stateWebSocket := handleWireInjector(wire.InitializeDeviceStateWebSocketController(internalBroker, loop.Store)).(*httpapi.DeviceStateWebSocketController)
	httpServer := httpserver.NewServer(
		httpserver.ServerOptions{Addr: cfg.HTTP.Addr},
		handleWireInjector(wire.InitializeDeviceStateController(loop.Store)).(httpserver.Controller),
		handleWireInjector(wire.InitializeThresholdController(loop.Controller)).(httpserver.Controller),
		stateWebSocket,
	)
	go httpServer.Run()

	config.WatchThreshold(loop.Controller.Threshold(), func(threshold int) {
		loop.Controller.SetThreshold(threshold)
	})

	var wg sync.WaitGroup
	workers := []async.Worker{loop.Telemetry}

	metricWorkerFactory := wire.InitializeMetricWorkerFactory(internalBroker)
	metricWorkers, err := metricWorkerFactory.CreateWorkers(cfg.Metrics)
	if err != nil {
		slog.Error("failed to create metric workers", slog.Any("error", err))
		panic(err)
	}
	for _, worker := range metricWorkers {
		workers = append(workers, worker)
	}

	if cfg.Redis.Enabled {
		workers = append(workers, handleWireInjector(wire.InitializeSnapshotWorker(internalBroker, loop.Store)).(async.Worker))
	}

	if producer, ok := loop.Stream.(stream.Producer); ok && isLocal() {
		workers = append(workers, wire.InitializeTelemetrySimulator(producer))
	}

	for _, worker := range workers {
		wg.Add(1)
		go worker.Run(appCtx, wg.Done)
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel
	slog.Info("shutting down")

	cancelFn()
	for _, worker := range workers {
		worker.Shutdown()
	}
	wg.Wait()

	stateWebSocket.Shutdown()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", slog.Any("error", err))
	}
	if err := loop.Close(); err != nil {
		slog.Error("closing control loop", slog.Any("error", err))
	}
	internalBroker.Stop()
	if err := shutdownOtel(); err != nil {
		slog.Error("otel shutdown", slog.Any("error", err))
	}

	slog.Info("good bye!!!")
}

func isLocal() bool {
	return os.Getenv("ENV") == "local"
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

func handleWireInjector(value any, err error) any {
	if err != nil {
		panic(err)
	}

	return value
}
