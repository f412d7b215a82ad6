package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/simulator"

	"github.com/spf13/pflag"
)

func main() {
	var (
		brokers        = pflag.StringSlice("brokers", []string{"localhost:9092"}, "kafka brokers")
		topic          = pflag.String("topic", "telemetry", "telemetry topic")
		deviceIDHeader = pflag.String("device-id-header", stream.DefaultDeviceIDHeader, "record header carrying the device id")
		deviceID       = pflag.String("device", "MT3620", "simulated device id")
		otherDevice    = pflag.String("other-device", simulator.DefaultOtherDeviceID, "device id used for foreign samples")
		interval       = pflag.Duration("interval", 2*time.Second, "time between samples")
		base           = pflag.Int("base", 27, "temperature the sweep is centered on")
		amplitude      = pflag.Int("amplitude", 4, "temperature sweep amplitude")
		otherEvery     = pflag.Int("other-every", 5, "emit a foreign sample every n ticks, 0 disables")
		malformedEvery = pflag.Int("malformed-every", 7, "emit a malformed payload every n ticks, 0 disables")
		count          = pflag.Int("count", 0, "stop after n ticks, 0 runs until interrupted")
		debug          = pflag.Bool("debug", false, "log every message sent")
	)
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: level})),
	)
	slog.Info("telemetry simulator starting",
		slog.Any("brokers", *brokers),
		slog.String("topic", *topic),
		slog.String("device_id", *deviceID))

	producer, err := stream.NewKafkaProducer(stream.KafkaStreamOptions{
		Brokers:        *brokers,
		Topic:          *topic,
		ClientID:       "relay-simulator",
		DeviceIDHeader: *deviceIDHeader,
	})
	if err != nil {
		slog.Error("failed to create kafka producer", slog.Any("error", err))
		os.Exit(1)
	}
	defer producer.Close()

	sim := simulator.NewTelemetrySimulator(simulator.Options{
		DeviceID:       *deviceID,
		OtherDeviceID:  *otherDevice,
		Interval:       *interval,
		Base:           *base,
		Amplitude:      *amplitude,
		OtherEvery:     *otherEvery,
		MalformedEvery: *malformedEvery,
	}, producer)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *count > 0 {
		for tick := 0; tick < *count && ctx.Err() == nil; tick++ {
			sim.Step(ctx)
			time.Sleep(*interval)
		}
		slog.Info("good bye!!!")
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go sim.Run(ctx, wg.Done)
	<-ctx.Done()
	wg.Wait()
	sim.Shutdown()
	slog.Info("good bye!!!")
}
