package domain

// SensorSample is one telemetry reading of the tracked device. It is built
// from a fully decoded message and never modified afterwards.
type SensorSample struct {
	DeviceID    ID
	Temperature int
	Humidity    int
	Light       int
	Sound       int
	Gas         int
}
