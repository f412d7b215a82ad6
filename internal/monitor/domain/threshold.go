package domain

import "sync/atomic"

// ThresholdConfig holds the operator configured temperature threshold.
// It may be written at any time; evaluations read the latest value.
type ThresholdConfig struct {
	value atomic.Int64
}

func NewThresholdConfig(initial int) *ThresholdConfig {
	t := &ThresholdConfig{}
	t.value.Store(int64(initial))
	return t
}

func (t *ThresholdConfig) Get() int {
	return int(t.value.Load())
}

// Set replaces the threshold and returns the previous one.
func (t *ThresholdConfig) Set(threshold int) int {
	return int(t.value.Swap(int64(threshold)))
}
