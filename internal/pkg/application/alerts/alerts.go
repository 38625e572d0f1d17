package alerts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type Config struct {
	Defaults Defaults `yaml:"defaults"`
}

type Defaults struct {
	Temperature types.Thresholds `yaml:"temperature"`
}

func DefaultConfig() Config {
	return Config{
		Defaults: Defaults{
			Temperature: types.Thresholds{Warning: 35.0, Critical: 40.0},
		},
	}
}

//go:generate moq -rm -out evaluator_mock.go . Evaluator
type Evaluator interface {
	Evaluate(ctx context.Context, reading types.Reading, cfg types.DeviceConfig) (types.AlertLevel, *types.AlertEvent, error)
}

//go:generate moq -rm -out alertcounter_mock.go . AlertCounter
type AlertCounter interface {
	IncrementAlertCount(ctx context.Context, deviceID string) (bool, error)
}

type evaluator struct {
	counter  AlertCounter
	defaults Defaults
}

func New(counter AlertCounter, cfg Config) Evaluator {
	return &evaluator{
		counter:  counter,
		defaults: cfg.Defaults,
	}
}

// Evaluate computes the alert level of the reading. Warning and critical readings increment
// the alert counter of the device and yield an alert event. The level and event are valid
// even when the counter could not be updated.
func (e *evaluator) Evaluate(ctx context.Context, reading types.Reading, cfg types.DeviceConfig) (types.AlertLevel, *types.AlertEvent, error) {
	level, threshold := Level(reading, cfg, e.defaults)

	if !level.IsAlert() {
		return level, nil, nil
	}

	alert := &types.AlertEvent{
		DeviceID:  reading.DeviceID,
		ReadingID: reading.ID,
		Class:     reading.Class,
		Level:     level,
		Threshold: threshold,
		Timestamp: reading.Timestamp,
	}

	if reading.Temperature != nil {
		alert.Value = reading.Temperature.Value
		alert.Humidity = reading.Temperature.Humidity
	}

	logging.GetFromContext(ctx).Info("alert raised",
		slog.String("device_id", reading.DeviceID),
		slog.String("alert_level", string(level)),
		slog.Float64("value", alert.Value),
		slog.Float64("threshold", threshold))

	if _, err := e.counter.IncrementAlertCount(ctx, reading.DeviceID); err != nil {
		return level, alert, fmt.Errorf("could not increment alert count: %w", err)
	}

	return level, alert, nil
}

// Level maps a reading to its alert level and, for warning and critical, the threshold that
// was crossed. A value equal to a threshold crosses it. Readings of a sensor class that is
// disabled in the device configuration are always normal.
func Level(reading types.Reading, cfg types.DeviceConfig, defaults Defaults) (types.AlertLevel, float64) {
	switch reading.Class {
	case types.Temperature:
		if reading.Temperature == nil || !cfg.Temperature.IsEnabled() {
			return types.AlertNormal, 0
		}

		t := defaults.Temperature
		if cfg.Temperature.Thresholds != nil {
			t = *cfg.Temperature.Thresholds
		}

		v := reading.Temperature.Value

		if v >= t.Critical {
			return types.AlertCritical, t.Critical
		}
		if v >= t.Warning {
			return types.AlertWarning, t.Warning
		}

		return types.AlertNormal, 0

	case types.Motion:
		if reading.Motion != nil && reading.Motion.Detected && cfg.Motion.IsEnabled() {
			return types.AlertInfo, 0
		}
		return types.AlertNormal, 0
	}

	return types.AlertNormal, 0
}
