package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/matryer/is"
)

func TestTemperatureLevels(t *testing.T) {
	is := is.New(t)

	cfg := deviceConfig(38.0, 40.0)
	defaults := DefaultConfig().Defaults

	for _, tc := range []struct {
		value     float64
		level     types.AlertLevel
		threshold float64
	}{
		{value: 20.0, level: types.AlertNormal},
		{value: 37.99, level: types.AlertNormal},
		{value: 38.0, level: types.AlertWarning, threshold: 38.0},
		{value: 39.5, level: types.AlertWarning, threshold: 38.0},
		{value: 40.0, level: types.AlertCritical, threshold: 40.0},
		{value: 41.0, level: types.AlertCritical, threshold: 40.0},
		{value: -10.0, level: types.AlertNormal},
	} {
		level, threshold := Level(temperature(tc.value), cfg, defaults)
		is.Equal(level, tc.level)
		is.Equal(threshold, tc.threshold)
	}
}

func TestDefaultThresholdsApplyWithoutDeviceThresholds(t *testing.T) {
	is := is.New(t)

	defaults := DefaultConfig().Defaults

	level, _ := Level(temperature(36.0), types.DeviceConfig{}, defaults)
	is.Equal(level, types.AlertWarning)

	level, _ = Level(temperature(40.0), types.DeviceConfig{}, defaults)
	is.Equal(level, types.AlertCritical)
}

func TestMotionLevels(t *testing.T) {
	is := is.New(t)

	r := types.Reading{Class: types.Motion, Motion: &types.MotionData{Detected: true, Zone: "A"}}
	level, _ := Level(r, types.DeviceConfig{}, Defaults{})
	is.Equal(level, types.AlertInfo)

	r.Motion.Detected = false
	level, _ = Level(r, types.DeviceConfig{}, Defaults{})
	is.Equal(level, types.AlertNormal)
}

func TestSystemReadingsAreNormal(t *testing.T) {
	is := is.New(t)

	battery := 3.0
	r := types.Reading{Class: types.System, System: &types.SystemData{StatusUpdate: types.StatusUpdate{BatteryLevel: &battery}}}
	level, _ := Level(r, types.DeviceConfig{}, DefaultConfig().Defaults)
	is.Equal(level, types.AlertNormal)
}

func TestDisabledSensorsAreNormal(t *testing.T) {
	is := is.New(t)

	disabled := false
	cfg := deviceConfig(38.0, 40.0)
	cfg.Temperature.Enabled = &disabled
	cfg.Motion.Enabled = &disabled

	level, threshold := Level(temperature(45.0), cfg, DefaultConfig().Defaults)
	is.Equal(level, types.AlertNormal)
	is.Equal(threshold, 0.0)

	r := types.Reading{Class: types.Motion, Motion: &types.MotionData{Detected: true}}
	level, _ = Level(r, cfg, Defaults{})
	is.Equal(level, types.AlertNormal)

	counter := &AlertCounterMock{}
	_, alert, err := New(counter, DefaultConfig()).Evaluate(context.Background(), temperature(45.0), cfg)
	is.NoErr(err)
	is.True(alert == nil)
	is.Equal(len(counter.IncrementAlertCountCalls()), 0)

	enabled := true
	cfg.Temperature.Enabled = &enabled
	level, _ = Level(temperature(45.0), cfg, DefaultConfig().Defaults)
	is.Equal(level, types.AlertCritical)
}

func TestEvaluateCriticalIncrementsAlertCount(t *testing.T) {
	is := is.New(t)

	counter := &AlertCounterMock{
		IncrementAlertCountFunc: func(ctx context.Context, deviceID string) (bool, error) {
			return true, nil
		},
	}

	e := New(counter, DefaultConfig())

	humidity := 45.0
	r := temperature(41.0)
	r.Temperature.Humidity = &humidity

	level, alert, err := e.Evaluate(context.Background(), r, deviceConfig(38.0, 40.0))
	is.NoErr(err)
	is.Equal(level, types.AlertCritical)
	is.True(alert != nil)
	is.Equal(alert.ReadingID, r.ID)
	is.Equal(alert.Value, 41.0)
	is.Equal(*alert.Humidity, 45.0)
	is.Equal(alert.Threshold, 40.0)

	is.Equal(len(counter.IncrementAlertCountCalls()), 1)
	is.Equal(counter.IncrementAlertCountCalls()[0].DeviceID, r.DeviceID)
}

func TestEvaluateNormalAndInfoDoNotCount(t *testing.T) {
	is := is.New(t)

	counter := &AlertCounterMock{}
	e := New(counter, DefaultConfig())

	level, alert, err := e.Evaluate(context.Background(), temperature(21.0), deviceConfig(38.0, 40.0))
	is.NoErr(err)
	is.Equal(level, types.AlertNormal)
	is.True(alert == nil)

	motion := types.Reading{DeviceID: "20240115-owner1-AB12C", Class: types.Motion, Motion: &types.MotionData{Detected: true}}
	level, alert, err = e.Evaluate(context.Background(), motion, types.DeviceConfig{})
	is.NoErr(err)
	is.Equal(level, types.AlertInfo)
	is.True(alert == nil)

	is.Equal(len(counter.IncrementAlertCountCalls()), 0)
}

func TestEvaluateReturnsLevelWhenCounterFails(t *testing.T) {
	is := is.New(t)

	counter := &AlertCounterMock{
		IncrementAlertCountFunc: func(ctx context.Context, deviceID string) (bool, error) {
			return true, errors.New("storage down")
		},
	}

	e := New(counter, DefaultConfig())

	level, alert, err := e.Evaluate(context.Background(), temperature(38.5), deviceConfig(38.0, 40.0))
	is.True(err != nil)
	is.Equal(level, types.AlertWarning)
	is.True(alert != nil)
}

func deviceConfig(warning, critical float64) types.DeviceConfig {
	return types.DeviceConfig{
		Temperature: types.SensorConfig{
			Thresholds: &types.Thresholds{Warning: warning, Critical: critical},
		},
	}
}

func temperature(v float64) types.Reading {
	return types.Reading{
		ID:          "5c2f3c1e-8d7a-4a57-9f1c-1f0a6c0e2b11",
		DeviceID:    "20240115-owner1-AB12C",
		Class:       types.Temperature,
		Timestamp:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Temperature: &types.TemperatureData{Value: v},
	}
}
