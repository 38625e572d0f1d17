package types

import (
	"regexp"
	"time"
)

type Device struct {
	DeviceID string `json:"deviceID"`
	OwnerID  string `json:"ownerID"`
	Name     string `json:"name,omitzero"`
	Location string `json:"location,omitzero"`
	Active   bool   `json:"active"`

	Config     DeviceConfig `json:"config"`
	Status     DeviceStatus `json:"status"`
	Statistics Statistics   `json:"statistics"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
}

type DeviceConfig struct {
	Temperature SensorConfig `json:"temperature"`
	Motion      SensorConfig `json:"motion"`
	System      SensorConfig `json:"system"`
}

// SensorConfig configures one sensor class. A sensor without an explicit enabled flag is
// enabled.
type SensorConfig struct {
	Enabled    *bool       `json:"enabled,omitempty"`
	Interval   int         `json:"interval,omitzero"`
	Thresholds *Thresholds `json:"thresholds,omitempty"`
}

func (c SensorConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

type Thresholds struct {
	Warning  float64 `json:"warning" yaml:"warning"`
	Critical float64 `json:"critical" yaml:"critical"`
}

type DeviceStatus struct {
	Online       bool      `json:"online"`
	LastSeen     time.Time `json:"lastSeen,omitzero"`
	BatteryLevel *float64  `json:"batteryLevel,omitempty"`
	WifiSignal   *int      `json:"wifiSignal,omitempty"`
	FreeMemory   *int64    `json:"freeMemory,omitempty"`
}

// StatusUpdate carries the fields of a status report. Nil fields are left untouched when merged.
type StatusUpdate struct {
	BatteryLevel *float64 `json:"battery,omitempty"`
	WifiSignal   *int     `json:"wifiSignal,omitempty"`
	FreeMemory   *int64   `json:"freeMemory,omitempty"`
	Uptime       *int64   `json:"uptime,omitempty"`
}

func (u StatusUpdate) IsEmpty() bool {
	return u.BatteryLevel == nil && u.WifiSignal == nil && u.FreeMemory == nil && u.Uptime == nil
}

type Statistics struct {
	Uptime              int64 `json:"uptime"`
	AlertCount          int64 `json:"alertCount"`
	DataPoints          int64 `json:"dataPoints"`
	TemperatureReadings int64 `json:"temperatureReadings"`
	MotionEvents        int64 `json:"motionEvents"`
	StatusReports       int64 `json:"statusReports"`
}

type Command struct {
	Command   string         `json:"command"`
	Params    map[string]any `json:"params"`
	Timestamp time.Time      `json:"timestamp"`
}

var deviceIDPattern = regexp.MustCompile(`^([0-9]{8})-[A-Za-z0-9_]+-[A-Za-z0-9]{5}$`)

// ValidDeviceID reports whether id has the form YYYYMMDD-<ownerId>-<5 alphanumerics>
// with a real calendar date as prefix.
func ValidDeviceID(id string) bool {
	m := deviceIDPattern.FindStringSubmatch(id)
	if m == nil {
		return false
	}

	_, err := time.Parse("20060102", m[1])
	return err == nil
}

// HealthScore is a rough 0..1 indication of device health. The weights are a heuristic
// and nothing downstream depends on the exact value.
func (d Device) HealthScore() float64 {
	battery := 0.0
	if d.Status.BatteryLevel != nil {
		battery = clamp(*d.Status.BatteryLevel/100.0, 0, 1)
	}

	connectivity := 0.0
	if d.Status.Online {
		connectivity = 1.0
	}

	signal := 0.0
	if d.Status.WifiSignal != nil {
		// -90 dBm and below counts as no signal, -30 dBm and above as full
		signal = clamp(float64(*d.Status.WifiSignal+90)/60.0, 0, 1)
	}

	score := 0.3*battery + 0.5*connectivity + 0.2*signal - 0.05*float64(d.Statistics.AlertCount)

	return clamp(score, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
