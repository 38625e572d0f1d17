package types

import "time"

type SensorClass string

const (
	Temperature SensorClass = "temperature"
	Motion      SensorClass = "motion"
	System      SensorClass = "system"
)

type AlertLevel string

const (
	AlertNormal   AlertLevel = "normal"
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

func (l AlertLevel) IsAlert() bool {
	return l == AlertWarning || l == AlertCritical
}

type Reading struct {
	ID        string      `json:"id"`
	DeviceID  string      `json:"deviceID"`
	Class     SensorClass `json:"class"`
	Timestamp time.Time   `json:"timestamp"`

	Temperature *TemperatureData `json:"temperature,omitempty"`
	Motion      *MotionData      `json:"motion,omitempty"`
	System      *SystemData      `json:"system,omitempty"`

	AlertLevel AlertLevel `json:"alertLevel"`
	Processed  bool       `json:"processed"`
	Analysis   *Analysis  `json:"analysis,omitempty"`
}

type TemperatureData struct {
	Value    float64  `json:"value"`
	Humidity *float64 `json:"humidity,omitempty"`
}

type MotionData struct {
	Detected bool   `json:"detected"`
	Zone     string `json:"zone,omitzero"`
	Location string `json:"location,omitzero"`
}

type SystemData struct {
	StatusUpdate
}

type Analysis struct {
	Anomaly         bool     `json:"anomaly"`
	Confidence      float64  `json:"confidence"`
	Trend           string   `json:"trend,omitzero"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type AlertEvent struct {
	DeviceID  string      `json:"deviceID"`
	ReadingID string      `json:"readingID"`
	Class     SensorClass `json:"class"`
	Level     AlertLevel  `json:"level"`
	Value     float64     `json:"value"`
	Humidity  *float64    `json:"humidity,omitempty"`
	Threshold float64     `json:"threshold"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventReading       = "reading"
	EventAlert         = "alert"
	EventDeviceOffline = "device_offline"
)

// Event is what live viewers of a device channel receive.
type Event struct {
	Type      string    `json:"type"`
	DeviceID  string    `json:"deviceID"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

type AlertEventData struct {
	Reading Reading    `json:"reading"`
	Alert   AlertEvent `json:"alert"`
}

type Granularity string

const (
	Hour  Granularity = "hour"
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

type AggregationQuery struct {
	DeviceIDs   []string
	Class       SensorClass
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

type Bucket struct {
	Start        time.Time `json:"start"`
	Count        int64     `json:"count"`
	Avg          *float64  `json:"avg,omitempty"`
	Min          *float64  `json:"min,omitempty"`
	Max          *float64  `json:"max,omitempty"`
	AvgHumidity  *float64  `json:"avgHumidity,omitempty"`
	MotionEvents int64     `json:"motionEvents"`
	Alerts       int64     `json:"alerts"`
}
