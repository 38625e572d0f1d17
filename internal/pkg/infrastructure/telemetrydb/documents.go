package telemetrydb

import (
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
)

type readingDocument struct {
	ID        string    `bson:"_id"`
	DeviceID  string    `bson:"device_id"`
	Class     string    `bson:"class"`
	Timestamp time.Time `bson:"timestamp"`

	Temperature *float64 `bson:"temperature,omitempty"`
	Humidity    *float64 `bson:"humidity,omitempty"`

	Motion   *bool  `bson:"motion,omitempty"`
	Zone     string `bson:"zone,omitempty"`
	Location string `bson:"location,omitempty"`

	Battery    *float64 `bson:"battery,omitempty"`
	WifiSignal *int     `bson:"wifi_signal,omitempty"`
	FreeMemory *int64   `bson:"free_memory,omitempty"`
	Uptime     *int64   `bson:"uptime,omitempty"`

	AlertLevel string            `bson:"alert_level"`
	Processed  bool              `bson:"processed"`
	Analysis   *analysisDocument `bson:"analysis,omitempty"`
}

type analysisDocument struct {
	Anomaly         bool     `bson:"anomaly"`
	Confidence      float64  `bson:"confidence"`
	Trend           string   `bson:"trend,omitempty"`
	Recommendations []string `bson:"recommendations,omitempty"`
}

type bucketDocument struct {
	Start        time.Time `bson:"_id"`
	Count        int64     `bson:"count"`
	Avg          *float64  `bson:"avg"`
	Min          *float64  `bson:"min"`
	Max          *float64  `bson:"max"`
	AvgHumidity  *float64  `bson:"avg_humidity"`
	MotionEvents int64     `bson:"motion_events"`
	Alerts       int64     `bson:"alerts"`
}

func newReadingDocument(r types.Reading) readingDocument {
	doc := readingDocument{
		ID:         r.ID,
		DeviceID:   r.DeviceID,
		Class:      string(r.Class),
		Timestamp:  r.Timestamp.UTC(),
		AlertLevel: string(r.AlertLevel),
		Processed:  r.Processed,
	}

	if r.Temperature != nil {
		v := r.Temperature.Value
		doc.Temperature = &v
		doc.Humidity = r.Temperature.Humidity
	}

	if r.Motion != nil {
		detected := r.Motion.Detected
		doc.Motion = &detected
		doc.Zone = r.Motion.Zone
		doc.Location = r.Motion.Location
	}

	if r.System != nil {
		doc.Battery = r.System.BatteryLevel
		doc.WifiSignal = r.System.WifiSignal
		doc.FreeMemory = r.System.FreeMemory
		doc.Uptime = r.System.Uptime
	}

	if r.Analysis != nil {
		a := newAnalysisDocument(*r.Analysis)
		doc.Analysis = &a
	}

	return doc
}

func newAnalysisDocument(a types.Analysis) analysisDocument {
	return analysisDocument{
		Anomaly:         a.Anomaly,
		Confidence:      a.Confidence,
		Trend:           a.Trend,
		Recommendations: a.Recommendations,
	}
}

func (d readingDocument) reading() types.Reading {
	r := types.Reading{
		ID:         d.ID,
		DeviceID:   d.DeviceID,
		Class:      types.SensorClass(d.Class),
		Timestamp:  d.Timestamp.UTC(),
		AlertLevel: types.AlertLevel(d.AlertLevel),
		Processed:  d.Processed,
	}

	switch r.Class {
	case types.Temperature:
		if d.Temperature != nil {
			r.Temperature = &types.TemperatureData{Value: *d.Temperature, Humidity: d.Humidity}
		}
	case types.Motion:
		if d.Motion != nil {
			r.Motion = &types.MotionData{Detected: *d.Motion, Zone: d.Zone, Location: d.Location}
		}
	case types.System:
		r.System = &types.SystemData{StatusUpdate: types.StatusUpdate{
			BatteryLevel: d.Battery,
			WifiSignal:   d.WifiSignal,
			FreeMemory:   d.FreeMemory,
			Uptime:       d.Uptime,
		}}
	}

	if d.Analysis != nil {
		r.Analysis = &types.Analysis{
			Anomaly:         d.Analysis.Anomaly,
			Confidence:      d.Analysis.Confidence,
			Trend:           d.Analysis.Trend,
			Recommendations: d.Analysis.Recommendations,
		}
	}

	return r
}
