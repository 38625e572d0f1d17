package types

import (
	"encoding/json"
	"time"
)

type AlertRaised struct {
	AlertEvent
}

func (a *AlertRaised) ContentType() string {
	return "application/json"
}
func (a *AlertRaised) TopicName() string {
	return "telemetry.alert"
}
func (a *AlertRaised) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type DeviceOffline struct {
	DeviceID  string    `json:"deviceID"`
	LastSeen  time.Time `json:"lastSeen"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceOffline) ContentType() string {
	return "application/json"
}
func (d *DeviceOffline) TopicName() string {
	return "device.offline"
}
func (d *DeviceOffline) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}

type DeviceStatusUpdated struct {
	DeviceID     string       `json:"deviceID"`
	DeviceStatus DeviceStatus `json:"status"`
	Timestamp    time.Time    `json:"timestamp"`
}

func (d *DeviceStatusUpdated) ContentType() string {
	return "application/json"
}
func (d *DeviceStatusUpdated) TopicName() string {
	return "device.statusUpdated"
}
func (d *DeviceStatusUpdated) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}
