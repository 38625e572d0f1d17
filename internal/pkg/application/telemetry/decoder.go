package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/diwise/iot-telemetry/pkg/types"
)

var (
	ErrInvalidTopic       = errors.New("invalid topic")
	ErrInvalidDeviceID    = errors.New("invalid device id")
	ErrUnknownSensorClass = errors.New("unknown sensor class")
	ErrMalformedPayload   = errors.New("malformed payload")
	ErrMissingMetric      = errors.New("missing primary metric")
)

type Kind int

const (
	Invalid Kind = iota
	Plain
	Structured
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Structured:
		return "structured"
	default:
		return "invalid"
	}
}

// Result is the outcome of decoding one inbound message. Reading is set for Structured,
// Text for Plain and Err for Invalid.
type Result struct {
	Kind     Kind
	DeviceID string
	Reading  types.Reading
	Text     string
	Err      error
}

func invalid(deviceID string, err error) Result {
	return Result{Kind: Invalid, DeviceID: deviceID, Err: err}
}

// topic suffix -> sensor class
var classes = map[string]types.SensorClass{
	"temperature": types.Temperature,
	"motion":      types.Motion,
	"status":      types.System,
}

// Decode maps a message on devices/{deviceID}/{temperature|motion|status} to a typed reading.
// It performs no I/O.
func Decode(topic string, payload []byte, receivedAt time.Time) Result {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "devices" {
		return invalid("", fmt.Errorf("%w: %s", ErrInvalidTopic, topic))
	}

	deviceID := parts[1]
	if !types.ValidDeviceID(deviceID) {
		return invalid(deviceID, fmt.Errorf("%w: %q", ErrInvalidDeviceID, deviceID))
	}

	class, ok := classes[parts[2]]
	if !ok {
		return invalid(deviceID, fmt.Errorf("%w: %s", ErrUnknownSensorClass, parts[2]))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		if text, ok := plainText(payload); ok {
			return Result{Kind: Plain, DeviceID: deviceID, Text: text}
		}
		return invalid(deviceID, ErrMalformedPayload)
	}

	reading := types.Reading{
		DeviceID:   deviceID,
		Class:      class,
		Timestamp:  receivedAt.UTC(),
		AlertLevel: types.AlertNormal,
	}

	if ts, ok := fields["timestamp"]; ok && string(ts) != "null" {
		t, err := parseTimestamp(ts)
		if err != nil {
			return invalid(deviceID, fmt.Errorf("%w: timestamp: %s", ErrMalformedPayload, err.Error()))
		}
		reading.Timestamp = t
	}

	var err error

	switch class {
	case types.Temperature:
		reading.Temperature, err = decodeTemperature(payload)
	case types.Motion:
		reading.Motion, err = decodeMotion(payload)
	case types.System:
		reading.System, err = decodeSystem(payload)
	}

	if err != nil {
		return invalid(deviceID, err)
	}

	return Result{Kind: Structured, DeviceID: deviceID, Reading: reading}
}

func decodeTemperature(payload []byte) (*types.TemperatureData, error) {
	msg := struct {
		Temperature *float64 `json:"temperature"`
		Humidity    *float64 `json:"humidity"`
	}{}

	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}
	if msg.Temperature == nil {
		return nil, fmt.Errorf("%w: temperature", ErrMissingMetric)
	}

	return &types.TemperatureData{
		Value:    *msg.Temperature,
		Humidity: msg.Humidity,
	}, nil
}

func decodeMotion(payload []byte) (*types.MotionData, error) {
	msg := struct {
		Motion   *bool  `json:"motion"`
		Zone     string `json:"zone"`
		Location string `json:"location"`
	}{}

	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}
	if msg.Motion == nil {
		return nil, fmt.Errorf("%w: motion", ErrMissingMetric)
	}

	return &types.MotionData{
		Detected: *msg.Motion,
		Zone:     msg.Zone,
		Location: msg.Location,
	}, nil
}

func decodeSystem(payload []byte) (*types.SystemData, error) {
	var status types.StatusUpdate

	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}
	if status.IsEmpty() {
		return nil, fmt.Errorf("%w: battery, wifiSignal, freeMemory or uptime", ErrMissingMetric)
	}

	return &types.SystemData{StatusUpdate: status}, nil
}

func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}

// plainText accepts a JSON string or bare printable text such as "online" or "offline".
func plainText(payload []byte) (string, bool) {
	b := bytes.TrimSpace(payload)

	if json.Valid(b) {
		var s string
		if b[0] == '"' && json.Unmarshal(b, &s) == nil {
			return s, true
		}
		return "", false
	}

	if len(b) == 0 || !utf8.Valid(b) || bytes.ContainsAny(b, "{}[]") {
		return "", false
	}

	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return "", false
		}
	}

	return string(b), true
}
