package main

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/events"
	"github.com/matryer/is"
)

func TestThatConfigurationFileOverridesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := parseExternalConfigFile(context.Background(), io.NopCloser(strings.NewReader(configYaml)))
	is.NoErr(err)

	is.Equal(cfg.Pipeline.Workers, 16)
	is.Equal(cfg.Pipeline.QueueSize, 256) // default kept
	is.Equal(cfg.Transport.QoS, byte(2))
	is.Equal(cfg.Transport.MaxBackoff, 2*time.Minute)
	is.Equal(cfg.Alerts.Defaults.Temperature.Warning, 30.0)
	is.Equal(cfg.Alerts.Defaults.Temperature.Critical, 45.0)
	is.Equal(cfg.Watchdog.Schedule, "@every 1m")
	is.Equal(cfg.Watchdog.Threshold, 15*time.Minute)
	is.Equal(cfg.Telemetry.Retention, 7*24*time.Hour)

	is.Equal(len(cfg.Notifications), 1)
	is.Equal(cfg.Notifications[0].Type, events.AlertEventType)
	is.Equal(cfg.Notifications[0].Subscribers[0].Endpoint, "http://alerts.local/events")

	_, err = events.New(&events.Config{Notifications: cfg.Notifications})
	is.NoErr(err)
}

func TestThatEmptyConfigurationFileYieldsDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := parseExternalConfigFile(context.Background(), io.NopCloser(strings.NewReader("")))
	is.NoErr(err)
	is.Equal(*cfg, *defaultAppConfig())
}

func TestThatMissingConfigurationFileYieldsDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := loadConfigurationFile(context.Background(), filepath.Join(t.TempDir(), "nosuchfile.yaml"))
	is.NoErr(err)
	is.Equal(cfg.Watchdog, defaultAppConfig().Watchdog)
}

func TestThatMalformedConfigurationFileFails(t *testing.T) {
	is := is.New(t)

	_, err := parseExternalConfigFile(context.Background(), io.NopCloser(strings.NewReader("pipeline: [")))
	is.True(err != nil)
}

func TestThatEnvironmentOverridesDefaultFlags(t *testing.T) {
	is := is.New(t)

	t.Setenv("SERVICE_PORT", "9090")
	t.Setenv("CONTROL_PORT", "9000")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("MONGODB_DATABASE", "readings")

	flags := applyEnvironment(context.Background(), defaultFlags())

	is.Equal(flags[servicePort], "9090")
	is.Equal(flags[controlPort], "9000")
	is.Equal(flags[mqttBroker], "tcp://broker:1883")
	is.Equal(flags[mongoDatabase], "readings")
	is.Equal(flags[mqttClientID], serviceName)
	is.Equal(flags[dbPort], "5432")
}

const configYaml string = `
pipeline:
  workers: 16
transport:
  qos: 2
  maxBackoff: 2m
alerts:
  defaults:
    temperature:
      warning: 30
      critical: 45
watchdog:
  schedule: "@every 1m"
  threshold: 15m
telemetry:
  retention: 168h
notifications:
  - id: alerts
    name: temperature alerts
    type: iot.telemetry.alert
    subscribers:
      - endpoint: http://alerts.local/events
        information:
          - entities:
              - idPattern: ^sensor-.+
`
