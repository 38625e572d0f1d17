package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

const AlertEventType string = "iot.telemetry.alert"

//go:generate moq -rm -out eventsender_mock.go . EventSender
type EventSender interface {
	Send(ctx context.Context, alert types.AlertEvent) error
}

type subscriber struct {
	endpoint string
	patterns []*regexp.Regexp
}

// matches reports whether the subscriber wants events for deviceID. A subscriber
// without id patterns receives everything.
func (s subscriber) matches(deviceID string) bool {
	if len(s.patterns) == 0 {
		return true
	}

	for _, p := range s.patterns {
		if p.MatchString(deviceID) {
			return true
		}
	}

	return false
}

type eventSender struct {
	subscribers map[string][]subscriber
}

func New(cfg *Config) (EventSender, error) {
	e := &eventSender{
		subscribers: make(map[string][]subscriber),
	}

	if cfg == nil {
		return e, nil
	}

	for _, n := range cfg.Notifications {
		for _, s := range n.Subscribers {
			sub := subscriber{endpoint: s.Endpoint}

			for _, info := range s.Information {
				for _, entity := range info.Entities {
					if entity.IDPattern == "" {
						continue
					}

					p, err := regexp.Compile(entity.IDPattern)
					if err != nil {
						return nil, fmt.Errorf("invalid idPattern %q for notification %s: %w", entity.IDPattern, n.ID, err)
					}
					sub.patterns = append(sub.patterns, p)
				}
			}

			e.subscribers[n.Type] = append(e.subscribers[n.Type], sub)
		}
	}

	return e, nil
}

func (e *eventSender) Send(ctx context.Context, alert types.AlertEvent) error {
	targets := []string{}
	for _, s := range e.subscribers[AlertEventType] {
		if s.matches(alert.DeviceID) {
			targets = append(targets, s.endpoint)
		}
	}

	if len(targets) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%s", alert.DeviceID, alert.ReadingID))
	event.SetTime(alert.Timestamp)
	event.SetSource("github.com/diwise/iot-telemetry")
	event.SetType(AlertEventType)
	event.SetSubject(alert.DeviceID)

	err = event.SetData(cloudevents.ApplicationJSON, alert)
	if err != nil {
		return err
	}

	logger := logging.GetFromContext(ctx)

	var errs []error

	for _, endpoint := range targets {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			logger.Error("failed to send event", slog.String("endpoint", endpoint), slog.String("device_id", alert.DeviceID), slog.String("err", result.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", endpoint, result))
		}
	}

	return errors.Join(errs...)
}

type EntityInfo struct {
	IDPattern string `yaml:"idPattern"`
}

type RegistrationInfo struct {
	Entities []EntityInfo `yaml:"entities"`
}

type SubscriberConfig struct {
	Endpoint    string             `yaml:"endpoint"`
	Information []RegistrationInfo `yaml:"information"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err == nil {
		return &cfg, nil
	} else {
		return nil, err
	}
}
