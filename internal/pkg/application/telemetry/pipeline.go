package telemetry

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry/internal/pkg/application/events"
	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/transport"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry/telemetry")

type Config struct {
	Workers        int           `yaml:"workers"`
	QueueSize      int           `yaml:"queueSize"`
	PersistTimeout time.Duration `yaml:"persistTimeout"`
}

func DefaultConfig() Config {
	return Config{
		Workers:        8,
		QueueSize:      256,
		PersistTimeout: 5 * time.Second,
	}
}

//go:generate moq -rm -out readingstore_mock.go . ReadingStore
type ReadingStore interface {
	AddReading(ctx context.Context, r types.Reading) error
}

type Pipeline struct {
	cfg Config

	registry  registry.Registry
	evaluator alerts.Evaluator
	hub       fanout.Hub
	store     ReadingStore
	messenger messaging.MsgContext
	sender    events.EventSender

	async sync.WaitGroup
}

func NewPipeline(cfg Config, r registry.Registry, e alerts.Evaluator, h fanout.Hub, s ReadingStore, m messaging.MsgContext, sender events.EventSender) *Pipeline {
	d := DefaultConfig()

	if cfg.Workers <= 0 {
		cfg.Workers = d.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = d.QueueSize
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = d.PersistTimeout
	}

	return &Pipeline{
		cfg:       cfg,
		registry:  r,
		evaluator: e,
		hub:       h,
		store:     s,
		messenger: m,
		sender:    sender,
	}
}

// Run decodes the messages from in and hands every reading to the worker that owns its
// device, so readings of one device are processed in arrival order while different devices
// are processed in parallel. Run returns when in is closed or ctx is done, after all
// accepted readings have been processed.
func (p *Pipeline) Run(ctx context.Context, in <-chan transport.Message) {
	log := logging.GetFromContext(ctx)

	queues := make([]chan types.Reading, p.cfg.Workers)

	var workers sync.WaitGroup
	for i := range queues {
		queues[i] = make(chan types.Reading, p.cfg.QueueSize)

		workers.Add(1)
		go func(q <-chan types.Reading) {
			defer workers.Done()
			for r := range q {
				p.process(ctx, r)
			}
		}(queues[i])
	}

	log.Info("telemetry pipeline started", slog.Int("workers", p.cfg.Workers))

	defer func() {
		for _, q := range queues {
			close(q)
		}
		workers.Wait()
		p.async.Wait()

		log.Info("telemetry pipeline stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-in:
			if !ok {
				return
			}

			r, ok := p.route(ctx, m)
			if !ok {
				continue
			}

			select {
			case queues[shard(r.DeviceID, len(queues))] <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}

func shard(deviceID string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(deviceID))
	return int(h.Sum32() % uint32(n))
}

func (p *Pipeline) route(ctx context.Context, m transport.Message) (types.Reading, bool) {
	log := logging.GetFromContext(ctx)

	result := Decode(m.Topic, m.Payload, m.ReceivedAt)

	switch result.Kind {
	case Structured:
		r := result.Reading
		r.ID = uuid.NewString()
		messagesReceived.WithLabelValues(string(r.Class)).Inc()
		return r, true
	case Plain:
		log.Debug("ignoring plain text message", slog.String("topic", m.Topic), slog.String("text", result.Text))
		messagesDropped.WithLabelValues("plain").Inc()
	default:
		log.Warn("dropping invalid message", slog.String("topic", m.Topic), slog.String("err", result.Err.Error()))
		messagesDropped.WithLabelValues("invalid").Inc()
	}

	return types.Reading{}, false
}

// process runs the per reading steps. Every side effect fails on its own and never stops
// the remaining steps.
func (p *Pipeline) process(ctx context.Context, r types.Reading) {
	var err error

	ctx, span := tracer.Start(ctx, "process-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)
	log = log.With(slog.String("device_id", r.DeviceID), slog.String("reading_id", r.ID), slog.String("class", string(r.Class)))
	ctx = logging.NewContextWithLogger(ctx, log)

	// the configuration is read before anything is mutated, a device that has been
	// deprovisioned must not be brought back online
	cfg, err := p.registry.Config(ctx, r.DeviceID)
	if errors.Is(err, registry.ErrDeviceNotFound) {
		log.Debug("dropping reading from unknown device")
		messagesDropped.WithLabelValues("unknown_device").Inc()
		err = nil
		return
	}
	if err != nil {
		log.Warn("using cached device configuration", slog.String("err", err.Error()))
	}

	known, err := p.registry.Touch(ctx, r.DeviceID)
	if err != nil {
		log.Error("could not update liveness", slog.String("err", err.Error()))
	}
	if !known {
		messagesDropped.WithLabelValues("unknown_device").Inc()
		return
	}

	if r.Class == types.System && r.System != nil {
		p.updateStatus(ctx, r)
	}

	if _, err := p.registry.RecordDataPoint(ctx, r.DeviceID, r.Class); err != nil {
		log.Error("could not record data point", slog.String("err", err.Error()))
	}

	level, alert, err := p.evaluator.Evaluate(ctx, r, cfg)
	if err != nil {
		log.Error("alert evaluation incomplete", slog.String("err", err.Error()))
	}
	r.AlertLevel = level

	p.broadcast(ctx, r, alert)
	p.persist(ctx, r)

	if alert != nil {
		alertsRaised.WithLabelValues(string(alert.Level)).Inc()
		p.notify(ctx, *alert)
	}
}

func (p *Pipeline) updateStatus(ctx context.Context, r types.Reading) {
	log := logging.GetFromContext(ctx)

	if _, err := p.registry.UpdateStatusFields(ctx, r.DeviceID, r.System.StatusUpdate); err != nil {
		log.Error("could not update device status", slog.String("err", err.Error()))
	}

	if p.messenger == nil {
		return
	}

	d, err := p.registry.Get(ctx, r.DeviceID)
	if err != nil {
		return
	}

	err = p.messenger.PublishOnTopic(ctx, &types.DeviceStatusUpdated{
		DeviceID:     r.DeviceID,
		DeviceStatus: d.Status,
		Timestamp:    r.Timestamp,
	})
	if err != nil {
		log.Error("could not publish status update", slog.String("err", err.Error()))
	}
}

func (p *Pipeline) broadcast(ctx context.Context, r types.Reading, alert *types.AlertEvent) {
	e := types.Event{
		Type:      types.EventReading,
		DeviceID:  r.DeviceID,
		Timestamp: r.Timestamp,
		Data:      r,
	}

	if alert != nil {
		e.Type = types.EventAlert
		e.Data = types.AlertEventData{Reading: r, Alert: *alert}
	}

	p.hub.Broadcast(ctx, r.DeviceID, e)
}

func (p *Pipeline) persist(ctx context.Context, r types.Reading) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.PersistTimeout)
	defer cancel()

	if err := p.store.AddReading(ctx, r); err != nil {
		persistFailures.Inc()
		logging.GetFromContext(ctx).Error("could not persist reading", slog.String("err", err.Error()))
		return
	}

	readingsPersisted.Inc()
}

// notify publishes the alert to other services. Webhook delivery happens in the background.
func (p *Pipeline) notify(ctx context.Context, alert types.AlertEvent) {
	log := logging.GetFromContext(ctx)

	if p.messenger != nil {
		if err := p.messenger.PublishOnTopic(ctx, &types.AlertRaised{AlertEvent: alert}); err != nil {
			log.Error("could not publish alert", slog.String("err", err.Error()))
		}
	}

	if p.sender == nil {
		return
	}

	p.async.Add(1)
	go func() {
		defer p.async.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.PersistTimeout)
		defer cancel()

		if err := p.sender.Send(ctx, alert); err != nil {
			log.Error("could not send alert notification", slog.String("err", err.Error()))
		}
	}()
}
