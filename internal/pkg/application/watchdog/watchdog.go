package watchdog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry/watchdog")

var ErrInvalidThreshold = errors.New("threshold must be positive")

var markedOffline = promauto.NewCounter(prometheus.CounterOpts{
	Name: "iot_telemetry_devices_marked_offline_total",
	Help: "Number of devices transitioned to offline by the watchdog.",
})

type Config struct {
	Schedule  string        `yaml:"schedule"`
	Threshold time.Duration `yaml:"threshold"`
}

func DefaultConfig() Config {
	return Config{
		Schedule:  "@every 5m",
		Threshold: 10 * time.Minute,
	}
}

// Result lists every swept device in exactly one of Offline and Failed. A device whose
// transition was applied in memory but could not be written to storage is reported as
// failed, its offline event is still emitted.
type Result struct {
	Offline []string `json:"offline"`
	Failed  []string `json:"failed"`
}

//go:generate moq -rm -out watchdog_mock.go . Watchdog
type Watchdog interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)
	Sweep(ctx context.Context, threshold time.Duration) (Result, error)
}

type watchdogImpl struct {
	cfg Config

	registry  registry.Registry
	hub       fanout.Hub
	messenger messaging.MsgContext

	now func() time.Time

	sweepMu sync.Mutex

	scheduler *cron.Cron
	jobID     cron.EntryID
	ctx       context.Context
}

type Option func(*watchdogImpl)

func WithClock(now func() time.Time) Option {
	return func(w *watchdogImpl) {
		w.now = now
	}
}

func New(r registry.Registry, h fanout.Hub, m messaging.MsgContext, cfg Config, opts ...Option) Watchdog {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultConfig().Schedule
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}

	w := &watchdogImpl{
		cfg:       cfg,
		registry:  r,
		hub:       h,
		messenger: m,
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *watchdogImpl) Start(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	w.ctx = ctx
	w.scheduler = cron.New()

	id, err := w.scheduler.AddJob(w.cfg.Schedule, w)
	if err != nil {
		return fmt.Errorf("could not schedule watchdog with %q: %w", w.cfg.Schedule, err)
	}
	w.jobID = id

	log.Info("starting watchdog", slog.String("schedule", w.cfg.Schedule), slog.Duration("threshold", w.cfg.Threshold))

	w.scheduler.Start()

	return nil
}

func (w *watchdogImpl) Stop(ctx context.Context) {
	if w.scheduler == nil {
		return
	}

	w.scheduler.Remove(w.jobID)

	select {
	case <-w.scheduler.Stop().Done():
	case <-ctx.Done():
	}
}

// Run is called by the scheduler.
func (w *watchdogImpl) Run() {
	ctx := w.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := w.Sweep(ctx, w.cfg.Threshold); err != nil {
		logging.GetFromContext(ctx).Error("scheduled sweep failed", slog.String("err", err.Error()))
	}
}

// Sweep transitions every online device not seen within threshold to offline. A failure
// for one device is logged and the sweep continues with the others.
func (w *watchdogImpl) Sweep(ctx context.Context, threshold time.Duration) (result Result, err error) {
	if threshold <= 0 {
		return Result{}, ErrInvalidThreshold
	}

	w.sweepMu.Lock()
	defer w.sweepMu.Unlock()

	ctx, span := tracer.Start(ctx, "sweep")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	now := w.now()
	cutoff := now.Add(-threshold)

	result = Result{
		Offline: []string{},
		Failed:  []string{},
	}

	for _, deviceID := range w.registry.Stale(ctx, cutoff) {
		transitioned, err := w.registry.MarkOfflineIfStale(ctx, deviceID, cutoff)
		if err != nil {
			log.Error("could not mark device as offline", slog.String("device_id", deviceID), slog.String("err", err.Error()))
			result.Failed = append(result.Failed, deviceID)
		} else if transitioned {
			result.Offline = append(result.Offline, deviceID)
		}

		if !transitioned {
			continue
		}

		markedOffline.Inc()

		w.notify(ctx, deviceID, now)
	}

	log.Info("sweep completed", slog.Duration("threshold", threshold), slog.Int("offline", len(result.Offline)), slog.Int("failed", len(result.Failed)))

	return result, nil
}

func (w *watchdogImpl) notify(ctx context.Context, deviceID string, now time.Time) {
	log := logging.GetFromContext(ctx)

	offline := &types.DeviceOffline{
		DeviceID:  deviceID,
		Timestamp: now,
	}

	if d, err := w.registry.Get(ctx, deviceID); err == nil {
		offline.LastSeen = d.Status.LastSeen
	}

	w.hub.Broadcast(ctx, deviceID, types.Event{
		Type:      types.EventDeviceOffline,
		DeviceID:  deviceID,
		Timestamp: now,
		Data:      offline,
	})

	if w.messenger == nil {
		return
	}

	if err := w.messenger.PublishOnTopic(ctx, offline); err != nil {
		log.Error("could not publish device offline", slog.String("device_id", deviceID), slog.String("err", err.Error()))
	}
}
