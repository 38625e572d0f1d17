package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var ErrDeviceNotFound = fmt.Errorf("device not found")

//go:generate moq -rm -out registry_mock.go . Registry
type Registry interface {
	Load(ctx context.Context) error

	Touch(ctx context.Context, deviceID string) (bool, error)
	MarkOffline(ctx context.Context, deviceID string) (bool, error)
	MarkOfflineIfStale(ctx context.Context, deviceID string, cutoff time.Time) (bool, error)
	UpdateStatusFields(ctx context.Context, deviceID string, update types.StatusUpdate) (bool, error)
	IncrementAlertCount(ctx context.Context, deviceID string) (bool, error)
	RecordDataPoint(ctx context.Context, deviceID string, class types.SensorClass) (bool, error)

	Get(ctx context.Context, deviceID string) (types.Device, error)
	Config(ctx context.Context, deviceID string) (types.DeviceConfig, error)
	Stale(ctx context.Context, cutoff time.Time) []string
	Owned(ctx context.Context, ownerID string) ([]string, error)
}

//go:generate moq -rm -out devicestorage_mock.go . DeviceStorage
type DeviceStorage interface {
	GetDevice(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error)
	QueryDevices(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Device], error)
	SetDeviceStatus(ctx context.Context, deviceID string, status types.DeviceStatus) error
	SetDeviceStatistics(ctx context.Context, deviceID string, stats types.Statistics) error
}

// entry guards a single device. All mutations of one device happen under its mutex,
// different devices never contend with each other.
type entry struct {
	mu     sync.Mutex
	device types.Device
}

type registry struct {
	mu      sync.RWMutex
	devices map[string]*entry

	storage DeviceStorage
	now     func() time.Time
}

type Option func(*registry)

func WithClock(now func() time.Time) Option {
	return func(r *registry) {
		r.now = now
	}
}

func New(s DeviceStorage, opts ...Option) Registry {
	r := &registry{
		devices: make(map[string]*entry),
		storage: s,
		now:     func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *registry) Load(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	result, err := r.storage.QueryDevices(ctx, storage.WithActive(true))
	if err != nil {
		return fmt.Errorf("could not load devices: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range result.Data {
		if _, ok := r.devices[d.DeviceID]; !ok {
			r.devices[d.DeviceID] = &entry{device: d}
		}
	}

	log.Info("device registry loaded", slog.Int("devices", len(r.devices)))

	return nil
}

// lookup returns the entry for deviceID, reading it from storage on a miss. Missing and
// inactive devices yield a nil entry and no error.
func (r *registry) lookup(ctx context.Context, deviceID string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.devices[deviceID]
	r.mu.RUnlock()

	if ok {
		return e, nil
	}

	d, err := r.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if !d.Active {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.devices[deviceID]; ok {
		return e, nil
	}

	e = &entry{device: d}
	r.devices[deviceID] = e

	return e, nil
}

type mutation func(d *types.Device) (status, statistics bool)

// mutate applies fn to the device while holding its lock and mirrors whatever fn reports as
// changed to storage. The in-memory record is kept even if the mirror write fails.
func (r *registry) mutate(ctx context.Context, deviceID, op string, fn mutation) (bool, error) {
	log := logging.GetFromContext(ctx)

	e, err := r.lookup(ctx, deviceID)
	if err != nil {
		return false, fmt.Errorf("could not look up device %s: %w", deviceID, err)
	}

	if e == nil {
		log.Debug("ignoring registry update for unknown device", slog.String("device_id", deviceID), slog.String("op", op))
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	statusChanged, statisticsChanged := fn(&e.device)

	var errs []error

	if statusChanged {
		errs = append(errs, r.storage.SetDeviceStatus(ctx, deviceID, e.device.Status))
	}
	if statisticsChanged {
		errs = append(errs, r.storage.SetDeviceStatistics(ctx, deviceID, e.device.Statistics))
	}

	if err := errors.Join(errs...); err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			// the device was deactivated or removed after it was cached
			r.evict(deviceID, e)
			log.Debug("ignoring registry update for deprovisioned device", slog.String("device_id", deviceID), slog.String("op", op))
			return false, nil
		}
		return true, fmt.Errorf("could not mirror %s for device %s: %w", op, deviceID, err)
	}

	return true, nil
}

// evict drops the cached entry for deviceID unless it has already been replaced.
func (r *registry) evict(deviceID string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.devices[deviceID]; ok && current == e {
		delete(r.devices, deviceID)
	}
}

func (r *registry) Touch(ctx context.Context, deviceID string) (bool, error) {
	return r.mutate(ctx, deviceID, "touch", func(d *types.Device) (bool, bool) {
		d.Status.Online = true
		d.Status.LastSeen = r.now()
		return true, false
	})
}

func (r *registry) MarkOffline(ctx context.Context, deviceID string) (bool, error) {
	return r.mutate(ctx, deviceID, "mark_offline", func(d *types.Device) (bool, bool) {
		if !d.Status.Online {
			return false, false
		}
		d.Status.Online = false
		return true, false
	})
}

// MarkOfflineIfStale transitions the device to offline only if it is still online with a
// last seen time before cutoff when its lock is held. The returned flag reports whether the
// transition happened.
func (r *registry) MarkOfflineIfStale(ctx context.Context, deviceID string, cutoff time.Time) (bool, error) {
	transitioned := false

	known, err := r.mutate(ctx, deviceID, "mark_offline", func(d *types.Device) (bool, bool) {
		if !d.Status.Online || !d.Status.LastSeen.Before(cutoff) {
			return false, false
		}
		d.Status.Online = false
		transitioned = true
		return true, false
	})

	return known && transitioned, err
}

func (r *registry) UpdateStatusFields(ctx context.Context, deviceID string, update types.StatusUpdate) (bool, error) {
	return r.mutate(ctx, deviceID, "update_status", func(d *types.Device) (bool, bool) {
		if update.BatteryLevel != nil {
			v := *update.BatteryLevel
			d.Status.BatteryLevel = &v
		}
		if update.WifiSignal != nil {
			v := *update.WifiSignal
			d.Status.WifiSignal = &v
		}
		if update.FreeMemory != nil {
			v := *update.FreeMemory
			d.Status.FreeMemory = &v
		}

		statistics := false
		if update.Uptime != nil {
			d.Statistics.Uptime = *update.Uptime
			statistics = true
		}

		return update.BatteryLevel != nil || update.WifiSignal != nil || update.FreeMemory != nil, statistics
	})
}

func (r *registry) IncrementAlertCount(ctx context.Context, deviceID string) (bool, error) {
	return r.mutate(ctx, deviceID, "increment_alerts", func(d *types.Device) (bool, bool) {
		d.Statistics.AlertCount++
		return false, true
	})
}

func (r *registry) RecordDataPoint(ctx context.Context, deviceID string, class types.SensorClass) (bool, error) {
	return r.mutate(ctx, deviceID, "record_data_point", func(d *types.Device) (bool, bool) {
		d.Statistics.DataPoints++

		switch class {
		case types.Temperature:
			d.Statistics.TemperatureReadings++
		case types.Motion:
			d.Statistics.MotionEvents++
		case types.System:
			d.Statistics.StatusReports++
		}

		return false, true
	})
}

func (r *registry) Get(ctx context.Context, deviceID string) (types.Device, error) {
	e, err := r.lookup(ctx, deviceID)
	if err != nil {
		return types.Device{}, err
	}
	if e == nil {
		return types.Device{}, ErrDeviceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.device, nil
}

// Config reads the device configuration from storage so that threshold changes made
// elsewhere apply to the very next reading. The cached snapshot is refreshed on the way.
// A device that has been removed or deactivated since it was cached is evicted and reported
// as ErrDeviceNotFound. If storage cannot be reached the cached configuration is returned
// together with the error.
func (r *registry) Config(ctx context.Context, deviceID string) (types.DeviceConfig, error) {
	e, err := r.lookup(ctx, deviceID)
	if err != nil {
		return types.DeviceConfig{}, err
	}
	if e == nil {
		return types.DeviceConfig{}, ErrDeviceNotFound
	}

	d, err := r.storage.GetDevice(ctx, storage.WithDeviceID(deviceID))

	if errors.Is(err, storage.ErrNoRows) || (err == nil && !d.Active) {
		r.evict(deviceID, e)
		logging.GetFromContext(ctx).Debug("device deprovisioned, evicted from registry", slog.String("device_id", deviceID))
		return types.DeviceConfig{}, ErrDeviceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		return e.device.Config, fmt.Errorf("could not read configuration for device %s: %w", deviceID, err)
	}

	e.device.Config = d.Config
	e.device.Name = d.Name
	e.device.Location = d.Location

	return d.Config, nil
}

// Stale returns the ids of online devices whose last seen time is before cutoff.
// Each device lock is held only while its status is read.
func (r *registry) Stale(ctx context.Context, cutoff time.Time) []string {
	r.mu.RLock()
	entries := make(map[string]*entry, len(r.devices))
	for id, e := range r.devices {
		entries[id] = e
	}
	r.mu.RUnlock()

	stale := []string{}

	for id, e := range entries {
		e.mu.Lock()
		if e.device.Status.Online && e.device.Status.LastSeen.Before(cutoff) {
			stale = append(stale, id)
		}
		e.mu.Unlock()
	}

	slices.Sort(stale)

	return stale
}

func (r *registry) Owned(ctx context.Context, ownerID string) ([]string, error) {
	result, err := r.storage.QueryDevices(ctx, storage.WithOwnerID(ownerID))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Data))
	for _, d := range result.Data {
		ids = append(ids, d.DeviceID)
	}

	return ids, nil
}
