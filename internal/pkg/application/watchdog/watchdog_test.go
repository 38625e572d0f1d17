package watchdog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

var start = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

const (
	fresh   = "20240115-owner1-AB12C"
	stale   = "20240116-owner1-QW3RT"
	offline = "20240201-owner2-ZX9CV"
)

func TestSweepMarksExactlyTheStaleDevices(t *testing.T) {
	is, ctx, f := testSetup(t, fresh, stale, offline)

	f.touchAt(ctx, stale, start)
	f.touchAt(ctx, offline, start)
	f.reg.MarkOffline(ctx, offline)
	f.touchAt(ctx, fresh, start.Add(8*time.Minute))

	f.clock = start.Add(11 * time.Minute)

	result, err := f.w.Sweep(ctx, 10*time.Minute)
	is.NoErr(err)
	is.Equal(result.Offline, []string{stale})
	is.Equal(len(result.Failed), 0)

	d, _ := f.reg.Get(ctx, fresh)
	is.True(d.Status.Online)

	d, _ = f.reg.Get(ctx, stale)
	is.True(!d.Status.Online)

	d, _ = f.reg.Get(ctx, offline)
	is.True(!d.Status.Online)

	is.Equal(f.topics(), []string{"device.offline"})
}

func TestSweepBoundaryIsStrict(t *testing.T) {
	is, ctx, f := testSetup(t, fresh)

	f.touchAt(ctx, fresh, start)
	f.clock = start.Add(10 * time.Minute)

	result, err := f.w.Sweep(ctx, 10*time.Minute)
	is.NoErr(err)
	is.Equal(len(result.Offline), 0)
}

func TestStaleDeviceGoesOfflineAndComesBack(t *testing.T) {
	is, ctx, f := testSetup(t, stale)

	sub := fanout.NewSubscriber(10)
	f.hub.Join(stale, sub)

	f.touchAt(ctx, stale, start)
	f.clock = start.Add(11 * time.Minute)

	result, err := f.w.Sweep(ctx, 10*time.Minute)
	is.NoErr(err)
	is.Equal(result.Offline, []string{stale})

	is.Equal(len(sub.C()), 1)
	e := <-sub.C()
	is.Equal(e.Type, types.EventDeviceOffline)
	is.Equal(e.DeviceID, stale)
	is.Equal(e.Data.(*types.DeviceOffline).LastSeen, start)

	ok, err := f.reg.Touch(ctx, stale)
	is.NoErr(err)
	is.True(ok)

	d, _ := f.reg.Get(ctx, stale)
	is.True(d.Status.Online)

	result, err = f.w.Sweep(ctx, 10*time.Minute)
	is.NoErr(err)
	is.Equal(len(result.Offline), 0)
}

func TestSweepContinuesAfterPartialFailure(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := &registry.RegistryMock{
		StaleFunc: func(ctx context.Context, cutoff time.Time) []string {
			return []string{fresh, stale, offline}
		},
		MarkOfflineIfStaleFunc: func(ctx context.Context, deviceID string, cutoff time.Time) (bool, error) {
			if deviceID == stale {
				return false, errors.New("lookup failed")
			}
			return true, nil
		},
		GetFunc: func(ctx context.Context, deviceID string) (types.Device, error) {
			return types.Device{DeviceID: deviceID}, nil
		},
	}

	msgCtx := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	w := New(r, fanout.New(), msgCtx, DefaultConfig())

	result, err := w.Sweep(ctx, 10*time.Minute)
	is.NoErr(err)
	is.Equal(result.Offline, []string{fresh, offline})
	is.Equal(result.Failed, []string{stale})
	is.Equal(len(r.MarkOfflineIfStaleCalls()), 3)
	is.Equal(len(msgCtx.PublishOnTopicCalls()), 2)
}

func TestMirrorFailureIsReportedOnlyAsFailed(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := &registry.RegistryMock{
		StaleFunc: func(ctx context.Context, cutoff time.Time) []string {
			return []string{fresh, stale}
		},
		MarkOfflineIfStaleFunc: func(ctx context.Context, deviceID string, cutoff time.Time) (bool, error) {
			if deviceID == stale {
				return true, errors.New("could not mirror mark_offline")
			}
			return true, nil
		},
		GetFunc: func(ctx context.Context, deviceID string) (types.Device, error) {
			return types.Device{DeviceID: deviceID}, nil
		},
	}

	msgCtx := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
	}

	w := New(r, fanout.New(), msgCtx, DefaultConfig())

	result, err := w.Sweep(ctx, 10*time.Minute)
	is.NoErr(err)
	is.Equal(result.Offline, []string{fresh})
	is.Equal(result.Failed, []string{stale})
	is.Equal(len(msgCtx.PublishOnTopicCalls()), 2)
}

func TestSweepWithCallerSuppliedThreshold(t *testing.T) {
	is, ctx, f := testSetup(t, fresh, stale)

	f.touchAt(ctx, stale, start)
	f.touchAt(ctx, fresh, start.Add(3*time.Minute))
	f.clock = start.Add(5 * time.Minute)

	result, err := f.w.Sweep(ctx, 4*time.Minute)
	is.NoErr(err)
	is.Equal(result.Offline, []string{stale})

	_, err = f.w.Sweep(ctx, 0)
	is.True(errors.Is(err, ErrInvalidThreshold))
}

func TestStartAndStop(t *testing.T) {
	is, ctx, f := testSetup(t)

	is.NoErr(f.w.Start(ctx))
	f.w.Stop(ctx)

	w := New(f.reg, f.hub, f.msgCtx, Config{Schedule: "not a schedule"})
	is.True(w.Start(ctx) != nil)
}

type fixture struct {
	mu    sync.Mutex
	clock time.Time

	reg       registry.Registry
	hub       fanout.Hub
	msgCtx    *messaging.MsgContextMock
	published []string
	w         Watchdog
}

func (f *fixture) topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published
}

func (f *fixture) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clock
}

func (f *fixture) touchAt(ctx context.Context, deviceID string, at time.Time) {
	f.mu.Lock()
	f.clock = at
	f.mu.Unlock()

	f.reg.Touch(ctx, deviceID)
}

func testSetup(t *testing.T, deviceIDs ...string) (*is.I, context.Context, *fixture) {
	is := is.New(t)
	ctx := context.Background()

	devices := map[string]types.Device{}
	for _, id := range deviceIDs {
		devices[id] = types.Device{DeviceID: id, Active: true}
	}

	s := &registry.DeviceStorageMock{
		GetDeviceFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Device, error) {
			c := &storage.Condition{}
			for _, f := range conditions {
				f(c)
			}
			if d, ok := devices[c.DeviceID]; ok {
				return d, nil
			}
			return types.Device{}, storage.ErrNoRows
		},
		SetDeviceStatusFunc: func(ctx context.Context, deviceID string, status types.DeviceStatus) error {
			return nil
		},
	}

	f := &fixture{clock: start}

	f.reg = registry.New(s, registry.WithClock(f.now))
	f.hub = fanout.New()
	f.msgCtx = &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.published = append(f.published, message.TopicName())
			return nil
		},
	}
	f.w = New(f.reg, f.hub, f.msgCtx, DefaultConfig(), WithClock(f.now))

	return is, ctx, f
}
