package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/matryer/is"
)

func testSetup(t *testing.T) (context.Context, *Storage) {
	ctx := context.Background()

	config := Config{
		host:     "localhost",
		user:     "postgres",
		password: "password",
		port:     "5432",
		dbname:   "postgres",
		sslmode:  "disable",
	}

	s, err := New(ctx, config)
	if err != nil {
		t.SkipNow()
	}

	err = s.Initialize(ctx)
	if err != nil {
		t.SkipNow()
	}

	err = SeedDevices(ctx, s, io.NopCloser(strings.NewReader(devicesCsv)))
	if err != nil {
		t.SkipNow()
	}

	return ctx, s
}

func TestQueryDevices(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	c, err := s.QueryDevices(ctx)
	is.NoErr(err)
	is.True(len(c.Data) >= 3)
}

func TestGetDevice(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	d, err := s.GetDevice(ctx, WithDeviceID("20240115-owner1-AB12C"))
	is.NoErr(err)
	is.Equal(d.OwnerID, "owner1")
	is.Equal(d.Config.Temperature.Thresholds.Critical, 40.0)

	_, err = s.GetDevice(ctx, WithDeviceID("20240115-owner1-XXXXX"))
	is.Equal(err, ErrNoRows)
}

func TestQueryWithOwnerAndActive(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	c, err := s.QueryDevices(ctx, WithOwnerID("owner1"), WithActive(true))
	is.NoErr(err)
	is.Equal(len(c.Data), 1)
	is.Equal(c.Data[0].DeviceID, "20240115-owner1-AB12C")
}

func TestSetDeviceStatusAndStatistics(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	battery := 55.0
	lastSeen := time.Now().UTC().Truncate(time.Second)

	err := s.SetDeviceStatus(ctx, "20240115-owner1-AB12C", types.DeviceStatus{Online: true, LastSeen: lastSeen, BatteryLevel: &battery})
	is.NoErr(err)

	err = s.SetDeviceStatistics(ctx, "20240115-owner1-AB12C", types.Statistics{AlertCount: 3, DataPoints: 10})
	is.NoErr(err)

	d, err := s.GetDevice(ctx, WithDeviceID("20240115-owner1-AB12C"))
	is.NoErr(err)
	is.True(d.Status.Online)
	is.Equal(*d.Status.BatteryLevel, 55.0)
	is.True(d.Status.LastSeen.Equal(lastSeen))
	is.Equal(d.Statistics.AlertCount, int64(3))

	err = s.SetDeviceStatus(ctx, "20240115-nobody-XXXXX", types.DeviceStatus{})
	is.Equal(err, ErrNoRows)
}

func TestConditions(t *testing.T) {
	is := is.New(t)

	c := &Condition{}
	for _, f := range []ConditionFunc{WithOwnerID("owner1"), WithActive(true)} {
		f(c)
	}

	is.Equal(c.Where(), "WHERE owner_id = @owner_id AND active = @active AND deleted = FALSE")

	args := c.NamedArgs()
	is.Equal(args["owner_id"], "owner1")
	is.Equal(args["active"], true)

	c = &Condition{}
	is.Equal(c.Where(), "WHERE deleted = FALSE")
	is.Equal(len(c.NamedArgs()), 0)
}

func TestInactiveDeviceIsNotUpdated(t *testing.T) {
	is := is.New(t)
	ctx, s := testSetup(t)

	err := s.SetDeviceStatus(ctx, "20240116-owner1-QW3RT", types.DeviceStatus{Online: true})
	is.Equal(err, ErrNoRows)

	err = s.SetDeviceStatistics(ctx, "20240116-owner1-QW3RT", types.Statistics{DataPoints: 1})
	is.Equal(err, ErrNoRows)
}

type deviceWriterMock struct {
	devices []types.Device
}

func (m *deviceWriterMock) CreateOrUpdateDevice(ctx context.Context, device types.Device) error {
	m.devices = append(m.devices, device)
	return nil
}

func TestSeedDevices(t *testing.T) {
	is := is.New(t)

	m := &deviceWriterMock{}
	err := SeedDevices(context.Background(), m, io.NopCloser(strings.NewReader(devicesCsv)))
	is.NoErr(err)
	is.Equal(len(m.devices), 3)

	d := m.devices[0]
	is.Equal(d.DeviceID, "20240115-owner1-AB12C")
	is.True(d.Active)
	is.Equal(d.Config.Temperature.Interval, 30)
	is.Equal(d.Config.Temperature.Thresholds.Warning, 38.0)

	is.True(m.devices[2].Config.Temperature.Thresholds == nil)
	is.Equal(m.devices[2].Config.Temperature.Interval, 60)
}

func TestSeedDevicesRejectsInvalidRows(t *testing.T) {
	is := is.New(t)

	m := &deviceWriterMock{}
	err := SeedDevices(context.Background(), m, io.NopCloser(strings.NewReader(`deviceID;ownerID;name;location;active
device-01;owner1;name;hall;true`)))
	is.True(err != nil)
	is.Equal(len(m.devices), 0)

	err = SeedDevices(context.Background(), m, io.NopCloser(strings.NewReader(`deviceID;ownerID;name;location;active
20240115-owner1-AB12C;owner2;name;hall;true`)))
	is.True(err != nil)
}

const devicesCsv string = `deviceID;ownerID;name;location;active;interval;warning;critical
20240115-owner1-AB12C;owner1;Server room;Basement;true;30;38;40
20240116-owner1-QW3RT;owner1;Office;Floor 2;false;30;25;30
20240201-owner2-ZX9CV;owner2;Garage;Ground;true;;;
`
