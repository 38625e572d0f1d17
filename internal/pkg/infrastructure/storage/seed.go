package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type deviceWriter interface {
	CreateOrUpdateDevice(ctx context.Context, device types.Device) error
}

// SeedDevices reads a semicolon separated file with the columns
// deviceID;ownerID;name;location;active;interval;warning;critical
// and upserts every valid row.
func SeedDevices(ctx context.Context, s deviceWriter, devices io.ReadCloser) error {
	log := logging.GetFromContext(ctx)
	defer devices.Close()

	r := csv.NewReader(devices)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}

	records, err := getRecordsFromRows(rows)
	if err != nil {
		return err
	}

	log.Info("loaded devices from file", slog.Int("rows", len(rows)), slog.Int("records", len(records)))

	for _, record := range records {
		err := s.CreateOrUpdateDevice(ctx, record.mapToDevice())
		if err != nil {
			return err
		}
	}

	return nil
}

type deviceRecord struct {
	deviceID string
	ownerID  string
	name     string
	location string
	active   bool
	interval int
	warning  *float64
	critical *float64
}

func (dr deviceRecord) mapToDevice() types.Device {
	device := types.Device{
		DeviceID: dr.deviceID,
		OwnerID:  dr.ownerID,
		Name:     dr.name,
		Location: dr.location,
		Active:   dr.active,
		Config: types.DeviceConfig{
			Temperature: types.SensorConfig{Interval: dr.interval},
			Motion:      types.SensorConfig{Interval: dr.interval},
			System:      types.SensorConfig{Interval: dr.interval},
		},
	}

	if dr.warning != nil && dr.critical != nil {
		device.Config.Temperature.Thresholds = &types.Thresholds{
			Warning:  *dr.warning,
			Critical: *dr.critical,
		}
	}

	return device
}

func newDeviceRecord(r []string) (deviceRecord, error) {
	if len(r) < 5 {
		return deviceRecord{}, fmt.Errorf("row contains %d columns, expected at least 5", len(r))
	}

	column := func(i int) string {
		if i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}

	strToFloat := func(s string) *float64 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}

	strToInt := func(str string, def int) int {
		if n, err := strconv.Atoi(str); err == nil && n > 0 {
			return n
		}
		return def
	}

	dr := deviceRecord{
		deviceID: column(0),
		ownerID:  column(1),
		name:     column(2),
		location: column(3),
		active:   column(4) == "true",
		interval: strToInt(column(5), 60),
		warning:  strToFloat(column(6)),
		critical: strToFloat(column(7)),
	}

	err := validateDeviceRecord(dr)
	if err != nil {
		return deviceRecord{}, err
	}

	return dr, nil
}

func validateDeviceRecord(r deviceRecord) error {
	if !types.ValidDeviceID(r.deviceID) {
		return fmt.Errorf("row contains invalid device id %q", r.deviceID)
	}

	if r.ownerID == "" || !strings.Contains(r.deviceID, "-"+r.ownerID+"-") {
		return fmt.Errorf("row with %s contains owner %q not matching the device id", r.deviceID, r.ownerID)
	}

	if r.warning != nil && r.critical != nil && *r.warning > *r.critical {
		return fmt.Errorf("row with %s has a warning threshold above the critical threshold", r.deviceID)
	}

	return nil
}

func getRecordsFromRows(rows [][]string) ([]deviceRecord, error) {
	records := []deviceRecord{}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		r, err := newDeviceRecord(row)
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", i+1, err)
		}

		records = append(records, r)
	}

	return records, nil
}
