package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/jackc/pgx/v5"
)

func deviceArgs(device types.Device) pgx.NamedArgs {
	config, _ := json.Marshal(device.Config)
	status, _ := json.Marshal(device.Status)
	statistics, _ := json.Marshal(device.Statistics)

	return pgx.NamedArgs{
		"device_id":  device.DeviceID,
		"owner_id":   device.OwnerID,
		"name":       device.Name,
		"location":   device.Location,
		"active":     device.Active,
		"config":     string(config),
		"status":     string(status),
		"statistics": string(statistics),
	}
}

// CreateOrUpdateDevice upserts identity and configuration. Live status and statistics of an
// existing device are left as they are.
func (s *Storage) CreateOrUpdateDevice(ctx context.Context, device types.Device) error {
	if device.DeviceID == "" {
		return ErrNoID
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO devices (device_id, owner_id, name, location, active, config, status, statistics)
		VALUES (@device_id, @owner_id, @name, @location, @active, @config, @status, @statistics)
		ON CONFLICT (device_id) DO UPDATE
		SET owner_id = EXCLUDED.owner_id, name = EXCLUDED.name, location = EXCLUDED.location,
			active = EXCLUDED.active, config = EXCLUDED.config, modified_on = CURRENT_TIMESTAMP,
			deleted = FALSE, deleted_on = NULL
	`, deviceArgs(device))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreFailed, err.Error())
	}

	return nil
}

func (s *Storage) GetDevice(ctx context.Context, conditions ...ConditionFunc) (types.Device, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT device_id, owner_id, name, location, active, config, status, statistics, created_on
		FROM devices
		%s
	`, condition.Where())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Device{}, err
	}

	devices, err := collectDevices(rows)
	if err != nil {
		return types.Device{}, err
	}

	if len(devices) == 0 {
		return types.Device{}, ErrNoRows
	}
	if len(devices) > 1 {
		return types.Device{}, ErrTooManyRows
	}

	return devices[0], nil
}

func (s *Storage) QueryDevices(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Device], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	query := fmt.Sprintf(`
		SELECT device_id, owner_id, name, location, active, config, status, statistics, created_on
		FROM devices
		%s
		ORDER BY device_id ASC
	`, condition.Where())

	rows, err := s.pool.Query(ctx, query, condition.NamedArgs())
	if err != nil {
		return types.Collection[types.Device]{}, err
	}

	devices, err := collectDevices(rows)
	if err != nil {
		return types.Collection[types.Device]{}, err
	}

	return types.Collection[types.Device]{
		Data:       devices,
		Count:      uint64(len(devices)),
		TotalCount: uint64(len(devices)),
	}, nil
}

func collectDevices(rows pgx.Rows) ([]types.Device, error) {
	var deviceID, ownerID string
	var name, location *string
	var active bool
	var config, status, statistics json.RawMessage
	var createdOn time.Time

	devices := make([]types.Device, 0)

	_, err := pgx.ForEachRow(rows, []any{&deviceID, &ownerID, &name, &location, &active, &config, &status, &statistics, &createdOn}, func() error {
		var errs []error

		device := types.Device{
			DeviceID:  deviceID,
			OwnerID:   ownerID,
			Active:    active,
			CreatedAt: createdOn.UTC(),
		}
		if name != nil {
			device.Name = *name
		}
		if location != nil {
			device.Location = *location
		}

		errs = append(errs, json.Unmarshal(config, &device.Config))
		errs = append(errs, json.Unmarshal(status, &device.Status))
		errs = append(errs, json.Unmarshal(statistics, &device.Statistics))

		devices = append(devices, device)

		return errors.Join(errs...)
	})
	if err != nil {
		return nil, err
	}

	return devices, nil
}

func (s *Storage) SetDeviceStatus(ctx context.Context, deviceID string, deviceStatus types.DeviceStatus) error {
	status, _ := json.Marshal(deviceStatus)

	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET status = @status, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id AND active = TRUE AND deleted = FALSE
	`, pgx.NamedArgs{
		"device_id": deviceID,
		"status":    string(status),
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

func (s *Storage) SetDeviceStatistics(ctx context.Context, deviceID string, stats types.Statistics) error {
	statistics, _ := json.Marshal(stats)

	tag, err := s.pool.Exec(ctx, `
		UPDATE devices
		SET statistics = @statistics, modified_on = CURRENT_TIMESTAMP
		WHERE device_id = @device_id AND active = TRUE AND deleted = FALSE
	`, pgx.NamedArgs{
		"device_id":  deviceID,
		"statistics": string(statistics),
	})
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}
