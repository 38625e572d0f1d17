package storage

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

// Condition narrows device queries. Logically deleted devices never match.
type Condition struct {
	DeviceID string
	OwnerID  string

	Active *bool
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.DeviceID != "" {
		args["device_id"] = c.DeviceID
	}
	if c.OwnerID != "" {
		args["owner_id"] = c.OwnerID
	}
	if c.Active != nil {
		args["active"] = *c.Active
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.DeviceID != "" {
		where = append(where, "device_id = @device_id")
	}

	if c.OwnerID != "" {
		where = append(where, "owner_id = @owner_id")
	}

	if c.Active != nil {
		where = append(where, "active = @active")
	}

	where = append(where, "deleted = FALSE")

	return "WHERE " + strings.Join(where, " AND ")
}

func WithDeviceID(deviceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DeviceID = deviceID
		return c
	}
}

func WithOwnerID(ownerID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.OwnerID = ownerID
		return c
	}
}

func WithActive(active bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Active = &active
		return c
	}
}
