package types

import (
	"testing"

	"github.com/matryer/is"
)

func TestValidDeviceID(t *testing.T) {
	is := is.New(t)

	valid := []string{
		"20240115-owner1-AB12C",
		"20231231-64f1c2aa9b-zzzzz",
		"20240229-u_1-00000",
	}
	for _, id := range valid {
		is.True(ValidDeviceID(id))
	}

	invalid := []string{
		"",
		"device-01",
		"2024011-owner1-AB12C",
		"20240115-owner1-AB12",
		"20240115-owner1-AB12CD",
		"20240115--AB12C",
		"20241301-owner1-AB12C",
		"20230229-owner1-AB12C",
		"20240115-own-er-AB12C",
		"20240115-owner1-AB 2C",
		"x20240115-owner1-AB12C",
	}
	for _, id := range invalid {
		is.True(!ValidDeviceID(id))
	}
}

func TestHealthScore(t *testing.T) {
	is := is.New(t)

	battery := 100.0
	signal := -30

	d := Device{
		Status: DeviceStatus{
			Online:       true,
			BatteryLevel: &battery,
			WifiSignal:   &signal,
		},
	}
	is.True(d.HealthScore() > 0.99)

	d.Status.Online = false
	is.True(d.HealthScore() > 0.49 && d.HealthScore() < 0.51)

	d.Statistics.AlertCount = 100
	is.Equal(d.HealthScore(), 0.0)

	is.Equal(Device{}.HealthScore(), 0.0)
}

func TestAlertLevelIsAlert(t *testing.T) {
	is := is.New(t)

	is.True(AlertWarning.IsAlert())
	is.True(AlertCritical.IsAlert())
	is.True(!AlertInfo.IsAlert())
	is.True(!AlertNormal.IsAlert())
}
