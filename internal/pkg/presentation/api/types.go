package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/aggregation"
	"github.com/diwise/iot-telemetry/pkg/types"
)

type meta struct {
	TotalRecords uint64  `json:"totalRecords"`
	Offset       *uint64 `json:"offset,omitempty"`
	Limit        *uint64 `json:"limit,omitempty"`
	Count        uint64  `json:"count"`
}

type ApiResponse struct {
	Meta *meta `json:"meta,omitempty"`
	Data any   `json:"data"`
}

type deviceDetails struct {
	types.Device
	HealthScore float64 `json:"healthScore"`
}

func newDeviceDetails(d types.Device) deviceDetails {
	return deviceDetails{
		Device:      d,
		HealthScore: d.HealthScore(),
	}
}

type commandRequest struct {
	Command string         `json:"command"`
	Params  map[string]any `json:"params"`
}

// parseAggregationQuery reads deviceID (repeatable or comma separated), ownerID, class,
// granularity and the RFC3339 start and end parameters. Range and enum checks are left
// to the aggregation service.
func parseAggregationQuery(r *http.Request) (aggregation.Query, error) {
	q := r.URL.Query()

	query := aggregation.Query{
		OwnerID:     q.Get("ownerID"),
		Class:       types.SensorClass(q.Get("class")),
		Granularity: types.Granularity(q.Get("granularity")),
	}

	for _, v := range q["deviceID"] {
		for id := range strings.SplitSeq(v, ",") {
			query.DeviceIDs = append(query.DeviceIDs, strings.TrimSpace(id))
		}
	}

	var err error

	if s := q.Get("start"); s != "" {
		if query.Start, err = time.Parse(time.RFC3339, s); err != nil {
			return query, fmt.Errorf("invalid start: %w", err)
		}
	}
	if s := q.Get("end"); s != "" {
		if query.End, err = time.Parse(time.RFC3339, s); err != nil {
			return query, fmt.Errorf("invalid end: %w", err)
		}
	}

	return query, nil
}

func writeCsvWithReadings(w io.Writer, readings []types.Reading) error {
	header := []string{"id", "deviceID", "class", "timestamp", "value", "humidity", "motion", "zone", "battery", "alertLevel", "processed"}
	rows := [][]string{header}

	optional := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}

	for _, r := range readings {
		var value, humidity, motion, zone, battery string

		if r.Temperature != nil {
			value = strconv.FormatFloat(r.Temperature.Value, 'f', -1, 64)
			humidity = optional(r.Temperature.Humidity)
		}
		if r.Motion != nil {
			motion = strconv.FormatBool(r.Motion.Detected)
			zone = r.Motion.Zone
		}
		if r.System != nil {
			battery = optional(r.System.BatteryLevel)
		}

		row := []string{
			r.ID,
			r.DeviceID,
			string(r.Class),
			r.Timestamp.Format(time.RFC3339),
			value,
			humidity,
			motion,
			zone,
			battery,
			string(r.AlertLevel),
			strconv.FormatBool(r.Processed),
		}
		rows = append(rows, row)
	}

	for _, row := range rows {
		_, err := fmt.Fprintln(w, strings.Join(row, ";"))
		if err != nil {
			return err
		}
	}

	return nil
}
