package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/aggregation"
	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/internal/pkg/application/watchdog"
	"github.com/diwise/iot-telemetry/internal/pkg/application/webevents"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/telemetrydb"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/transport"
	"github.com/diwise/iot-telemetry/internal/pkg/presentation/api/auth"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/gorilla/websocket"
	"github.com/matryer/is"
)

const deviceID = "20240115-owner1-AB12C"

func TestGetDevice(t *testing.T) {
	is, f := testSetup(t)

	resp, body := f.do(http.MethodGet, "/api/v0/devices/"+deviceID, "")
	is.Equal(resp.StatusCode, http.StatusOK)

	var result struct {
		Data struct {
			DeviceID    string  `json:"deviceID"`
			HealthScore float64 `json:"healthScore"`
		} `json:"data"`
	}
	is.NoErr(json.Unmarshal([]byte(body), &result))
	is.Equal(result.Data.DeviceID, deviceID)
	is.Equal(result.Data.HealthScore, 0.8)

	resp, _ = f.do(http.MethodGet, "/api/v0/devices/20240101-nobody-AAAAA", "")
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestGetReadings(t *testing.T) {
	is, f := testSetup(t)

	resp, body := f.do(http.MethodGet, "/api/v0/devices/"+deviceID+"/readings?from=2024-01-15T00:00:00Z&to=2024-01-16T00:00:00Z&limit=5000", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"totalRecords":1`))

	call := f.readings.ReadingsCalls()[0]
	is.Equal(call.DeviceID, deviceID)
	is.Equal(call.From, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	is.Equal(call.To, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC))
	is.Equal(call.Limit, 1000)

	resp, _ = f.do(http.MethodGet, "/api/v0/devices/"+deviceID+"/readings?from=yesterday", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = f.do(http.MethodGet, "/api/v0/devices/"+deviceID+"/readings?limit=-1", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestGetReadingsAsCsv(t *testing.T) {
	is, f := testSetup(t)

	req, _ := http.NewRequest(http.MethodGet, f.srv.URL+"/api/v0/devices/"+deviceID+"/readings", nil)
	req.Header.Set("Accept", "text/csv")

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(len(lines), 2)
	is.True(strings.HasPrefix(lines[0], "id;deviceID;class;timestamp;value"))
	is.Equal(lines[1], "r1;"+deviceID+";temperature;2024-01-15T10:00:00Z;21.5;;;;;normal;false")
}

func TestSendCommand(t *testing.T) {
	is, f := testSetup(t)

	resp, _ := f.do(http.MethodPost, "/api/v0/devices/"+deviceID+"/commands", `{"command": "reboot", "params": {"delay": 5}}`)
	is.Equal(resp.StatusCode, http.StatusAccepted)

	is.Equal(len(f.transport.PublishCommandCalls()), 1)
	call := f.transport.PublishCommandCalls()[0]
	is.Equal(call.DeviceID, deviceID)
	is.Equal(call.Cmd.Command, "reboot")
	is.Equal(call.Cmd.Params["delay"], 5.0)
	is.True(!call.Cmd.Timestamp.IsZero())

	resp, _ = f.do(http.MethodPost, "/api/v0/devices/"+deviceID+"/commands", `{"params": {}}`)
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = f.do(http.MethodPost, "/api/v0/devices/not-a-device/commands", `{"command": "reboot"}`)
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = f.do(http.MethodPost, "/api/v0/devices/20240101-nobody-AAAAA/commands", `{"command": "reboot"}`)
	is.Equal(resp.StatusCode, http.StatusNotFound)

	is.Equal(len(f.transport.PublishCommandCalls()), 1)
}

func TestSendCommandWhileTransportIsUnavailable(t *testing.T) {
	is, f := testSetup(t)

	f.transport.PublishCommandFunc = func(ctx context.Context, deviceID string, cmd types.Command) error {
		return transport.ErrUnavailable
	}

	resp, _ := f.do(http.MethodPost, "/api/v0/devices/"+deviceID+"/commands", `{"command": "reboot"}`)
	is.Equal(resp.StatusCode, http.StatusServiceUnavailable)

	f.transport.PublishCommandFunc = func(ctx context.Context, deviceID string, cmd types.Command) error {
		return transport.ErrPublishTimeout
	}

	resp, _ = f.do(http.MethodPost, "/api/v0/devices/"+deviceID+"/commands", `{"command": "reboot"}`)
	is.Equal(resp.StatusCode, http.StatusGatewayTimeout)
}

func TestStatistics(t *testing.T) {
	is, f := testSetup(t)

	resp, body := f.do(http.MethodGet, "/api/v0/statistics?deviceID="+deviceID+",20240116-owner1-QW3RT&deviceID=20240201-owner2-ZX9CV&class=temperature&granularity=day&start=2024-01-01T00:00:00Z&end=2024-01-08T00:00:00Z", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"count":3`))

	q := f.aggregation.AggregateCalls()[0].Q
	is.Equal(q.DeviceIDs, []string{deviceID, "20240116-owner1-QW3RT", "20240201-owner2-ZX9CV"})
	is.Equal(q.Class, types.Temperature)
	is.Equal(q.Granularity, types.Day)
	is.Equal(q.Start, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	is.Equal(q.End, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))

	resp, _ = f.do(http.MethodGet, "/api/v0/statistics?class=temperature&start=monday", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	f.aggregation.AggregateFunc = func(ctx context.Context, q aggregation.Query) ([]types.Bucket, error) {
		return nil, fmt.Errorf("%w: granularity", aggregation.ErrInvalidQuery)
	}
	resp, _ = f.do(http.MethodGet, "/api/v0/statistics?class=temperature&granularity=minute", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	f.aggregation.AggregateFunc = func(ctx context.Context, q aggregation.Query) ([]types.Bucket, error) {
		return nil, errors.New("server selection timeout")
	}
	resp, _ = f.do(http.MethodGet, "/api/v0/statistics?class=temperature&granularity=hour", "")
	is.Equal(resp.StatusCode, http.StatusInternalServerError)
}

func TestStaleCheck(t *testing.T) {
	is, f := testSetup(t)

	resp, body := f.do(http.MethodPost, "/api/v0/maintenance/stale-check?threshold=15m", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"offline":["`+deviceID+`"]`))

	is.Equal(len(f.watchdog.SweepCalls()), 1)
	is.Equal(f.watchdog.SweepCalls()[0].Threshold, 15*time.Minute)

	resp, _ = f.do(http.MethodPost, "/api/v0/maintenance/stale-check", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = f.do(http.MethodPost, "/api/v0/maintenance/stale-check?threshold=-5m", "")
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	is.Equal(len(f.watchdog.SweepCalls()), 1)
}

func TestSetAnalysis(t *testing.T) {
	is, f := testSetup(t)

	body := `{"anomaly": true, "confidence": 0.93, "trend": "rising", "recommendations": ["check ventilation"]}`

	resp, _ := f.do(http.MethodPut, "/api/v0/readings/r1/analysis", body)
	is.Equal(resp.StatusCode, http.StatusNoContent)

	call := f.readings.SetAnalysisCalls()[0]
	is.Equal(call.ReadingID, "r1")
	is.True(call.Analysis.Anomaly)
	is.Equal(call.Analysis.Trend, "rising")

	resp, _ = f.do(http.MethodPut, "/api/v0/readings/r1/analysis", body)
	is.Equal(resp.StatusCode, http.StatusConflict)

	resp, _ = f.do(http.MethodPut, "/api/v0/readings/unknown/analysis", body)
	is.Equal(resp.StatusCode, http.StatusNotFound)

	resp, _ = f.do(http.MethodPut, "/api/v0/readings/r1/analysis", `{"anomaly": "yes"}`)
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestWebsocketViewerReceivesEvents(t *testing.T) {
	is, f := testSetup(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/api/v0/devices/" + deviceID + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	is.NoErr(err)
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for f.hub.Subscribers(deviceID) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	is.Equal(f.hub.Subscribers(deviceID), 1)

	delivered := f.hub.Broadcast(context.Background(), deviceID, types.Event{
		Type:      types.EventReading,
		DeviceID:  deviceID,
		Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	})
	is.Equal(delivered, 1)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var e types.Event
	is.NoErr(conn.ReadJSON(&e))
	is.Equal(e.Type, types.EventReading)
	is.Equal(e.DeviceID, deviceID)

	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for f.hub.Subscribers(deviceID) != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	is.Equal(f.hub.Subscribers(deviceID), 0)
}

func TestWebsocketForUnknownDevice(t *testing.T) {
	is, f := testSetup(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/api/v0/devices/20240101-nobody-AAAAA/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	is.True(err != nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestAccessIsLimitedToOwnDevices(t *testing.T) {
	is, f := testSetup(t)

	f.owners = []string{"owner2"}

	resp, _ := f.do(http.MethodGet, "/api/v0/devices/"+deviceID, "")
	is.Equal(resp.StatusCode, http.StatusNotFound)

	resp, _ = f.do(http.MethodPost, "/api/v0/devices/"+deviceID+"/commands", `{"command": "reboot"}`)
	is.Equal(resp.StatusCode, http.StatusNotFound)
	is.Equal(len(f.transport.PublishCommandCalls()), 0)

	resp, _ = f.do(http.MethodGet, "/api/v0/statistics?ownerID=owner1&class=temperature&granularity=day", "")
	is.Equal(resp.StatusCode, http.StatusForbidden)

	resp, _ = f.do(http.MethodGet, "/api/v0/statistics?deviceID="+deviceID+"&class=temperature&granularity=day", "")
	is.Equal(resp.StatusCode, http.StatusForbidden)
	is.Equal(len(f.aggregation.AggregateCalls()), 0)

	resp, _ = f.do(http.MethodGet, "/api/v0/statistics?ownerID=owner2&class=temperature&granularity=day", "")
	is.Equal(resp.StatusCode, http.StatusOK)

	resp, _ = f.do(http.MethodPost, "/api/v0/maintenance/stale-check?threshold=15m", "")
	is.Equal(resp.StatusCode, http.StatusForbidden)
	is.Equal(len(f.watchdog.SweepCalls()), 0)

	resp, _ = f.do(http.MethodGet, "/api/v0/events", "")
	is.Equal(resp.StatusCode, http.StatusForbidden)
}

type fixture struct {
	srv    *httptest.Server
	state  transport.State
	owners []string

	registry    *registry.RegistryMock
	readings    *ReadingStoreMock
	transport   *transport.TransportMock
	hub         fanout.Hub
	watchdog    *watchdog.WatchdogMock
	aggregation *aggregation.ServiceMock
}

func (f *fixture) do(method, path, body string) (*http.Response, string) {
	req, _ := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func testSetup(t *testing.T) (*is.I, *fixture) {
	is := is.New(t)
	ctx := context.Background()

	battery := 100.0
	wifi := -30

	device := types.Device{
		DeviceID: deviceID,
		OwnerID:  "owner1",
		Active:   true,
		Status: types.DeviceStatus{
			Online:       true,
			BatteryLevel: &battery,
			WifiSignal:   &wifi,
		},
		Statistics: types.Statistics{AlertCount: 4},
	}

	f := &fixture{state: transport.StateConnected, owners: []string{auth.AllOwners}}

	enticator := &auth.EnticatorMock{
		RequireAccessFunc: func(scopes ...auth.Scope) func(http.Handler) http.Handler {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					ctx := auth.WithAllowedOwners(r.Context(), f.owners, scopes...)
					next.ServeHTTP(w, r.WithContext(ctx))
				})
			}
		},
	}

	f.registry = &registry.RegistryMock{
		GetFunc: func(ctx context.Context, id string) (types.Device, error) {
			if id == deviceID {
				return device, nil
			}
			return types.Device{}, registry.ErrDeviceNotFound
		},
	}

	processed := map[string]bool{}

	f.readings = &ReadingStoreMock{
		ReadingsFunc: func(ctx context.Context, id string, from, to time.Time, limit int) ([]types.Reading, error) {
			return []types.Reading{{
				ID:          "r1",
				DeviceID:    id,
				Class:       types.Temperature,
				Timestamp:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
				Temperature: &types.TemperatureData{Value: 21.5},
				AlertLevel:  types.AlertNormal,
			}}, nil
		},
		SetAnalysisFunc: func(ctx context.Context, readingID string, analysis types.Analysis) error {
			if readingID != "r1" {
				return fmt.Errorf("%w: %s", telemetrydb.ErrReadingNotFound, readingID)
			}
			if processed[readingID] {
				return telemetrydb.ErrAlreadyProcessed
			}
			processed[readingID] = true
			return nil
		},
	}

	f.transport = &transport.TransportMock{
		StateFunc: func() transport.State {
			return f.state
		},
		PublishCommandFunc: func(ctx context.Context, deviceID string, cmd types.Command) error {
			return nil
		},
	}

	f.watchdog = &watchdog.WatchdogMock{
		SweepFunc: func(ctx context.Context, threshold time.Duration) (watchdog.Result, error) {
			if threshold <= 0 {
				return watchdog.Result{}, watchdog.ErrInvalidThreshold
			}
			return watchdog.Result{Offline: []string{deviceID}, Failed: []string{}}, nil
		},
	}

	f.aggregation = &aggregation.ServiceMock{
		AggregateFunc: func(ctx context.Context, q aggregation.Query) ([]types.Bucket, error) {
			avg := 21.0
			return []types.Bucket{
				{Start: q.Start, Count: 4, Avg: &avg},
				{Start: q.Start.Add(24 * time.Hour), Count: 4, Avg: &avg},
				{Start: q.Start.Add(48 * time.Hour), Count: 4, Avg: &avg},
			}, nil
		},
	}

	we := webevents.New()
	f.hub = fanout.New(fanout.WithWebEvents(we))

	r := RegisterHandlers(ctx, router.New("iot-telemetry-test"), Services{
		Auth:        enticator,
		Registry:    f.registry,
		Readings:    f.readings,
		Transport:   f.transport,
		Hub:         f.hub,
		WebEvents:   we,
		Watchdog:    f.watchdog,
		Aggregation: f.aggregation,
	})

	f.srv = httptest.NewServer(r)

	t.Cleanup(func() {
		f.srv.Close()
		we.Shutdown()
	})

	return is, f
}
