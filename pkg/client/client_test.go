package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

const deviceID string = "20240101-owner1-ab12c"

func TestGetDevice(t *testing.T) {
	is := is.New(t)

	s := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/"+deviceID),
			expects.RequestMethod(http.MethodGet),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(deviceResponse)),
		),
	)
	defer s.Close()

	d, err := newClient(t, s.URL()).GetDevice(context.Background(), deviceID)
	is.NoErr(err)

	is.Equal(d.DeviceID, deviceID)
	is.Equal(d.OwnerID, "owner1")
	is.Equal(d.HealthScore, 0.8)
}

func TestGetUnknownDevice(t *testing.T) {
	is := is.New(t)

	s := test.NewMockServiceThat(
		test.Expects(is, expects.RequestPath("/api/v0/devices/"+deviceID)),
		test.Returns(response.Code(http.StatusNotFound)),
	)
	defer s.Close()

	_, err := newClient(t, s.URL()).GetDevice(context.Background(), deviceID)
	is.True(errors.Is(err, ErrNotFound))
}

func TestSendCommand(t *testing.T) {
	is := is.New(t)

	s := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/"+deviceID+"/commands"),
			expects.RequestMethod(http.MethodPost),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestBodyContaining(`"command":"reboot"`, `"delay":5`),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusAccepted),
			response.Body([]byte(`{"data":{"command":"reboot","params":{"delay":5},"timestamp":"2024-05-01T10:00:00Z"}}`)),
		),
	)
	defer s.Close()

	cmd, err := newClient(t, s.URL()).SendCommand(context.Background(), deviceID, "reboot", map[string]any{"delay": 5})
	is.NoErr(err)
	is.Equal(cmd.Command, "reboot")
	is.Equal(cmd.Timestamp, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
}

func TestSendCommandWhenBrokerIsUnavailable(t *testing.T) {
	is := is.New(t)

	s := test.NewMockServiceThat(
		test.Expects(is, expects.RequestMethod(http.MethodPost)),
		test.Returns(response.Code(http.StatusServiceUnavailable)),
	)
	defer s.Close()

	_, err := newClient(t, s.URL()).SendCommand(context.Background(), deviceID, "reboot", nil)
	is.True(errors.Is(err, ErrUnavailable))
}

func TestStatistics(t *testing.T) {
	is := is.New(t)

	var query map[string][]string

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/api/v0/statistics")
		query = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta":{"totalRecords":1,"count":1},"data":[{"start":"2024-05-01T00:00:00Z","count":3,"avg":21.5,"min":20,"max":23}]}`))
	}))
	defer s.Close()

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	buckets, err := newClient(t, s.URL).Statistics(context.Background(), StatisticsQuery{
		DeviceIDs:   []string{deviceID, "20240101-owner1-zz99z"},
		Class:       "temperature",
		Granularity: "day",
		Start:       start,
		End:         start.Add(48 * time.Hour),
	})
	is.NoErr(err)

	is.Equal(query["deviceID"], []string{deviceID + ",20240101-owner1-zz99z"})
	is.Equal(query["granularity"], []string{"day"})
	is.Equal(query["start"], []string{"2024-05-01T00:00:00Z"})
	is.Equal(query["end"], []string{"2024-05-03T00:00:00Z"})

	is.Equal(len(buckets), 1)
	is.Equal(buckets[0].Count, int64(3))
	is.Equal(*buckets[0].Avg, 21.5)
}

func TestTriggerStaleCheck(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.Method, http.MethodPost)
		is.Equal(r.URL.Query().Get("threshold"), "15m0s")

		w.Write([]byte(`{"data":{"offline":["` + deviceID + `"],"failed":[]}}`))
	}))
	defer s.Close()

	result, err := newClient(t, s.URL).TriggerStaleCheck(context.Background(), 15*time.Minute)
	is.NoErr(err)
	is.Equal(result.Offline, []string{deviceID})
	is.Equal(len(result.Failed), 0)
}

func TestTriggerStaleCheckWithInvalidThreshold(t *testing.T) {
	is := is.New(t)

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer s.Close()

	_, err := newClient(t, s.URL).TriggerStaleCheck(context.Background(), -time.Minute)
	is.True(errors.Is(err, ErrBadRequest))
}

func TestRequestsCarryClientCredentialsToken(t *testing.T) {
	is := is.New(t)

	s := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/"+deviceID),
			expects.RequestHeaderContains("Authorization", "Bearer testtoken"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(deviceResponse)),
		),
	)
	defer s.Close()

	mockOAuth := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/token"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(tokenResponse)),
		),
	)
	defer mockOAuth.Close()

	ctx := context.Background()

	c, err := New(ctx, s.URL(), mockOAuth.URL()+"/token", "client", "secret")
	is.NoErr(err)
	defer c.Close(ctx)

	d, err := c.GetDevice(ctx, deviceID)
	is.NoErr(err)
	is.Equal(d.DeviceID, deviceID)
}

func TestRejectedTokenIsReported(t *testing.T) {
	is := is.New(t)

	s := test.NewMockServiceThat(
		test.Expects(is, expects.RequestPath("/api/v0/devices/"+deviceID)),
		test.Returns(response.Code(http.StatusUnauthorized)),
	)
	defer s.Close()

	_, err := newClient(t, s.URL()).GetDevice(context.Background(), deviceID)
	is.True(errors.Is(err, ErrForbidden))
}

func newClient(t *testing.T, url string) TelemetryClient {
	c, err := New(context.Background(), url, "", "", "")
	if err != nil {
		t.Fatalf("could not create client: %s", err.Error())
	}
	t.Cleanup(func() { c.Close(context.Background()) })
	return c
}

const tokenResponse string = `{"access_token":"testtoken","expires_in":300,"refresh_expires_in":0,"token_type":"Bearer","not-before-policy":0,"scope":"email profile"}`

const deviceResponse string = `{"data":{"deviceID":"20240101-owner1-ab12c","ownerID":"owner1","name":"freezer","active":true,"status":{"online":true,"batteryLevel":100,"wifiSignal":-30},"statistics":{"alertCount":4},"healthScore":0.8}}`
