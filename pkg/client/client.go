package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBadRequest  = errors.New("bad request")
	ErrUnavailable = errors.New("service unavailable")
	ErrForbidden   = errors.New("access denied")
)

//go:generate moq -rm -out client_mock.go . TelemetryClient
type TelemetryClient interface {
	GetDevice(ctx context.Context, deviceID string) (Device, error)
	Statistics(ctx context.Context, q StatisticsQuery) ([]types.Bucket, error)
	SendCommand(ctx context.Context, deviceID, command string, params map[string]any) (types.Command, error)
	TriggerStaleCheck(ctx context.Context, threshold time.Duration) (StaleCheckResult, error)
	Close(ctx context.Context)
}

type Device struct {
	types.Device
	HealthScore float64 `json:"healthScore"`
}

type StatisticsQuery struct {
	DeviceIDs   []string
	OwnerID     string
	Class       types.SensorClass
	Granularity types.Granularity
	Start       time.Time
	End         time.Time
}

func (q StatisticsQuery) values() url.Values {
	v := url.Values{}

	if len(q.DeviceIDs) > 0 {
		v.Set("deviceID", strings.Join(q.DeviceIDs, ","))
	}
	if q.OwnerID != "" {
		v.Set("ownerID", q.OwnerID)
	}
	v.Set("class", string(q.Class))
	v.Set("granularity", string(q.Granularity))
	v.Set("start", q.Start.UTC().Format(time.RFC3339))
	v.Set("end", q.End.UTC().Format(time.RFC3339))

	return v
}

type StaleCheckResult struct {
	Offline []string `json:"offline"`
	Failed  []string `json:"failed"`
}

type telemetryClient struct {
	url        string
	httpClient *http.Client
}

var tracer = otel.Tracer("iot-telemetry-client")

// New creates a client for the telemetry API. When oauthTokenURL is set, requests carry a
// bearer token obtained with the client credentials flow, and the credentials are verified
// before New returns.
func New(ctx context.Context, telemetryURL, oauthTokenURL, oauthClientID, oauthClientSecret string) (TelemetryClient, error) {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	c := &telemetryClient{
		url:        strings.TrimSuffix(telemetryURL, "/"),
		httpClient: httpClient,
	}

	if oauthTokenURL == "" {
		return c, nil
	}

	oauthConfig := &clientcredentials.Config{
		ClientID:     oauthClientID,
		ClientSecret: oauthClientSecret,
		TokenURL:     oauthTokenURL,
	}

	httpCtx := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, httpClient)

	token, err := oauthConfig.Token(httpCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client credentials from %s: %w", oauthTokenURL, err)
	}

	if !token.Valid() {
		return nil, fmt.Errorf("an invalid token was returned from %s", oauthTokenURL)
	}

	c.httpClient = oauthConfig.Client(httpCtx)
	c.httpClient.Timeout = httpClient.Timeout

	return c, nil
}

func (c *telemetryClient) Close(ctx context.Context) {
	c.httpClient.CloseIdleConnections()
}

type apiResponse[T any] struct {
	Data T `json:"data"`
}

func (c *telemetryClient) GetDevice(ctx context.Context, deviceID string) (Device, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logging.GetFromContext(ctx).Debug("looking up device", slog.String("device_id", deviceID))

	result := apiResponse[Device]{}
	err = c.do(ctx, http.MethodGet, "/api/v0/devices/"+url.PathEscape(deviceID), nil, http.StatusOK, &result)
	if err != nil {
		return Device{}, err
	}

	return result.Data, nil
}

func (c *telemetryClient) Statistics(ctx context.Context, q StatisticsQuery) ([]types.Bucket, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-statistics")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := apiResponse[[]types.Bucket]{}
	err = c.do(ctx, http.MethodGet, "/api/v0/statistics?"+q.values().Encode(), nil, http.StatusOK, &result)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *telemetryClient) SendCommand(ctx context.Context, deviceID, command string, params map[string]any) (types.Command, error) {
	var err error
	ctx, span := tracer.Start(ctx, "send-command")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := json.Marshal(struct {
		Command string         `json:"command"`
		Params  map[string]any `json:"params,omitempty"`
	}{command, params})
	if err != nil {
		return types.Command{}, err
	}

	result := apiResponse[types.Command]{}
	err = c.do(ctx, http.MethodPost, "/api/v0/devices/"+url.PathEscape(deviceID)+"/commands", b, http.StatusAccepted, &result)
	if err != nil {
		return types.Command{}, err
	}

	return result.Data, nil
}

func (c *telemetryClient) TriggerStaleCheck(ctx context.Context, threshold time.Duration) (StaleCheckResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "trigger-stale-check")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := apiResponse[StaleCheckResult]{}
	err = c.do(ctx, http.MethodPost, "/api/v0/maintenance/stale-check?threshold="+url.QueryEscape(threshold.String()), nil, http.StatusOK, &result)
	if err != nil {
		return StaleCheckResult{}, err
	}

	return result.Data, nil
}

func (c *telemetryClient) do(ctx context.Context, method, path string, body []byte, expected int, result any) error {
	log := logging.GetFromContext(ctx)

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, r)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		log.Debug("unexpected response", slog.String("path", path), slog.Int("status_code", resp.StatusCode))

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusBadRequest:
			return ErrBadRequest
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrForbidden
		case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return ErrUnavailable
		default:
			return fmt.Errorf("request failed with status code %d", resp.StatusCode)
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}
