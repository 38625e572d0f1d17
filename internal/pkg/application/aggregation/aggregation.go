package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry/aggregation")

var ErrInvalidQuery = errors.New("invalid aggregation query")

const DefaultWindow = 7 * 24 * time.Hour

type Query struct {
	DeviceIDs   []string          `validate:"dive,required"`
	OwnerID     string            `validate:"omitempty"`
	Class       types.SensorClass `validate:"required,oneof=temperature motion system"`
	Start       time.Time
	End         time.Time         `validate:"gtfield=Start"`
	Granularity types.Granularity `validate:"required,oneof=hour day week month"`
}

//go:generate moq -rm -out store_mock.go . Store
type Store interface {
	Aggregate(ctx context.Context, q types.AggregationQuery) ([]types.Bucket, error)
}

//go:generate moq -rm -out deviceresolver_mock.go . DeviceResolver
type DeviceResolver interface {
	Owned(ctx context.Context, ownerID string) ([]string, error)
}

//go:generate moq -rm -out aggregation_mock.go . Service
type Service interface {
	Aggregate(ctx context.Context, q Query) ([]types.Bucket, error)
}

type service struct {
	store    Store
	devices  DeviceResolver
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func New(store Store, devices DeviceResolver, opts ...Option) Service {
	s := &service{
		store:    store,
		devices:  devices,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Aggregate returns time buckets for the devices in q, sorted by start time. When no start
// and end are given the trailing seven days are used. A query that resolves to no devices
// yields an empty result.
func (s *service) Aggregate(ctx context.Context, q Query) (buckets []types.Bucket, err error) {
	ctx, span := tracer.Start(ctx, "aggregate")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	if q.End.IsZero() {
		q.End = s.now()
	}
	if q.Start.IsZero() {
		q.Start = q.End.Add(-DefaultWindow)
	}

	if err = s.validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}

	deviceIDs := lo.Uniq(lo.Compact(q.DeviceIDs))

	if q.OwnerID != "" {
		owned, err := s.devices.Owned(ctx, q.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("could not resolve devices for owner %s: %w", q.OwnerID, err)
		}

		if len(q.DeviceIDs) == 0 {
			deviceIDs = lo.Uniq(owned)
		} else {
			deviceIDs = lo.Intersect(owned, deviceIDs)
		}
	}

	if len(deviceIDs) == 0 {
		log.Debug("aggregation query matched no devices")
		return []types.Bucket{}, nil
	}

	buckets, err = s.store.Aggregate(ctx, types.AggregationQuery{
		DeviceIDs:   deviceIDs,
		Class:       q.Class,
		Start:       q.Start.UTC(),
		End:         q.End.UTC(),
		Granularity: q.Granularity,
	})
	if err != nil {
		log.Error("aggregation failed", slog.Int("devices", len(deviceIDs)), slog.String("err", err.Error()))
		return nil, fmt.Errorf("could not aggregate readings: %w", err)
	}

	if buckets == nil {
		buckets = []types.Bucket{}
	}

	return buckets, nil
}
