package telemetrydb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrReadingNotFound  = errors.New("reading not found")
	ErrAlreadyProcessed = errors.New("reading already processed")
)

const readingsCollection string = "readings"

type Config struct {
	URI       string
	Database  string
	Retention time.Duration
}

func NewConfig(uri, database string, retention time.Duration) Config {
	return Config{
		URI:       uri,
		Database:  database,
		Retention: retention,
	}
}

type Store struct {
	client    *mongo.Client
	readings  *mongo.Collection
	retention time.Duration
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	log := logging.GetFromContext(ctx)

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(20).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Minute).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("connected to telemetry store", slog.String("database", cfg.Database))

	return &Store{
		client:    client,
		readings:  client.Database(cfg.Database).Collection(readingsCollection),
		retention: cfg.Retention,
	}, nil
}

// Initialize creates the indexes used by range queries and aggregations together with a
// TTL index that expires readings after the retention horizon.
func (s *Store) Initialize(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "device_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "class", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	if s.retention > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("readings_ttl").SetExpireAfterSeconds(int32(s.retention.Seconds())),
		})
	}

	_, err := s.readings.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("could not create indexes: %w", err)
	}

	return nil
}

func (s *Store) AddReading(ctx context.Context, r types.Reading) error {
	_, err := s.readings.InsertOne(ctx, newReadingDocument(r))
	if err != nil {
		return fmt.Errorf("failed to store reading %s: %w", r.ID, err)
	}

	return nil
}

// Readings returns the readings of a device within [from, to), newest first.
func (s *Store) Readings(ctx context.Context, deviceID string, from, to time.Time, limit int) ([]types.Reading, error) {
	filter := bson.D{
		{Key: "device_id", Value: deviceID},
		{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.readings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings for device %s: %w", deviceID, err)
	}
	defer cursor.Close(ctx)

	docs := []readingDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	readings := make([]types.Reading, 0, len(docs))
	for _, d := range docs {
		readings = append(readings, d.reading())
	}

	return readings, nil
}

// SetAnalysis attaches an analysis to a reading. A reading is analysed at most once.
func (s *Store) SetAnalysis(ctx context.Context, readingID string, analysis types.Analysis) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "analysis", Value: newAnalysisDocument(analysis)},
		{Key: "processed", Value: true},
	}}}

	result, err := s.readings.UpdateOne(ctx, bson.D{{Key: "_id", Value: readingID}, {Key: "processed", Value: false}}, update)
	if err != nil {
		return fmt.Errorf("failed to update reading %s: %w", readingID, err)
	}

	if result.MatchedCount > 0 {
		return nil
	}

	n, err := s.readings.CountDocuments(ctx, bson.D{{Key: "_id", Value: readingID}})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReadingNotFound
	}

	return ErrAlreadyProcessed
}

// Aggregate groups the matching readings into time buckets inside the database.
func (s *Store) Aggregate(ctx context.Context, q types.AggregationQuery) ([]types.Bucket, error) {
	cursor, err := s.readings.Aggregate(ctx, aggregationPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []bucketDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("could not decode aggregation result: %w", err)
	}

	buckets := make([]types.Bucket, 0, len(docs))
	for _, d := range docs {
		buckets = append(buckets, types.Bucket{
			Start:        d.Start.UTC(),
			Count:        d.Count,
			Avg:          d.Avg,
			Min:          d.Min,
			Max:          d.Max,
			AvgHumidity:  d.AvgHumidity,
			MotionEvents: d.MotionEvents,
			Alerts:       d.Alerts,
		})
	}

	return buckets, nil
}

func aggregationPipeline(q types.AggregationQuery) mongo.Pipeline {
	trunc := bson.D{
		{Key: "date", Value: "$timestamp"},
		{Key: "unit", Value: string(q.Granularity)},
		{Key: "timezone", Value: "UTC"},
	}
	if q.Granularity == types.Week {
		trunc = append(trunc, bson.E{Key: "startOfWeek", Value: "monday"})
	}

	countIf := func(cond bson.D) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{cond, 1, 0}}}}}
	}

	match := bson.D{
		{Key: "device_id", Value: bson.D{{Key: "$in", Value: q.DeviceIDs}}},
		{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: q.Start}, {Key: "$lt", Value: q.End}}},
	}
	if q.Class != "" {
		match = append(match, bson.E{Key: "class", Value: string(q.Class)})
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateTrunc", Value: trunc}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$temperature"}}},
			{Key: "min", Value: bson.D{{Key: "$min", Value: "$temperature"}}},
			{Key: "max", Value: bson.D{{Key: "$max", Value: "$temperature"}}},
			{Key: "avg_humidity", Value: bson.D{{Key: "$avg", Value: "$humidity"}}},
			{Key: "motion_events", Value: countIf(bson.D{{Key: "$eq", Value: bson.A{"$motion", true}}})},
			{Key: "alerts", Value: countIf(bson.D{{Key: "$in", Value: bson.A{"$alert_level", bson.A{string(types.AlertWarning), string(types.AlertCritical)}}}})},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
