package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/aggregation"
	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/internal/pkg/application/watchdog"
	"github.com/diwise/iot-telemetry/internal/pkg/application/webevents"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/telemetrydb"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/transport"
	"github.com/diwise/iot-telemetry/internal/pkg/presentation/api/auth"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry/api")

const (
	defaultReadingsLimit int = 100
	maxReadingsLimit     int = 1000
)

//go:generate moq -rm -out readingstore_mock.go . ReadingStore
type ReadingStore interface {
	Readings(ctx context.Context, deviceID string, from, to time.Time, limit int) ([]types.Reading, error)
	SetAnalysis(ctx context.Context, readingID string, analysis types.Analysis) error
}

type Services struct {
	Auth        auth.Enticator
	Registry    registry.Registry
	Readings    ReadingStore
	Transport   transport.Transport
	Hub         fanout.Hub
	WebEvents   webevents.WebEvents
	Watchdog    watchdog.Watchdog
	Aggregation aggregation.Service
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, svc Services) *chi.Mux {
	log := logging.GetFromContext(ctx)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v0", func(r chi.Router) {
		r.Route("/devices/{id}", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(svc.Auth.RequireAccess(auth.ReadTelemetry))
				r.Use(ownedDevice(log, svc.Registry, auth.ReadTelemetry))

				r.Get("/", getDeviceHandler(log, svc.Registry))
				r.Get("/readings", getReadingsHandler(log, svc.Registry, svc.Readings))
				r.Get("/ws", websocketHandler(log, svc.Registry, svc.Hub))
				r.Get("/events", svc.WebEvents.Server().ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(svc.Auth.RequireAccess(auth.SendCommands))
				r.Use(ownedDevice(log, svc.Registry, auth.SendCommands))

				r.Post("/commands", sendCommandHandler(log, svc.Registry, svc.Transport))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(svc.Auth.RequireAccess(auth.ReadTelemetry))

			r.With(allOwners(auth.ReadTelemetry)).Get("/events", svc.WebEvents.Server().ServeHTTP)
			r.Get("/statistics", statisticsHandler(log, svc.Registry, svc.Aggregation))
		})

		r.Group(func(r chi.Router) {
			r.Use(svc.Auth.RequireAccess(auth.Maintenance))
			r.Use(allOwners(auth.Maintenance))

			r.Post("/maintenance/stale-check", staleCheckHandler(log, svc.Watchdog))
			r.Put("/readings/{id}/analysis", setAnalysisHandler(log, svc.Readings))
		})
	})

	return router
}

func getDeviceHandler(log *slog.Logger, reg registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-device")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "id")
		requestLogger = requestLogger.With(slog.String("device_id", deviceID))

		device, err := reg.Get(ctx, deviceID)
		if errors.Is(err, registry.ErrDeviceNotFound) {
			requestLogger.Debug("device not found")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			requestLogger.Error("could not fetch device", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ApiResponse{Data: newDeviceDetails(device)})
	}
}

func getReadingsHandler(log *slog.Logger, reg registry.Registry, store ReadingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "id")
		requestLogger = requestLogger.With(slog.String("device_id", deviceID))

		if _, err = reg.Get(ctx, deviceID); err != nil {
			if errors.Is(err, registry.ErrDeviceNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			requestLogger.Error("could not fetch device", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()

		to := time.Now().UTC()
		from := to.Add(-24 * time.Hour)

		if s := q.Get("from"); s != "" {
			if from, err = time.Parse(time.RFC3339, s); err != nil {
				requestLogger.Debug("invalid from parameter", "err", err.Error())
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}
		if s := q.Get("to"); s != "" {
			if to, err = time.Parse(time.RFC3339, s); err != nil {
				requestLogger.Debug("invalid to parameter", "err", err.Error())
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		limit := defaultReadingsLimit
		if s := q.Get("limit"); s != "" {
			limit, err = strconv.Atoi(s)
			if err != nil || limit <= 0 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			limit = min(limit, maxReadingsLimit)
		}

		readings, err := store.Readings(ctx, deviceID, from, to, limit)
		if err != nil {
			requestLogger.Error("could not fetch readings", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if r.Header.Get("Accept") == "text/csv" {
			w.Header().Add("Content-Type", "text/csv")
			w.WriteHeader(http.StatusOK)
			if err = writeCsvWithReadings(w, readings); err != nil {
				requestLogger.Error("could not write csv", "err", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, ApiResponse{
			Meta: &meta{TotalRecords: uint64(len(readings)), Count: uint64(len(readings))},
			Data: readings,
		})
	}
}

func sendCommandHandler(log *slog.Logger, reg registry.Registry, t transport.Transport) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "send-command")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "id")
		requestLogger = requestLogger.With(slog.String("device_id", deviceID))

		if !types.ValidDeviceID(deviceID) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		b, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var req commandRequest
		if err = json.Unmarshal(b, &req); err != nil || req.Command == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if _, err = reg.Get(ctx, deviceID); err != nil {
			if errors.Is(err, registry.ErrDeviceNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			requestLogger.Error("could not fetch device", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		cmd := types.Command{
			Command:   req.Command,
			Params:    req.Params,
			Timestamp: time.Now().UTC(),
		}

		err = t.PublishCommand(ctx, deviceID, cmd)
		switch {
		case err == nil:
		case errors.Is(err, transport.ErrInvalidDeviceID):
			w.WriteHeader(http.StatusBadRequest)
			return
		case errors.Is(err, transport.ErrUnavailable):
			requestLogger.Warn("could not send command", "err", err.Error())
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		case errors.Is(err, transport.ErrPublishTimeout):
			requestLogger.Warn("could not send command", "err", err.Error())
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		default:
			requestLogger.Error("could not send command", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		requestLogger.Info("command sent", slog.String("command", cmd.Command))

		writeJSON(w, http.StatusAccepted, ApiResponse{Data: cmd})
	}
}

func statisticsHandler(log *slog.Logger, reg registry.Registry, svc aggregation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-statistics")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		q, err := parseAggregationQuery(r)
		if err != nil {
			requestLogger.Debug("invalid statistics query", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if !queryAllowed(ctx, reg, q) {
			requestLogger.Info("statistics requested for devices of another owner")
			w.WriteHeader(http.StatusForbidden)
			return
		}

		buckets, err := svc.Aggregate(ctx, q)
		if errors.Is(err, aggregation.ErrInvalidQuery) {
			requestLogger.Debug("invalid statistics query", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err != nil {
			requestLogger.Error("could not aggregate readings", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ApiResponse{
			Meta: &meta{TotalRecords: uint64(len(buckets)), Count: uint64(len(buckets))},
			Data: buckets,
		})
	}
}

func staleCheckHandler(log *slog.Logger, wd watchdog.Watchdog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "stale-check")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		threshold, err := time.ParseDuration(r.URL.Query().Get("threshold"))
		if err != nil || threshold <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		result, err := wd.Sweep(ctx, threshold)
		if errors.Is(err, watchdog.ErrInvalidThreshold) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err != nil {
			requestLogger.Error("stale check failed", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		requestLogger.Info("stale check done", slog.Int("offline", len(result.Offline)), slog.Int("failed", len(result.Failed)))

		writeJSON(w, http.StatusOK, ApiResponse{Data: result})
	}
}

func setAnalysisHandler(log *slog.Logger, store ReadingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-analysis")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		readingID := chi.URLParam(r, "id")
		requestLogger = requestLogger.With(slog.String("reading_id", readingID))

		b, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var analysis types.Analysis
		if err = json.Unmarshal(b, &analysis); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		err = store.SetAnalysis(ctx, readingID, analysis)
		if errors.Is(err, telemetrydb.ErrReadingNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if errors.Is(err, telemetrydb.ErrAlreadyProcessed) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		if err != nil {
			requestLogger.Error("could not store analysis", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
