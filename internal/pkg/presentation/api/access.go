package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/diwise/iot-telemetry/internal/pkg/application/aggregation"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/internal/pkg/presentation/api/auth"
	"github.com/go-chi/chi/v5"
)

// ownedDevice hides devices of owners the caller has no access to. Unknown ids are passed on
// so the handlers can tell malformed ids from missing devices.
func ownedDevice(log *slog.Logger, reg registry.Registry, scopes ...auth.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := chi.URLParam(r, "id")

			device, err := reg.Get(r.Context(), deviceID)
			if err != nil && !errors.Is(err, registry.ErrDeviceNotFound) {
				log.Error("could not fetch device", slog.String("device_id", deviceID), "err", err.Error())
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			if err == nil && !auth.IsAllowed(r.Context(), device.OwnerID, scopes...) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allOwners(scopes ...auth.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.IsAllowed(r.Context(), auth.AllOwners, scopes...) {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func queryAllowed(ctx context.Context, reg registry.Registry, q aggregation.Query) bool {
	if q.OwnerID != "" && !auth.IsAllowed(ctx, q.OwnerID, auth.ReadTelemetry) {
		return false
	}

	for _, id := range q.DeviceIDs {
		device, err := reg.Get(ctx, id)
		if err != nil {
			continue
		}
		if !auth.IsAllowed(ctx, device.OwnerID, auth.ReadTelemetry) {
			return false
		}
	}

	return true
}
