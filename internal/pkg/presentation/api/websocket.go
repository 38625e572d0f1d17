package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	viewerBuffer int = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// websocketHandler joins the caller to the live channel of a device. Events the viewer
// cannot keep up with are dropped by the subscriber buffer.
func websocketHandler(log *slog.Logger, reg registry.Registry, hub fanout.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := chi.URLParam(r, "id")
		requestLogger := log.With(slog.String("device_id", deviceID))

		if _, err := reg.Get(r.Context(), deviceID); err != nil {
			if errors.Is(err, registry.ErrDeviceNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			requestLogger.Error("could not fetch device", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			requestLogger.Warn("websocket upgrade failed", "err", err.Error())
			return
		}

		sub := fanout.NewSubscriber(viewerBuffer)
		hub.Join(deviceID, sub)

		requestLogger.Debug("viewer joined", slog.Int("viewers", hub.Subscribers(deviceID)))

		v := &viewer{conn: conn, sub: sub, log: requestLogger}

		go v.writePump()
		go v.readPump(func() {
			hub.Leave(deviceID, sub)
			sub.Close()
		})
	}
}

type viewer struct {
	conn *websocket.Conn
	sub  *fanout.ChannelSubscriber
	log  *slog.Logger
}

// readPump only watches the connection for pongs and close frames. Viewers have nothing
// to say to the service.
func (v *viewer) readPump(leave func()) {
	defer func() {
		leave()
		v.conn.Close()
	}()

	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				v.log.Warn("websocket closed unexpectedly", "err", err.Error())
			}
			return
		}
	}
}

func (v *viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case e, ok := <-v.sub.C():
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := v.conn.WriteJSON(e); err != nil {
				v.log.Debug("could not write to viewer", "err", err.Error())
				return
			}

		case <-ticker.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
