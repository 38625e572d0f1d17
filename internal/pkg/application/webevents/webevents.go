package webevents

import (
	"encoding/json"
	"net/http"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/go-chi/chi/v5"
)

// AllDevices is the channel that receives the events of every device.
const AllDevices string = "all"

type WebEvents interface {
	Server() *gosse.Server
	Shutdown()
	Publish(deviceID, event string, data any) error
}

type webEvents struct {
	s *gosse.Server
}

func New() WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{
			ChannelNameFunc: channelName,
		}),
	}
}

// channelName maps a request to the device in its route, or to the dashboard channel
// when the route carries no device id.
func channelName(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return AllDevices
}

func (we *webEvents) Server() *gosse.Server {
	return we.s
}

func (we *webEvents) Shutdown() {
	we.s.Shutdown()
}

// Publish sends data to the listeners of the device and to the dashboard channel.
func (we *webEvents) Publish(deviceID, event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if deviceID != "" {
		we.s.SendMessage(deviceID, gosse.NewMessage("", string(b), event))
	}
	we.s.SendMessage(AllDevices, gosse.NewMessage("", string(b), event))

	return nil
}
