package fanout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diwise/iot-telemetry/internal/pkg/application/webevents"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// Subscriber receives the events of the device channels it has joined. Send must not block,
// it returns false when the event could not be delivered.
type Subscriber interface {
	Send(e types.Event) bool
}

//go:generate moq -rm -out hub_mock.go . Hub
type Hub interface {
	Join(deviceID string, s Subscriber)
	Leave(deviceID string, s Subscriber)
	Broadcast(ctx context.Context, deviceID string, e types.Event) int
	Subscribers(deviceID string) int
}

type channel struct {
	mu          sync.Mutex
	subscribers map[Subscriber]struct{}
}

type hub struct {
	mu       sync.RWMutex
	channels map[string]*channel

	webEvents webevents.WebEvents
}

type Option func(*hub)

// WithWebEvents mirrors every broadcast to the server sent events listeners.
func WithWebEvents(we webevents.WebEvents) Option {
	return func(h *hub) {
		h.webEvents = we
	}
}

func New(opts ...Option) Hub {
	h := &hub{
		channels: make(map[string]*channel),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *hub) channel(deviceID string, create bool) *channel {
	h.mu.RLock()
	c, ok := h.channels[deviceID]
	h.mu.RUnlock()

	if ok || !create {
		return c
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok = h.channels[deviceID]; ok {
		return c
	}

	c = &channel{subscribers: make(map[Subscriber]struct{})}
	h.channels[deviceID] = c

	return c
}

func (h *hub) Join(deviceID string, s Subscriber) {
	c := h.channel(deviceID, true)

	c.mu.Lock()
	c.subscribers[s] = struct{}{}
	c.mu.Unlock()
}

func (h *hub) Leave(deviceID string, s Subscriber) {
	c := h.channel(deviceID, false)
	if c == nil {
		return
	}

	c.mu.Lock()
	delete(c.subscribers, s)
	c.mu.Unlock()
}

// Broadcast delivers e to the current subscribers of the device channel and returns the
// number of subscribers that accepted it. Broadcasts on one channel are serialized, so
// subscribers see the events of a device in the order they were broadcast.
func (h *hub) Broadcast(ctx context.Context, deviceID string, e types.Event) int {
	delivered := 0

	if c := h.channel(deviceID, false); c != nil {
		c.mu.Lock()
		for s := range c.subscribers {
			if s.Send(e) {
				delivered++
			}
		}
		c.mu.Unlock()
	}

	if h.webEvents != nil {
		if err := h.webEvents.Publish(deviceID, e.Type, e); err != nil {
			logging.GetFromContext(ctx).Warn("could not publish web event", slog.String("device_id", deviceID), slog.String("err", err.Error()))
		}
	}

	return delivered
}

func (h *hub) Subscribers(deviceID string) int {
	c := h.channel(deviceID, false)
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.subscribers)
}

// ChannelSubscriber buffers events in a bounded channel. Events arriving while the buffer
// is full or after Close are dropped.
type ChannelSubscriber struct {
	mu     sync.Mutex
	ch     chan types.Event
	closed bool
}

func NewSubscriber(buffer int) *ChannelSubscriber {
	return &ChannelSubscriber{
		ch: make(chan types.Event, buffer),
	}
}

func (s *ChannelSubscriber) Send(e types.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}

func (s *ChannelSubscriber) C() <-chan types.Event {
	return s.ch
}

func (s *ChannelSubscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
