package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/diwise/iot-telemetry/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/net/http/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrUnavailable     = errors.New("transport unavailable")
	ErrPublishTimeout  = errors.New("publish timed out")
	ErrInvalidDeviceID = errors.New("invalid device id")
)

var (
	messagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iot_telemetry_transport_messages_received_total",
		Help: "Number of messages received from the broker.",
	})
	messagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iot_telemetry_transport_messages_dropped_total",
		Help: "Number of messages dropped because the inbound queue was full.",
	})
	reconnectAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iot_telemetry_transport_reconnect_attempts_total",
		Help: "Number of attempts made to reconnect to the broker.",
	})
)

// Topics the adapter subscribes to. Device ids are validated by the decoder.
var Topics = []string{
	"devices/+/temperature",
	"devices/+/motion",
	"devices/+/status",
}

func CommandTopic(deviceID string) string {
	return fmt.Sprintf("devices/%s/commands", deviceID)
}

type State string

const (
	StateDisconnected State = "disconnected"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateUnavailable  State = "unavailable"
)

type Message struct {
	Topic      string
	Payload    []byte
	ReceivedAt time.Time
}

type Config struct {
	Broker   string `yaml:"-"`
	ClientID string `yaml:"-"`
	Username string `yaml:"-"`
	Password string `yaml:"-"`

	QoS                  byte          `yaml:"qos"`
	InitialBackoff       time.Duration `yaml:"initialBackoff"`
	MaxBackoff           time.Duration `yaml:"maxBackoff"`
	MaxReconnectAttempts int           `yaml:"maxReconnectAttempts"`
	QueueSize            int           `yaml:"queueSize"`
	PublishTimeout       time.Duration `yaml:"publishTimeout"`
	ConnectTimeout       time.Duration `yaml:"connectTimeout"`
}

func DefaultConfig() Config {
	return Config{
		QoS:                  1,
		InitialBackoff:       1 * time.Second,
		MaxBackoff:           30 * time.Second,
		MaxReconnectAttempts: 10,
		QueueSize:            1024,
		PublishTimeout:       5 * time.Second,
		ConnectTimeout:       10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()

	if c.InitialBackoff <= 0 {
		c.InitialBackoff = d.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = d.MaxBackoff
	}
	if c.MaxReconnectAttempts <= 0 {
		c.MaxReconnectAttempts = d.MaxReconnectAttempts
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = d.PublishTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.QoS > 2 {
		c.QoS = d.QoS
	}

	return c
}

//go:generate moq -rm -out transport_mock.go . Transport
type Transport interface {
	Connect(ctx context.Context) error
	Messages() <-chan Message
	PublishCommand(ctx context.Context, deviceID string, cmd types.Command) error
	Available() bool
	State() State
	Close()
}

type ClientFactory func(opts *mqtt.ClientOptions) mqtt.Client

type Option func(*transport)

func WithClientFactory(f ClientFactory) Option {
	return func(t *transport) {
		t.newClient = f
	}
}

// WithTimer replaces the timer used to wait between reconnect attempts.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(t *transport) {
		t.after = after
	}
}

type reconnect struct {
	cancel context.CancelFunc
}

type transport struct {
	cfg Config
	log *slog.Logger

	newClient ClientFactory
	after     func(time.Duration) <-chan time.Time

	mu          sync.RWMutex
	client      mqtt.Client
	state       State
	reconnector *reconnect
	closed      bool

	messages chan Message
}

func New(ctx context.Context, cfg Config, opts ...Option) Transport {
	log := logging.GetFromContext(ctx)

	mqtt.ERROR = slog.NewLogLogger(log.Handler(), slog.LevelError)
	mqtt.CRITICAL = slog.NewLogLogger(log.Handler(), slog.LevelError)

	cfg = cfg.withDefaults()

	t := &transport{
		cfg:       cfg,
		log:       log,
		newClient: mqtt.NewClient,
		after:     time.After,
		state:     StateDisconnected,
		messages:  make(chan Message, cfg.QueueSize),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *transport) clientOptions() *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(t.cfg.Broker)
	opts.SetClientID(t.cfg.ClientID)
	opts.SetUsername(t.cfg.Username)
	opts.SetPassword(t.cfg.Password)
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)
	opts.SetConnectTimeout(t.cfg.ConnectTimeout)
	opts.SetCleanSession(true)
	opts.SetOrderMatters(false)
	opts.SetConnectionLostHandler(t.connectionLost)
	opts.SetDefaultPublishHandler(t.onMessage)

	return opts
}

// Connect opens a new session to the broker. A reconnect in progress is abandoned. If the
// broker cannot be reached the error is returned and reconnection continues in the background.
func (t *transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrUnavailable
	}

	t.abandonReconnect()

	if t.client != nil {
		t.client.Disconnect(250)
	}

	client := t.newClient(t.clientOptions())
	t.client = client
	t.mu.Unlock()

	err := t.dial(client)
	if err == nil {
		t.setState(client, StateConnected)
		t.log.Info("connected to broker", slog.String("broker", t.cfg.Broker))
		return nil
	}

	t.log.Warn("could not connect to broker", slog.String("broker", t.cfg.Broker), slog.String("err", err.Error()))

	t.startReconnect(ctx, client)

	return err
}

// abandonReconnect must be called with t.mu held.
func (t *transport) abandonReconnect() {
	if t.reconnector != nil {
		t.reconnector.cancel()
		t.reconnector = nil
	}
}

func (t *transport) dial(client mqtt.Client) error {
	token := client.Connect()
	if !token.WaitTimeout(t.cfg.ConnectTimeout) {
		return fmt.Errorf("connect timed out after %s", t.cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return err
	}

	filters := make(map[string]byte, len(Topics))
	for _, topic := range Topics {
		filters[topic] = t.cfg.QoS
	}

	token = client.SubscribeMultiple(filters, t.onMessage)
	if !token.WaitTimeout(t.cfg.ConnectTimeout) {
		return fmt.Errorf("subscribe timed out after %s", t.cfg.ConnectTimeout)
	}

	return token.Error()
}

func (t *transport) connectionLost(client mqtt.Client, err error) {
	t.log.Warn("lost connection to broker", slog.String("err", err.Error()))
	t.startReconnect(context.Background(), client)
}

func (t *transport) startReconnect(ctx context.Context, client mqtt.Client) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.client != client {
		return
	}

	t.abandonReconnect()

	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	r := &reconnect{cancel: cancel}
	t.reconnector = r
	t.state = StateReconnecting

	go t.reconnectLoop(ctx, r, client)
}

func (t *transport) backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.cfg.InitialBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = t.cfg.MaxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.WithMaxRetries(b, uint64(t.cfg.MaxReconnectAttempts))
}

func (t *transport) reconnectLoop(ctx context.Context, r *reconnect, client mqtt.Client) {
	b := t.backoff()
	attempt := 0

	for {
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-t.after(wait):
		}

		if ctx.Err() != nil {
			return
		}

		attempt++
		reconnectAttempts.Inc()

		err := t.dial(client)
		if err == nil {
			t.mu.Lock()
			if t.reconnector == r {
				t.reconnector = nil
				t.state = StateConnected
			}
			t.mu.Unlock()

			t.log.Info("reconnected to broker", slog.Int("attempt", attempt))
			return
		}

		t.log.Warn("reconnect attempt failed", slog.Int("attempt", attempt), slog.Duration("waited", wait), slog.String("err", err.Error()))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.reconnector == r {
		t.reconnector = nil
		t.state = StateUnavailable
		t.log.Error("broker unavailable, giving up reconnecting", slog.Int("attempts", attempt))
	}
}

func (t *transport) setState(client mqtt.Client, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == client && !t.closed {
		t.state = s
	}
}

// onMessage hands the message over to the inbound queue without blocking the client.
func (t *transport) onMessage(_ mqtt.Client, msg mqtt.Message) {
	m := Message{
		Topic:      msg.Topic(),
		Payload:    slices.Clone(msg.Payload()),
		ReceivedAt: time.Now().UTC(),
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return
	}

	messagesReceived.Inc()

	select {
	case t.messages <- m:
	default:
		messagesDropped.Inc()
		t.log.Warn("inbound queue full, dropping message", slog.String("topic", m.Topic))
	}
}

func (t *transport) Messages() <-chan Message {
	return t.messages
}

func (t *transport) PublishCommand(ctx context.Context, deviceID string, cmd types.Command) error {
	if !types.ValidDeviceID(deviceID) {
		return ErrInvalidDeviceID
	}

	t.mu.RLock()
	client, state := t.client, t.state
	t.mu.RUnlock()

	if client == nil || state != StateConnected {
		return ErrUnavailable
	}

	if cmd.Timestamp.IsZero() {
		cmd.Timestamp = time.Now().UTC()
	}
	if cmd.Params == nil {
		cmd.Params = map[string]any{}
	}

	b, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	token := client.Publish(CommandTopic(deviceID), t.cfg.QoS, false, b)

	timer := time.NewTimer(t.cfg.PublishTimeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrPublishTimeout
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("could not publish command to %s: %w", deviceID, err)
	}

	return nil
}

func (t *transport) Available() bool {
	return t.State() != StateUnavailable
}

func (t *transport) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state
}

func (t *transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.closed = true
	t.abandonReconnect()

	if t.client != nil {
		t.client.Disconnect(250)
	}

	t.state = StateDisconnected
	close(t.messages)
}

// Prober reports the adapter state to readiness checks and fails once reconnection has
// been given up.
func Prober(t Transport) handlers.ServiceProber {
	return func(context.Context) (string, error) {
		state := t.State()
		if state == StateUnavailable {
			return string(state), ErrUnavailable
		}
		return string(state), nil
	}
}
