package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/diwise/iot-telemetry/internal/pkg/application/aggregation"
	"github.com/diwise/iot-telemetry/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry/internal/pkg/application/events"
	"github.com/diwise/iot-telemetry/internal/pkg/application/fanout"
	"github.com/diwise/iot-telemetry/internal/pkg/application/registry"
	"github.com/diwise/iot-telemetry/internal/pkg/application/telemetry"
	"github.com/diwise/iot-telemetry/internal/pkg/application/watchdog"
	"github.com/diwise/iot-telemetry/internal/pkg/application/webevents"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/telemetrydb"
	"github.com/diwise/iot-telemetry/internal/pkg/infrastructure/transport"
	"github.com/diwise/iot-telemetry/internal/pkg/presentation/api"
	"github.com/diwise/iot-telemetry/internal/pkg/presentation/api/auth"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	k8shandlers "github.com/diwise/service-chassis/pkg/infrastructure/net/http/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const serviceName string = "iot-telemetry"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	controlPort

	configurationFile
	devicesFile
	policiesFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	mongoURI
	mongoDatabase

	mqttBroker
	mqttClientID
	mqttUsername
	mqttPassword
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		controlPort:   "8000",

		configurationFile: "/opt/diwise/config/config.yaml",
		devicesFile:       "",
		policiesFile:      "/opt/diwise/config/authz.rego",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "diwise",
		dbSSLMode:  "disable",

		mongoURI:      "mongodb://localhost:27017",
		mongoDatabase: "telemetry",

		mqttBroker:   "tcp://localhost:1883",
		mqttClientID: serviceName,
		mqttUsername: "",
		mqttPassword: "",
	}
}

type telemetryConfig struct {
	Retention time.Duration `yaml:"retention"`
}

type appConfig struct {
	Pipeline  telemetry.Config `yaml:"pipeline"`
	Transport transport.Config `yaml:"transport"`
	Alerts    alerts.Config    `yaml:"alerts"`
	Watchdog  watchdog.Config  `yaml:"watchdog"`
	Telemetry telemetryConfig  `yaml:"telemetry"`

	Notifications []events.Notification `yaml:"notifications"`
}

func defaultAppConfig() *appConfig {
	return &appConfig{
		Pipeline:  telemetry.DefaultConfig(),
		Transport: transport.DefaultConfig(),
		Alerts:    alerts.DefaultConfig(),
		Watchdog:  watchdog.DefaultConfig(),
		Telemetry: telemetryConfig{Retention: 30 * 24 * time.Hour},
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfg, err := loadConfigurationFile(ctx, flags[configurationFile])
	exitIf(err, logger, "could not load configuration file")

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	runner, err := initialize(ctx, flags, cfg, policies)
	exitIf(err, logger, "failed to initialize service runner")

	err = runner.Run(ctx)
	exitIf(err, logger, "failed to start service runner")
}

func initialize(ctx context.Context, flags flagMap, cfg *appConfig, policies io.ReadCloser) (servicerunner.Runner[appConfig], error) {
	defer policies.Close()

	log := logging.GetFromContext(ctx)

	devices, err := storage.New(ctx, storage.NewConfig(flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode]))
	exitIf(err, log, "could not create or connect to database")

	store, err := telemetrydb.New(ctx, telemetrydb.NewConfig(flags[mongoURI], flags[mongoDatabase], cfg.Telemetry.Retention))
	exitIf(err, log, "could not connect to telemetry store")

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, log))
	exitIf(err, log, "failed to init messenger")

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	exitIf(err, log, "failed to create authenticator")

	sender, err := events.New(&events.Config{Notifications: cfg.Notifications})
	exitIf(err, log, "invalid notification configuration")

	transportCfg := cfg.Transport
	transportCfg.Broker = flags[mqttBroker]
	transportCfg.ClientID = flags[mqttClientID]
	transportCfg.Username = flags[mqttUsername]
	transportCfg.Password = flags[mqttPassword]

	t := transport.New(ctx, transportCfg)

	probes := map[string]k8shandlers.ServiceProber{
		"mqtt": transport.Prober(t),
		"postgres": func(ctx context.Context) (string, error) {
			if err := devices.Ping(ctx); err != nil {
				return "unreachable", err
			}
			return "ok", nil
		},
		"mongodb": func(ctx context.Context) (string, error) {
			if err := store.Ping(ctx); err != nil {
				return "unreachable", err
			}
			return "ok", nil
		},
	}

	var reg registry.Registry
	var hub fanout.Hub
	var we webevents.WebEvents
	var pipeline *telemetry.Pipeline
	var wd watchdog.Watchdog

	var pipelineDone sync.WaitGroup

	_, runner := servicerunner.New(ctx, *cfg,
		webserver("control", listen(flags[listenAddress]), port(flags[controlPort]),
			pprof(), liveness(func() error { return nil }), readiness(probes),
		),
		webserver("public", listen(flags[listenAddress]), port(flags[servicePort]),
			muxinit(func(ctx context.Context, identifier string, port string, appCfg *appConfig, handler *http.ServeMux) error {
				r := api.RegisterHandlers(ctx, router.New(serviceName), api.Services{
					Auth:        authenticator,
					Registry:    reg,
					Readings:    store,
					Transport:   t,
					Hub:         hub,
					WebEvents:   we,
					Watchdog:    wd,
					Aggregation: aggregation.New(store, reg),
				})
				handler.Handle("/", r)
				return nil
			}),
		),
		oninit(func(ctx context.Context, ac *appConfig) error {
			log.Debug("initializing servicerunner")

			reg = registry.New(devices)
			we = webevents.New()
			hub = fanout.New(fanout.WithWebEvents(we))

			evaluator := alerts.New(reg, ac.Alerts)
			pipeline = telemetry.NewPipeline(ac.Pipeline, reg, evaluator, hub, store, messenger, sender)
			wd = watchdog.New(reg, hub, messenger, ac.Watchdog)

			return nil
		}),
		onstarting(func(ctx context.Context, ac *appConfig) (err error) {
			log.Debug("starting servicerunner")

			err = devices.Initialize(ctx)
			if err != nil {
				return
			}

			if flags[devicesFile] != "" {
				var f *os.File
				f, err = os.Open(flags[devicesFile])
				if err != nil {
					return
				}

				err = storage.SeedDevices(ctx, devices, f)
				if err != nil {
					return
				}
			}

			err = store.Initialize(ctx)
			if err != nil {
				return
			}

			err = reg.Load(ctx)
			if err != nil {
				return
			}

			messenger.Start()

			if connErr := t.Connect(ctx); connErr != nil {
				log.Error("could not connect to broker, retrying in background", "err", connErr.Error())
			}

			pipelineDone.Add(1)
			go func() {
				defer pipelineDone.Done()
				pipeline.Run(context.WithoutCancel(ctx), t.Messages())
			}()

			return wd.Start(ctx)
		}),
		onshutdown(func(ctx context.Context, ac *appConfig) error {
			log.Debug("shutdown servicerunner")

			// live streams would otherwise keep the web servers from shutting down
			we.Shutdown()
			wd.Stop(ctx)

			// closing the transport closes the inbound queue and lets the pipeline drain
			t.Close()
			pipelineDone.Wait()

			messenger.Close()
			devices.Close()

			return store.Close(ctx)
		}),
	)

	return runner, nil
}

func loadConfigurationFile(ctx context.Context, path string) (*appConfig, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.GetFromContext(ctx).Warn("configuration file not found, using defaults", slog.String("path", path))
		return defaultAppConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	return parseExternalConfigFile(ctx, f)
}

func parseExternalConfigFile(_ context.Context, cfgFile io.ReadCloser) (*appConfig, error) {
	defer cfgFile.Close()

	b, err := io.ReadAll(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := defaultAppConfig()
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// a missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	flags = applyEnvironment(ctx, flags)

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("devices", "semicolon separated file with devices to seed", apply(devicesFile))
	flag.Func("config", "service configuration file", apply(configurationFile))
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Parse()

	return ctx, flags
}

// applyEnvironment lets environment variables override the defaults
func applyEnvironment(ctx context.Context, flags flagMap) flagMap {
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[controlPort] = envOrDef(ctx, "CONTROL_PORT", flags[controlPort])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[mongoURI] = envOrDef(ctx, "MONGODB_URI", flags[mongoURI])
	flags[mongoDatabase] = envOrDef(ctx, "MONGODB_DATABASE", flags[mongoDatabase])

	flags[mqttBroker] = envOrDef(ctx, "MQTT_BROKER", flags[mqttBroker])
	flags[mqttClientID] = envOrDef(ctx, "MQTT_CLIENT_ID", flags[mqttClientID])
	flags[mqttUsername] = envOrDef(ctx, "MQTT_USERNAME", flags[mqttUsername])
	flags[mqttPassword] = envOrDef(ctx, "MQTT_PASSWORD", flags[mqttPassword])

	return flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}

var oninit = servicerunner.OnInit[appConfig]
var onstarting = servicerunner.OnStarting[appConfig]
var onshutdown = servicerunner.OnShutdown[appConfig]
var webserver = servicerunner.WithHTTPServeMux[appConfig]
var muxinit = servicerunner.OnMuxInit[appConfig]
var listen = servicerunner.WithListenAddr[appConfig]
var port = servicerunner.WithPort[appConfig]
var pprof = servicerunner.WithPPROF[appConfig]
var liveness = servicerunner.WithK8SLivenessProbe[appConfig]
var readiness = servicerunner.WithK8SReadinessProbes[appConfig]
