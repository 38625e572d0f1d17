package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iot_telemetry_readings_received_total",
		Help: "Number of decoded readings per sensor class.",
	}, []string{"class"})

	messagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iot_telemetry_messages_dropped_total",
		Help: "Number of messages dropped by the pipeline.",
	}, []string{"reason"})

	readingsPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iot_telemetry_readings_persisted_total",
		Help: "Number of readings written to the telemetry store.",
	})

	persistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iot_telemetry_persist_failures_total",
		Help: "Number of readings that could not be written to the telemetry store.",
	})

	alertsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iot_telemetry_alerts_total",
		Help: "Number of alerts raised per level.",
	}, []string{"level"})
)
