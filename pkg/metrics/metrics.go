// Package metrics holds the service's Prometheus collectors. Collectors live on
// a dedicated registry so tests and binaries never collide with the default
// global one.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rentalspot"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	Registry = prometheus.NewRegistry()

	CalendarRegenerations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_regenerations_total",
		Help:      "Price calendar months regenerated, by result.",
	}, []string{"result"})

	CalendarRegenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calendar_regeneration_duration_seconds",
		Help:      "Time to regenerate a property's calendar window.",
		Buckets:   prometheus.DefBuckets,
	})

	Quotes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Quotes served, by outcome (available or the rejection reason).",
	}, []string{"outcome"})

	PricingEventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_events_published_total",
		Help:      "Pricing input change events published, by result.",
	}, []string{"result"})

	PricingEventsConsumed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_events_consumed_total",
		Help:      "Pricing input change events consumed, by result.",
	}, []string{"result"})

	KafkaOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "kafka_operation_duration_seconds",
		Help:      "Kafka publish and consume latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	HoldsExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "holds_expired_total",
		Help:      "On-hold bookings released by the hold sweeper.",
	})

	registerOnce sync.Once
)

// Register adds every collector to Registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			CalendarRegenerations,
			CalendarRegenerationDuration,
			Quotes,
			PricingEventsPublished,
			PricingEventsConsumed,
			KafkaOperationDuration,
			HoldsExpired,
		)
	})
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveRegeneration records one regeneration run of months months.
func ObserveRegeneration(start time.Time, months int, err error) {
	CalendarRegenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		CalendarRegenerations.WithLabelValues(ResultFailure).Inc()
		return
	}
	CalendarRegenerations.WithLabelValues(ResultSuccess).Add(float64(months))
}
