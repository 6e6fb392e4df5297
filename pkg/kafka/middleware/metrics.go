package kafka_middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rentalspot/pkg/kafka"
	"rentalspot/pkg/metrics"
)

// MetricsProducerMiddleware counts publishes into counter by result and
// records their latency.
func MetricsProducerMiddleware(counter *prometheus.CounterVec) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.KafkaOperationDuration.WithLabelValues("publish").Observe(time.Since(start).Seconds())
		counter.WithLabelValues(metrics.Result(err)).Inc()
		return err
	}
}

// MetricsConsumerMiddleware counts handled messages into counter by result.
// Each retry attempt is counted.
func MetricsConsumerMiddleware(counter *prometheus.CounterVec) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.KafkaOperationDuration.WithLabelValues("consume").Observe(time.Since(start).Seconds())
		counter.WithLabelValues(metrics.Result(err)).Inc()
		return err
	}
}
