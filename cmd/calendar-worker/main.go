package main

import (
	"context"
	"errors"

	"rentalspot/internal/bootstrap"
	bookingsservice "rentalspot/internal/bookings/service"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/app"
	"rentalspot/pkg/config"
	"rentalspot/pkg/contracts"
	"rentalspot/pkg/kafka"
	kafka_config "rentalspot/pkg/kafka/config"
	kafka_middleware "rentalspot/pkg/kafka/middleware"
	"rentalspot/pkg/metrics"
)

const ServiceName = "calendar-worker"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Calendar Worker")
	core, err := bootstrap.NewCore(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to build calendar generator", "error", err)
	}

	serverApp := app.NewApplication()
	ctx, cancel := context.WithCancel(context.Background())
	serverApp.OnShutdown(cancel)

	if cfg.RegenerationMode == config.RegenerationModeEvent {
		consumer := startConsumer(ctx, cfg, core)
		serverApp.OnShutdown(func() {
			if err := consumer.Close(); err != nil {
				cfg.Log.Error("Failed to close kafka consumer", "error", err)
			}
		})
	}

	scheduler := startScheduler(cfg, core)
	serverApp.OnShutdown(scheduler.Stop)

	// health, readiness and metrics only
	serverApp.SetApp(cfg, contracts.Handlers{})
	serverApp.Run()
}

func startConsumer(ctx context.Context, cfg *config.Config, core *bootstrap.Core) *kafka.Consumer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	handler := regeneration.NewEventHandler(core.Generator, cfg)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.PricingEventsTopic,
		cfg.PricingEventsGroupID,
		cfg.PricingEventsDLQTopic,
		handler.Handle,
		cfg.Log.Component("kafka-consumer"),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware(metrics.PricingEventsConsumed))
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Kafka consumer stopped", "error", err)
		}
	}()
	return consumer
}

func startScheduler(cfg *config.Config, core *bootstrap.Core) *regeneration.Scheduler {
	// released holds regenerate in process
	sweeper := bookingsservice.NewHoldSweeper(
		core.Repos.Bookings,
		regeneration.NewInlineNotifier(core.Generator, cfg),
		cfg,
	)

	scheduler := regeneration.NewScheduler(cfg.Log.Component("scheduler"))
	if err := scheduler.Add("regenerate-all", cfg.RegenerationCron, func(ctx context.Context) error {
		report, err := core.Generator.RegenerateAll(ctx)
		if err != nil {
			return err
		}
		cfg.Log.Info("Rolling calendar regeneration finished",
			"properties", report.Properties,
			"months", report.Months,
			"failed", len(report.Failed),
		)
		return nil
	}); err != nil {
		cfg.Log.Fatal("Failed to schedule regeneration", "error", err)
	}
	if err := scheduler.Add("expire-holds", cfg.HoldSweepCron, func(ctx context.Context) error {
		_, err := sweeper.Sweep(ctx)
		return err
	}); err != nil {
		cfg.Log.Fatal("Failed to schedule hold sweep", "error", err)
	}

	scheduler.Start()
	return scheduler
}
