// Package bootstrap builds the repositories and services shared by the
// rentalspot binaries.
package bootstrap

import (
	bookingsrepository "rentalspot/internal/bookings/repository"
	calendarsrepository "rentalspot/internal/calendars/repository"
	calendarsservice "rentalspot/internal/calendars/service"
	"rentalspot/internal/pricing"
	pricingrulesrepository "rentalspot/internal/pricingrules/repository"
	propertiesrepository "rentalspot/internal/properties/repository"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/cache"
	"rentalspot/pkg/config"
	"rentalspot/pkg/kafka"
	kafka_config "rentalspot/pkg/kafka/config"
	kafka_middleware "rentalspot/pkg/kafka/middleware"
	"rentalspot/pkg/metrics"
)

type Repositories struct {
	Properties   propertiesrepository.PropertyRepository
	Seasons      pricingrulesrepository.SeasonalPricingRepository
	Overrides    pricingrulesrepository.DateOverrideRepository
	MinimumStays pricingrulesrepository.MinimumStayRuleRepository
	Rules        pricingrulesrepository.RuleReader
	Bookings     bookingsrepository.BookingRepository
	Calendars    calendarsrepository.PriceCalendarRepository
	Coupons      calendarsrepository.CouponRepository
}

func NewRepositories(cfg *config.Config) *Repositories {
	seasons := pricingrulesrepository.NewMongoSeasonalPricingRepository(cfg)
	overrides := pricingrulesrepository.NewMongoDateOverrideRepository(cfg)
	minimumStays := pricingrulesrepository.NewMongoMinimumStayRuleRepository(cfg)

	return &Repositories{
		Properties:   propertiesrepository.NewMongoPropertyRepository(cfg),
		Seasons:      seasons,
		Overrides:    overrides,
		MinimumStays: minimumStays,
		Rules:        pricingrulesrepository.NewRuleReader(seasons, overrides, minimumStays),
		Bookings:     bookingsrepository.NewMongoBookingRepository(cfg),
		Calendars:    calendarsrepository.NewMongoPriceCalendarRepository(cfg),
		Coupons:      calendarsrepository.NewMongoCouponRepository(cfg),
	}
}

// Core is the calendar generation stack every binary needs.
type Core struct {
	Repos      *Repositories
	Calculator *pricing.Calculator
	Cache      cache.CalendarCache
	Generator  calendarsservice.GeneratorService
}

// NewCore expects Mongo to be connected. Redis is optional.
func NewCore(cfg *config.Config) (*Core, error) {
	calc, err := calendarsservice.NewCalculator(cfg)
	if err != nil {
		return nil, err
	}

	repos := NewRepositories(cfg)
	calendarCache := cache.New(cfg.Client.Redis, cfg.CalendarCacheTTL)
	generator := calendarsservice.NewGeneratorService(
		repos.Properties,
		repos.Rules,
		repos.Bookings,
		repos.Calendars,
		calendarCache,
		calc,
		cfg,
	)

	return &Core{
		Repos:      repos,
		Calculator: calc,
		Cache:      calendarCache,
		Generator:  generator,
	}, nil
}

// NewNotifier picks how pricing input changes reach the generator. In event
// mode the returned close func flushes and closes the producer.
func (c *Core) NewNotifier(cfg *config.Config) (regeneration.ChangeNotifier, func(), error) {
	if cfg.RegenerationMode != config.RegenerationModeEvent {
		cfg.Log.Info("Calendar regeneration runs inline")
		return regeneration.NewInlineNotifier(c.Generator, cfg), func() {}, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		return nil, nil, err
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.PricingEventsTopic, cfg.Log.Component("kafka-producer"))
	if err != nil {
		return nil, nil, err
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(metrics.PricingEventsPublished))
	}

	cfg.Log.Info("Calendar regeneration is event driven", "topic", cfg.PricingEventsTopic)
	closeFn := func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close kafka producer", "error", err)
		}
	}
	return regeneration.NewKafkaNotifier(producer, cfg), closeFn, nil
}
