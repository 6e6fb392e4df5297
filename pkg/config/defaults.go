package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "rentalspot"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultCalendarCacheTTL = 6 * time.Hour

	DefaultPort = "8080"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCalendarWindowMonths       = 12
	MaxCalendarWindowMonths           = 36
	DefaultPricingWeekendSeasonPolicy = "season_only"
	DefaultPricingFallbackBasePrice   = 0.0

	DefaultRegenerationMode      = RegenerationModeEvent
	DefaultPricingEventsTopic    = "pricing-input-changes"
	DefaultPricingEventsDLQTopic = "pricing-input-changes-dlq"
	DefaultPricingEventsGroupID  = "calendar-worker"
	DefaultRegenerationCron      = "0 0 3 * * *"
	DefaultHoldSweepCron         = "@every 1m"

	DefaultMetricsEnabled = true
)

const (
	RegenerationModeEvent  = "event"
	RegenerationModeInline = "inline"
)

var ValidWeekendSeasonPolicies = []string{"season_only", "multiply"}
