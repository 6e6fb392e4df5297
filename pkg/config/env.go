package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisURL         = "REDIS_URL"
	EnvCalendarCacheTTL = "CALENDAR_CACHE_TTL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCalendarWindowMonths       = "CALENDAR_WINDOW_MONTHS"
	EnvPricingWeekendSeasonPolicy = "PRICING_WEEKEND_SEASON_POLICY"
	EnvPricingFallbackBasePrice   = "PRICING_FALLBACK_BASE_PRICE"

	EnvRegenerationMode      = "REGENERATION_MODE"
	EnvPricingEventsTopic    = "PRICING_EVENTS_TOPIC"
	EnvPricingEventsDLQTopic = "PRICING_EVENTS_DLQ_TOPIC"
	EnvPricingEventsGroupID  = "PRICING_EVENTS_GROUP_ID"
	EnvRegenerationCron      = "REGENERATION_CRON"
	EnvHoldSweepCron         = "HOLD_SWEEP_CRON"

	EnvMetricsEnabled = "METRICS_ENABLED"
)
