package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"rentalspot/pkg/client"
	"rentalspot/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RedisURL         string
	CalendarCacheTTL time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CalendarWindowMonths       int
	PricingWeekendSeasonPolicy string
	PricingFallbackBasePrice   float64

	RegenerationMode      string
	PricingEventsTopic    string
	PricingEventsDLQTopic string
	PricingEventsGroupID  string
	RegenerationCron      string
	HoldSweepCron         string

	MetricsEnabled bool

	Log    *logger.Logger
	Client *client.Client
}

// CronParser accepts six-field specs with seconds as well as descriptors such
// as "@every 1m".
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func Load(serviceName string) *Config {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RedisURL:         getEnvStr(EnvRedisURL, ""),
		CalendarCacheTTL: getEnvDuration(EnvCalendarCacheTTL, DefaultCalendarCacheTTL),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		CalendarWindowMonths:       getEnvNum(EnvCalendarWindowMonths, DefaultCalendarWindowMonths),
		PricingWeekendSeasonPolicy: strings.ToLower(getEnvStr(EnvPricingWeekendSeasonPolicy, DefaultPricingWeekendSeasonPolicy)),
		PricingFallbackBasePrice:   getEnvFloat(EnvPricingFallbackBasePrice, DefaultPricingFallbackBasePrice),

		RegenerationMode:      strings.ToLower(getEnvStr(EnvRegenerationMode, DefaultRegenerationMode)),
		PricingEventsTopic:    getEnvStr(EnvPricingEventsTopic, DefaultPricingEventsTopic),
		PricingEventsDLQTopic: getEnvStr(EnvPricingEventsDLQTopic, DefaultPricingEventsDLQTopic),
		PricingEventsGroupID:  getEnvStr(EnvPricingEventsGroupID, DefaultPricingEventsGroupID),
		RegenerationCron:      getEnvStr(EnvRegenerationCron, DefaultRegenerationCron),
		HoldSweepCron:         getEnvStr(EnvHoldSweepCron, DefaultHoldSweepCron),

		MetricsEnabled: getEnvBool(EnvMetricsEnabled, DefaultMetricsEnabled),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.RedisURL != "" && !regexp.MustCompile(`^rediss?://`).MatchString(cfg.RedisURL) {
		errors = append(errors, "RedisURL must start with 'redis://' or 'rediss://'")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.CalendarCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("CalendarCacheTTL must be positive, got: %s", cfg.CalendarCacheTTL))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.CalendarWindowMonths < 1 || cfg.CalendarWindowMonths > MaxCalendarWindowMonths {
		errors = append(errors, fmt.Sprintf("CalendarWindowMonths must be between 1 and %d, got: %d", MaxCalendarWindowMonths, cfg.CalendarWindowMonths))
	}
	if !slices.Contains(ValidWeekendSeasonPolicies, cfg.PricingWeekendSeasonPolicy) {
		errors = append(errors, fmt.Sprintf("PricingWeekendSeasonPolicy must be one of %v, got: %s", ValidWeekendSeasonPolicies, cfg.PricingWeekendSeasonPolicy))
	}
	if cfg.PricingFallbackBasePrice < 0 {
		errors = append(errors, fmt.Sprintf("PricingFallbackBasePrice cannot be negative, got: %v", cfg.PricingFallbackBasePrice))
	}

	if cfg.RegenerationMode != RegenerationModeEvent && cfg.RegenerationMode != RegenerationModeInline {
		errors = append(errors, fmt.Sprintf("RegenerationMode must be '%s' or '%s', got: %s", RegenerationModeEvent, RegenerationModeInline, cfg.RegenerationMode))
	}
	if cfg.RegenerationMode == RegenerationModeEvent {
		if cfg.PricingEventsTopic == "" {
			errors = append(errors, "PricingEventsTopic cannot be empty in event mode")
		}
		if cfg.PricingEventsGroupID == "" {
			errors = append(errors, "PricingEventsGroupID cannot be empty in event mode")
		}
	}
	if _, err := CronParser.Parse(cfg.RegenerationCron); err != nil {
		errors = append(errors, fmt.Sprintf("RegenerationCron is not a valid schedule (%s): %v", cfg.RegenerationCron, err))
	}
	if _, err := CronParser.Parse(cfg.HoldSweepCron); err != nil {
		errors = append(errors, fmt.Sprintf("HoldSweepCron is not a valid schedule (%s): %v", cfg.HoldSweepCron, err))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"redis_enabled", cfg.RedisURL != "",
		"calendar_cache_ttl", cfg.CalendarCacheTTL,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"calendar_window_months", cfg.CalendarWindowMonths,
		"weekend_season_policy", cfg.PricingWeekendSeasonPolicy,
		"fallback_base_price", cfg.PricingFallbackBasePrice,
		"regeneration_mode", cfg.RegenerationMode,
		"pricing_events_topic", cfg.PricingEventsTopic,
		"regeneration_cron", cfg.RegenerationCron,
		"hold_sweep_cron", cfg.HoldSweepCron,
		"metrics_enabled", cfg.MetricsEnabled,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
