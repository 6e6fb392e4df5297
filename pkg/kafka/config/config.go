package kafka_config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"rentalspot/pkg/logger"
)

var (
	ValidCompressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
	ValidRequiredAcks = []int{-1, 0, 1}
)

type Config struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string // one of ValidCompressions
	ProducerAsync        bool

	ConsumerStartOffset       int64 // -1 = newest, -2 = oldest
	ConsumerMinBytes          int
	ConsumerMaxBytes          int
	ConsumerMaxWait           time.Duration
	ConsumerCommitInterval    time.Duration
	ConsumerHeartbeatInterval time.Duration
	ConsumerSessionTimeout    time.Duration
	ConsumerRebalanceTimeout  time.Duration
	ConsumerMaxRetries        int
	ConsumerRetryBackoff      time.Duration

	EnableMiddleware bool
}

// Load reads the Kafka settings from the environment. A value that does not
// parse is reported instead of silently replaced by its default.
func Load() (*Config, error) {
	env := &envReader{}

	cfg := &Config{
		Brokers: splitBrokers(env.str(EnvKafkaBrokers, DefaultKafkaBrokers)),

		ProducerMaxAttempts:  env.integer(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: env.duration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
		ProducerRequireAcks:  env.integer(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
		ProducerCompression:  strings.ToLower(env.str(EnvKafkaProducerCompression, DefaultProducerCompression)),
		ProducerAsync:        env.boolean(EnvKafkaProducerAsync, DefaultProducerAsync),

		ConsumerStartOffset:       int64(env.integer(EnvKafkaConsumerStartOffset, DefaultConsumerStartOffset)),
		ConsumerMinBytes:          env.integer(EnvKafkaConsumerMinBytes, DefaultConsumerMinBytes),
		ConsumerMaxBytes:          env.integer(EnvKafkaConsumerMaxBytes, DefaultConsumerMaxBytes),
		ConsumerMaxWait:           env.duration(EnvKafkaConsumerMaxWait, DefaultConsumerMaxWait),
		ConsumerCommitInterval:    env.duration(EnvKafkaConsumerCommitInterval, DefaultConsumerCommitInterval),
		ConsumerHeartbeatInterval: env.duration(EnvKafkaConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval),
		ConsumerSessionTimeout:    env.duration(EnvKafkaConsumerSessionTimeout, DefaultConsumerSessionTimeout),
		ConsumerRebalanceTimeout:  env.duration(EnvKafkaConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
		ConsumerMaxRetries:        env.integer(EnvKafkaConsumerMaxRetries, DefaultConsumerMaxRetries),
		ConsumerRetryBackoff:      env.duration(EnvKafkaConsumerRetryBackoff, DefaultConsumerRetryBackoff),

		EnableMiddleware: env.boolean(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}

	problems := append(env.problems, cfg.problems()...)
	if len(problems) > 0 {
		return nil, joinProblems(problems)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if problems := cfg.problems(); len(problems) > 0 {
		return joinProblems(problems)
	}
	return nil
}

func (cfg *Config) problems() []string {
	var problems []string
	add := func(failed bool, format string, args ...any) {
		if failed {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	add(len(cfg.Brokers) == 0, "At least one Kafka broker is required")
	for i, broker := range cfg.Brokers {
		add(broker == "", "Broker %d cannot be empty", i)
	}

	add(cfg.ProducerMaxAttempts <= 0, "ProducerMaxAttempts must be positive, got: %d", cfg.ProducerMaxAttempts)
	add(cfg.ProducerBatchTimeout <= 0, "ProducerBatchTimeout must be positive, got: %s", cfg.ProducerBatchTimeout)
	add(!slices.Contains(ValidCompressions, cfg.ProducerCompression), "ProducerCompression must be one of %v, got: %s", ValidCompressions, cfg.ProducerCompression)
	add(!slices.Contains(ValidRequiredAcks, cfg.ProducerRequireAcks), "ProducerRequireAcks must be one of %v, got: %d", ValidRequiredAcks, cfg.ProducerRequireAcks)

	add(cfg.ConsumerStartOffset < -2, "ConsumerStartOffset must be -1 (newest), -2 (oldest) or >= 0, got: %d", cfg.ConsumerStartOffset)
	add(cfg.ConsumerMinBytes <= 0, "ConsumerMinBytes must be positive, got: %d", cfg.ConsumerMinBytes)
	add(cfg.ConsumerMaxBytes < cfg.ConsumerMinBytes, "ConsumerMaxBytes must be at least ConsumerMinBytes, got: %d", cfg.ConsumerMaxBytes)
	add(cfg.ConsumerMaxWait <= 0, "ConsumerMaxWait must be positive, got: %s", cfg.ConsumerMaxWait)
	add(cfg.ConsumerCommitInterval <= 0, "ConsumerCommitInterval must be positive, got: %s", cfg.ConsumerCommitInterval)
	add(cfg.ConsumerHeartbeatInterval <= 0, "ConsumerHeartbeatInterval must be positive, got: %s", cfg.ConsumerHeartbeatInterval)
	add(cfg.ConsumerSessionTimeout <= cfg.ConsumerHeartbeatInterval, "ConsumerSessionTimeout must exceed ConsumerHeartbeatInterval, got: %s", cfg.ConsumerSessionTimeout)
	add(cfg.ConsumerRebalanceTimeout <= 0, "ConsumerRebalanceTimeout must be positive, got: %s", cfg.ConsumerRebalanceTimeout)
	add(cfg.ConsumerMaxRetries < 0, "ConsumerMaxRetries cannot be negative, got: %d", cfg.ConsumerMaxRetries)
	add(cfg.ConsumerRetryBackoff < 0, "ConsumerRetryBackoff cannot be negative, got: %s", cfg.ConsumerRetryBackoff)

	return problems
}

func joinProblems(problems []string) error {
	var b strings.Builder
	b.WriteString("Kafka configuration validation failed:\n")
	for i, p := range problems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	return fmt.Errorf("%s", b.String())
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"producer_max_attempts", cfg.ProducerMaxAttempts,
		"producer_batch_timeout", cfg.ProducerBatchTimeout,
		"producer_require_acks", cfg.ProducerRequireAcks,
		"producer_compression", cfg.ProducerCompression,
		"producer_async", cfg.ProducerAsync,
		"consumer_start_offset", cfg.ConsumerStartOffset,
		"consumer_max_retries", cfg.ConsumerMaxRetries,
		"consumer_retry_backoff", cfg.ConsumerRetryBackoff,
		"consumer_session_timeout", cfg.ConsumerSessionTimeout,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// envReader collects malformed values while falling back to defaults.
type envReader struct {
	problems []string
}

func (e *envReader) str(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (e *envReader) integer(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be an integer, got: %q", key, value))
		return fallback
	}
	return n
}

func (e *envReader) boolean(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be a boolean, got: %q", key, value))
		return fallback
	}
	return b
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be a duration such as 500ms, got: %q", key, value))
		return fallback
	}
	return d
}
