package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	RedisAddress      string
	KafkaBrokers      []string
	KafkaTopic        string
	KafkaClientID     string
	KafkaDialTimeout  time.Duration
	AuthSecret        string
	RepublishInterval time.Duration
	RepublishBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultKafkaBrokers      = "localhost:9092"
	defaultKafkaTopic        = "orders"
	defaultKafkaClientID     = "checkout-service"
	defaultKafkaDialTimeout  = 10 * time.Second
	defaultAuthSecret        = "change-me-in-production"
	defaultRepublishInterval = 15 * time.Second
	defaultRepublishBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RedisAddress:      getString(lookup, "REDIS_ADDRESS", ""),
		KafkaTopic:        getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		KafkaClientID:     getString(lookup, "KAFKA_CLIENT_ID", defaultKafkaClientID),
		KafkaDialTimeout:  getDuration(lookup, "KAFKA_DIAL_TIMEOUT", defaultKafkaDialTimeout),
		AuthSecret:        getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		RepublishInterval: getDuration(lookup, "REPUBLISH_INTERVAL", defaultRepublishInterval),
		RepublishBatch:    getInt(lookup, "REPUBLISH_BATCH_SIZE", defaultRepublishBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	brokers := getString(lookup, "KAFKA_BROKERS", defaultKafkaBrokers)

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		republishIntervalStr = cfg.RepublishInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
		dialTimeoutStr       = cfg.KafkaDialTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "r", cfg.RedisAddress, "Redis address for cart storage")
	fs.StringVar(&brokers, "kafka-brokers", brokers, "Comma separated Kafka broker addresses")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for order events")
	fs.StringVar(&cfg.KafkaClientID, "kafka-client-id", cfg.KafkaClientID, "Kafka client identifier")
	fs.StringVar(&dialTimeoutStr, "kafka-dial-timeout", dialTimeoutStr, "Kafka broker dial timeout")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&republishIntervalStr, "republish-interval", republishIntervalStr, "Interval between republish sweeps")
	fs.IntVar(&cfg.RepublishBatch, "republish-batch", cfg.RepublishBatch, "Maximum orders per republish sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent republish workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RepublishInterval, err = time.ParseDuration(republishIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid republish interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.KafkaDialTimeout, err = time.ParseDuration(dialTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid kafka dial timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	cfg.KafkaBrokers = splitBrokers(brokers)

	if cfg.RepublishBatch <= 0 {
		cfg.RepublishBatch = defaultRepublishBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.RepublishInterval <= 0 {
		cfg.RepublishInterval = defaultRepublishInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.KafkaDialTimeout <= 0 {
		cfg.KafkaDialTimeout = defaultKafkaDialTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RedisAddress == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker must be provided")
	}

	return cfg, nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			brokers = append(brokers, addr)
		}
	}
	return brokers
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
