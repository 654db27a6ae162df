package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	// DatabaseURL and RedisURL select the persistent adapters. Empty values
	// fall back to the in-memory adapters for local runs and tests.
	DatabaseURL string
	DBMaxConns  int
	RedisURL    string

	JWTSecret string

	DefaultCurrency       string
	AllowDraftPresales    bool
	AllocationRetryBudget int

	SnapshotTTL          time.Duration
	EventDedupTTL        time.Duration
	OutboxPollInterval   time.Duration
	OutboxFlushBatchSize int
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		DatabaseURL string `yaml:"database_url"`
		DBMaxConns  int    `yaml:"db_max_conns"`
		RedisURL    string `yaml:"redis_url"`
		JWTSecret   string `yaml:"jwt_secret"`
	} `yaml:"dependencies"`
	Fundraiser struct {
		DefaultCurrency       string `yaml:"default_currency"`
		AllowDraftPresales    *bool  `yaml:"allow_draft_presales"`
		AllocationRetryBudget int    `yaml:"allocation_retry_budget"`
		SnapshotTTLMinutes    int    `yaml:"snapshot_ttl_minutes"`
		EventDedupTTLHours    int    `yaml:"event_dedup_ttl_hours"`
		OutboxPollSeconds     int    `yaml:"outbox_poll_seconds"`
		OutboxFlushBatchSize  int    `yaml:"outbox_flush_batch_size"`
	} `yaml:"fundraiser"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:             "fundraiser-core",
		HTTPPort:              8080,
		GRPCPort:              9090,
		DBMaxConns:            10,
		DefaultCurrency:       "USD",
		AllocationRetryBudget: 5,
		SnapshotTTL:           time.Hour,
		EventDedupTTL:         7 * 24 * time.Hour,
		OutboxPollInterval:    2 * time.Second,
		OutboxFlushBatchSize:  100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}

		cfg.DatabaseURL = f.Dependencies.DatabaseURL
		if f.Dependencies.DBMaxConns > 0 {
			cfg.DBMaxConns = f.Dependencies.DBMaxConns
		}
		cfg.RedisURL = f.Dependencies.RedisURL
		cfg.JWTSecret = f.Dependencies.JWTSecret

		if f.Fundraiser.DefaultCurrency != "" {
			cfg.DefaultCurrency = strings.ToUpper(f.Fundraiser.DefaultCurrency)
		}
		if f.Fundraiser.AllowDraftPresales != nil {
			cfg.AllowDraftPresales = *f.Fundraiser.AllowDraftPresales
		}
		if f.Fundraiser.AllocationRetryBudget > 0 {
			cfg.AllocationRetryBudget = f.Fundraiser.AllocationRetryBudget
		}
		if f.Fundraiser.SnapshotTTLMinutes > 0 {
			cfg.SnapshotTTL = time.Duration(f.Fundraiser.SnapshotTTLMinutes) * time.Minute
		}
		if f.Fundraiser.EventDedupTTLHours > 0 {
			cfg.EventDedupTTL = time.Duration(f.Fundraiser.EventDedupTTLHours) * time.Hour
		}
		if f.Fundraiser.OutboxPollSeconds > 0 {
			cfg.OutboxPollInterval = time.Duration(f.Fundraiser.OutboxPollSeconds) * time.Second
		}
		if f.Fundraiser.OutboxFlushBatchSize > 0 {
			cfg.OutboxFlushBatchSize = f.Fundraiser.OutboxFlushBatchSize
		}
	}

	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.DefaultCurrency = strings.ToUpper(envOrDefault("DEFAULT_CURRENCY", cfg.DefaultCurrency))
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.DBMaxConns = envInt("DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.AllowDraftPresales = envBool("ALLOW_DRAFT_PRESALES", cfg.AllowDraftPresales)
	cfg.AllocationRetryBudget = envInt("ALLOCATION_RETRY_BUDGET", cfg.AllocationRetryBudget)
	cfg.SnapshotTTL = time.Duration(envInt("SNAPSHOT_TTL_MINUTES", int(cfg.SnapshotTTL.Minutes()))) * time.Minute
	cfg.EventDedupTTL = time.Duration(envInt("EVENT_DEDUP_TTL_HOURS", int(cfg.EventDedupTTL.Hours()))) * time.Hour
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxFlushBatchSize = envInt("OUTBOX_FLUSH_BATCH_SIZE", cfg.OutboxFlushBatchSize)

	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
