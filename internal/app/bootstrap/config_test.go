package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.GRPCPort != 9090 {
		t.Fatalf("ports = %d/%d, want 8080/9090", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Fatalf("currency = %s, want USD", cfg.DefaultCurrency)
	}
	if cfg.AllocationRetryBudget != 5 {
		t.Fatalf("retry budget = %d, want 5", cfg.AllocationRetryBudget)
	}
	if cfg.OutboxFlushBatchSize != 100 {
		t.Fatalf("outbox batch = %d, want 100", cfg.OutboxFlushBatchSize)
	}
}

func TestLoadConfigFileAndEnvOverlay(t *testing.T) {
	path := writeConfig(t, `
service:
  id: fundraiser-test
fundraiser:
  default_currency: eur
  outbox_poll_seconds: 7
  outbox_flush_batch_size: 25
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceID != "fundraiser-test" {
		t.Fatalf("service id = %s, want fundraiser-test", cfg.ServiceID)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Fatalf("currency = %s, want EUR", cfg.DefaultCurrency)
	}
	if cfg.OutboxPollInterval != 7*time.Second {
		t.Fatalf("poll interval = %s, want 7s", cfg.OutboxPollInterval)
	}
	if cfg.OutboxFlushBatchSize != 25 {
		t.Fatalf("outbox batch = %d, want 25", cfg.OutboxFlushBatchSize)
	}

	// Environment wins over the file.
	t.Setenv("OUTBOX_FLUSH_BATCH_SIZE", "7")
	t.Setenv("DEFAULT_CURRENCY", "gbp")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("load config with env: %v", err)
	}
	if cfg.OutboxFlushBatchSize != 7 {
		t.Fatalf("outbox batch = %d, want 7", cfg.OutboxFlushBatchSize)
	}
	if cfg.DefaultCurrency != "GBP" {
		t.Fatalf("currency = %s, want GBP", cfg.DefaultCurrency)
	}
}
