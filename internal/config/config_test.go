package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FLO_API_BASE_URL", "http://flo.local/api/v2/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("CACHE_DEFAULT_TTL_SECONDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Upstream.BaseURL != "http://flo.local/api/v2" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Upstream.BaseURL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Cache.DefaultTTL() != 30*time.Second {
		t.Fatalf("expected fallback ttl, got %s", cfg.Cache.DefaultTTL())
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %s", cfg.App.Addr())
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "x")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REDIS_DB")
	}
}

func TestDurations(t *testing.T) {
	if (AuthConfig{}).SessionTTL() != 8*time.Hour {
		t.Fatalf("unexpected default session ttl")
	}
	if (UpstreamConfig{TimeoutSeconds: 3}).Timeout() != 3*time.Second {
		t.Fatalf("unexpected upstream timeout")
	}
	if (AppConfig{}).RequestTimeout() != 0 {
		t.Fatalf("zero timeout should disable the middleware")
	}
}
