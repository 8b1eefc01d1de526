package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          "8081",
		DataBackend:   "sqlite",
		SQLiteDBPath:  "./data/finbud.db",
		AMQPExchange:  "finbud",
		AMQPQueue:     "finbud_events",
		QuizCacheSize: 100,
		QuizCacheTTL:  5 * time.Minute,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("Port = %s, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %s, want sqlite", cfg.DataBackend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("QUIZ_CACHE_TTL", "30s")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "mongo" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.QuizCacheTTL != 30*time.Second {
		t.Errorf("QuizCacheTTL = %v, want 30s", cfg.QuizCacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("mongo config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"sqlite without path", func(c *Config) { c.SQLiteDBPath = "" }, "database path"},
		{"mongo without uri", func(c *Config) { c.DataBackend = "mongo"; c.MongoURI = "" }, "MONGO_URI"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue name"},
		{"zero cache size", func(c *Config) { c.QuizCacheSize = 0 }, "cache size"},
		{"tiny cache ttl", func(c *Config) { c.QuizCacheTTL = time.Millisecond }, "cache TTL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %v does not mention %q", err, tc.wantErr)
			}
		})
	}
}
