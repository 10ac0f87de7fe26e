package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/football-league/internal/platform/logging"
)

// isolate points Load at an absent env file so a developer's .env does not
// leak into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_AppEnvValidation(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_DevDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ADMIN_JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store in dev, got %s", cfg.StoreDriver)
	}
	if cfg.AdminJWTSecret != devAdminJWTSecret {
		t.Fatalf("expected dev admin secret fallback")
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected swagger enabled in dev")
	}
	if cfg.CacheTTL != 30*time.Second || cfg.RecalcMaxWorkers != 4 {
		t.Fatalf("unexpected defaults: ttl=%s workers=%d", cfg.CacheTTL, cfg.RecalcMaxWorkers)
	}
}

func TestLoad_ProdRequirements(t *testing.T) {
	t.Run("admin secret required", func(t *testing.T) {
		isolate(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("ADMIN_JWT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error without ADMIN_JWT_SECRET in prod")
		}
	})

	t.Run("memory store rejected", func(t *testing.T) {
		isolate(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("ADMIN_JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", StoreMemory)

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for memory store in prod")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		isolate(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("ADMIN_JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StorePostgres {
			t.Fatalf("expected postgres store in prod, got %s", cfg.StoreDriver)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"STORE_DRIVER":               "mongo",
		"CACHE_TTL":                  "-1s",
		"RECALC_MAX_WORKERS":         "0",
		"APP_READ_TIMEOUT":           "soon",
		"CACHE_ENABLED":              "maybe",
		"RESULT_WEBHOOK_MAX_RETRIES": "-1",
		"RESULT_WEBHOOK_TIMEOUT":     "0s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn %q", cfg.UptraceDSN)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_LOG_LEVEL=debug\nRECALC_MAX_WORKERS=9\nAPP_HTTP_ADDR=:9999\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("APP_ENV_FILE", path)
	t.Setenv("APP_ENV", EnvDev)
	// Already-set variables win over the file.
	t.Setenv("APP_HTTP_ADDR", ":7070")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("RECALC_MAX_WORKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("expected log level from env file, got %s", cfg.LogLevel)
	}
	if cfg.RecalcMaxWorkers != 9 {
		t.Fatalf("expected workers from env file, got %d", cfg.RecalcMaxWorkers)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("env var must override env file, got %s", cfg.HTTPAddr)
	}
}

func TestLoad_ResultWebhook(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("RESULT_WEBHOOK_URL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ResultWebhookURL != "" || cfg.ResultWebhookTimeout != 5*time.Second || cfg.ResultWebhookMaxRetries != 2 {
			t.Fatalf("unexpected webhook defaults: %+v", cfg)
		}
		if cfg.ResultWebhookBreakerFails != 5 || cfg.ResultWebhookBreakerOpen != 30*time.Second {
			t.Fatalf("unexpected breaker defaults: fails=%d open=%s", cfg.ResultWebhookBreakerFails, cfg.ResultWebhookBreakerOpen)
		}
	})

	t.Run("secret required in prod", func(t *testing.T) {
		isolate(t)
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("ADMIN_JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("RESULT_WEBHOOK_URL", "https://hooks.example.com/results")
		t.Setenv("RESULT_WEBHOOK_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unsigned webhook in prod")
		}
	})
}
