package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "roster-wayback-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.DatasetPath != "data/rosters.jsonl" || cfg.DatasetVersionPath != "data/version.txt" {
		t.Fatalf("unexpected dataset paths: %q %q", cfg.DatasetPath, cfg.DatasetVersionPath)
	}
	if cfg.RosterMinDays != 7 {
		t.Fatalf("unexpected roster min days: %d", cfg.RosterMinDays)
	}
	if got := cfg.RosterWindowStart.Format(time.DateOnly); got != "2000-11-09" {
		t.Fatalf("unexpected roster window start: %s", got)
	}
	if cfg.ScraperBaseURL != "https://liquipedia.net" {
		t.Fatalf("unexpected scraper base url: %q", cfg.ScraperBaseURL)
	}
	if cfg.ScraperDelay != 2*time.Second || cfg.ScraperConcurrency != 2 {
		t.Fatalf("unexpected scraper pacing: delay=%s concurrency=%d", cfg.ScraperDelay, cfg.ScraperConcurrency)
	}
	if !cfg.ScraperCircuitEnabled || cfg.ScraperCircuitFailureCount != 5 {
		t.Fatalf("unexpected scraper circuit defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelInfo || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log settings: %s %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.InternalJobToken != "" {
		t.Fatalf("expected empty internal job token by default")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	tests := []struct {
		name    string
		driver  string
		want    string
		wantErr bool
	}{
		{name: "default memory", driver: "", want: StorageMemory},
		{name: "postgres case insensitive", driver: " Postgres ", want: StoragePostgres},
		{name: "unknown driver", driver: "sqlite", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("STORAGE_DRIVER", tc.driver)
			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for STORAGE_DRIVER=%q", tc.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.StorageDriver != tc.want {
				t.Fatalf("expected driver %q, got %q", tc.want, cfg.StorageDriver)
			}
		})
	}
}

func TestLoad_RosterConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("ROSTER_MIN_DAYS", "0")
		t.Setenv("ROSTER_WINDOW_START", "2012-08-21")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RosterMinDays != 0 {
			t.Fatalf("unexpected roster min days: %d", cfg.RosterMinDays)
		}
		if got := cfg.RosterWindowStart.Format(time.DateOnly); got != "2012-08-21" {
			t.Fatalf("unexpected roster window start: %s", got)
		}
	})

	t.Run("negative min days", func(t *testing.T) {
		t.Setenv("ROSTER_MIN_DAYS", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative ROSTER_MIN_DAYS")
		}
	})

	t.Run("invalid window start", func(t *testing.T) {
		t.Setenv("ROSTER_WINDOW_START", "09/11/2000")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid ROSTER_WINDOW_START")
		}
	})
}

func TestLoad_ScraperConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("SCRAPER_EMAIL", " ops@example.com ")
		t.Setenv("SCRAPER_DELAY", "500ms")
		t.Setenv("SCRAPER_CONCURRENCY", "4")
		t.Setenv("SCRAPER_MAX_RETRIES", "0")
		t.Setenv("SCRAPER_CIRCUIT_ENABLED", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ScraperEmail != "ops@example.com" {
			t.Fatalf("unexpected scraper email: %q", cfg.ScraperEmail)
		}
		if cfg.ScraperDelay != 500*time.Millisecond || cfg.ScraperConcurrency != 4 {
			t.Fatalf("unexpected scraper pacing: delay=%s concurrency=%d", cfg.ScraperDelay, cfg.ScraperConcurrency)
		}
		if cfg.ScraperMaxRetries != 0 || cfg.ScraperCircuitEnabled {
			t.Fatalf("unexpected scraper retry config: %+v", cfg)
		}
	})

	invalid := map[string]string{
		"SCRAPER_DELAY":                     "soon",
		"SCRAPER_CONCURRENCY":               "0",
		"SCRAPER_TIMEOUT":                   "0s",
		"SCRAPER_MAX_RETRIES":               "-2",
		"SCRAPER_CIRCUIT_FAILURE_COUNT":     "0",
		"SCRAPER_CIRCUIT_OPEN_TIMEOUT":      "x",
		"SCRAPER_CIRCUIT_HALF_OPEN_MAX_REQ": "abc",
	}
	for key, value := range invalid {
		t.Run("invalid "+key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "roster-wayback-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "roster-wayback-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://rosters.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://rosters.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_LogFormat(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_FORMAT", " Console ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("unexpected log format: %q", cfg.LogFormat)
	}

	t.Setenv("APP_LOG_FORMAT", "logfmt")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported APP_LOG_FORMAT")
	}
}
