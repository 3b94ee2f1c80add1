// README: Config loader with env defaults for HTTP, generation provider, sessions, ledger and auth.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type AIConfig struct {
	Provider    string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
	FixtureDir  string
}

type Config struct {
	HTTP struct {
		Addr            string
		CORSOrigins     []string
		RatePerMinute   int
		MaxBodyBytes    int64
		ShutdownTimeout time.Duration
	}
	AI   AIConfig
	Maps struct {
		APIKey string
	}
	Redis struct {
		Addr string
	}
	Session struct {
		TTL time.Duration
	}
	DB struct {
		DSN string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Log struct {
		Level string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGER_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = envList("VOYAGER_CORS_ORIGINS", []string{"http://localhost:3000"})
	cfg.HTTP.RatePerMinute = envOrDefaultInt("VOYAGER_RATE_PER_MIN", 30)
	cfg.HTTP.MaxBodyBytes = int64(envOrDefaultInt("VOYAGER_MAX_BODY_KB", 512)) * 1024
	cfg.HTTP.ShutdownTimeout = time.Duration(envOrDefaultInt("VOYAGER_SHUTDOWN_SEC", 15)) * time.Second

	cfg.AI.Provider = strings.ToLower(envOrDefault("VOYAGER_AI_PROVIDER", "openai"))
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = envOrDefault("VOYAGER_OPENAI_MODEL", "gpt-4-turbo-preview")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GeminiModel = envOrDefault("VOYAGER_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.FixtureDir = envOrDefault("VOYAGER_FIXTURE_DIR", "fixtures")

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Redis.Addr = os.Getenv("VOYAGER_REDIS_ADDR")
	cfg.Session.TTL = time.Duration(envOrDefaultInt("VOYAGER_SESSION_TTL_MIN", 1440)) * time.Minute
	cfg.DB.DSN = os.Getenv("VOYAGER_DB_DSN")
	cfg.Firebase.ProjectID = os.Getenv("VOYAGER_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("VOYAGER_FIREBASE_CREDENTIALS")
	cfg.Log.Level = envOrDefault("VOYAGER_LOG_LEVEL", "info")

	if err := cfg.AI.Validate(); err != nil {
		return cfg, err
	}
	if cfg.HTTP.RatePerMinute < 0 {
		return cfg, fmt.Errorf("VOYAGER_RATE_PER_MIN must not be negative")
	}
	return cfg, nil
}

// Validate checks that the selected provider has what it needs.
func (c AIConfig) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("environment variable OPENAI_API_KEY is required for provider openai")
		}
	case "gemini":
		if c.GeminiKey == "" {
			return fmt.Errorf("environment variable GEMINI_API_KEY is required for provider gemini")
		}
	case "fixture":
		if c.FixtureDir == "" {
			return fmt.Errorf("VOYAGER_FIXTURE_DIR is required for provider fixture")
		}
	default:
		return fmt.Errorf("unknown VOYAGER_AI_PROVIDER %q (want openai, gemini or fixture)", c.Provider)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
