package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                       string
	DBDriver                   string
	DBPath                     string
	LogLevel                   string
	AuthDriver                 string
	GoogleClientID             string
	LeetCodeGraphQLURL         string
	LeetCodeTimeout            time.Duration
	DifficultyFetchConcurrency int
	RecommendationLimit        int
	HistoryCap                 int
	WorkerCount                int
	WorkerQueueSize            int
	SessionIdleTTL             time.Duration
	SessionSweepInterval       time.Duration
	AutocertHosts              []string
	CORSAllowedOrigin          string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                       envOr("ADDR", ":8080"),
		DBDriver:                   envOr("DB_DRIVER", "sqlite3"),
		DBPath:                     envOr("DB_PATH", "file:lanki.db"),
		LogLevel:                   envOr("LOG_LEVEL", "INFO"),
		AuthDriver:                 envOr("AUTH_DRIVER", "header"),
		GoogleClientID:             envOr("GOOGLE_CLIENT_ID", ""),
		LeetCodeGraphQLURL:         envOr("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql"),
		LeetCodeTimeout:            envDurationOr("LEETCODE_TIMEOUT", 10*time.Second),
		DifficultyFetchConcurrency: envIntOr("DIFFICULTY_FETCH_CONCURRENCY", 4),
		RecommendationLimit:        envIntOr("RECOMMENDATION_LIMIT", 5),
		HistoryCap:                 envIntOr("HISTORY_CAP", 10),
		WorkerCount:                envIntOr("WORKER_COUNT", 2),
		WorkerQueueSize:            envIntOr("WORKER_QUEUE_SIZE", 64),
		SessionIdleTTL:             envDurationOr("SESSION_IDLE_TTL", 2*time.Hour),
		SessionSweepInterval:       envDurationOr("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		AutocertHosts:              envListOr("AUTOCERT_HOSTS", nil),
		CORSAllowedOrigin:          envOr("CORS_ALLOWED_ORIGIN", "*"),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" && len(c.AutocertHosts) == 0 {
		problems = append(problems, "ADDR cannot be empty")
	}
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be sqlite3 or postgres, got %q", c.DBDriver))
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	switch c.AuthDriver {
	case "header":
	case "google":
		if c.GoogleClientID == "" {
			problems = append(problems, "GOOGLE_CLIENT_ID is required when AUTH_DRIVER=google")
		}
	default:
		problems = append(problems, fmt.Sprintf("AUTH_DRIVER must be header or google, got %q", c.AuthDriver))
	}
	if c.LeetCodeGraphQLURL == "" {
		problems = append(problems, "LEETCODE_GRAPHQL_URL cannot be empty")
	}
	if c.LeetCodeTimeout <= 0 {
		problems = append(problems, "LEETCODE_TIMEOUT must be positive")
	}
	if c.DifficultyFetchConcurrency < 1 {
		problems = append(problems, "DIFFICULTY_FETCH_CONCURRENCY must be at least 1")
	}
	if c.RecommendationLimit < 1 {
		problems = append(problems, "RECOMMENDATION_LIMIT must be at least 1")
	}
	if c.HistoryCap < 1 {
		problems = append(problems, "HISTORY_CAP must be at least 1")
	}
	if c.WorkerCount < 1 {
		problems = append(problems, "WORKER_COUNT must be at least 1")
	}
	if c.WorkerQueueSize < 1 {
		problems = append(problems, "WORKER_QUEUE_SIZE must be at least 1")
	}
	if c.SessionIdleTTL <= 0 {
		problems = append(problems, "SESSION_IDLE_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		problems = append(problems, "SESSION_SWEEP_INTERVAL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
