package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	CatalogFile string // when set, the catalog is read from this JSON file instead of MySQL

	CacheBackend string // redis|memory|none
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheTTL     time.Duration

	CatalogBase string
	CatalogKey  string
	CatalogRPS  int
	Workers     int

	RateLimitRPS       int
	RateLimitBurst     int
	RequestTimeout     time.Duration
	AllowReversedDates bool
	ReloadInterval     time.Duration
}

// Load reads the environment, after filling it from a .env file when one
// exists. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:             env("APP_ENV", "prod"),
		LogLevel:           env("LOG_LEVEL", "info"),
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		MetricsAddr:        os.Getenv("METRICS_ADDR"),
		MySQLDSN:           env("MYSQL_DSN", "root:root@tcp(localhost:3306)/tripbudget?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		CatalogFile:        os.Getenv("CATALOG_FILE"),
		CacheBackend:       strings.ToLower(env("CACHE_BACKEND", "redis")),
		RedisAddr:          env("REDIS_ADDR", "localhost:6379"),
		RedisPass:          env("REDIS_PASSWORD", ""),
		RedisDB:            atoi("REDIS_DB", 0),
		CacheTTL:           time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		CatalogBase:        env("CATALOG_BASE_URL", "https://api.destinations.example.com/v1"),
		CatalogKey:         env("CATALOG_API_KEY", ""),
		CatalogRPS:         atoi("CATALOG_RPS", 5),
		Workers:            atoi("INGEST_WORKERS", 8),
		RateLimitRPS:       atoi("RATE_LIMIT_RPS", 50),
		RateLimitBurst:     atoi("RATE_LIMIT_BURST", 100),
		RequestTimeout:     time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		AllowReversedDates: boolEnv("ALLOW_REVERSED_DATES", false),
		ReloadInterval:     time.Duration(atoi("RELOAD_INTERVAL_SECONDS", 0)) * time.Second,
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
