package shared_test

import (
	"testing"
	"time"

	"trip_budget/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "CACHE_BACKEND", "CACHE_TTL_SECONDS", "ALLOW_REVERSED_DATES", "RELOAD_INTERVAL_SECONDS", "CATALOG_FILE"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.HTTPAddr != ":8080" || c.CacheBackend != "redis" || c.CacheTTL != 15*time.Minute {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.AllowReversedDates || c.ReloadInterval != 0 || c.CatalogFile != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CACHE_BACKEND", "Memory")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("INGEST_WORKERS", "not-a-number")
	t.Setenv("ALLOW_REVERSED_DATES", "true")
	t.Setenv("RELOAD_INTERVAL_SECONDS", "60")

	c := shared.Load()
	if c.HTTPAddr != ":9999" || c.CacheBackend != "memory" || c.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected overrides: %+v", c)
	}
	if c.Workers != 8 {
		t.Fatalf("invalid number should fall back to default, got %d", c.Workers)
	}
	if !c.AllowReversedDates || c.ReloadInterval != time.Minute {
		t.Fatalf("unexpected overrides: %+v", c)
	}
}
