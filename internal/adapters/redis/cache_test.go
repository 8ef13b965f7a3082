package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "trip_budget/internal/adapters/redis"
	"trip_budget/internal/domain"
)

func TestCache_RoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var out domain.CityStats
	ok, err := c.Get(ctx, "stats:v1:paris", &out)
	if err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	in := domain.CityStats{Name: "Paris", Currency: "EUR", AverageDailyCost: 150, ActivityCount: 2}
	if err := c.Set(ctx, "stats:v1:paris", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = c.Get(ctx, "stats:v1:paris", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if out.Name != "Paris" || out.AverageDailyCost != 150 || out.ActivityCount != 2 {
		t.Fatalf("unexpected value: %+v", out)
	}

	mr.FastForward(61 * time.Second)
	if ok, _ := c.Get(ctx, "stats:v1:paris", &out); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	_ = c.Set(ctx, "k", map[string]int{"a": 1}, 60)
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("key should be gone")
	}
}
