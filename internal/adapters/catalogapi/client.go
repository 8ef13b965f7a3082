package catalogapi

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trip_budget/internal/adapters/observability"
	"trip_budget/internal/domain"
)

const maxAttempts = 4

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API (tries current endpoints first, falls back to legacy variants) ----

// ListDestinationIDs accepts either a bare array or an {"items": [...]} page.
func (c *Client) ListDestinationIDs(ctx context.Context) ([]int64, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "destinations", c.base+"/destinations", &raw); err != nil {
		return nil, err
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		var page struct {
			Items []map[string]any `json:"items"`
		}
		if perr := json.Unmarshal(raw, &page); perr != nil {
			return nil, fmt.Errorf("decode destination list: %w", err)
		}
		items = page.Items
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if f, ok := it["id"].(float64); ok && f > 0 {
			ids = append(ids, int64(f))
		}
	}
	return ids, nil
}

func (c *Client) GetDestination(ctx context.Context, id int64) (map[string]any, error) {
	candidates := []string{
		fmt.Sprintf("%s/destinations/%d", c.base, id), // preferred
		fmt.Sprintf("%s/destination/%d", c.base, id),  // legacy
	}
	var out map[string]any
	return out, c.getFirst(ctx, "destination", candidates, &out)
}

func (c *Client) GetActivities(ctx context.Context, id int64) ([]map[string]any, error) {
	candidates := []string{
		fmt.Sprintf("%s/destinations/%d/activities", c.base, id), // preferred
		fmt.Sprintf("%s/activities?destination_id=%d", c.base, id),
	}
	var out []map[string]any
	return out, c.getFirst(ctx, "activities", candidates, &out)
}

// ---- Internals ----

func (c *Client) getFirst(ctx context.Context, endpoint string, urls []string, out any) error {
	var last error
	for _, u := range urls {
		if err := c.get(ctx, endpoint, u, out); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				last = err
				continue // try next pattern
			}
			return err // non-404: stop early
		}
		return nil
	}
	if last != nil {
		return last
	}
	return errors.New("no candidate URL succeeded")
}

// errRetryable marks a response worth another attempt.
type errRetryable struct {
	status int
	wait   time.Duration
}

func (e *errRetryable) Error() string { return fmt.Sprintf("remote %d", e.status) }

// get performs a rate-limited GET and decodes the JSON body into out.
// Transport errors, 429 and transient 5xx are retried with backoff, honoring
// Retry-After when the server sends one.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}
		err := c.once(ctx, endpoint, url, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := backoff(i)
		var re *errRetryable
		var ne net.Error
		switch {
		case errors.As(err, &re):
			if re.wait > 0 {
				wait = re.wait
			}
		case errors.As(err, &ne):
		default:
			return err
		}
		lastErr = err
		if i < maxAttempts-1 && !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return lastErr
}

func (c *Client) once(ctx context.Context, endpoint, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "trip-budget/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("catalog %s: %w", endpoint, domain.ErrNotFound)
	case http.StatusUnauthorized:
		return fmt.Errorf("catalog %s: %w", endpoint, domain.ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("catalog %s: %w", endpoint, domain.ErrForbidden)
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &errRetryable{status: resp.StatusCode, wait: retryAfter(resp)}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("catalog %s: bad status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
