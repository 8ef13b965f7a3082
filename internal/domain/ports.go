package domain

import "context"

// CatalogReader supplies the full destination catalog (destinations joined
// with their priced activities).
type CatalogReader interface {
	ListDestinations(ctx context.Context) ([]DestinationRecord, error)
}

type CatalogRepository interface {
	CatalogReader

	// Write paths
	UpsertDestination(ctx context.Context, d DestinationRecord) (int64, error)
	ReplaceActivities(ctx context.Context, destinationID int64, as []Activity) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error
}

// CatalogSource is the upstream destination content API.
type CatalogSource interface {
	ListDestinationIDs(ctx context.Context) ([]int64, error)
	GetDestination(ctx context.Context, id int64) (map[string]any, error)
	GetActivities(ctx context.Context, id int64) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
