package storage

import (
	"context"
	"time"
)

// Item is a stored value together with its write time.
// SavedAt is zero when the write time was not recorded.
type Item struct {
	Value   string
	SavedAt time.Time
}

// Storage is a string key/value store that survives restarts.
type Storage interface {
	// GetItem returns the item and true, or a zero Item and false when the
	// key is absent.
	GetItem(ctx context.Context, key string) (Item, bool, error)
	SetItem(ctx context.Context, key string, value string) error
	// RemoveItem deletes the key; removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
