package repository

import "context"

// Storage areas, mirroring the browser extension stores
const (
	AreaSync  = "sync"
	AreaLocal = "local"
)

// Well-known keys
const (
	KeyAppSettings  = "appSettings"
	KeyBookmarkTags = "bookmarkTags"
)

// KVStore is one area of the key-value store. Values are JSON documents.
type KVStore interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value under key
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Repository combines the storage areas
type Repository interface {
	Sync() KVStore
	Local() KVStore
	Close() error
}
