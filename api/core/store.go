// Package core defines the core interfaces for the cache viewer.
// It provides the contract between the viewer pipeline and the backing
// key-value store, together with the error taxonomy shared by all
// viewer operations.
package core

import (
	"context"
	"time"
)

// NoTTL is returned by Store.TTL for keys that exist but carry no
// expiration.
const NoTTL = time.Duration(-1)

// Store is the gateway to the backing key-value store. It exposes the
// raw primitives the viewer builds on; it performs no decoding and no
// retries. All methods are safe for concurrent use; the implementation
// is expected to multiplex calls over a small connection pool.
type Store interface {
	// Get fetches the raw bytes stored under key.
	// It returns ErrNotFound if the key does not exist.
	//
	// Parameters:
	//   - ctx: Context for the operation, can be used for cancellation
	//   - key: The key to fetch
	//
	// Returns:
	//   - []byte: The raw value bytes
	//   - error: ErrNotFound, or a transport error
	Get(ctx context.Context, key string) ([]byte, error)

	// ScanPage runs one page of the store's cursor-based key scan.
	// The count is a hint bounding how many keys the store examines in
	// this call, not how many matches it returns: a page may be empty
	// while unscanned keys remain. A returned cursor of zero means the
	// full keyspace has been scanned.
	//
	// Parameters:
	//   - ctx: Context for the operation, can be used for cancellation
	//   - cursor: The cursor returned by the previous page, or 0 to start
	//   - pattern: Glob pattern applied store-side to scanned keys
	//   - count: Hint for the number of keys to examine this page
	//
	// Returns:
	//   - []string: The matching keys found in this page
	//   - uint64: The cursor for the next page, 0 when the scan is done
	//   - error: A transport error
	ScanPage(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error)

	// TTL returns the remaining time-to-live of key. It returns NoTTL
	// for keys without an expiration and ErrNotFound for missing keys.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// ValueSize returns the size in bytes of the raw value stored
	// under key, without fetching it. It returns ErrNotFound for
	// missing keys.
	ValueSize(ctx context.Context, key string) (int64, error)

	// Delete removes key from the store. It returns false if the key
	// did not exist; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping checks connectivity to the store. It returns a nil error
	// when the store is reachable and an error wrapping ErrUnreachable
	// otherwise.
	Ping(ctx context.Context) error

	// Status reports connectivity and keyspace statistics for the
	// store: per-database key counts and the key count of the database
	// this store is bound to.
	Status(ctx context.Context) (*Status, error)

	// Close releases the connection pool. After Close the store must
	// not be used.
	Close() error
}

// KeyspaceInfo holds the per-database statistics reported by the store.
type KeyspaceInfo struct {
	// Keys is the number of keys in the database.
	Keys int64 `json:"keys"`

	// Expires is the number of keys with an expiration set.
	Expires int64 `json:"expires"`

	// AvgTTLMillis is the average TTL of expiring keys, in milliseconds.
	AvgTTLMillis int64 `json:"avg_ttl"`
}

// Status describes the reachability and keyspace shape of the store.
type Status struct {
	// Connected reports whether the store answered the status query.
	Connected bool `json:"connected"`

	// Addr is the address of the store instance.
	Addr string `json:"addr"`

	// DB is the logical database this viewer is bound to.
	DB int `json:"db"`

	// TotalKeys is the key count of the bound database.
	TotalKeys int64 `json:"total_keys"`

	// Databases maps logical database names (e.g. "db10") to their
	// keyspace statistics.
	Databases map[string]KeyspaceInfo `json:"all_databases"`

	// ConfiguredDatabases is the number of logical databases the store
	// is configured with, or 0 if the store refused the config query.
	ConfiguredDatabases int `json:"configured_databases"`
}
