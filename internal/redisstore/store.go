// Package redisstore implements the store gateway over Redis using
// go-redis. It is a thin client: raw bytes in and out, no decoding,
// no retries. Retry policy belongs to callers.
//
// Package redisstore 基于go-redis在Redis之上实现存储网关。它是一个
// 薄客户端：只进出原始字节，不做解码，也不做重试。
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Humphrey-He/cacheview/api/core"
)

// Options configures the connection to one Redis instance.
type Options struct {
	// Addr is the host:port of the Redis instance.
	Addr string

	// DB is the logical database to bind to.
	DB int

	// Password authenticates the connection; empty disables AUTH.
	Password string

	// PoolSize is the connection pool size. The viewer serves a single
	// interactive operator, so a small pool suffices; 0 selects the
	// go-redis default.
	PoolSize int

	// DialTimeout bounds connection establishment; 0 selects the
	// go-redis default.
	DialTimeout time.Duration
}

// Store is the Redis-backed implementation of core.Store. All methods
// are safe for concurrent use; calls multiplex over the client's
// connection pool, so scans and value fetches proceed independently.
type Store struct {
	client *redis.Client
	addr   string
	db     int
}

// New creates a Store connected to the instance described by opts.
// The connection is lazy; use Ping to verify reachability.
//
// Parameters:
//   - opts: Connection options
//
// Returns:
//   - *Store: A new store gateway
func New(opts Options) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		DB:          opts.DB,
		Password:    opts.Password,
		PoolSize:    opts.PoolSize,
		DialTimeout: opts.DialTimeout,
	})
	return &Store{client: client, addr: opts.Addr, db: opts.DB}
}

// Get fetches the raw bytes stored under key. Missing keys map to
// core.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, core.ErrEmptyKey
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// ScanPage runs one SCAN page. Redis applies the glob pattern to the
// keys it examines in this page; the count hint bounds keys examined,
// not matches returned.
func (s *Store) ScanPage(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	keys, next, err := s.client.Scan(ctx, cursor, pattern, count).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis scan: %w", err)
	}
	return keys, next, nil
}

// TTL returns the remaining time-to-live of key. Keys without an
// expiration return core.NoTTL; missing keys return core.ErrNotFound.
func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	if key == "" {
		return 0, core.ErrEmptyKey
	}
	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis ttl: %w", err)
	}
	// go-redis passes the -1/-2 sentinel replies through unscaled.
	switch d {
	case -1:
		return core.NoTTL, nil
	case -2:
		return 0, core.ErrNotFound
	}
	return d, nil
}

// ValueSize returns the stored byte length of key's value without
// fetching it. STRLEN reports 0 for both empty values and missing
// keys, so absence is disambiguated with EXISTS.
func (s *Store) ValueSize(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, core.ErrEmptyKey
	}
	n, err := s.client.StrLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis strlen: %w", err)
	}
	if n == 0 {
		exists, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return 0, fmt.Errorf("redis exists: %w", err)
		}
		if exists == 0 {
			return 0, core.ErrNotFound
		}
	}
	return n, nil
}

// Delete removes key. It reports false for keys that did not exist.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, core.ErrEmptyKey
	}
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del: %w", err)
	}
	return n > 0, nil
}

// Ping verifies connectivity. Failures wrap core.ErrUnreachable so
// callers can classify them without knowing the transport.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrUnreachable, s.addr, err)
	}
	return nil
}

// Status reports reachability and keyspace statistics: the per-db key
// counts from INFO keyspace and the configured database count from
// CONFIG GET. A store that rejects CONFIG (common on managed Redis)
// degrades to ConfiguredDatabases 0 rather than failing.
func (s *Store) Status(ctx context.Context) (*core.Status, error) {
	info, err := s.client.Info(ctx, "keyspace").Result()
	if err != nil {
		return &core.Status{Connected: false, Addr: s.addr, DB: s.db},
			fmt.Errorf("%w: %s: %v", core.ErrUnreachable, s.addr, err)
	}

	status := &core.Status{
		Connected: true,
		Addr:      s.addr,
		DB:        s.db,
		Databases: parseKeyspaceInfo(info),
	}
	if own, ok := status.Databases["db"+strconv.Itoa(s.db)]; ok {
		status.TotalKeys = own.Keys
	}

	if cfg, err := s.client.ConfigGet(ctx, "databases").Result(); err == nil {
		if v, ok := cfg["databases"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				status.ConfiguredDatabases = n
			}
		}
	}
	return status, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
