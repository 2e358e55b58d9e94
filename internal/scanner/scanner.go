// Package scanner implements exhaustive keyspace enumeration over the
// store's paginated, cursor-based scan primitive.
//
// Package scanner 基于存储分页游标式的扫描原语，实现对键空间的完整枚举。
//
// The scan primitive's page size hint bounds how many keys the store
// examines per call, not how many matches it returns, so a page may
// legitimately be empty while unscanned keys remain. Termination is
// driven solely by the sentinel cursor. The primitive may also revisit
// keys while the store is mutated concurrently, so results are
// deduplicated before they are returned.
package scanner

import (
	"context"
	"sort"
	"strings"

	"github.com/Humphrey-He/cacheview/api/core"
)

// DefaultPageSize is the scan count hint used when none is configured.
// It bounds keys examined per round trip, trading fewer round trips
// against per-call latency on the store.
const DefaultPageSize = 5000

// Scanner enumerates keys in the backing store. A Scanner is safe for
// concurrent use; each Keys call owns its own cursor and accumulator,
// so no locking is needed.
type Scanner struct {
	store    core.Store
	pageSize int64
}

// New creates a Scanner over store. A pageSize of 0 or less selects
// DefaultPageSize.
//
// Parameters:
//   - store: The store to scan
//   - pageSize: Hint for keys examined per scan call
//
// Returns:
//   - *Scanner: A new scanner
func New(store core.Store, pageSize int64) *Scanner {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Scanner{store: store, pageSize: pageSize}
}

// Keys lists every key matching the glob pattern, in ascending lexical
// order with duplicates removed. An empty pattern matches everything.
//
// The scan runs to the sentinel cursor regardless of empty pages. Any
// transport error aborts the scan and returns a *core.ScanError with
// no keys: a truncated key list is misleading to an operator, so
// partial results are discarded. A cancelled context aborts the same
// way; the scan session is not resumable and a retry starts over from
// the initial cursor.
//
// Parameters:
//   - ctx: Context for the operation, can be used for cancellation
//   - pattern: Glob pattern applied store-side to scanned keys
//
// Returns:
//   - []string: The sorted, deduplicated matching keys
//   - error: A *core.ScanError if any page failed
func (s *Scanner) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	seen := make(map[string]struct{})
	var cursor uint64
	for {
		page, next, err := s.store.ScanPage(ctx, cursor, pattern, s.pageSize)
		if err != nil {
			return nil, &core.ScanError{Err: err}
		}
		for _, key := range page {
			seen[key] = struct{}{}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Filter narrows keys to those containing substr, case-insensitively.
// It is the client-side second stage layered over the store-side glob
// match, kept separate because it is a UI convenience rather than part
// of the scan contract. An empty substr returns keys unchanged.
//
// Parameters:
//   - keys: The keys to filter
//   - substr: The substring to require, matched case-insensitively
//
// Returns:
//   - []string: The keys whose text contains substr
func Filter(keys []string, substr string) []string {
	if substr == "" {
		return keys
	}
	needle := strings.ToLower(substr)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.Contains(strings.ToLower(key), needle) {
			out = append(out, key)
		}
	}
	return out
}
