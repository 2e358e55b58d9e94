package server

import (
	"strconv"
	"time"

	"github.com/Humphrey-He/cacheview/api/core"
)

// FormatTTL renders a TTL the way the viewer displays it: keys without
// an expiration show "No TTL", anything under a minute shows "< 1 min"
// and longer TTLs show whole minutes.
//
// Parameters:
//   - d: The TTL, or core.NoTTL
//
// Returns:
//   - string: The human-readable label
func FormatTTL(d time.Duration) string {
	if d == core.NoTTL || d < 0 {
		return "No TTL"
	}
	minutes := int64(d / time.Minute)
	if minutes < 1 {
		return "< 1 min"
	}
	return strconv.FormatInt(minutes, 10) + " min"
}
