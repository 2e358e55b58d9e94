package server

import (
	"testing"
	"time"

	"github.com/Humphrey-He/cacheview/api/core"
)

// TestFormatTTL verifies the human TTL labels the viewer displays.
func TestFormatTTL(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"no ttl sentinel", core.NoTTL, "No TTL"},
		{"negative", -5 * time.Second, "No TTL"},
		{"zero", 0, "< 1 min"},
		{"thirty seconds", 30 * time.Second, "< 1 min"},
		{"just under a minute", 59 * time.Second, "< 1 min"},
		{"one minute", time.Minute, "1 min"},
		{"ninety seconds", 90 * time.Second, "1 min"},
		{"five minutes", 5 * time.Minute, "5 min"},
		{"two hours", 2 * time.Hour, "120 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTTL(tt.d); got != tt.want {
				t.Errorf("FormatTTL(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
