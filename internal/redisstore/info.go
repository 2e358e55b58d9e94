package redisstore

import (
	"strconv"
	"strings"

	"github.com/Humphrey-He/cacheview/api/core"
)

// parseKeyspaceInfo parses the keyspace section of an INFO reply into
// per-database statistics. Lines look like:
//
//	db0:keys=42,expires=3,avg_ttl=3600000
//
// Comment lines, blank lines and lines that do not follow the dbN
// shape are skipped; a malformed field within a db line is left zero
// rather than failing the whole reply.
func parseKeyspaceInfo(info string) map[string]core.KeyspaceInfo {
	out := make(map[string]core.KeyspaceInfo)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, fields, ok := strings.Cut(line, ":")
		if !ok || !isDBName(name) {
			continue
		}

		var ks core.KeyspaceInfo
		for _, field := range strings.Split(fields, ",") {
			k, v, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				continue
			}
			switch k {
			case "keys":
				ks.Keys = n
			case "expires":
				ks.Expires = n
			case "avg_ttl":
				ks.AvgTTLMillis = n
			}
		}
		out[name] = ks
	}
	return out
}

// isDBName reports whether name is "db" followed by digits.
func isDBName(name string) bool {
	if !strings.HasPrefix(name, "db") || len(name) == 2 {
		return false
	}
	for _, r := range name[2:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
