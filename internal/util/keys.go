package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SnapshotKey returns the provider key for a snapshot: snap:<ns>:<key>.
func SnapshotKey(ns, key string) string {
	var b strings.Builder
	b.Grow(len("snap:") + len(ns) + 1 + len(key))
	b.WriteString("snap:")
	b.WriteString(ns)
	b.WriteByte(':')
	b.WriteString(key)
	return b.String()
}

// Redact returns a short stable digest of k for logs: the first 8 bytes of
// its SHA-256, hex encoded.
func Redact(k string) string {
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}
