// Package cache stores rendered artifacts keyed by content hash.
//
// The pipeline caches visualizer output under a key derived from the
// source document bytes, the datasource format, and the visualizer id,
// so re-rendering an unchanged file is a read instead of a parse and
// layout. Backends are pluggable; the CLI uses the file backend, tests
// and --no-cache use the null backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey builds the cache key for a rendered artifact: the
// document hash scoped by format and visualizer so the same bytes
// rendered two ways never collide.
func ArtifactKey(docHash, format, vizID string) string {
	return "artifact:" + format + ":" + vizID + ":" + docHash
}
