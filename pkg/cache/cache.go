// Package cache provides pluggable result caching for conversions.
//
// Conversion output is a pure function of the input document, so results
// are cached by content hash. Three backends are provided:
//   - FileCache: directory-backed, for single-machine server use
//   - RedisCache: shared backend for multi-instance deployments
//   - NullCache: disables caching entirely
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores conversion results keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ConvertKey builds the cache key for a conversion of the given input
// document and format.
func ConvertKey(input []byte, format string) string {
	return "convert:" + format + ":" + Hash(input)
}
