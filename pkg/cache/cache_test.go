package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestConvertKey(t *testing.T) {
	input := []byte(`{"nodes": []}`)

	key := ConvertKey(input, "json")
	if !strings.HasPrefix(key, "convert:json:") {
		t.Errorf("key = %q, want convert:json: prefix", key)
	}

	// Same input, same format, same key.
	if key != ConvertKey(input, "json") {
		t.Error("ConvertKey should be deterministic")
	}

	// The format is part of the key: the same bytes decode differently
	// per format.
	if key == ConvertKey(input, "toml") {
		t.Error("format should distinguish keys")
	}
	if key == ConvertKey([]byte(`{"nodes": [1]}`), "json") {
		t.Error("input content should distinguish keys")
	}
}
