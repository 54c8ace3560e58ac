// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azure

import (
	"fmt"
	"strings"
	"sync"
)

// ClientCache provides thread-safe caching of SDK clients by a string key.
// ARM SDK clients are designed to be long-lived and reuse HTTP connections
// via their internal pipeline; creating them per-call wastes TCP+TLS
// handshakes. The cache is multi-entry so concurrent requests for different
// tenants or retry policies do not thrash each other.
type ClientCache[T any] struct {
	cache sync.Map
}

// GetOrCreate returns a cached client for the given key, or creates one
// using the factory function. The factory is only called on cache miss.
// Thread-safe via sync.Map.LoadOrStore; on a race the first stored client
// wins and the redundant one is discarded.
func (c *ClientCache[T]) GetOrCreate(key string, factory func() (T, error)) (T, error) {
	if cached, ok := c.cache.Load(key); ok {
		return cached.(T), nil
	}

	client, err := factory()
	if err != nil {
		var zero T
		return zero, err
	}

	actual, _ := c.cache.LoadOrStore(key, client)
	return actual.(T), nil
}

// CacheKey joins key parts into a single cache key. Parts are typically a
// subscription id, a resolved tenant id and a retry-policy fingerprint.
func CacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// GetOrCreateClient is GetOrCreate with construction failures wrapped into
// the uniform "failed to create client" error callers expect regardless of
// the underlying cause.
func GetOrCreateClient[T any](cache *ClientCache[T], key string, factory func() (T, error)) (T, error) {
	client, err := cache.GetOrCreate(key, factory)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
