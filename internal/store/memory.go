package store

import (
	"bytes"
	"context"
	"time"

	expirable "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/codec"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
)

// MemoryStore keeps encoded payloads in an expirable LRU. It gives a
// process conditional-fetch reuse without touching disk or a bucket,
// and backs tests. Entries evict on capacity or TTL; a miss after
// eviction simply forces the next fetch to go upstream.
type MemoryStore struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryStore creates an in-memory store holding at most maxEntries
// payloads. maxEntries <= 0 selects 1000. A ttl of 0 disables
// expiration.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryStore{
		lru: expirable.NewLRU[string, []byte](maxEntries, nil, ttl),
	}
}

// Exists implements Store.
func (s *MemoryStore) Exists(_ context.Context, req feed.Request) (bool, error) {
	return s.lru.Contains(req.CacheKey()), nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, req feed.Request) (any, bool, error) {
	raw, ok := s.lru.Get(req.CacheKey())
	if !ok {
		return nil, false, nil
	}
	data, err := codec.Decode(req.Format, bytes.NewReader(raw))
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Store implements Store. The returned location is the cache key.
func (s *MemoryStore) Store(_ context.Context, data any, req feed.Request) (string, error) {
	var buf bytes.Buffer
	if err := codec.Encode(data, req.Format, &buf); err != nil {
		return "", err
	}
	key := req.CacheKey()
	s.lru.Add(key, buf.Bytes())
	return key, nil
}
