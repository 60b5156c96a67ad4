// Package store persists decoded feed payloads keyed by the cache key
// derived from a feed request, and serves them back on conditional
// (304) fetches.
//
// Three variants implement the same contract: a local filesystem
// directory, a gocloud.dev blob bucket, and an in-memory LRU. Variants
// differ in failure semantics: the filesystem store surfaces I/O errors
// to the caller, while the blob store logs transport faults and absorbs
// them into absent/false results so a storage outage does not take the
// calling pipeline down with it. That trade masks real outages; callers
// who need to see bucket faults should watch the error log or metrics.
//
// Lazy initialization is guarded by a plain flag. The package assumes at
// most one in-flight call per store from a given process; first use from
// multiple goroutines is not synchronized.
package store

import (
	"context"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
)

// Store is the storage backend contract shared by all variants.
type Store interface {
	// Exists reports whether a payload is present under the request's
	// cache key.
	Exists(ctx context.Context, req feed.Request) (bool, error)

	// Load returns the decoded payload for the request's cache key. A
	// missing entry is reported via ok=false, not an error.
	Load(ctx context.Context, req feed.Request) (data any, ok bool, err error)

	// Store encodes data and writes it under the request's cache key,
	// overwriting any previous entry. It returns a backend-specific
	// location token (file path or object key); callers may ignore it.
	Store(ctx context.Context, data any, req feed.Request) (string, error)
}
