// Package msf is a versioned client for the MySportsFeeds statistics
// API. It resolves a feed request to an endpoint URL, authenticates,
// performs the pull and serves conditional (304) responses from a
// pluggable storage backend.
//
// Basic usage:
//
//	client, err := msf.New("1.2", msf.WithFileStore("results"))
//	if err != nil { ... }
//	if err := client.Authenticate("apikey", "password"); err != nil { ... }
//	res, err := client.GetData(ctx, msf.Request{
//		League: "nba",
//		Season: "2016-2017-regular",
//		Feed:   "player_gamelogs",
//		Format: msf.FormatJSON,
//		Params: map[string]string{"player": "stephen-curry"},
//	})
package msf

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mysportsfeeds/mysportsfeeds-go/config"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/api"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/logging"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/metrics"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/store"
)

// Request identifies one feed pull.
type Request = feed.Request

// Format is a recognized feed output format.
type Format = feed.Format

// Recognized output formats.
const (
	FormatJSON = feed.FormatJSON
	FormatXML  = feed.FormatXML
	FormatCSV  = feed.FormatCSV
)

// Result is the outcome of a GetData call.
type Result = api.Result

// Status describes the terminal outcome of one GetData call.
type Status = api.Status

// GetData outcomes.
const (
	StatusFresh  = api.StatusFresh
	StatusCached = api.StatusCached
	StatusNoData = api.StatusNoData
)

// Store is the storage backend contract.
type Store = store.Store

// NewFileStore creates a local filesystem backend rooted at dir. An
// empty dir selects the default "results" directory.
func NewFileStore(dir string) Store {
	return store.NewFileStore(dir)
}

// NewS3Store creates an object storage backend over the bucket at
// bucketURL (e.g. "s3://my-bucket?region=us-east-1") with an optional
// object key prefix.
func NewS3Store(bucketURL, prefix string) Store {
	return store.NewBlobStore(bucketURL, prefix)
}

// NewMemoryStore creates an in-memory LRU backend.
func NewMemoryStore(maxEntries int, ttl time.Duration) Store {
	return store.NewMemoryStore(maxEntries, ttl)
}

// Client is the top-level facade over one versioned API client.
type Client struct {
	api *api.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	store      store.Store
	httpClient *http.Client
	registry   prometheus.Registerer
}

// WithStore attaches a storage backend. Pick the variant with
// NewFileStore, NewS3Store or NewMemoryStore.
func WithStore(s Store) Option {
	return func(o *options) { o.store = s }
}

// WithFileStore is shorthand for WithStore(NewFileStore(dir)).
func WithFileStore(dir string) Option {
	return func(o *options) { o.store = store.NewFileStore(dir) }
}

// WithHTTPClient replaces the HTTP client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithMetrics registers request/cache/storage-fault counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// New creates a client for the given protocol version ("1.0", "1.1",
// "1.2", "2.0" or "2.1").
func New(version string, opts ...Option) (*Client, error) {
	v, err := api.Lookup(version)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	apiOpts := []api.Option{}
	if o.store != nil {
		apiOpts = append(apiOpts, api.WithStore(o.store))
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	if o.registry != nil {
		m := metrics.New(o.registry)
		apiOpts = append(apiOpts, api.WithMetrics(m))
		if bs, ok := o.store.(*store.BlobStore); ok {
			bs.Instrument(m)
		}
	}

	return &Client{api: api.New(v, apiOpts...)}, nil
}

// FromConfig builds a fully wired client from a loaded configuration:
// logger, storage backend, HTTP timeout and credentials.
func FromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg.Logging.Level != "" {
		logger, err := logging.New(cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		logging.SetGlobal(logger)
	}

	switch cfg.Store.Type {
	case config.StoreFile:
		opts = append(opts, WithFileStore(cfg.Store.Directory))
	case config.StoreS3:
		opts = append(opts, WithStore(NewS3Store(cfg.Store.BucketURL, cfg.Store.Prefix)))
	case config.StoreMemory:
		opts = append(opts, WithStore(NewMemoryStore(cfg.Store.MaxEntries, cfg.Store.TTL)))
	}

	if cfg.HTTP.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}))
	}

	client, err := New(cfg.Version, opts...)
	if err != nil {
		return nil, err
	}

	switch {
	case client.SupportsBasicAuth() && cfg.Auth.Username != "":
		if err := client.Authenticate(cfg.Auth.Username, cfg.Auth.Password); err != nil {
			return nil, err
		}
	case !client.SupportsBasicAuth() && cfg.Auth.APIKey != "":
		if err := client.AuthenticateAPIKey(cfg.Auth.APIKey); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// Version returns the protocol version this client serves.
func (c *Client) Version() string {
	return c.api.Version()
}

// SupportsBasicAuth reports whether the version takes username/password
// credentials.
func (c *Client) SupportsBasicAuth() bool {
	return c.api.SupportsBasicAuth()
}

// Authenticate sets basic-auth credentials. It fails for versions that
// do not support basic authentication.
func (c *Client) Authenticate(username, password string) error {
	if !c.api.SupportsBasicAuth() {
		return errors.Newf(errors.KindAuthentication,
			"BASIC authentication not supported for version %s", c.api.Version())
	}
	return c.api.SetAuthCredentials(username, password)
}

// AuthenticateAPIKey sets an API key for the v2 protocol family.
func (c *Client) AuthenticateAPIKey(key string) error {
	return c.api.SetAPIKey(key)
}

// GetData performs one feed pull. Fresh data (200) is decoded and, when
// a store is attached, persisted under the request's cache key. A 304
// is served from the store when a copy exists, else the Result carries
// StatusNoData. Any other status fails with a transport error.
func (c *Client) GetData(ctx context.Context, req Request) (*Result, error) {
	return c.api.GetData(ctx, req)
}
